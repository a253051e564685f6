package shopping

import (
	"strconv"
	"strings"
)

// Ingredient is one parsed ingredient line. Unit is the normalized unit
// name, or empty for count-implied quantities. NeedsReview marks lines whose
// quantity could not be read.
type Ingredient struct {
	RawText  string
	MealID   string
	Quantity float64
	Unit     string
	ItemName string
	// NeedsReview is set when no leading quantity could be parsed; the line
	// is then treated as a unit-less count of 1.
	NeedsReview bool
}

// ParseIngredient extracts a leading quantity and unit from a raw line like
// "2 cups broccoli florets". The remainder, lowercased and trimmed, becomes
// the item name. Trailing preparation notes after a comma ("onion, diced")
// are dropped. Lines with no parseable quantity ("salt to taste") become a
// unit-less quantity of 1 flagged for review.
func (t *Tables) ParseIngredient(raw, mealID string) Ingredient {
	ing := Ingredient{RawText: raw, MealID: mealID, Quantity: 1, NeedsReview: true}

	line := strings.TrimSpace(raw)
	if i := strings.IndexByte(line, ','); i >= 0 {
		line = line[:i]
	}
	line = strings.ToLower(line)

	words := strings.Fields(line)
	rest := words

	if qty, consumed, ok := parseQuantity(words); ok {
		ing.Quantity = qty
		ing.NeedsReview = false
		rest = words[consumed:]

		if len(rest) > 0 {
			token := strings.TrimSuffix(rest[0], ".")
			if unit, ok := t.LookupUnit(token); ok {
				ing.Unit = unit.Name
				rest = rest[1:]
			}
		}
		// "2 cups of rice"
		if len(rest) > 0 && rest[0] == "of" {
			rest = rest[1:]
		}
	}

	ing.ItemName = strings.Join(rest, " ")
	if ing.ItemName == "" {
		// Quantity-only lines are unusable; keep the raw text as the key so
		// they surface for review instead of vanishing.
		ing.ItemName = strings.ToLower(strings.TrimSpace(raw))
		ing.NeedsReview = true
	}
	return ing
}

// parseQuantity reads a leading amount from the word list: integers,
// decimals, fractions ("1/2") and mixed numbers ("1 1/2"). It returns the
// value and how many words it consumed.
func parseQuantity(words []string) (float64, int, bool) {
	if len(words) == 0 {
		return 0, 0, false
	}

	first, ok := parseAmount(words[0])
	if !ok {
		return 0, 0, false
	}

	// Mixed number: "1 1/2 cups".
	if len(words) > 1 && strings.Contains(words[1], "/") {
		if frac, ok := parseAmount(words[1]); ok {
			return first + frac, 2, true
		}
	}

	return first, 1, true
}

func parseAmount(token string) (float64, bool) {
	if num, den, ok := strings.Cut(token, "/"); ok {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
