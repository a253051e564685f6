package shopping

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var tablesYAML []byte

// UnitSpec describes one recognized unit token. Units that share a family
// convert through Factor relative to the family's base; a unit without a
// family is countable and merges only with itself.
type UnitSpec struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
	Family  string   `yaml:"family"`
	Factor  float64  `yaml:"factor"`
}

// CategorySpec maps keywords to a grocery department. The longest matching
// keyword across all categories wins; declared order breaks ties, so
// "peanut butter" lands in pantry even though dairy declares "butter".
type CategorySpec struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Tables is the read-only configuration the builder works from.
type Tables struct {
	Units      []UnitSpec     `yaml:"units"`
	Categories []CategorySpec `yaml:"categories"`

	unitsByAlias map[string]*UnitSpec
}

// CategoryOther collects items no keyword matched. It displays last.
const CategoryOther = "other"

// DefaultTables loads the embedded unit and category tables.
func DefaultTables() (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(tablesYAML, &t); err != nil {
		return nil, fmt.Errorf("failed to parse shopping tables: %w", err)
	}
	t.index()
	return &t, nil
}

func (t *Tables) index() {
	t.unitsByAlias = make(map[string]*UnitSpec)
	for i := range t.Units {
		u := &t.Units[i]
		if _, taken := t.unitsByAlias[u.Name]; !taken {
			t.unitsByAlias[u.Name] = u
		}
		for _, a := range u.Aliases {
			if _, taken := t.unitsByAlias[a]; !taken {
				t.unitsByAlias[a] = u
			}
		}
	}
}

// LookupUnit resolves a token (already lowercased, trailing dot stripped)
// to its normalized unit.
func (t *Tables) LookupUnit(token string) (*UnitSpec, bool) {
	u, ok := t.unitsByAlias[token]
	return u, ok
}

// Convertible reports whether two normalized units can be summed, and the
// factor that converts one quantity of from into to-units.
func (t *Tables) Convertible(from, to string) (float64, bool) {
	if from == to {
		return 1, true
	}
	uf, okf := t.unitsByAlias[from]
	ut, okt := t.unitsByAlias[to]
	if !okf || !okt || uf.Family == "" || uf.Family != ut.Family {
		return 0, false
	}
	return uf.Factor / ut.Factor, true
}

// Categorize assigns a grocery department by case-insensitive substring
// match over the item name. The longest matching keyword wins, declared
// order breaking ties, so a more specific keyword in a later category beats
// a shorter one declared earlier.
func (t *Tables) Categorize(itemName string) string {
	itemName = strings.ToLower(itemName)
	best := CategoryOther
	bestLen := 0
	for _, c := range t.Categories {
		for _, kw := range c.Keywords {
			if len(kw) > bestLen && strings.Contains(itemName, kw) {
				best = c.Name
				bestLen = len(kw)
			}
		}
	}
	return best
}

// CategoryRank orders departments for display: declared order, then other.
func (t *Tables) CategoryRank(category string) int {
	for i, c := range t.Categories {
		if c.Name == category {
			return i
		}
	}
	return len(t.Categories)
}
