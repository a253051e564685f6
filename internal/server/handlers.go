package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hungryjack/internal/planner"
	"hungryjack/internal/profile"
)

const dateLayout = "2006-01-02"

type generatePlanRequest struct {
	GoalType                 string   `json:"goal_type"`
	DietaryStyles            []string `json:"dietary_styles"`
	Allergies                []string `json:"allergies"`
	PreferredCuisines        []string `json:"preferred_cuisines"`
	DailyCalorieTarget       int      `json:"daily_calorie_target"`
	MealPrepTimeLimitMinutes int      `json:"meal_prep_time_limit_minutes"`
	StartDate                string   `json:"start_date"`
	EndDate                  string   `json:"end_date"`
}

func (s *Server) generateMealPlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req generatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	window, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prof := profile.GoalProfile{
		GoalType:                 profile.GoalType(req.GoalType),
		DietaryStyles:            req.DietaryStyles,
		Allergies:                req.Allergies,
		PreferredCuisines:        req.PreferredCuisines,
		DailyCalorieTarget:       req.DailyCalorieTarget,
		MealPrepTimeLimitMinutes: req.MealPrepTimeLimitMinutes,
	}

	result, err := s.svc.GenerateMealPlan(c.Request.Context(), userID, prof, window)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (s *Server) getMealPlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	plan, err := s.svc.GetMealPlan(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) listMealPlans(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	plans, err := s.svc.ListMealPlans(c.Request.Context(), userID, limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (s *Server) deleteMealPlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := s.svc.DeleteMealPlan(c.Request.Context(), c.Param("id"), userID); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) rebuildShoppingList(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	list, err := s.svc.RebuildShoppingList(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (s *Server) getShoppingList(c *gin.Context) {
	list, err := s.svc.GetShoppingList(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getShoppingListByID(c *gin.Context) {
	list, err := s.svc.GetShoppingListByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type setPurchasedRequest struct {
	IsPurchased bool `json:"is_purchased"`
}

func (s *Server) setItemPurchased(c *gin.Context) {
	var req setPurchasedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	err := s.svc.SetItemPurchased(c.Request.Context(), c.Param("id"), c.Param("name"), req.IsPurchased)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func requireUserID(c *gin.Context) (string, bool) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query parameter is required"})
		return "", false
	}
	return userID, true
}

func parseWindow(start, end string) (planner.PlanWindow, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return planner.PlanWindow{}, fmt.Errorf("invalid start_date %q, expected YYYY-MM-DD", start)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return planner.PlanWindow{}, fmt.Errorf("invalid end_date %q, expected YYYY-MM-DD", end)
	}
	return planner.PlanWindow{Start: s, End: e}, nil
}
