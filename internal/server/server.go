// Package server exposes the meal-plan pipeline over HTTP. It is a thin
// consumer of the app layer: request decoding, user scoping and error
// mapping live here, nothing else.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hungryjack/internal/app"
	"hungryjack/internal/planner"
	"hungryjack/internal/profile"
	"hungryjack/internal/shopping"
)

// PlanService is the slice of the app layer the handlers need.
type PlanService interface {
	GenerateMealPlan(ctx context.Context, userID string, prof profile.GoalProfile, window planner.PlanWindow) (*app.PlanResult, error)
	GetMealPlan(ctx context.Context, id, userID string) (*planner.MealPlan, error)
	ListMealPlans(ctx context.Context, userID string, limit int) ([]*planner.MealPlan, error)
	DeleteMealPlan(ctx context.Context, id, userID string) error
	RebuildShoppingList(ctx context.Context, mealPlanID, userID string) (*shopping.ShoppingList, error)
	GetShoppingList(ctx context.Context, mealPlanID string) (*shopping.ShoppingList, error)
	GetShoppingListByID(ctx context.Context, id string) (*shopping.ShoppingList, error)
	SetItemPurchased(ctx context.Context, listID, itemName string, purchased bool) error
}

// Server wires the HTTP routes to the application.
type Server struct {
	svc PlanService
	log *zap.Logger
}

// New creates a Server.
func New(svc PlanService, log *zap.Logger) *Server {
	return &Server{svc: svc, log: log}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.POST("/meal-plans", s.generateMealPlan)
	api.GET("/meal-plans", s.listMealPlans)
	api.GET("/meal-plans/:id", s.getMealPlan)
	api.DELETE("/meal-plans/:id", s.deleteMealPlan)
	api.POST("/meal-plans/:id/shopping-list", s.rebuildShoppingList)
	api.GET("/meal-plans/:id/shopping-list", s.getShoppingList)
	api.GET("/shopping-lists/:id", s.getShoppingListByID)
	api.PATCH("/shopping-lists/:id/items/:name", s.setItemPurchased)

	return r
}

// respondError maps the pipeline's error taxonomy onto HTTP. Transient
// generation failures carry a retryable hint so the UI can show a retry
// action.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, profile.ErrInvalidProfile):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, planner.ErrNotFound), errors.Is(err, shopping.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, planner.ErrTransport),
		errors.Is(err, planner.ErrUnparsableResponse),
		errors.Is(err, planner.ErrGenerationFailed):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "meal plan generation failed, please try again",
			"retryable": true,
		})
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
		c.Status(499)
	default:
		s.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
