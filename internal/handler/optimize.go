// internal/handler/optimize.go
package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	val "cashback-optimizer/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"cashback-optimizer/internal/catalog"
	"cashback-optimizer/internal/domain"
	"cashback-optimizer/internal/optimizer"
)

type OptimizeHandler struct {
	catalog  *catalog.Catalog
	selector *optimizer.Selector
}

func NewOptimizeHandler(cat *catalog.Catalog) *OptimizeHandler {
	return &OptimizeHandler{
		catalog:  cat,
		selector: optimizer.NewSelector(cat),
	}
}

// GetCards godoc
// @Summary List all known cards with their reward rules
// @Produce json
// @Success 200 {array} domain.Card
// @Router /api/v1/cards [get]
func (h *OptimizeHandler) GetCards(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Cards())
}

// GetCategories godoc
// @Summary List all spending categories
// @Produce json
// @Success 200 {array} domain.Category
// @Router /api/v1/categories [get]
func (h *OptimizeHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Categories())
}

// Optimize godoc
// @Summary Route monthly spending across the selected cards
// @Description Computes the per-category card assignment maximizing annual cashback
// @Accept json
// @Produce json
// @Param request body OptimizeRequest true "Spending profile and card selection"
// @Success 200 {object} OptimizeResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/optimize [post]
func (h *OptimizeHandler) Optimize(c *gin.Context) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := domain.SpendingProfile(req.MonthlySpending)

	// plans=trim additionally evaluates the subset of cards that win at
	// least one category under the baseline allocation.
	selector := h.selector
	if c.Query("plans") == "trim" {
		selector = optimizer.NewSelectorWithStrategy(h.catalog, optimizer.TrimIdleCards(h.catalog, profile))
	}

	result, err := selector.Select(profile, req.SelectedCardNames)
	if err != nil {
		if errors.Is(err, optimizer.ErrInvalidInput) || errors.Is(err, optimizer.ErrNoCardsAvailable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Optimize failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	results := make([]AllocationResponse, 0, len(result.Allocations))
	for _, row := range result.Allocations {
		results = append(results, AllocationResponse{
			Category: row.CategoryKey,
			Card:     row.Card,
			Amount:   row.Cashback,
		})
	}

	slog.Info("Optimize succeeded",
		"categories", len(results),
		"cards", len(req.SelectedCardNames),
		"total_savings", result.TotalSavings,
		"chosen_plan", result.ChosenPlan,
	)
	c.JSON(http.StatusOK, OptimizeResponse{
		Results:      results,
		TotalSavings: result.TotalSavings,
		ChosenPlan:   result.ChosenPlan,
	})
}

// === DTO ===

type OptimizeRequest struct {
	MonthlySpending   map[string]float64 `json:"monthly_spending" validate:"required"`
	SelectedCardNames []string           `json:"selected_card_names" validate:"required,min=1,dive,notblank"`
}

type AllocationResponse struct {
	Category string  `json:"category"`
	Card     string  `json:"card"`
	Amount   float64 `json:"amount"`
}

type OptimizeResponse struct {
	Results      []AllocationResponse `json:"results"`
	TotalSavings float64              `json:"total_savings"`
	ChosenPlan   string               `json:"chosen_plan"`
}

func validateStruct(v any) error {
	if err := val.Validate.Struct(v); err != nil {
		var errs []string
		for _, e := range err.(validator.ValidationErrors) {
			errs = append(errs, fieldErrorToString(e))
		}
		return fmt.Errorf("invalid input: %s", strings.Join(errs, "; "))
	}
	return nil
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "min":
		if e.Param() == "1" {
			return fmt.Sprintf("%s must not be empty", e.Field())
		}
		return fmt.Sprintf("%s is too short", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
