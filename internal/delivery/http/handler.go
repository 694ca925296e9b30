// Package http exposes the matching and optimization services over a REST API.
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mercalista/backend/internal/domain"
	"github.com/mercalista/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	matcher   *usecase.MatcherService
	optimizer *usecase.OptimizerService
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(matcher *usecase.MatcherService, optimizer *usecase.OptimizerService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		matcher:   matcher,
		optimizer: optimizer,
		logger:    logger,
	}
}

// searchMatchesRequest is the body of POST /api/v1/matches/search
type searchMatchesRequest struct {
	IngredientName string  `json:"ingredientName" binding:"required"`
	Quantity       float64 `json:"quantity" binding:"required,gt=0"`
	Unit           string  `json:"unit"`
	SupermarketID  string  `json:"supermarketId" binding:"required"`
}

// searchMatchesResponse echoes the query alongside the ranked matches
type searchMatchesResponse struct {
	IngredientName string                `json:"ingredientName"`
	SupermarketID  string                `json:"supermarketId"`
	Matches        []domain.ProductMatch `json:"matches"`
}

// groceryItemPayload mirrors domain.GroceryItem for incoming requests.
// The ID is optional; a fresh one is generated when it is blank.
type groceryItemPayload struct {
	ID             string  `json:"id"`
	IngredientName string  `json:"ingredientName"`
	TotalQuantity  float64 `json:"totalQuantity"`
	Unit           string  `json:"unit"`
}

// optimizeRequest is the body of the optimization and comparison endpoints
type optimizeRequest struct {
	Items          []groceryItemPayload `json:"items" binding:"required"`
	SupermarketIDs []string             `json:"supermarketIds"`
}

func (r optimizeRequest) toDomainItems() []domain.GroceryItem {
	items := make([]domain.GroceryItem, 0, len(r.Items))
	for _, payload := range r.Items {
		id := payload.ID
		if id == "" {
			id = uuid.NewString()
		}

		items = append(items, domain.GroceryItem{
			ID:             id,
			IngredientName: payload.IngredientName,
			TotalQuantity:  payload.TotalQuantity,
			Unit:           payload.Unit,
		})
	}
	return items
}

// HealthCheck returns the health status of the service
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "mercalista-api",
		"version": "1.0.0",
	})
}

// SearchMatches handles POST /api/v1/matches/search. It matches a single
// ingredient against one supermarket's catalog.
func (h *Handler) SearchMatches(c *gin.Context) {
	var req searchMatchesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	matches, err := h.matcher.FindMatches(c.Request.Context(), req.IngredientName, req.Quantity, req.Unit, req.SupermarketID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, searchMatchesResponse{
		IngredientName: req.IngredientName,
		SupermarketID:  req.SupermarketID,
		Matches:        matches,
	})
}

// OptimizePrice handles POST /api/v1/optimize/price. It assigns every list
// item to the cheapest store, within the configured store cap.
func (h *Handler) OptimizePrice(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	result, err := h.optimizer.OptimizeForPrice(c.Request.Context(), req.toDomainItems(), req.SupermarketIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// OptimizeAvailability handles POST /api/v1/optimize/availability. It picks
// the single store that stocks the most items from the list.
func (h *Handler) OptimizeAvailability(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	result, err := h.optimizer.OptimizeForAvailability(c.Request.Context(), req.toDomainItems(), req.SupermarketIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CompareSupermarkets handles POST /api/v1/supermarkets/compare. It prices the
// full list at every store and returns one row per store, cheapest first.
func (h *Handler) CompareSupermarkets(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	comparisons, err := h.optimizer.FindBestSupermarket(c.Request.Context(), req.toDomainItems(), req.SupermarketIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"supermarkets": comparisons,
	})
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrCatalogUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("requestId", requestid.Get(c)),
			zap.Error(err))
	}

	c.JSON(status, gin.H{
		"error":     err.Error(),
		"requestId": requestid.Get(c),
	})
}

func (h *Handler) respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":     "invalid request body: " + err.Error(),
		"requestId": requestid.Get(c),
	})
}
