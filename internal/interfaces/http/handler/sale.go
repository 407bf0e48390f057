package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/grocery/backend/internal/application/report"
	salesapp "github.com/grocery/backend/internal/application/sales"
)

// SaleHandler handles checkout, history and analytics endpoints
type SaleHandler struct {
	BaseHandler
	settlementService *salesapp.SettlementService
	historyService    *salesapp.HistoryService
	analyticsService  *reportapp.AnalyticsService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(
	settlementService *salesapp.SettlementService,
	historyService *salesapp.HistoryService,
	analyticsService *reportapp.AnalyticsService,
) *SaleHandler {
	return &SaleHandler{
		settlementService: settlementService,
		historyService:    historyService,
		analyticsService:  analyticsService,
	}
}

// RegisterRoutes registers sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Create)
		sales.GET("/analytics", h.Analytics)
		sales.GET("/history", h.History)
		sales.PUT("/:id/trash", h.ToggleTrash)
		sales.DELETE("/:id", h.Delete)
	}
}

// Create settles a cart: consumes batch stock, records the sale and
// accrues loyalty points, all atomically.
func (h *SaleHandler) Create(c *gin.Context) {
	var req salesapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.settlementService.Settle(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// Analytics returns chart buckets and all-time totals for the
// requested range (week, month or year).
func (h *SaleHandler) Analytics(c *gin.Context) {
	result, err := h.analyticsService.Aggregate(c.Request.Context(), c.Query("range"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// History lists sales, optionally filtered to one day, from the live
// or trashed view.
func (h *SaleHandler) History(c *gin.Context) {
	query := salesapp.HistoryQuery{
		Date:  c.Query("date"),
		Trash: c.Query("trash") == "true",
	}

	result, err := h.historyService.Query(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ToggleTrash flips a sale between the live and trashed views
func (h *SaleHandler) ToggleTrash(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	result, err := h.historyService.ToggleTrash(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete permanently removes a sale
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.historyService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
