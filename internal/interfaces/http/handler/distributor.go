package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/grocery/backend/internal/application/partner"
)

// DistributorHandler handles distributor endpoints
type DistributorHandler struct {
	BaseHandler
	distributorService *partnerapp.DistributorService
}

// NewDistributorHandler creates a new DistributorHandler
func NewDistributorHandler(distributorService *partnerapp.DistributorService) *DistributorHandler {
	return &DistributorHandler{distributorService: distributorService}
}

// RegisterRoutes registers distributor routes
func (h *DistributorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	distributors := rg.Group("/distributors")
	{
		distributors.GET("", h.List)
		distributors.POST("", h.Create)
		distributors.DELETE("/:id", h.Delete)
	}
}

// List returns all distributors with their supplied product names
func (h *DistributorHandler) List(c *gin.Context) {
	distributors, err := h.distributorService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, distributors)
}

// Create registers a distributor
func (h *DistributorHandler) Create(c *gin.Context) {
	var req partnerapp.CreateDistributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	distributor, err := h.distributorService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, distributor)
}

// Delete removes a distributor
func (h *DistributorHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid distributor ID")
		return
	}

	if err := h.distributorService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
