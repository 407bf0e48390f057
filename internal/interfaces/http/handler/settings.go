package handler

import (
	"github.com/gin-gonic/gin"

	settingsapp "github.com/grocery/backend/internal/application/settings"
)

// SettingsHandler handles store settings endpoints
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// RegisterRoutes registers settings routes
func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	settings := rg.Group("/settings")
	{
		settings.GET("", h.Get)
		settings.PUT("", h.Update)
	}
}

// Get returns the store settings, creating defaults on first read
func (h *SettingsHandler) Get(c *gin.Context) {
	result, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update applies a partial settings update
func (h *SettingsHandler) Update(c *gin.Context) {
	var req settingsapp.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.settingsService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
