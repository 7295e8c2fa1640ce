// File: internal/analytics/handler.go
package analytics

import (
	"bluestock_client/internal/common"
	"bluestock_client/internal/company"

	"github.com/gin-gonic/gin"
)

// Handler serves the aggregate analytics endpoint.
type Handler struct {
	companies *company.Store
}

// NewHandler creates a new analytics handler.
func NewHandler(companies *company.Store) *Handler {
	return &Handler{companies: companies}
}

// RegisterRoutes sets up the analytics route on an authenticated group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/analytics", h.stats)
}

func (h *Handler) stats(c *gin.Context) {
	common.RespondOK(c, Compute(h.companies.List()))
}
