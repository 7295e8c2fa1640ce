// File: internal/company/handler.go
package company

import (
	"errors"

	"bluestock_client/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler exposes the dev gateway's company directory endpoints. All of
// them sit behind the token middleware.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new company handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes sets up the directory routes on an authenticated group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/companies", h.list)
	router.GET("/company/:idOrSlug", h.get)
	router.POST("/company/register", h.create)
	router.PUT("/company/:idOrSlug", h.update)
}

func (h *Handler) list(c *gin.Context) {
	common.RespondOK(c, h.store.List())
}

func (h *Handler) get(c *gin.Context) {
	found, err := h.store.Find(c.Param("idOrSlug"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, found)
}

func (h *Handler) create(c *gin.Context) {
	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	created := h.store.Create(common.GetUserIDFromContext(c), req)
	h.logger.Info("company registered", zap.String("companyID", created.ID), zap.String("slug", created.Slug))
	common.RespondCreated(c, created)
}

func (h *Handler) update(c *gin.Context) {
	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	updated, err := h.store.Update(c.Param("idOrSlug"), common.GetUserIDFromContext(c), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, updated)
}

func (h *Handler) bindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
		return
	}
	common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
}
