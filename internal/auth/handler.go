// File: internal/auth/handler.go
package auth

import (
	"errors"

	"bluestock_client/internal/common"
	"bluestock_client/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler exposes the gateway auth endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the public auth routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", h.login)
		authGroup.POST("/register", h.register)
		authGroup.POST("/verify-otp", h.verifyOTP)
	}
}

// RegisterProtectedRoutes sets up the auth routes behind the token
// middleware.
func (h *Handler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/auth/me", h.me)
}

func (h *Handler) login(c *gin.Context) {
	var req shared.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, "login", err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, result)
}

func (h *Handler) register(c *gin.Context) {
	var req shared.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, "register", err)
		return
	}

	if err := h.service.StartRegistration(c.Request.Context(), req); err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, shared.RegisterResponse{OTPSent: true})
}

func (h *Handler) verifyOTP(c *gin.Context) {
	var req shared.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, "verify-otp", err)
		return
	}

	result, err := h.service.VerifyOTP(c.Request.Context(), req.MobileNumber, req.OTP)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, result)
}

func (h *Handler) me(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == "" {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	identity, err := h.service.Identity(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, identity)
}

func (h *Handler) bindError(c *gin.Context, op string, err error) {
	h.logger.Warn("invalid request body", zap.String("op", op), zap.Error(err))
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
		return
	}
	common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
}
