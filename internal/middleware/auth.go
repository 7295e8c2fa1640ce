// File: internal/middleware/auth.go
package middleware

import (
	"strings"

	"bluestock_client/internal/auth"
	"bluestock_client/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header name for the bearer credential.
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for bearer tokens.
	AuthorizationTypeBearer = "Bearer"
)

// AuthMiddleware gates a route group on a valid gateway token. An absent,
// malformed, rejected, or expired token answers 401 — the signal that makes
// the client-side transport clear its session and bounce to login.
func AuthMiddleware(tokens *auth.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			logger.Debug("authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
			logger.Debug("authorization header format invalid")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			logger.Warn("token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired token."))
			return
		}

		c.Set(common.UserIDKey, claims.Subject)
		c.Set(common.UserEmailKey, claims.Email)

		c.Next()
	}
}
