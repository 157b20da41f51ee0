package middleware

import (
	"net/http"

	"trivia-coffee-backend/internal/apperr"
	"trivia-coffee-backend/internal/logger"
	"trivia-coffee-backend/internal/response"
	"trivia-coffee-backend/internal/services"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// RequireScope verifies the bearer token and checks that it grants scope.
// On success the decoded claims are available through Claims(c).
func RequireScope(tokens *services.TokenService, scope string, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := services.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortAuth(c, log, scope, err)
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			abortAuth(c, log, scope, err)
			return
		}

		if err := services.Authorize(claims.Granted(), scope); err != nil {
			abortAuth(c, log, scope, err)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Claims returns the claims stored by RequireScope, or nil on unguarded routes.
func Claims(c *gin.Context) *services.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*services.Claims)
	return claims
}

func abortAuth(c *gin.Context, log *logger.Logger, scope string, err error) {
	e, ok := apperr.As(err)
	if !ok {
		log.Error("auth check failed unexpectedly", "scope", scope, "error", err)
		response.Abort(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	log.Debug("request denied", "scope", scope, "code", e.Code, "status", e.Status)
	response.Abort(c, e.Status, e.Message)
}
