package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pratyush0898/OnlyCodes/internal/auth"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/pratyush0898/OnlyCodes/internal/util"
	"go.uber.org/zap"
)

// RequireAuth rejects requests without a valid bearer token and puts the
// acting user id in the context.
func RequireAuth(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			util.RespondUnauthorized(c, "missing bearer token")
			return
		}

		claims, err := verifier.VerifyToken(token)
		if err != nil {
			logger.Log.Debug("Rejected session token",
				logger.WithRequestID(c.GetString(ContextKeyRequestID)),
				zap.Error(err),
			)
			util.RespondUnauthorized(c, "invalid or expired token")
			return
		}

		setSession(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the session when a valid token is present and lets
// anonymous requests through. An invalid token is still rejected.
func OptionalAuth(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := verifier.VerifyToken(token)
		if err != nil {
			util.RespondUnauthorized(c, "invalid or expired token")
			return
		}

		setSession(c, claims)
		c.Next()
	}
}

func setSession(c *gin.Context, claims *auth.Claims) {
	c.Set(util.ContextKeyUserID, claims.ActorID())
	if claims.Username != "" {
		c.Set(util.ContextKeyUsername, claims.Username)
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
