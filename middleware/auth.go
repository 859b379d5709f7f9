package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/autotradecenter/autotrade-api/services"
)

// RequireSession resolves the bearer token from the Authorization header
// against the in-memory session registry and stores the identity in the Gin
// context for downstream handlers.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_TOKEN",
					"message": "Authorization header required",
				},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Bearer token required",
				},
			})
			return
		}

		sessions := services.GetSessionService()
		identity, ok := sessions.Get(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_SESSION",
					"message": "Session is not valid. Please log in.",
				},
			})
			return
		}

		c.Set("identity", identity)
		c.Set("session_token", token)
		c.Next()
	}
}

// RequireAction checks the static authorization table for the session's role
func RequireAction(action Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := GetIdentity(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_SESSION",
					"message": "Could not retrieve session identity",
				},
			})
			return
		}

		if !RoleAllowed(identity.Role, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient permissions to access this resource",
				},
			})
			return
		}

		c.Next()
	}
}

// GetIdentity extracts the session identity from the Gin context
func GetIdentity(c *gin.Context) (services.Identity, error) {
	value, exists := c.Get("identity")
	if !exists {
		return services.Identity{}, &AuthError{Code: "MISSING_IDENTITY", Message: "Identity not found in context"}
	}

	identity, ok := value.(services.Identity)
	if !ok {
		return services.Identity{}, &AuthError{Code: "INVALID_IDENTITY", Message: "Identity is not in the expected format"}
	}

	return identity, nil
}

// GetSessionToken extracts the bearer token the session was resolved from
func GetSessionToken(c *gin.Context) (string, error) {
	value, exists := c.Get("session_token")
	if !exists {
		return "", &AuthError{Code: "MISSING_TOKEN", Message: "Session token not found in context"}
	}

	token, ok := value.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_TOKEN", Message: "Session token is not a string"}
	}

	return token, nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
