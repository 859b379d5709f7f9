package testutil

import (
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/autotradecenter/autotrade-api/services"
)

// LoginAs registers a session for the identity in the live session registry
// and returns the bearer token a real login would have produced.
func LoginAs(t *testing.T, identity services.Identity) string {
	t.Helper()

	sessions := services.GetSessionService()
	if sessions == nil {
		sessions = services.InitSessionService()
	}

	token, err := sessions.Create(identity)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return token
}

// SetMockSessionContext injects an identity into a Gin context directly,
// bypassing the session middleware, for handler-level tests.
func SetMockSessionContext(c *gin.Context, identity services.Identity) {
	c.Set("identity", identity)
	c.Set("session_token", "mock-token")
}

// CreateTestContext creates a test Gin context
func CreateTestContext() (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(nil)
	return c, engine
}
