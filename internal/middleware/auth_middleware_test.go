package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"syncboard/internal/auth"
	"syncboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const (
	jwtSecret = "test-secret-key"
	jwtIssuer = "syncboard"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("/protected")
	protected.Use(middleware.JWTAuthMiddleware(jwtSecret, jwtIssuer))
	protected.GET("/resource", func(c *gin.Context) {
		p := middleware.GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{
			"message": "Access granted",
			"user_id": p.UserID,
			"org_id":  p.OrganizationID,
		})
	})

	return r
}

func serve(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	router := setupRouter()
	token, _ := auth.GenerateToken(jwtSecret, jwtIssuer, auth.Principal{UserID: "user_42", OrganizationID: "org_7"}, time.Hour)

	resp := serve(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access granted")
	assert.Contains(t, resp.Body.String(), "user_42")
	assert.Contains(t, resp.Body.String(), "org_7")
}

func TestJWTAuthMiddleware_NoAuthHeader(t *testing.T) {
	resp := serve(setupRouter(), "")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header is required")
}

func TestJWTAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	resp := serve(setupRouter(), "InvalidFormat token123")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header format must be Bearer {token}")
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	resp := serve(setupRouter(), "Bearer invalid-token")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid or expired token")
}

func TestJWTAuthMiddleware_ForeignIssuer(t *testing.T) {
	token, _ := auth.GenerateToken(jwtSecret, "other-app", auth.Principal{UserID: "user_42"}, time.Hour)

	resp := serve(setupRouter(), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid or expired token")
}

func TestGetPrincipal_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Equal(t, auth.Principal{}, middleware.GetPrincipal(c))
}
