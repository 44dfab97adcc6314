package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodgram/internal/middleware"
	jwtsvc "foodgram/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newAuthRouter(jwtService *jwtsvc.Service) *gin.Engine {
	r := gin.New()
	api := r.Group("/api")
	protected := api.Group("/")
	protected.Use(middleware.JWTAuth(jwtService))

	h := NewHandler(NewService(new(mockUserRepo), new(mockJWTService)))
	h.RegisterRoutes(api, protected)
	return r
}

func TestLogout_AnonymousRejected(t *testing.T) {
	r := newAuthRouter(jwtsvc.New("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/token/logout/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_WithToken(t *testing.T) {
	jwtService := jwtsvc.New("secret", time.Hour)
	token, _ := jwtService.GenerateToken(1, "user")
	r := newAuthRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/token/logout/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
