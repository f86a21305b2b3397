package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/api/responses"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/core/auth"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/storage"
)

func novoRouter(t *testing.T) (*gin.Engine, *auth.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	responses.InitLogger()

	svc := auth.NewService(storage.NewMemory(), []byte("segredo-de-teste"), zap.NewNop())
	require.NoError(t, svc.AddUser(context.Background(), "maria", "senha123", false))

	h := NewAuthHandler(svc)
	router := gin.New()
	router.POST("/api/v1/login", h.Login)
	router.GET("/api/v1/protegido", h.RequireAuth(), func(c *gin.Context) {
		responses.Success(c, gin.H{"username": c.GetString("username")}, "")
	})
	router.GET("/api/v1/admin", h.RequireAuth(), h.RequireAdmin(), func(c *gin.Context) {
		responses.Success(c, nil, "")
	})
	return router, svc
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := novoRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login",
		strings.NewReader(`{"username":"maria","password":"senha123"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token"`)
}

func TestLoginEndpointSenhaErrada(t *testing.T) {
	router, _ := novoRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login",
		strings.NewReader(`{"username":"maria","password":"errada"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthBloqueiaSemToken(t *testing.T) {
	router, _ := novoRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/protegido", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthAceitaTokenValido(t *testing.T) {
	router, svc := novoRouter(t)

	token, _, err := svc.Login(context.Background(), "maria", "senha123")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"maria"`)
}

func TestRequireAdminBloqueiaUsuarioComum(t *testing.T) {
	router, svc := novoRouter(t)

	token, _, err := svc.Login(context.Background(), "maria", "senha123")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
