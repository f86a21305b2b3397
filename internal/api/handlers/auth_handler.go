// internal/api/handlers/auth_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/api/responses"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/core/auth"
)

type AuthHandler struct {
	service *auth.Service
}

func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida")
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, auth.ErrCredenciais) {
			code = http.StatusUnauthorized
		}
		responses.Error(c, code, err.Error())
		return
	}

	responses.Success(c, gin.H{"token": token, "username": user.Username, "admin": user.Admin}, "Login realizado com sucesso")
}

type AddUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Admin    bool   `json:"admin"`
}

func (h *AuthHandler) AddUser(c *gin.Context) {
	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida")
		return
	}
	if err := h.service.AddUser(c.Request.Context(), req.Username, req.Password, req.Admin); err != nil {
		responses.Error(c, http.StatusBadRequest, "Erro ao criar usuário", err.Error())
		return
	}
	responses.Success(c, gin.H{"username": req.Username}, "Usuário criado com sucesso")
}

func (h *AuthHandler) RemoveUser(c *gin.Context) {
	username := c.Param("username")
	if err := h.service.RemoveUser(c.Request.Context(), username); err != nil {
		responses.Error(c, http.StatusBadRequest, "Erro ao remover usuário", err.Error())
		return
	}
	responses.Success(c, nil, "Usuário removido com sucesso")
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	usuarios, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao listar usuários", err.Error())
		return
	}
	responses.Success(c, usuarios, "")
}

// RequireAuth valida o token Bearer e injeta a identidade no contexto.
func (h *AuthHandler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			responses.Error(c, http.StatusUnauthorized, "Token de acesso ausente")
			c.Abort()
			return
		}
		claims, err := h.service.ValidarToken(token)
		if err != nil {
			responses.Error(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}
		c.Set("username", claims.Username)
		c.Set("admin", claims.Admin)
		c.Next()
	}
}

// RequireAdmin exige a flag de admin; roda após RequireAuth.
func (h *AuthHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("admin") {
			responses.Error(c, http.StatusForbidden, "Acesso restrito a administradores")
			c.Abort()
			return
		}
		c.Next()
	}
}
