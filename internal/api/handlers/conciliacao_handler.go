// internal/api/handlers/conciliacao_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/api/responses"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/core/contas"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/domain"
)

// ConciliacaoHandler expõe a geração e a confirmação de sugestões de
// conciliação entre extrato e contas em aberto.
type ConciliacaoHandler struct {
	service *contas.Service
}

func NewConciliacaoHandler(service *contas.Service) *ConciliacaoHandler {
	return &ConciliacaoHandler{service: service}
}

type SugestoesRequest struct {
	Janela       int    `json:"janela"`
	Empresa      string `json:"empresa"`
	FornecedorID int64  `json:"fornecedor_id"`
}

func (h *ConciliacaoHandler) Sugestoes(c *gin.Context) {
	req := SugestoesRequest{Janela: -1}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida", err.Error())
		return
	}

	sugestao, err := h.service.SugerirConciliacao(c.Request.Context(), req.Janela, req.Empresa, req.FornecedorID)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao gerar sugestões de conciliação", err.Error())
		return
	}
	responses.Success(c, sugestao, "")
}

type ConfirmarRequest struct {
	Candidatos []domain.MatchCandidate `json:"candidatos" binding:"required"`
}

func (h *ConciliacaoHandler) Confirmar(c *gin.Context) {
	var req ConfirmarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida", err.Error())
		return
	}
	if len(req.Candidatos) == 0 {
		responses.Error(c, http.StatusBadRequest, "Nenhum candidato informado")
		return
	}

	resultado := h.service.ConfirmarConciliacao(c.Request.Context(), req.Candidatos)
	responses.Success(c, resultado, "Conciliação processada")
}
