// internal/api/handlers/contas_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/api/responses"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/core/contas"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/domain"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/storage"
)

// ContasHandler expõe o ciclo de vida das contas a pagar: CRUD,
// aprovações, pagamentos e os cadastros de apoio.
type ContasHandler struct {
	service *contas.Service
}

func NewContasHandler(service *contas.Service) *ContasHandler {
	return &ContasHandler{service: service}
}

const layoutData = "2006-01-02"

func parseDataParam(s string) (time.Time, bool) {
	t, err := time.Parse(layoutData, strings.TrimSpace(s))
	return t, err == nil
}

func (h *ContasHandler) List(c *gin.Context) {
	q := contas.ContaQuery{
		ContaFilter: storage.ContaFilter{
			Empresa: c.Query("empresa"),
		},
		Descricao:       c.Query("descricao"),
		NumeroDocumento: c.Query("numero_documento"),
	}
	if status := c.Query("status"); status != "" {
		q.Status = strings.Split(status, ",")
	}
	if v := c.Query("fornecedor_id"); v != "" {
		q.FornecedorID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := c.Query("categoria_id"); v != "" {
		q.CategoriaID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := c.Query("valor_min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.ValorMin = &f
		}
	}
	if v := c.Query("valor_max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.ValorMax = &f
		}
	}

	lista, err := h.service.ListContas(c.Request.Context(), q)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao listar contas", err.Error())
		return
	}
	responses.Success(c, lista, "")
}

type CreateContaRequest struct {
	Fornecedor      string  `json:"fornecedor" binding:"required"`
	Cnpj            string  `json:"cnpj"`
	Categoria       string  `json:"categoria"`
	Descricao       string  `json:"descricao"`
	NumeroDocumento string  `json:"numero_documento"`
	Competencia     string  `json:"competencia"`
	Vencimento      string  `json:"vencimento" binding:"required"`
	ValorPrevisto   float64 `json:"valor_previsto" binding:"required"`
	Empresa         string  `json:"empresa"`
}

func (h *ContasHandler) Create(c *gin.Context) {
	var req CreateContaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida", err.Error())
		return
	}

	venc, ok := parseDataParam(req.Vencimento)
	if !ok {
		responses.Error(c, http.StatusBadRequest, "Vencimento inválido; use o formato AAAA-MM-DD")
		return
	}
	in := contas.CreateContaInput{
		Fornecedor:      req.Fornecedor,
		Cnpj:            req.Cnpj,
		Categoria:       req.Categoria,
		Descricao:       req.Descricao,
		NumeroDocumento: req.NumeroDocumento,
		Vencimento:      venc,
		ValorPrevisto:   req.ValorPrevisto,
		Empresa:         req.Empresa,
	}
	if req.Competencia != "" {
		comp, ok := parseDataParam(req.Competencia)
		if !ok {
			responses.Error(c, http.StatusBadRequest, "Competência inválida; use o formato AAAA-MM-DD")
			return
		}
		in.Competencia = comp
	}

	conta, err := h.service.CreateConta(c.Request.Context(), in)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Erro ao criar conta", err.Error())
		return
	}
	responses.Success(c, conta, "Conta criada com sucesso")
}

func (h *ContasHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Id inválido")
		return
	}

	var campos map[string]any
	if err := c.ShouldBindJSON(&campos); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida", err.Error())
		return
	}

	// datas chegam como string no JSON
	for _, chave := range []string{"vencimento", "competencia"} {
		if v, ok := campos[chave].(string); ok {
			t, ok := parseDataParam(v)
			if !ok {
				responses.Error(c, http.StatusBadRequest, "Data inválida em "+chave+"; use o formato AAAA-MM-DD")
				return
			}
			campos[chave] = t
		}
	}
	// ids numéricos chegam como float64 no JSON
	for _, chave := range []string{"fornecedor_id", "categoria_id"} {
		if v, ok := campos[chave].(float64); ok {
			campos[chave] = int64(v)
		}
	}

	conta, err := h.service.UpdateConta(c.Request.Context(), id, campos)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao atualizar conta", err.Error())
		return
	}
	responses.Success(c, conta, "Conta atualizada com sucesso")
}

func (h *ContasHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Id inválido")
		return
	}

	passos := h.service.DeleteConta(c.Request.Context(), id)
	for _, p := range passos {
		if !p.Ok {
			responses.Error(c, http.StatusInternalServerError, "Exclusão em cascata incompleta",
				p.Tabela+": "+p.Erro)
			return
		}
	}
	responses.Success(c, gin.H{"passos": passos}, "Conta excluída com sucesso")
}

func (h *ContasHandler) DeleteAll(c *gin.Context) {
	confirmado := c.Query("confirmar") == "true"
	excluidas, err := h.service.DeleteTodasContas(c.Request.Context(), confirmado)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Erro ao excluir contas", err.Error())
		return
	}
	responses.Success(c, gin.H{"excluidas": excluidas}, "Todas as contas foram excluídas")
}

type AprovarRequest struct {
	ContaID    int64  `json:"conta_id" binding:"required"`
	Observacao string `json:"observacao"`
}

func (h *ContasHandler) Aprovar(c *gin.Context) {
	var req AprovarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida", err.Error())
		return
	}

	apr, err := h.service.Aprovar(c.Request.Context(), req.ContaID, c.GetString("username"), req.Observacao)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Erro ao aprovar conta", err.Error())
		return
	}
	responses.Success(c, apr, "Conta aprovada com sucesso")
}

func (h *ContasHandler) ReverterAprovacao(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Id inválido")
		return
	}
	if err := h.service.ReverterAprovacao(c.Request.Context(), id); err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao reverter aprovação", err.Error())
		return
	}
	responses.Success(c, nil, "Aprovação revertida; conta voltou a provisionado")
}

func (h *ContasHandler) RelatorioAprovacoes(c *gin.Context) {
	linhas, avisos, err := h.service.RelatorioAprovacoes(c.Request.Context())
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao montar relatório de aprovações", err.Error())
		return
	}
	responses.SuccessWithWarnings(c, linhas, "", avisos)
}

type PagamentoRequest struct {
	ContaID        int64   `json:"conta_id" binding:"required"`
	DataPagamento  string  `json:"data_pagamento"`
	ValorPago      float64 `json:"valor_pago" binding:"required"`
	FormaPagamento string  `json:"forma_pagamento"`
}

func (h *ContasHandler) RegistrarPagamento(c *gin.Context) {
	var req PagamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida", err.Error())
		return
	}

	pag := &domain.Pagamento{
		ContaID:        req.ContaID,
		ValorPago:      req.ValorPago,
		FormaPagamento: req.FormaPagamento,
	}
	if req.DataPagamento != "" {
		dt, ok := parseDataParam(req.DataPagamento)
		if !ok {
			responses.Error(c, http.StatusBadRequest, "Data de pagamento inválida; use o formato AAAA-MM-DD")
			return
		}
		pag.DataPagamento = dt
	}

	pag, err := h.service.RegistrarPagamento(c.Request.Context(), pag)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Erro ao registrar pagamento", err.Error())
		return
	}
	responses.Success(c, pag, "Pagamento registrado com sucesso")
}

func (h *ContasHandler) ListPagamentos(c *gin.Context) {
	pagamentos, err := h.service.ListPagamentos(c.Request.Context())
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao listar pagamentos", err.Error())
		return
	}
	responses.Success(c, pagamentos, "")
}

func (h *ContasHandler) ListFornecedores(c *gin.Context) {
	fornecedores, err := h.service.ListFornecedores(c.Request.Context())
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao listar fornecedores", err.Error())
		return
	}
	responses.Success(c, fornecedores, "")
}

func (h *ContasHandler) ListCategorias(c *gin.Context) {
	categorias, err := h.service.ListCategorias(c.Request.Context())
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao listar categorias", err.Error())
		return
	}
	responses.Success(c, categorias, "")
}
