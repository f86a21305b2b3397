// internal/api/handlers/import_handler.go
package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/api/responses"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/core/contas"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/core/importer"
)

// ImportHandler recebe os uploads de extrato bancário e de planilha de
// provisionamento.
type ImportHandler struct {
	service *contas.Service
}

func NewImportHandler(service *contas.Service) *ImportHandler {
	return &ImportHandler{service: service}
}

func lerUpload(c *gin.Context, campo string) ([]byte, string, bool) {
	header, err := c.FormFile(campo)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo não encontrado ou inválido")
		return nil, "", false
	}
	file, err := header.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo")
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível ler o arquivo")
		return nil, "", false
	}
	return data, header.Filename, true
}

// erroImportacao traduz as falhas fatais do importador em respostas
// com o diagnóstico completo.
func erroImportacao(c *gin.Context, err error) {
	var det *importer.DeteccaoError
	if errors.As(err, &det) {
		responses.Error(c, http.StatusUnprocessableEntity,
			"Não foi possível detectar o formato do arquivo", det.Tentativas...)
		return
	}
	var mapErr *importer.MapeamentoError
	if errors.As(err, &mapErr) {
		detalhes := []string{"faltantes: " + strings.Join(mapErr.Faltantes, ", ")}
		detalhes = append(detalhes, "disponíveis: "+strings.Join(mapErr.Disponiveis, ", "))
		for campo, sugestao := range mapErr.Sugestoes {
			detalhes = append(detalhes, "sugestão para "+campo+": "+sugestao)
		}
		responses.Error(c, http.StatusUnprocessableEntity,
			"Não foi possível mapear as colunas do arquivo", detalhes...)
		return
	}
	responses.Error(c, http.StatusUnprocessableEntity, "Erro na importação", err.Error())
}

// ImportExtrato processa o CSV do extrato e insere as saídas.
func (h *ImportHandler) ImportExtrato(c *gin.Context) {
	data, _, ok := lerUpload(c, "arquivo")
	if !ok {
		return
	}

	rel, err := h.service.ImportarExtrato(c.Request.Context(), data)
	if err != nil {
		erroImportacao(c, err)
		return
	}
	responses.SuccessWithWarnings(c, rel, "Extrato importado com sucesso", rel.Avisos)
}

// ImportContas processa a planilha de provisionamento (.xlsx/.xls/.csv).
func (h *ImportHandler) ImportContas(c *gin.Context) {
	data, nome, ok := lerUpload(c, "arquivo")
	if !ok {
		return
	}

	rel, err := h.service.ImportarContas(c.Request.Context(), data, nome)
	if err != nil {
		erroImportacao(c, err)
		return
	}
	responses.SuccessWithWarnings(c, rel, "Planilha de contas importada com sucesso", rel.Avisos)
}

// ListExtrato lista os movimentos importados.
func (h *ImportHandler) ListExtrato(c *gin.Context) {
	movimentos, err := h.service.ListExtrato(c.Request.Context())
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao listar extrato", err.Error())
		return
	}
	responses.Success(c, movimentos, "")
}
