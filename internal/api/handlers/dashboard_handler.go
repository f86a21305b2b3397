// internal/api/handlers/dashboard_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/api/responses"
	"github.com/quintilhano-maker/contas-a-pagar-sistema/internal/core/contas"
)

type DashboardHandler struct {
	service *contas.Service
}

func NewDashboardHandler(service *contas.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Get monta o agregado do dashboard. Seções que falharam na consulta
// chegam vazias, com o motivo em warnings.
func (h *DashboardHandler) Get(c *gin.Context) {
	d := h.service.MontarDashboard(c.Request.Context())
	responses.SuccessWithWarnings(c, d, "", d.Avisos)
}
