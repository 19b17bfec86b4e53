package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/45061/Hotelregistryapp/internal/apierror"
	"github.com/45061/Hotelregistryapp/internal/dto"
	"github.com/45061/Hotelregistryapp/internal/service"
	"github.com/45061/Hotelregistryapp/internal/worker"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc      service.AdminService
	reportes service.ReporteService
}

func NewAdminHandler(svc service.AdminService, reportes service.ReporteService) *AdminHandler {
	return &AdminHandler{svc: svc, reportes: reportes}
}

// ResumenPagos godoc
// @Summary Pagos y retiros de un rango de fechas
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param desde query string true "AAAA-MM-DD"
// @Param hasta query string true "AAAA-MM-DD"
// @Success 200 {object} dto.ResumenPagosResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/admin/pagos [get]
func (h *AdminHandler) ResumenPagos(c *gin.Context) {
	var filter dto.RangoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ResumenPagos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// ResumenVentas godoc
// @Summary Ingresos por habitacion y viajeros por tipo de documento
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param desde query string true "AAAA-MM-DD"
// @Param hasta query string true "AAAA-MM-DD"
// @Param sede query string false "Sede"
// @Success 200 {object} dto.ResumenVentasResponse
// @Router /v1/admin/ventas [get]
func (h *AdminHandler) ResumenVentas(c *gin.Context) {
	var filter dto.RangoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ResumenVentas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// EnviarReporte godoc
// @Summary Genera y envia el reporte diario de caja
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ReporteDiario
// @Failure 500 {object} apierror.APIError
// @Router /v1/admin/enviar-reporte [get]
func (h *AdminHandler) EnviarReporte(c *gin.Context) {
	resp, err := h.reportes.Enviar(c.Request.Context(), time.Now())
	if err != nil {
		// already logged by the service
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo enviar el reporte"))
		return
	}
	respond(c, http.StatusOK, resp)
}

// ── Failed report jobs ───────────────────────────────────────────────────────

type deadLetterLister interface {
	Recent(ctx context.Context, queue string, n int64) ([]worker.DLQEntry, error)
}

type FallidosHandler struct {
	dlq deadLetterLister
}

func NewFallidosHandler(dlq deadLetterLister) *FallidosHandler {
	return &FallidosHandler{dlq: dlq}
}

// ReportesFallidos godoc
// @Summary Ultimos trabajos de reporte fallidos
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximo de entradas (1-200)"
// @Success 200 {array} worker.DLQEntry
// @Router /v1/admin/reportes-fallidos [get]
func (h *FallidosHandler) ReportesFallidos(c *gin.Context) {
	var filter dto.FallidosFilter
	if !bindQuery(c, &filter) {
		return
	}
	entries, err := h.dlq.Recent(c.Request.Context(), worker.QueueReporte, filter.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, entries)
}
