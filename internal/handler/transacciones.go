package handler

import (
	"net/http"

	"github.com/45061/Hotelregistryapp/internal/dto"
	"github.com/45061/Hotelregistryapp/internal/service"

	"github.com/gin-gonic/gin"
)

type TransaccionesHandler struct{ svc service.TransaccionService }

func NewTransaccionesHandler(svc service.TransaccionService) *TransaccionesHandler {
	return &TransaccionesHandler{svc: svc}
}

// Medios godoc
// @Summary Lista los medios de pago usados en transacciones
// @Tags transacciones
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.MedioPagoResponse
// @Router /v1/cajas/medios [get]
func (h *TransaccionesHandler) Medios(c *gin.Context) {
	resp, err := h.svc.ListarMedios(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// Listar godoc
// @Summary Transacciones del usuario autenticado
// @Tags transacciones
// @Produce json
// @Security BearerAuth
// @Param tipo query string false "Ingreso o Salida"
// @Param medio_pago query string false "Nombre del medio de pago"
// @Param habitacion query string false "Habitacion"
// @Param fecha_inicio query string false "Desde (RFC 3339, inclusivo)"
// @Param fecha_fin query string false "Hasta (RFC 3339, inclusivo)"
// @Success 200 {array} dto.TransaccionResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/cajas/transacciones [get]
func (h *TransaccionesHandler) Listar(c *gin.Context) {
	usuarioID, ok := currentUserID(c)
	if !ok {
		return
	}
	var filter dto.TransaccionFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), usuarioID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// Registrar godoc
// @Summary Registra una transaccion de caja
// @Tags transacciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarTransaccionRequest true "Transaccion"
// @Success 201 {object} dto.TransaccionResponse
// @Failure 403 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/cajas/transacciones [post]
func (h *TransaccionesHandler) Registrar(c *gin.Context) {
	usuarioID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.RegistrarTransaccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}
