package handler

import (
	"net/http"

	"github.com/45061/Hotelregistryapp/internal/dto"
	"github.com/45061/Hotelregistryapp/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Crear godoc
// @Summary Crea una caja (inactiva) a nombre del usuario actual
// @Tags cajas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCajaRequest true "Datos de la caja"
// @Success 201 {object} dto.CajaResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/cajas [post]
func (h *CajaHandler) Crear(c *gin.Context) {
	usuarioID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CrearCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista todas las cajas
// @Tags cajas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CajaResponse
// @Router /v1/cajas [get]
func (h *CajaHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// Detalle godoc
// @Summary Caja con los movimientos del ciclo actual y el saldo existente
// @Tags cajas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de caja"
// @Success 200 {object} dto.CajaDetalleResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/cajas/{id} [get]
func (h *CajaHandler) Detalle(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Detalle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// Activa godoc
// @Summary Caja abierta por el usuario actual
// @Tags cajas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CajaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/cajas/activa [get]
func (h *CajaHandler) Activa(c *gin.Context) {
	usuarioID, ok := currentUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetActiva(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Actualiza nombre y descripcion
// @Tags cajas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de caja"
// @Param body body dto.ActualizarCajaRequest true "Datos"
// @Success 200 {object} dto.CajaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/cajas/{id} [put]
func (h *CajaHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.ActualizarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarDatos(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Elimina una caja inactiva y sin movimientos
// @Tags cajas
// @Security BearerAuth
// @Param id path string true "ID de caja"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/cajas/{id} [delete]
func (h *CajaHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Abrir godoc
// @Summary Abre la caja con un saldo inicial
// @Tags cajas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de caja"
// @Param body body dto.AbrirCajaRequest true "Saldo inicial"
// @Success 200 {object} dto.CajaResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/cajas/{id}/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	usuarioID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), id, usuarioID, *req.SaldoInicial)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// Cerrar godoc
// @Summary Cierra la caja y congela el saldo existente
// @Tags cajas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de caja"
// @Success 200 {object} dto.CajaDetalleResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/cajas/{id}/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	usuarioID, ok := currentUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), id, usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// RegistrarPago godoc
// @Summary Registra un pago recibido en una caja abierta
// @Tags cajas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de caja"
// @Param body body dto.RegistrarPagoRequest true "Pago"
// @Success 201 {object} dto.PagoResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/cajas/{id}/pagos [post]
func (h *CajaHandler) RegistrarPago(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	usuarioID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPago(c.Request.Context(), id, usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

// RegistrarRetiro godoc
// @Summary Registra un retiro de efectivo en una caja abierta
// @Tags cajas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de caja"
// @Param body body dto.RegistrarRetiroRequest true "Retiro"
// @Success 201 {object} dto.RetiroResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/cajas/{id}/retiros [post]
func (h *CajaHandler) RegistrarRetiro(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	usuarioID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.RegistrarRetiroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarRetiro(c.Request.Context(), id, usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}
