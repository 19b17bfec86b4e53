package handler

import (
	"net/http"

	"github.com/45061/Hotelregistryapp/internal/dto"
	"github.com/45061/Hotelregistryapp/internal/service"

	"github.com/gin-gonic/gin"
)

type ViajerosHandler struct{ svc service.ViajeroService }

func NewViajerosHandler(svc service.ViajeroService) *ViajerosHandler {
	return &ViajerosHandler{svc: svc}
}

// Listar godoc
// @Summary Lista viajeros paginados
// @Tags viajeros
// @Produce json
// @Security BearerAuth
// @Param sede query string false "Sede"
// @Param page query int false "Pagina"
// @Param limit query int false "Tamano de pagina"
// @Success 200 {object} dto.ViajeroListResponse
// @Router /v1/viajeros [get]
func (h *ViajerosHandler) Listar(c *gin.Context) {
	var filter dto.ViajeroFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// Crear godoc
// @Summary Registra un viajero con sus acompanantes
// @Tags viajeros
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearViajeroRequest true "Viajero"
// @Success 201 {object} dto.ViajeroResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/viajeros [post]
func (h *ViajerosHandler) Crear(c *gin.Context) {
	usuarioID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CrearViajeroRequest
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

// Obtener godoc
// @Summary Obtiene un viajero
// @Tags viajeros
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de viajero"
// @Success 200 {object} dto.ViajeroResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/viajeros/{id} [get]
func (h *ViajerosHandler) Obtener(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// Buscar godoc
// @Summary Ultimo registro de un numero de documento
// @Tags viajeros
// @Produce json
// @Security BearerAuth
// @Param documento query string true "Numero de documento"
// @Success 200 {object} dto.ViajeroResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/viajeros/buscar [get]
func (h *ViajerosHandler) Buscar(c *gin.Context) {
	resp, err := h.svc.BuscarPorDocumento(c.Request.Context(), c.Query("documento"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// AgregarAcompanante godoc
// @Summary Agrega un acompanante a un viajero
// @Tags viajeros
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de viajero"
// @Param body body dto.AcompananteRequest true "Acompanante"
// @Success 201 {object} dto.ViajeroResponse
// @Router /v1/viajeros/{id}/acompanantes [post]
func (h *ViajerosHandler) AgregarAcompanante(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.AcompananteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarAcompanante(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary Actualiza un viajero (la fecha y la hora de llegada no cambian)
// @Tags viajeros
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de viajero"
// @Param body body dto.ActualizarViajeroRequest true "Campos a cambiar"
// @Success 200 {object} dto.ViajeroResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/viajeros/{id} [put]
func (h *ViajerosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.ActualizarViajeroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Elimina un viajero y sus acompanantes
// @Tags viajeros
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de viajero"
// @Success 200 {object} Envelope
// @Failure 404 {object} apierror.APIError
// @Router /v1/viajeros/{id} [delete]
func (h *ViajerosHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{})
}
