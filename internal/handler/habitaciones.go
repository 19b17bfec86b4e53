package handler

import (
	"net/http"

	"github.com/45061/Hotelregistryapp/internal/dto"
	"github.com/45061/Hotelregistryapp/internal/service"

	"github.com/gin-gonic/gin"
)

type HabitacionesHandler struct{ svc service.HabitacionService }

func NewHabitacionesHandler(svc service.HabitacionService) *HabitacionesHandler {
	return &HabitacionesHandler{svc: svc}
}

// Listar godoc
// @Summary Lista las habitaciones, opcionalmente de una sede
// @Tags habitaciones
// @Produce json
// @Security BearerAuth
// @Param hotel query string false "Sede"
// @Success 200 {array} dto.HabitacionResponse
// @Router /v1/habitaciones [get]
func (h *HabitacionesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("hotel"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// Crear godoc
// @Summary Crea una habitacion
// @Tags habitaciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.HabitacionRequest true "Habitacion"
// @Success 201 {object} dto.HabitacionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/habitaciones [post]
func (h *HabitacionesHandler) Crear(c *gin.Context) {
	var req dto.HabitacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary Actualiza una habitacion
// @Tags habitaciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de habitacion"
// @Param body body dto.HabitacionRequest true "Habitacion"
// @Success 200 {object} dto.HabitacionResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/habitaciones/{id} [put]
func (h *HabitacionesHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.HabitacionRequest
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

// CambiarEstado godoc
// @Summary Cambia el estado de la habitacion
// @Tags habitaciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de habitacion"
// @Param body body dto.CambiarEstadoHabitacionRequest true "Estado"
// @Success 200 {object} dto.HabitacionResponse
// @Router /v1/habitaciones/{id}/estado [patch]
func (h *HabitacionesHandler) CambiarEstado(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.CambiarEstadoHabitacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}
