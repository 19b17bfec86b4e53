package handler

import (
	"net/http"

	"github.com/45061/Hotelregistryapp/internal/dto"
	"github.com/45061/Hotelregistryapp/internal/middleware"
	"github.com/45061/Hotelregistryapp/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc          service.AuthService
	cookieSecure bool
}

func NewAuthHandler(svc service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{svc: svc, cookieSecure: cookieSecure}
}

// Register godoc
// @Summary Registro de usuario (queda pendiente de autorizacion)
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Datos de registro"
// @Success 201 {object} dto.UsuarioResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, resp)
}

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setToken(c, resp.AccessToken, resp.ExpiresIn)
	respond(c, http.StatusOK, resp)
}

// Logout godoc
// @Summary Cierra la caja abierta del usuario (si hay) y expira la sesion
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LogoutResponse
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	usuarioID, ok := currentUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Logout(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setToken(c, "", -1)
	respond(c, http.StatusOK, resp)
}

// Me godoc
// @Summary Perfil del usuario actual
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UsuarioResponse
// @Router /v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	usuarioID, ok := currentUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Me(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// setToken writes the httpOnly session cookie. maxAge < 0 deletes it.
func (h *AuthHandler) setToken(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", h.cookieSecure, true)
}

// ── Usuarios Handler ─────────────────────────────────────────────────────────

type UsuariosHandler struct{ svc service.AuthService }

func NewUsuariosHandler(svc service.AuthService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc}
}

// Listar godoc
// @Summary Lista los usuarios
// @Tags usuarios
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UsuarioResponse
// @Router /v1/admin/usuarios [get]
func (h *UsuariosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarUsuarios(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// ActualizarPermisos godoc
// @Summary Autoriza un usuario o cambia sus permisos
// @Tags usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de usuario"
// @Param body body dto.ActualizarPermisosRequest true "Permisos"
// @Success 200 {object} dto.UsuarioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/admin/usuarios/{id} [put]
func (h *UsuariosHandler) ActualizarPermisos(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.ActualizarPermisosRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPermisos(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}
