package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterRequest struct {
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	Nombre          string `json:"nombre"           validate:"required,min=2,max=100"`
	Apellido        string `json:"apellido"         validate:"required,min=2,max=100"`
	Telefono        string `json:"telefono"         validate:"required,min=7,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// ActualizarPermisosRequest is used by super-users to grant access.
// Nil fields are left unchanged.
type ActualizarPermisosRequest struct {
	Autorizado *bool   `json:"autorizado"`
	EsAdmin    *bool   `json:"es_admin"`
	RolCaja    *string `json:"rol_caja" validate:"omitempty,oneof=Cajero Supervisor Administrador"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	Nombre         string  `json:"nombre"`
	Apellido       string  `json:"apellido"`
	Telefono       string  `json:"telefono"`
	EsAdmin        bool    `json:"es_admin"`
	EsSuperUsuario bool    `json:"es_super_usuario"`
	Autorizado     bool    `json:"autorizado"`
	RolCaja        *string `json:"rol_caja"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"` // seconds
	User        UsuarioResponse `json:"user"`
}

// LogoutResponse reports the box closed on behalf of the user, if any.
type LogoutResponse struct {
	CajaCerrada *CajaDetalleResponse `json:"caja_cerrada"`
}
