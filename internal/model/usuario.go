package model

import (
	"time"

	"github.com/google/uuid"
)

// RolCaja: "Cajero" | "Supervisor" | "Administrador"
const (
	RolCajero        = "Cajero"
	RolSupervisor    = "Supervisor"
	RolAdministrador = "Administrador"
)

// Usuario stores front-desk staff. New registrations start with
// Autorizado=false until a super-user grants access.
type Usuario struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email          string    `gorm:"uniqueIndex;not null"`
	Nombre         string    `gorm:"not null"`
	Apellido       string    `gorm:"not null"`
	Telefono       string    `gorm:"not null"`
	PasswordHash   string    `gorm:"not null"`
	EsAdmin        bool      `gorm:"not null;default:false"`
	EsSuperUsuario bool      `gorm:"not null;default:false"`
	Autorizado     bool      `gorm:"not null;default:false"`
	RolCaja        *string   `gorm:"type:varchar(20)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NombreCompleto returns "Nombre Apellido".
func (u *Usuario) NombreCompleto() string {
	if u == nil {
		return ""
	}
	if u.Apellido == "" {
		return u.Nombre
	}
	return u.Nombre + " " + u.Apellido
}
