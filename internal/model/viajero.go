package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Viajero is a guest check-in record. A guest staying again gets a new record;
// lookups by document return the most recent one.
type Viajero struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Habitacion       string          `gorm:"type:varchar(20);not null;index"`
	Fecha            time.Time       `gorm:"not null;index"`
	Nombre           string          `gorm:"not null"`
	Nacionalidad     string          `gorm:"not null"`
	Sede             string          `gorm:"not null;index"`
	Procedencia      string          `gorm:"not null"`
	NochesReservadas int             `gorm:"not null"`
	CanalReserva     string          `gorm:"not null"`
	HoraLlegada      string          `gorm:"not null"`
	Destino          string          `gorm:"not null"`
	TipoDocumento    string          `gorm:"type:varchar(20);not null"`
	NumeroDocumento  string          `gorm:"not null;index"`
	LugarExpedicion  string          `gorm:"not null"`
	Desayuno         bool            `gorm:"not null"`
	MontoPagado      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	MetodoPago       string          `gorm:"not null"`
	UsuarioID        uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Acompanantes []Acompanante `gorm:"foreignKey:ViajeroID"`
}

// Acompanante is a companion registered under a main traveler.
type Acompanante struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ViajeroID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre          string    `gorm:"not null"`
	TipoDocumento   string    `gorm:"type:varchar(20);not null"`
	NumeroDocumento string    `gorm:"not null"`
	LugarExpedicion string    `gorm:"not null"`
}
