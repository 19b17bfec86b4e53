package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estado: "disponible" | "ocupada" | "limpieza" | "mantenimiento"
const (
	EstadoDisponible    = "disponible"
	EstadoOcupada       = "ocupada"
	EstadoLimpieza      = "limpieza"
	EstadoMantenimiento = "mantenimiento"
)

// Habitacion is a room of one of the hotel's headquarters (Hotel).
type Habitacion struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero      string           `gorm:"uniqueIndex;not null"`
	Hotel       string           `gorm:"not null;index"`
	Tipo        string           `gorm:"not null"`
	Estado      string           `gorm:"type:varchar(20);not null;default:'disponible'"`
	Precio      *decimal.Decimal `gorm:"type:decimal(14,2)"`
	Toallas     int              `gorm:"not null;default:0"`
	Suministros []string         `gorm:"serializer:json"`
	ViajeroID   *uuid.UUID       `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
