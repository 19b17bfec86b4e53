package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TransaccionIngreso = "Ingreso"
	TransaccionSalida  = "Salida"
)

// MedioPago is a payment method name, created the first time a transaction
// uses it.
type MedioPago struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TransaccionCaja is a cash movement logged per user, independent of the box
// cycles. ReferenciaPMS links it to the property-management system.
type TransaccionCaja struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FechaHora     time.Time       `gorm:"not null;index"`
	Tipo          string          `gorm:"type:varchar(10);not null;index"`
	Concepto      string          `gorm:"not null"`
	Monto         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	MedioPagoID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Habitacion    string          `gorm:"type:varchar(20);index"`
	UsuarioID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReferenciaPMS string          `gorm:"type:varchar(100)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	MedioPago *MedioPago `gorm:"foreignKey:MedioPagoID"`
}
