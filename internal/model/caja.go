package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caja is a named cash register tracked through open/close cycles.
// A cycle starts at UltimaApertura; ledger entries recorded after it belong
// to the current cycle.
type Caja struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null"`
	Descripcion *string
	Activa      bool `gorm:"not null;default:false;index"`
	// SaldoInicial is nil until the first opening.
	SaldoInicial      *decimal.Decimal `gorm:"type:decimal(14,2)"`
	UltimaApertura    *time.Time
	UltimoCierre      *time.Time
	SaldoUltimoCierre *decimal.Decimal `gorm:"type:decimal(14,2)"`
	VecesAbierta      int              `gorm:"not null;default:0"`
	UsuarioID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	UsuarioAperturaID *uuid.UUID       `gorm:"type:uuid;index"`
	UsuarioCierreID   *uuid.UUID       `gorm:"type:uuid"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Usuario         *Usuario `gorm:"foreignKey:UsuarioID"`
	UsuarioApertura *Usuario `gorm:"foreignKey:UsuarioAperturaID"`
	UsuarioCierre   *Usuario `gorm:"foreignKey:UsuarioCierreID"`
	Pagos           []Pago   `gorm:"foreignKey:CajaID"`
	Retiros         []Retiro `gorm:"foreignKey:CajaID"`
}

// Pago is an immutable cash-received ledger entry.
// TipoPago is free text ("Efectivo", "Datafono", "Transferencia", ...).
type Pago struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CajaID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	UsuarioID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Monto      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TipoPago   string          `gorm:"type:varchar(50);not null"`
	MotivoPago string          `gorm:"not null"`
	Concepto   string          `gorm:"not null"`
	Habitacion string          `gorm:"type:varchar(20)"`
	// HoraTransaccion is the client-supplied timestamp, stored verbatim.
	HoraTransaccion string
	// RegistradoEn is the server clock at insert; cycle membership uses it.
	RegistradoEn time.Time `gorm:"not null;index"`
	CreatedAt    time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

// Retiro is an immutable cash-withdrawn ledger entry.
type Retiro struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CajaID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	UsuarioID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Monto           decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TipoRetiro      string          `gorm:"type:varchar(50);not null;default:'Efectivo'"`
	MotivoRetiro    string          `gorm:"not null"`
	Concepto        string          `gorm:"not null"`
	HoraTransaccion string
	RegistradoEn    time.Time `gorm:"not null;index"`
	CreatedAt       time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}
