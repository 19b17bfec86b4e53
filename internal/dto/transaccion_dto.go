package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarTransaccionRequest struct {
	ReferenciaPMS string           `json:"referencia_pms" validate:"omitempty,max=100"`
	FechaHora     string           `json:"fecha_hora"     validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"` // empty means now
	Tipo          string           `json:"tipo"           validate:"required,oneof=Ingreso Salida"`
	Concepto      string           `json:"concepto"       validate:"required"`
	Monto         *decimal.Decimal `json:"monto"          validate:"required,min=0"`
	MedioPago     string           `json:"medio_pago"     validate:"required,max=50"`
	Habitacion    string           `json:"habitacion"     validate:"omitempty,max=20"`
	// UsuarioCaja records the entry for another cashier; defaults to the caller.
	UsuarioCaja string `json:"usuario_caja" validate:"omitempty,uuid"`
}

type TransaccionFilter struct {
	Tipo        string `form:"tipo"         validate:"omitempty,oneof=Ingreso Salida"`
	MedioPago   string `form:"medio_pago"`
	Habitacion  string `form:"habitacion"`
	FechaInicio string `form:"fecha_inicio" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	FechaFin    string `form:"fecha_fin"    validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MedioPagoResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

type TransaccionResponse struct {
	ID            string          `json:"id"`
	FechaHora     string          `json:"fecha_hora"`
	Tipo          string          `json:"tipo"`
	Concepto      string          `json:"concepto"`
	Monto         decimal.Decimal `json:"monto"`
	MedioPago     string          `json:"medio_pago"`
	Habitacion    string          `json:"habitacion"`
	UsuarioID     string          `json:"usuario_id"`
	ReferenciaPMS string          `json:"referencia_pms"`
	CreatedAt     string          `json:"created_at"`
}
