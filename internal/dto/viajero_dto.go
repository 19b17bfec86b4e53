package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

type ViajeroFilter struct {
	Sede  string `form:"sede"`
	Page  int    `form:"page,default=1"    validate:"min=1"`
	Limit int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type ViajeroListResponse struct {
	Data  []ViajeroResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AcompananteRequest struct {
	Nombre          string `json:"nombre"           validate:"required,max=150"`
	TipoDocumento   string `json:"tipo_documento"   validate:"required,max=20"`
	NumeroDocumento string `json:"numero_documento" validate:"required,max=30"`
	LugarExpedicion string `json:"lugar_expedicion" validate:"required,max=100"`
}

type CrearViajeroRequest struct {
	Habitacion       string               `json:"habitacion"        validate:"required,max=20"`
	Fecha            string               `json:"fecha"             validate:"required,datetime=2006-01-02"`
	Nombre           string               `json:"nombre"            validate:"required,max=150"`
	Nacionalidad     string               `json:"nacionalidad"      validate:"required"`
	Sede             string               `json:"sede"              validate:"required"`
	Procedencia      string               `json:"procedencia"       validate:"required"`
	NochesReservadas int                  `json:"noches_reservadas" validate:"min=1"`
	CanalReserva     string               `json:"canal_reserva"     validate:"required"`
	HoraLlegada      string               `json:"hora_llegada"      validate:"required"`
	Destino          string               `json:"destino"           validate:"required"`
	TipoDocumento    string               `json:"tipo_documento"    validate:"required,max=20"`
	NumeroDocumento  string               `json:"numero_documento"  validate:"required,max=30"`
	LugarExpedicion  string               `json:"lugar_expedicion"  validate:"required"`
	Desayuno         bool                 `json:"desayuno"`
	MontoPagado      decimal.Decimal      `json:"monto_pagado"      validate:"min=0"`
	MetodoPago       string               `json:"metodo_pago"       validate:"required"`
	Acompanantes     []AcompananteRequest `json:"acompanantes"      validate:"omitempty,dive"`
}

// ActualizarViajeroRequest is a partial update: nil fields keep their value.
// The stay date and arrival time are fixed at check-in and cannot be changed;
// companions are managed through their own endpoint.
type ActualizarViajeroRequest struct {
	Habitacion       *string          `json:"habitacion"        validate:"omitempty,min=1,max=20"`
	Nombre           *string          `json:"nombre"            validate:"omitempty,min=1,max=150"`
	Nacionalidad     *string          `json:"nacionalidad"      validate:"omitempty,min=1"`
	Sede             *string          `json:"sede"              validate:"omitempty,min=1"`
	Procedencia      *string          `json:"procedencia"       validate:"omitempty,min=1"`
	NochesReservadas *int             `json:"noches_reservadas" validate:"omitempty,min=1"`
	CanalReserva     *string          `json:"canal_reserva"     validate:"omitempty,min=1"`
	Destino          *string          `json:"destino"           validate:"omitempty,min=1"`
	TipoDocumento    *string          `json:"tipo_documento"    validate:"omitempty,min=1,max=20"`
	NumeroDocumento  *string          `json:"numero_documento"  validate:"omitempty,min=1,max=30"`
	LugarExpedicion  *string          `json:"lugar_expedicion"  validate:"omitempty,min=1"`
	Desayuno         *bool            `json:"desayuno"`
	MontoPagado      *decimal.Decimal `json:"monto_pagado"      validate:"omitempty,min=0"`
	MetodoPago       *string          `json:"metodo_pago"       validate:"omitempty,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AcompananteResponse struct {
	ID              string `json:"id"`
	Nombre          string `json:"nombre"`
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	LugarExpedicion string `json:"lugar_expedicion"`
}

type ViajeroResponse struct {
	ID               string                `json:"id"`
	Habitacion       string                `json:"habitacion"`
	Fecha            string                `json:"fecha"`
	Nombre           string                `json:"nombre"`
	Nacionalidad     string                `json:"nacionalidad"`
	Sede             string                `json:"sede"`
	Procedencia      string                `json:"procedencia"`
	NochesReservadas int                   `json:"noches_reservadas"`
	CanalReserva     string                `json:"canal_reserva"`
	HoraLlegada      string                `json:"hora_llegada"`
	Destino          string                `json:"destino"`
	TipoDocumento    string                `json:"tipo_documento"`
	NumeroDocumento  string                `json:"numero_documento"`
	LugarExpedicion  string                `json:"lugar_expedicion"`
	Desayuno         bool                  `json:"desayuno"`
	MontoPagado      decimal.Decimal       `json:"monto_pagado"`
	MetodoPago       string                `json:"metodo_pago"`
	UsuarioID        string                `json:"usuario_id"`
	Acompanantes     []AcompananteResponse `json:"acompanantes"`
	CreatedAt        string                `json:"created_at"`
}
