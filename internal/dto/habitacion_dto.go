package dto

import "github.com/shopspring/decimal"

type HabitacionRequest struct {
	Numero      string           `json:"numero"      validate:"required,max=20"`
	Hotel       string           `json:"hotel"       validate:"required,max=100"`
	Tipo        string           `json:"tipo"        validate:"required,max=50"`
	Estado      string           `json:"estado"      validate:"omitempty,oneof=disponible ocupada limpieza mantenimiento"`
	Precio      *decimal.Decimal `json:"precio"      validate:"omitempty,min=0"`
	Toallas     int              `json:"toallas"     validate:"min=0"`
	Suministros []string         `json:"suministros"`
}

type CambiarEstadoHabitacionRequest struct {
	Estado    string  `json:"estado"     validate:"required,oneof=disponible ocupada limpieza mantenimiento"`
	ViajeroID *string `json:"viajero_id" validate:"omitempty,uuid"`
}

type HabitacionResponse struct {
	ID          string           `json:"id"`
	Numero      string           `json:"numero"`
	Hotel       string           `json:"hotel"`
	Tipo        string           `json:"tipo"`
	Estado      string           `json:"estado"`
	Precio      *decimal.Decimal `json:"precio"`
	Toallas     int              `json:"toallas"`
	Suministros []string         `json:"suministros"`
	ViajeroID   *string          `json:"viajero_id"`
}
