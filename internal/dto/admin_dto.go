package dto

import "github.com/shopspring/decimal"

// RangoFilter is bound from the query string of the admin summaries.
// Both dates are inclusive calendar days (YYYY-MM-DD) in the report timezone.
type RangoFilter struct {
	Desde string `form:"desde" validate:"required,datetime=2006-01-02"`
	Hasta string `form:"hasta" validate:"required,datetime=2006-01-02"`
	Sede  string `form:"sede"`
}

// ResumenPagosResponse is returned by GET /v1/admin/pagos.
type ResumenPagosResponse struct {
	Desde            string                     `json:"desde"`
	Hasta            string                     `json:"hasta"`
	TotalRecibido    decimal.Decimal            `json:"total_recibido"`
	TotalRetirado    decimal.Decimal            `json:"total_retirado"`
	TotalesPorMetodo map[string]decimal.Decimal `json:"totales_por_metodo"`
	Pagos            []PagoResponse             `json:"pagos"`
	Retiros          []RetiroResponse           `json:"retiros"`
}

type IngresoHabitacion struct {
	Habitacion string          `json:"habitacion"`
	Total      decimal.Decimal `json:"total"`
	Viajeros   int             `json:"viajeros"`
}

// ResumenVentasResponse is returned by GET /v1/admin/ventas.
type ResumenVentasResponse struct {
	Desde                    string              `json:"desde"`
	Hasta                    string              `json:"hasta"`
	Sede                     string              `json:"sede"`
	TotalIngresos            decimal.Decimal     `json:"total_ingresos"`
	IngresosPorHabitacion    []IngresoHabitacion `json:"ingresos_por_habitacion"`
	ViajerosPorDocumento     map[string]int      `json:"viajeros_por_documento"`
	AcompanantesPorDocumento map[string]int      `json:"acompanantes_por_documento"`
	TotalViajeros            int                 `json:"total_viajeros"`
	TotalAcompanantes        int                 `json:"total_acompanantes"`
}

// ResumenUsuario is the per-user block of the daily report.
type ResumenUsuario struct {
	UsuarioID        string                     `json:"usuario_id"`
	Usuario          string                     `json:"usuario"`
	Total            decimal.Decimal            `json:"total"`
	TotalesPorMetodo map[string]decimal.Decimal `json:"totales_por_metodo"`
}

// ReporteDiario is the data of one daily report window. It feeds the PDF and
// is returned by GET /v1/admin/enviar-reporte.
type ReporteDiario struct {
	Fecha            string                     `json:"fecha"` // window start, local time, used in titles
	Desde            string                     `json:"desde"`
	Hasta            string                     `json:"hasta"`
	TotalRecibido    decimal.Decimal            `json:"total_recibido"`
	TotalRetirado    decimal.Decimal            `json:"total_retirado"`
	TotalesPorMetodo map[string]decimal.Decimal `json:"totales_por_metodo"`
	PorUsuario       []ResumenUsuario           `json:"por_usuario"`
	Pagos            []PagoResponse             `json:"pagos"`
	Retiros          []RetiroResponse           `json:"retiros"`
	Destinatario     string                     `json:"destinatario"`
}

// FallidosFilter pages the failed report jobs.
type FallidosFilter struct {
	Limit int64 `form:"limit,default=20" validate:"min=1,max=200"`
}
