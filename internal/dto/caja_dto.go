package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCajaRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,min=1,max=100"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=500"`
}

// ActualizarCajaRequest only touches display fields; lifecycle fields are
// never writable through update.
type ActualizarCajaRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,min=1,max=100"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=500"`
}

type AbrirCajaRequest struct {
	SaldoInicial *decimal.Decimal `json:"saldo_inicial" validate:"required,min=0"`
}

type RegistrarPagoRequest struct {
	Monto      *decimal.Decimal `json:"monto"       validate:"required,min=0"`
	TipoPago   string           `json:"tipo_pago"   validate:"required,max=50"`
	MotivoPago string           `json:"motivo_pago" validate:"required"`
	Concepto   string           `json:"concepto"    validate:"required"`
	Habitacion string           `json:"habitacion"  validate:"omitempty,max=20"`
	// HoraTransaccion is the client clock, stored as sent.
	HoraTransaccion string `json:"hora_transaccion"`
}

type RegistrarRetiroRequest struct {
	Monto           *decimal.Decimal `json:"monto"         validate:"required,min=0"`
	TipoRetiro      string           `json:"tipo_retiro"   validate:"omitempty,max=50"` // defaults to the cash method
	MotivoRetiro    string           `json:"motivo_retiro" validate:"required"`
	Concepto        string           `json:"concepto"      validate:"required"`
	HoraTransaccion string           `json:"hora_transaccion"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CajaResponse struct {
	ID                string           `json:"id"`
	Nombre            string           `json:"nombre"`
	Descripcion       *string          `json:"descripcion"`
	Activa            bool             `json:"activa"`
	SaldoInicial      *decimal.Decimal `json:"saldo_inicial"`
	UltimaApertura    *string          `json:"ultima_apertura"`
	UltimoCierre      *string          `json:"ultimo_cierre"`
	SaldoUltimoCierre *decimal.Decimal `json:"saldo_ultimo_cierre"`
	VecesAbierta      int              `json:"veces_abierta"`
	UsuarioID         string           `json:"usuario_id"`
	Usuario           string           `json:"usuario"`
	UsuarioApertura   *string          `json:"usuario_apertura"`
	UsuarioCierre     *string          `json:"usuario_cierre"`
}

type PagoResponse struct {
	ID              string          `json:"id"`
	CajaID          string          `json:"caja_id"`
	UsuarioID       string          `json:"usuario_id"`
	Usuario         string          `json:"usuario"`
	Monto           decimal.Decimal `json:"monto"`
	TipoPago        string          `json:"tipo_pago"`
	MotivoPago      string          `json:"motivo_pago"`
	Concepto        string          `json:"concepto"`
	Habitacion      string          `json:"habitacion"`
	HoraTransaccion string          `json:"hora_transaccion"`
	RegistradoEn    string          `json:"registrado_en"`
}

type RetiroResponse struct {
	ID              string          `json:"id"`
	CajaID          string          `json:"caja_id"`
	UsuarioID       string          `json:"usuario_id"`
	Usuario         string          `json:"usuario"`
	Monto           decimal.Decimal `json:"monto"`
	TipoRetiro      string          `json:"tipo_retiro"`
	MotivoRetiro    string          `json:"motivo_retiro"`
	Concepto        string          `json:"concepto"`
	HoraTransaccion string          `json:"hora_transaccion"`
	RegistradoEn    string          `json:"registrado_en"`
}

// CajaDetalleResponse is the box with its current cycle. It is also the
// result of a close, where SaldoExistente equals the frozen closing balance.
type CajaDetalleResponse struct {
	Caja             CajaResponse               `json:"caja"`
	SaldoExistente   decimal.Decimal            `json:"saldo_existente"`
	EfectivoRecibido decimal.Decimal            `json:"efectivo_recibido"`
	OtrosRecibido    decimal.Decimal            `json:"otros_recibido"`
	Retirado         decimal.Decimal            `json:"retirado"`
	TotalesPorMetodo map[string]decimal.Decimal `json:"totales_por_metodo"`
	Pagos            []PagoResponse             `json:"pagos"`
	Retiros          []RetiroResponse           `json:"retiros"`
}
