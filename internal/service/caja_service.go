package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/45061/Hotelregistryapp/internal/apierror"
	"github.com/45061/Hotelregistryapp/internal/dto"
	"github.com/45061/Hotelregistryapp/internal/metrics"
	"github.com/45061/Hotelregistryapp/internal/model"
	"github.com/45061/Hotelregistryapp/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CajaService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearCajaRequest) (*dto.CajaResponse, error)
	Listar(ctx context.Context) ([]dto.CajaResponse, error)
	Detalle(ctx context.Context, cajaID uuid.UUID) (*dto.CajaDetalleResponse, error)
	ActualizarDatos(ctx context.Context, cajaID uuid.UUID, req dto.ActualizarCajaRequest) (*dto.CajaResponse, error)
	Eliminar(ctx context.Context, cajaID uuid.UUID) error
	// GetActiva returns the box currently opened by usuarioID.
	GetActiva(ctx context.Context, usuarioID uuid.UUID) (*dto.CajaResponse, error)

	Abrir(ctx context.Context, cajaID, usuarioID uuid.UUID, saldoInicial decimal.Decimal) (*dto.CajaResponse, error)
	Cerrar(ctx context.Context, cajaID, usuarioID uuid.UUID) (*dto.CajaDetalleResponse, error)

	RegistrarPago(ctx context.Context, cajaID, usuarioID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error)
	RegistrarRetiro(ctx context.Context, cajaID, usuarioID uuid.UUID, req dto.RegistrarRetiroRequest) (*dto.RetiroResponse, error)
}

type cajaService struct {
	repo           repository.CajaRepository
	usuarios       repository.UsuarioRepository
	metodoEfectivo string
	metrics        *metrics.Metrics
	now            func() time.Time
}

// NewCajaService builds the box service. metodoEfectivo is the payment method
// counted as cash on hand; empty means MetodoEfectivo. m may be nil.
func NewCajaService(repo repository.CajaRepository, usuarios repository.UsuarioRepository, metodoEfectivo string, m *metrics.Metrics) CajaService {
	if metodoEfectivo == "" {
		metodoEfectivo = MetodoEfectivo
	}
	return &cajaService{
		repo:           repo,
		usuarios:       usuarios,
		metodoEfectivo: metodoEfectivo,
		metrics:        m,
		now:            time.Now,
	}
}

// ── Administración ────────────────────────────────────────────────────────────

func (s *cajaService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearCajaRequest) (*dto.CajaResponse, error) {
	if _, err := s.requireUsuario(ctx, usuarioID); err != nil {
		return nil, err
	}
	caja := &model.Caja{
		Nombre:      strings.TrimSpace(req.Nombre),
		Descripcion: req.Descripcion,
		UsuarioID:   usuarioID,
	}
	if caja.Nombre == "" {
		return nil, apierror.Validation("El nombre de la caja es obligatorio")
	}
	if err := s.repo.Create(ctx, caja); err != nil {
		return nil, err
	}
	return s.reload(ctx, caja.ID)
}

func (s *cajaService) Listar(ctx context.Context) ([]dto.CajaResponse, error) {
	cajas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CajaResponse, len(cajas))
	for i := range cajas {
		resp[i] = toCajaResponse(&cajas[i])
	}
	return resp, nil
}

func (s *cajaService) Detalle(ctx context.Context, cajaID uuid.UUID) (*dto.CajaDetalleResponse, error) {
	caja, err := s.repo.FindByID(ctx, cajaID)
	if err != nil {
		return nil, notFound(err, "Caja no encontrada")
	}
	pagos, err := s.repo.ListPagos(ctx, cajaID, caja.UltimaApertura)
	if err != nil {
		return nil, err
	}
	retiros, err := s.repo.ListRetiros(ctx, cajaID, caja.UltimaApertura)
	if err != nil {
		return nil, err
	}
	detalle := toDetalleResponse(caja, ResumirCiclo(caja, pagos, retiros, s.metodoEfectivo))
	return &detalle, nil
}

func (s *cajaService) ActualizarDatos(ctx context.Context, cajaID uuid.UUID, req dto.ActualizarCajaRequest) (*dto.CajaResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, apierror.Validation("El nombre de la caja es obligatorio")
	}
	if err := s.repo.UpdateDatos(ctx, cajaID, nombre, req.Descripcion); err != nil {
		return nil, notFound(err, "Caja no encontrada")
	}
	return s.reload(ctx, cajaID)
}

// Eliminar removes a box only while it is inactive and has no ledger entries.
func (s *cajaService) Eliminar(ctx context.Context, cajaID uuid.UUID) error {
	caja, err := s.repo.FindByID(ctx, cajaID)
	if err != nil {
		return notFound(err, "Caja no encontrada")
	}
	if caja.Activa {
		return apierror.Conflict("No se puede eliminar una caja abierta")
	}
	n, err := s.repo.CountMovimientos(ctx, cajaID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.Conflict("No se puede eliminar una caja con movimientos registrados")
	}
	if err := s.repo.Delete(ctx, cajaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// opened between the check and the delete
			return apierror.Conflict("No se puede eliminar una caja abierta").Wrap(err)
		}
		return err
	}
	return nil
}

func (s *cajaService) GetActiva(ctx context.Context, usuarioID uuid.UUID) (*dto.CajaResponse, error) {
	caja, err := s.repo.FindActivaPorUsuario(ctx, usuarioID)
	if err != nil {
		return nil, notFound(err, "No hay caja abierta para el usuario")
	}
	resp := toCajaResponse(caja)
	return &resp, nil
}

// ── Abrir ─────────────────────────────────────────────────────────────────────
// Closed -> Open. The state check and the mutation are one conditional UPDATE,
// so two concurrent opens cannot both succeed.

func (s *cajaService) Abrir(ctx context.Context, cajaID, usuarioID uuid.UUID, saldoInicial decimal.Decimal) (*dto.CajaResponse, error) {
	if saldoInicial.IsNegative() {
		return nil, apierror.Validation("El saldo inicial no puede ser negativo")
	}
	if _, err := s.requireUsuario(ctx, usuarioID); err != nil {
		return nil, err
	}

	ok, err := s.repo.MarcarAbierta(ctx, cajaID, saldoInicial, usuarioID, s.clock())
	if err != nil {
		return nil, err
	}
	if !ok {
		caja, err := s.repo.FindByID(ctx, cajaID)
		if err != nil {
			return nil, notFound(err, "Caja no encontrada")
		}
		if caja.Activa {
			return nil, apierror.Conflict("La caja ya está abierta")
		}
		return nil, apierror.Conflict("La caja cambió de estado, intente de nuevo")
	}

	s.metrics.RecordCajaAbierta()
	log.Info().Str("caja_id", cajaID.String()).Str("usuario_id", usuarioID.String()).
		Str("saldo_inicial", saldoInicial.StringFixed(2)).Msg("caja abierta")
	return s.reload(ctx, cajaID)
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// Open -> Closed. The row stays locked while the closing balance is computed,
// so no entry can slip in between the computation and the update.

func (s *cajaService) Cerrar(ctx context.Context, cajaID, usuarioID uuid.UUID) (*dto.CajaDetalleResponse, error) {
	var detalle dto.CajaDetalleResponse
	err := s.repo.Transaction(ctx, func(tx repository.CajaRepository) error {
		caja, err := tx.FindByIDForUpdate(ctx, cajaID)
		if err != nil {
			return notFound(err, "Caja no encontrada")
		}
		if !caja.Activa {
			return apierror.State("La caja no está abierta")
		}

		pagos, err := tx.ListPagos(ctx, cajaID, caja.UltimaApertura)
		if err != nil {
			return err
		}
		retiros, err := tx.ListRetiros(ctx, cajaID, caja.UltimaApertura)
		if err != nil {
			return err
		}
		resumen := ResumirCiclo(caja, pagos, retiros, s.metodoEfectivo)

		ok, err := tx.MarcarCerrada(ctx, cajaID, resumen.SaldoExistente, usuarioID, s.clock())
		if err != nil {
			return err
		}
		if !ok {
			return apierror.State("La caja no está abierta")
		}

		cerrada, err := tx.FindByID(ctx, cajaID)
		if err != nil {
			return err
		}
		detalle = toDetalleResponse(cerrada, resumen)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordCajaCerrada()
	log.Info().Str("caja_id", cajaID.String()).Str("usuario_id", usuarioID.String()).
		Str("saldo_cierre", detalle.SaldoExistente.StringFixed(2)).Msg("caja cerrada")
	return &detalle, nil
}

// ── Registro de movimientos ───────────────────────────────────────────────────
// Entries are immutable. The box is locked and must be active for the insert.

func (s *cajaService) RegistrarPago(ctx context.Context, cajaID, usuarioID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error) {
	if req.Monto == nil {
		return nil, apierror.Validation("El monto es requerido")
	}
	if req.Monto.IsNegative() {
		return nil, apierror.Validation("El monto no puede ser negativo")
	}
	if err := requireTexto(
		"tipo_pago", req.TipoPago,
		"motivo_pago", req.MotivoPago,
		"concepto", req.Concepto,
	); err != nil {
		return nil, err
	}
	usuario, err := s.requireUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	pago := &model.Pago{
		CajaID:          cajaID,
		UsuarioID:       usuarioID,
		Monto:           *req.Monto,
		TipoPago:        strings.TrimSpace(req.TipoPago),
		MotivoPago:      strings.TrimSpace(req.MotivoPago),
		Concepto:        strings.TrimSpace(req.Concepto),
		Habitacion:      strings.TrimSpace(req.Habitacion),
		HoraTransaccion: req.HoraTransaccion,
	}
	err = s.repo.Transaction(ctx, func(tx repository.CajaRepository) error {
		if err := requireActiva(ctx, tx, cajaID); err != nil {
			return err
		}
		pago.RegistradoEn = s.clock()
		return tx.CreatePago(ctx, pago)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordMovimiento("pago", pago.TipoPago)
	pago.Usuario = usuario
	resp := toPagoResponse(pago)
	return &resp, nil
}

func (s *cajaService) RegistrarRetiro(ctx context.Context, cajaID, usuarioID uuid.UUID, req dto.RegistrarRetiroRequest) (*dto.RetiroResponse, error) {
	if req.Monto == nil {
		return nil, apierror.Validation("El monto es requerido")
	}
	if req.Monto.IsNegative() {
		return nil, apierror.Validation("El monto no puede ser negativo")
	}
	if err := requireTexto(
		"motivo_retiro", req.MotivoRetiro,
		"concepto", req.Concepto,
	); err != nil {
		return nil, err
	}
	usuario, err := s.requireUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	tipo := strings.TrimSpace(req.TipoRetiro)
	if tipo == "" {
		tipo = s.metodoEfectivo
	}
	retiro := &model.Retiro{
		CajaID:          cajaID,
		UsuarioID:       usuarioID,
		Monto:           *req.Monto,
		TipoRetiro:      tipo,
		MotivoRetiro:    strings.TrimSpace(req.MotivoRetiro),
		Concepto:        strings.TrimSpace(req.Concepto),
		HoraTransaccion: req.HoraTransaccion,
	}
	err = s.repo.Transaction(ctx, func(tx repository.CajaRepository) error {
		if err := requireActiva(ctx, tx, cajaID); err != nil {
			return err
		}
		retiro.RegistradoEn = s.clock()
		return tx.CreateRetiro(ctx, retiro)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordMovimiento("retiro", retiro.TipoRetiro)
	retiro.Usuario = usuario
	resp := toRetiroResponse(retiro)
	return &resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// clock returns the server time at the precision Postgres stores.
func (s *cajaService) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *cajaService) reload(ctx context.Context, cajaID uuid.UUID) (*dto.CajaResponse, error) {
	caja, err := s.repo.FindByID(ctx, cajaID)
	if err != nil {
		return nil, notFound(err, "Caja no encontrada")
	}
	resp := toCajaResponse(caja)
	return &resp, nil
}

func (s *cajaService) requireUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Usuario, error) {
	u, err := s.usuarios.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, notFound(err, "Usuario no encontrado")
	}
	return u, nil
}

func requireActiva(ctx context.Context, tx repository.CajaRepository, cajaID uuid.UUID) error {
	caja, err := tx.FindByIDForUpdate(ctx, cajaID)
	if err != nil {
		return notFound(err, "Caja no encontrada")
	}
	if !caja.Activa {
		return apierror.State("La caja no está abierta")
	}
	return nil
}

// requireTexto takes (name, value) pairs and fails on the first blank value.
func requireTexto(pares ...string) error {
	for i := 0; i+1 < len(pares); i += 2 {
		if strings.TrimSpace(pares[i+1]) == "" {
			return apierror.Validation("El campo " + pares[i] + " es obligatorio")
		}
	}
	return nil
}

// notFound maps gorm.ErrRecordNotFound to a NotFound error with msg.
func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound(msg).Wrap(err)
	}
	return err
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func nombrePtr(u *model.Usuario) *string {
	if u == nil {
		return nil
	}
	n := u.NombreCompleto()
	return &n
}

func toCajaResponse(c *model.Caja) dto.CajaResponse {
	return dto.CajaResponse{
		ID:                c.ID.String(),
		Nombre:            c.Nombre,
		Descripcion:       c.Descripcion,
		Activa:            c.Activa,
		SaldoInicial:      c.SaldoInicial,
		UltimaApertura:    formatTimePtr(c.UltimaApertura),
		UltimoCierre:      formatTimePtr(c.UltimoCierre),
		SaldoUltimoCierre: c.SaldoUltimoCierre,
		VecesAbierta:      c.VecesAbierta,
		UsuarioID:         c.UsuarioID.String(),
		Usuario:           c.Usuario.NombreCompleto(),
		UsuarioApertura:   nombrePtr(c.UsuarioApertura),
		UsuarioCierre:     nombrePtr(c.UsuarioCierre),
	}
}

func toPagoResponse(p *model.Pago) dto.PagoResponse {
	return dto.PagoResponse{
		ID:              p.ID.String(),
		CajaID:          p.CajaID.String(),
		UsuarioID:       p.UsuarioID.String(),
		Usuario:         p.Usuario.NombreCompleto(),
		Monto:           p.Monto,
		TipoPago:        p.TipoPago,
		MotivoPago:      p.MotivoPago,
		Concepto:        p.Concepto,
		Habitacion:      p.Habitacion,
		HoraTransaccion: p.HoraTransaccion,
		RegistradoEn:    formatTime(p.RegistradoEn),
	}
}

func toRetiroResponse(r *model.Retiro) dto.RetiroResponse {
	return dto.RetiroResponse{
		ID:              r.ID.String(),
		CajaID:          r.CajaID.String(),
		UsuarioID:       r.UsuarioID.String(),
		Usuario:         r.Usuario.NombreCompleto(),
		Monto:           r.Monto,
		TipoRetiro:      r.TipoRetiro,
		MotivoRetiro:    r.MotivoRetiro,
		Concepto:        r.Concepto,
		HoraTransaccion: r.HoraTransaccion,
		RegistradoEn:    formatTime(r.RegistradoEn),
	}
}

func toDetalleResponse(c *model.Caja, r ResumenCiclo) dto.CajaDetalleResponse {
	detalle := dto.CajaDetalleResponse{
		Caja:             toCajaResponse(c),
		SaldoExistente:   r.SaldoExistente,
		EfectivoRecibido: r.EfectivoRecibido,
		OtrosRecibido:    r.OtrosRecibido,
		Retirado:         r.Retirado,
		TotalesPorMetodo: r.TotalesPorMetodo,
		Pagos:            make([]dto.PagoResponse, len(r.PagosDelCiclo)),
		Retiros:          make([]dto.RetiroResponse, len(r.RetirosDelCiclo)),
	}
	for i := range r.PagosDelCiclo {
		detalle.Pagos[i] = toPagoResponse(&r.PagosDelCiclo[i])
	}
	for i := range r.RetirosDelCiclo {
		detalle.Retiros[i] = toRetiroResponse(&r.RetirosDelCiclo[i])
	}
	return detalle
}
