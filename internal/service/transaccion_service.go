package service

import (
	"context"
	"strings"
	"time"

	"github.com/45061/Hotelregistryapp/internal/apierror"
	"github.com/45061/Hotelregistryapp/internal/dto"
	"github.com/45061/Hotelregistryapp/internal/metrics"
	"github.com/45061/Hotelregistryapp/internal/model"
	"github.com/45061/Hotelregistryapp/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TransaccionService keeps the per-user cash transaction log. It is separate
// from the box cycles and never changes a box balance.
type TransaccionService interface {
	ListarMedios(ctx context.Context) ([]dto.MedioPagoResponse, error)
	// Registrar logs an entry for req.UsuarioCaja, or for usuarioID when it is empty.
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarTransaccionRequest) (*dto.TransaccionResponse, error)
	// Listar returns the caller's own entries, newest first.
	Listar(ctx context.Context, usuarioID uuid.UUID, filter dto.TransaccionFilter) ([]dto.TransaccionResponse, error)
}

type transaccionService struct {
	repo     repository.TransaccionRepository
	usuarios repository.UsuarioRepository
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewTransaccionService(repo repository.TransaccionRepository, usuarios repository.UsuarioRepository, m *metrics.Metrics) TransaccionService {
	return &transaccionService{repo: repo, usuarios: usuarios, metrics: m, now: time.Now}
}

func (s *transaccionService) ListarMedios(ctx context.Context) ([]dto.MedioPagoResponse, error) {
	medios, err := s.repo.ListMedios(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MedioPagoResponse, len(medios))
	for i, m := range medios {
		out[i] = dto.MedioPagoResponse{ID: m.ID.String(), Nombre: m.Nombre}
	}
	return out, nil
}

func (s *transaccionService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarTransaccionRequest) (*dto.TransaccionResponse, error) {
	if req.Monto == nil {
		return nil, apierror.Validation("El monto es requerido")
	}
	if req.Monto.IsNegative() {
		return nil, apierror.Validation("El monto no puede ser negativo")
	}
	if req.Tipo != model.TransaccionIngreso && req.Tipo != model.TransaccionSalida {
		return nil, apierror.Validation("El tipo debe ser Ingreso o Salida")
	}
	if err := requireTexto("concepto", req.Concepto, "medio_pago", req.MedioPago); err != nil {
		return nil, err
	}
	fecha := s.now().UTC()
	if req.FechaHora != "" {
		t, err := time.Parse(time.RFC3339, req.FechaHora)
		if err != nil {
			return nil, apierror.Validation("fecha_hora inválida, use RFC 3339")
		}
		fecha = t.UTC()
	}

	if req.UsuarioCaja != "" {
		id, err := uuid.Parse(req.UsuarioCaja)
		if err != nil {
			return nil, apierror.Validation("usuario_caja inválido")
		}
		usuarioID = id
	}
	usuario, err := s.usuarios.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, notFound(err, "Usuario no encontrado")
	}
	if !usuario.Autorizado && !usuario.EsSuperUsuario {
		return nil, apierror.Forbidden("Usuario no autorizado")
	}

	medio, err := s.repo.MedioPorNombre(ctx, strings.TrimSpace(req.MedioPago))
	if err != nil {
		return nil, err
	}
	t := &model.TransaccionCaja{
		FechaHora:     fecha,
		Tipo:          req.Tipo,
		Concepto:      strings.TrimSpace(req.Concepto),
		Monto:         *req.Monto,
		MedioPagoID:   medio.ID,
		Habitacion:    strings.TrimSpace(req.Habitacion),
		UsuarioID:     usuarioID,
		ReferenciaPMS: strings.TrimSpace(req.ReferenciaPMS),
		MedioPago:     medio,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.metrics.RecordMovimiento("transaccion", medio.Nombre)
	log.Debug().Str("usuario_id", usuarioID.String()).Str("tipo", t.Tipo).
		Str("monto", t.Monto.StringFixed(2)).Msg("transaccion registrada")
	resp := toTransaccionResponse(t)
	return &resp, nil
}

func (s *transaccionService) Listar(ctx context.Context, usuarioID uuid.UUID, filter dto.TransaccionFilter) ([]dto.TransaccionResponse, error) {
	f := repository.TransaccionFilter{
		UsuarioID:  usuarioID,
		Tipo:       filter.Tipo,
		MedioPago:  strings.TrimSpace(filter.MedioPago),
		Habitacion: strings.TrimSpace(filter.Habitacion),
	}
	var err error
	if f.Desde, err = parseLimite("fecha_inicio", filter.FechaInicio); err != nil {
		return nil, err
	}
	if f.Hasta, err = parseLimite("fecha_fin", filter.FechaFin); err != nil {
		return nil, err
	}
	rows, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransaccionResponse, len(rows))
	for i := range rows {
		out[i] = toTransaccionResponse(&rows[i])
	}
	return out, nil
}

// parseLimite parses an optional RFC 3339 bound of the list filter.
func parseLimite(campo, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, apierror.Validation(campo + " inválida, use RFC 3339")
	}
	return &t, nil
}

func toTransaccionResponse(t *model.TransaccionCaja) dto.TransaccionResponse {
	resp := dto.TransaccionResponse{
		ID:            t.ID.String(),
		FechaHora:     formatTime(t.FechaHora),
		Tipo:          t.Tipo,
		Concepto:      t.Concepto,
		Monto:         t.Monto,
		Habitacion:    t.Habitacion,
		UsuarioID:     t.UsuarioID.String(),
		ReferenciaPMS: t.ReferenciaPMS,
		CreatedAt:     formatTime(t.CreatedAt),
	}
	if t.MedioPago != nil {
		resp.MedioPago = t.MedioPago.Nombre
	}
	return resp
}
