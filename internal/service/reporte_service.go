package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/45061/Hotelregistryapp/internal/dto"
	"github.com/45061/Hotelregistryapp/internal/metrics"
	"github.com/45061/Hotelregistryapp/internal/model"
	"github.com/45061/Hotelregistryapp/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReporteRenderer turns a report into a PDF document.
type ReporteRenderer func(r *dto.ReporteDiario) ([]byte, error)

// ReporteMailer delivers the rendered report.
type ReporteMailer interface {
	SendReporte(ctx context.Context, to, subject, htmlBody, filename string, pdf []byte) error
}

// ReporteConfig locates the daily window: it ends every day at CorteHora:CorteMinuto
// local time and spans the previous 24 hours.
type ReporteConfig struct {
	Destinatario string
	Location     *time.Location
	CorteHora    int
	CorteMinuto  int
}

type ReporteService interface {
	// Generar builds the report of the last finished window at now.
	Generar(ctx context.Context, now time.Time) (*dto.ReporteDiario, error)
	// Enviar builds, renders and mails the report of the last window finished
	// at now. Queued jobs pass the instant they were scheduled for.
	Enviar(ctx context.Context, now time.Time) (*dto.ReporteDiario, error)
}

type reporteService struct {
	libro   repository.LibroRepository
	render  ReporteRenderer
	mailer  ReporteMailer
	cfg     ReporteConfig
	metrics *metrics.Metrics
}

func NewReporteService(libro repository.LibroRepository, render ReporteRenderer, mailer ReporteMailer, cfg ReporteConfig, m *metrics.Metrics) ReporteService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &reporteService{
		libro:   libro,
		render:  render,
		mailer:  mailer,
		cfg:     cfg,
		metrics: m,
	}
}

// ParseCorte parses an "HH:MM" cutoff.
func ParseCorte(s string) (hora, minuto int, err error) {
	partes := strings.Split(strings.TrimSpace(s), ":")
	if len(partes) != 2 {
		return 0, 0, fmt.Errorf("corte %q: expected HH:MM", s)
	}
	hora, err = strconv.Atoi(partes[0])
	if err != nil || hora < 0 || hora > 23 {
		return 0, 0, fmt.Errorf("corte %q: invalid hour", s)
	}
	minuto, err = strconv.Atoi(partes[1])
	if err != nil || minuto < 0 || minuto > 59 {
		return 0, 0, fmt.Errorf("corte %q: invalid minute", s)
	}
	return hora, minuto, nil
}

// VentanaReporte returns the last finished report window at now. The window
// ends today at the cutoff in loc, or yesterday when now is still before it.
func VentanaReporte(now time.Time, loc *time.Location, hora, minuto int) (desde, hasta time.Time) {
	local := now.In(loc)
	hasta = time.Date(local.Year(), local.Month(), local.Day(), hora, minuto, 0, 0, loc)
	if local.Before(hasta) {
		hasta = hasta.AddDate(0, 0, -1)
	}
	return hasta.Add(-24 * time.Hour), hasta
}

func (s *reporteService) Generar(ctx context.Context, now time.Time) (*dto.ReporteDiario, error) {
	desde, hasta := VentanaReporte(now, s.cfg.Location, s.cfg.CorteHora, s.cfg.CorteMinuto)
	pagos, err := s.libro.ListPagosEntre(ctx, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("reporte: listar pagos: %w", err)
	}
	retiros, err := s.libro.ListRetirosEntre(ctx, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("reporte: listar retiros: %w", err)
	}
	r := ConstruirReporte(pagos, retiros, desde, hasta, s.cfg.Location)
	r.Destinatario = s.cfg.Destinatario
	return r, nil
}

func (s *reporteService) Enviar(ctx context.Context, now time.Time) (*dto.ReporteDiario, error) {
	r, err := s.enviar(ctx, now)
	if err != nil {
		s.metrics.RecordReporte("error")
		log.Error().Err(err).Msg("reporte diario: envío fallido")
		return nil, err
	}
	s.metrics.RecordReporte("ok")
	log.Info().Str("fecha", r.Fecha).Str("destinatario", r.Destinatario).
		Int("pagos", len(r.Pagos)).Int("retiros", len(r.Retiros)).Msg("reporte diario enviado")
	return r, nil
}

func (s *reporteService) enviar(ctx context.Context, now time.Time) (*dto.ReporteDiario, error) {
	if s.cfg.Destinatario == "" {
		return nil, fmt.Errorf("reporte: REPORT_RECIPIENT is not configured")
	}
	r, err := s.Generar(ctx, now)
	if err != nil {
		return nil, err
	}
	pdf, err := s.render(r)
	if err != nil {
		return nil, fmt.Errorf("reporte: render pdf: %w", err)
	}
	subject := "Reporte Diario de Caja - " + r.Fecha
	body := "<h1>Reporte de Caja</h1><p>Adjunto encontrarás el reporte de caja para el día " + r.Fecha + ".</p>"
	filename := "reporte-" + strings.NewReplacer(" ", "_", ":", "").Replace(r.Fecha) + ".pdf"
	if err := s.mailer.SendReporte(ctx, r.Destinatario, subject, body, filename, pdf); err != nil {
		return nil, fmt.Errorf("reporte: send mail: %w", err)
	}
	return r, nil
}

// ConstruirReporte aggregates the entries of one window. Users are ordered by name.
func ConstruirReporte(pagos []model.Pago, retiros []model.Retiro, desde, hasta time.Time, loc *time.Location) *dto.ReporteDiario {
	r := &dto.ReporteDiario{
		Fecha:            desde.In(loc).Format("2006-01-02 03:04 PM"),
		Desde:            formatTime(desde),
		Hasta:            formatTime(hasta),
		TotalRecibido:    decimal.Zero,
		TotalRetirado:    decimal.Zero,
		TotalesPorMetodo: TotalesPorMetodo(pagos, nil),
		PorUsuario:       []dto.ResumenUsuario{},
		Pagos:            make([]dto.PagoResponse, len(pagos)),
		Retiros:          make([]dto.RetiroResponse, len(retiros)),
	}

	porUsuario := make(map[uuid.UUID]*dto.ResumenUsuario)
	for i := range pagos {
		p := &pagos[i]
		r.TotalRecibido = r.TotalRecibido.Add(p.Monto)
		r.Pagos[i] = toPagoResponse(p)

		u, ok := porUsuario[p.UsuarioID]
		if !ok {
			nombre := p.Usuario.NombreCompleto()
			if nombre == "" {
				nombre = "N/A"
			}
			u = &dto.ResumenUsuario{
				UsuarioID:        p.UsuarioID.String(),
				Usuario:          nombre,
				Total:            decimal.Zero,
				TotalesPorMetodo: make(map[string]decimal.Decimal),
			}
			porUsuario[p.UsuarioID] = u
		}
		u.Total = u.Total.Add(p.Monto)
		u.TotalesPorMetodo[p.TipoPago] = u.TotalesPorMetodo[p.TipoPago].Add(p.Monto)
	}
	for i := range retiros {
		r.TotalRetirado = r.TotalRetirado.Add(retiros[i].Monto)
		r.Retiros[i] = toRetiroResponse(&retiros[i])
	}

	for _, u := range porUsuario {
		r.PorUsuario = append(r.PorUsuario, *u)
	}
	sort.Slice(r.PorUsuario, func(i, j int) bool {
		if r.PorUsuario[i].Usuario != r.PorUsuario[j].Usuario {
			return r.PorUsuario[i].Usuario < r.PorUsuario[j].Usuario
		}
		return r.PorUsuario[i].UsuarioID < r.PorUsuario[j].UsuarioID
	})
	return r
}
