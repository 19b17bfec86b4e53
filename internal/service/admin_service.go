package service

import (
	"context"
	"time"

	"github.com/45061/Hotelregistryapp/internal/apierror"
	"github.com/45061/Hotelregistryapp/internal/dto"
	"github.com/45061/Hotelregistryapp/internal/repository"

	"github.com/shopspring/decimal"
)

type AdminService interface {
	ResumenPagos(ctx context.Context, filter dto.RangoFilter) (*dto.ResumenPagosResponse, error)
	ResumenVentas(ctx context.Context, filter dto.RangoFilter) (*dto.ResumenVentasResponse, error)
}

type adminService struct {
	libro        repository.LibroRepository
	viajeros     repository.ViajeroRepository
	habitaciones repository.HabitacionRepository
	loc          *time.Location
}

// NewAdminService builds the summaries service. Date ranges are interpreted
// as calendar days in loc.
func NewAdminService(libro repository.LibroRepository, viajeros repository.ViajeroRepository, habitaciones repository.HabitacionRepository, loc *time.Location) AdminService {
	if loc == nil {
		loc = time.UTC
	}
	return &adminService{libro: libro, viajeros: viajeros, habitaciones: habitaciones, loc: loc}
}

// ── Pagos ─────────────────────────────────────────────────────────────────────

func (s *adminService) ResumenPagos(ctx context.Context, filter dto.RangoFilter) (*dto.ResumenPagosResponse, error) {
	desde, hasta, err := parseRango(filter, s.loc)
	if err != nil {
		return nil, err
	}
	pagos, err := s.libro.ListPagosEntre(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	retiros, err := s.libro.ListRetirosEntre(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	resp := &dto.ResumenPagosResponse{
		Desde:            filter.Desde,
		Hasta:            filter.Hasta,
		TotalRecibido:    decimal.Zero,
		TotalRetirado:    decimal.Zero,
		TotalesPorMetodo: TotalesPorMetodo(pagos, nil),
		Pagos:            make([]dto.PagoResponse, len(pagos)),
		Retiros:          make([]dto.RetiroResponse, len(retiros)),
	}
	for i := range pagos {
		resp.TotalRecibido = resp.TotalRecibido.Add(pagos[i].Monto)
		resp.Pagos[i] = toPagoResponse(&pagos[i])
	}
	for i := range retiros {
		resp.TotalRetirado = resp.TotalRetirado.Add(retiros[i].Monto)
		resp.Retiros[i] = toRetiroResponse(&retiros[i])
	}
	return resp, nil
}

// ── Ventas ────────────────────────────────────────────────────────────────────
// Traveler income. Every room of the sede is listed, with zero when it had no
// income in the range.

func (s *adminService) ResumenVentas(ctx context.Context, filter dto.RangoFilter) (*dto.ResumenVentasResponse, error) {
	// Viajero.Fecha is a calendar date stored at UTC midnight.
	desde, hasta, err := parseFechas(filter, time.UTC)
	if err != nil {
		return nil, err
	}
	viajeros, err := s.viajeros.ListEntre(ctx, desde, hasta, filter.Sede)
	if err != nil {
		return nil, err
	}
	habitaciones, err := s.habitaciones.List(ctx, filter.Sede)
	if err != nil {
		return nil, err
	}

	resp := &dto.ResumenVentasResponse{
		Desde:                    filter.Desde,
		Hasta:                    filter.Hasta,
		Sede:                     filter.Sede,
		TotalIngresos:            decimal.Zero,
		IngresosPorHabitacion:    make([]dto.IngresoHabitacion, len(habitaciones)),
		ViajerosPorDocumento:     make(map[string]int),
		AcompanantesPorDocumento: make(map[string]int),
	}
	idx := make(map[string]int, len(habitaciones))
	for i, h := range habitaciones {
		resp.IngresosPorHabitacion[i] = dto.IngresoHabitacion{Habitacion: h.Numero, Total: decimal.Zero}
		idx[h.Numero] = i
	}

	for _, v := range viajeros {
		resp.TotalIngresos = resp.TotalIngresos.Add(v.MontoPagado)
		if i, ok := idx[v.Habitacion]; ok {
			resp.IngresosPorHabitacion[i].Total = resp.IngresosPorHabitacion[i].Total.Add(v.MontoPagado)
			resp.IngresosPorHabitacion[i].Viajeros++
		}
		resp.ViajerosPorDocumento[v.TipoDocumento]++
		resp.TotalViajeros++
		for _, a := range v.Acompanantes {
			resp.AcompanantesPorDocumento[a.TipoDocumento]++
			resp.TotalAcompanantes++
		}
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// parseRango returns [desde 00:00, hasta 23:59:59.999999] in loc.
func parseRango(filter dto.RangoFilter, loc *time.Location) (time.Time, time.Time, error) {
	desde, hasta, err := parseFechas(filter, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return desde, hasta.AddDate(0, 0, 1).Add(-time.Microsecond), nil
}

// parseFechas returns both dates at midnight in loc.
func parseFechas(filter dto.RangoFilter, loc *time.Location) (time.Time, time.Time, error) {
	desde, err := time.ParseInLocation(fechaLayout, filter.Desde, loc)
	if err != nil {
		return time.Time{}, time.Time{}, apierror.Validation("desde inválido, use AAAA-MM-DD")
	}
	hasta, err := time.ParseInLocation(fechaLayout, filter.Hasta, loc)
	if err != nil {
		return time.Time{}, time.Time{}, apierror.Validation("hasta inválido, use AAAA-MM-DD")
	}
	if hasta.Before(desde) {
		return time.Time{}, time.Time{}, apierror.Validation("El rango de fechas es inválido")
	}
	return desde, hasta, nil
}
