package service

import (
	"context"
	"strings"
	"time"

	"github.com/45061/Hotelregistryapp/internal/apierror"
	"github.com/45061/Hotelregistryapp/internal/dto"
	"github.com/45061/Hotelregistryapp/internal/model"
	"github.com/45061/Hotelregistryapp/internal/repository"

	"github.com/google/uuid"
)

const fechaLayout = "2006-01-02"

type ViajeroService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearViajeroRequest) (*dto.ViajeroResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ViajeroResponse, error)
	// BuscarPorDocumento returns the most recent stay of the document holder.
	BuscarPorDocumento(ctx context.Context, numeroDocumento string) (*dto.ViajeroResponse, error)
	Listar(ctx context.Context, filter dto.ViajeroFilter) (*dto.ViajeroListResponse, error)
	AgregarAcompanante(ctx context.Context, viajeroID uuid.UUID, req dto.AcompananteRequest) (*dto.ViajeroResponse, error)
	// Actualizar applies the non-nil fields of req. Fecha and HoraLlegada never change.
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarViajeroRequest) (*dto.ViajeroResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type viajeroService struct {
	repo repository.ViajeroRepository
}

func NewViajeroService(repo repository.ViajeroRepository) ViajeroService {
	return &viajeroService{repo: repo}
}

func (s *viajeroService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearViajeroRequest) (*dto.ViajeroResponse, error) {
	fecha, err := time.Parse(fechaLayout, req.Fecha)
	if err != nil {
		return nil, apierror.Validation("fecha inválida, use AAAA-MM-DD")
	}
	if req.MontoPagado.IsNegative() {
		return nil, apierror.Validation("El monto pagado no puede ser negativo")
	}
	v := &model.Viajero{
		Habitacion:       strings.TrimSpace(req.Habitacion),
		Fecha:            fecha,
		Nombre:           strings.TrimSpace(req.Nombre),
		Nacionalidad:     req.Nacionalidad,
		Sede:             req.Sede,
		Procedencia:      req.Procedencia,
		NochesReservadas: req.NochesReservadas,
		CanalReserva:     req.CanalReserva,
		HoraLlegada:      req.HoraLlegada,
		Destino:          req.Destino,
		TipoDocumento:    req.TipoDocumento,
		NumeroDocumento:  strings.TrimSpace(req.NumeroDocumento),
		LugarExpedicion:  req.LugarExpedicion,
		Desayuno:         req.Desayuno,
		MontoPagado:      req.MontoPagado,
		MetodoPago:       req.MetodoPago,
		UsuarioID:        usuarioID,
	}
	for _, a := range req.Acompanantes {
		v.Acompanantes = append(v.Acompanantes, toAcompanante(a))
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	resp := toViajeroResponse(v)
	return &resp, nil
}

func (s *viajeroService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ViajeroResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Viajero no encontrado")
	}
	resp := toViajeroResponse(v)
	return &resp, nil
}

func (s *viajeroService) BuscarPorDocumento(ctx context.Context, numeroDocumento string) (*dto.ViajeroResponse, error) {
	doc := strings.TrimSpace(numeroDocumento)
	if doc == "" {
		return nil, apierror.Validation("El número de documento es obligatorio")
	}
	v, err := s.repo.FindUltimoPorDocumento(ctx, doc)
	if err != nil {
		return nil, notFound(err, "No hay registros para el documento "+doc)
	}
	resp := toViajeroResponse(v)
	return &resp, nil
}

func (s *viajeroService) Listar(ctx context.Context, filter dto.ViajeroFilter) (*dto.ViajeroListResponse, error) {
	viajeros, total, err := s.repo.List(ctx, repository.ViajeroFilter{
		Sede:  filter.Sede,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
	if err != nil {
		return nil, err
	}
	resp := &dto.ViajeroListResponse{
		Data:  make([]dto.ViajeroResponse, len(viajeros)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range viajeros {
		resp.Data[i] = toViajeroResponse(&viajeros[i])
	}
	return resp, nil
}

func (s *viajeroService) AgregarAcompanante(ctx context.Context, viajeroID uuid.UUID, req dto.AcompananteRequest) (*dto.ViajeroResponse, error) {
	if _, err := s.repo.FindByID(ctx, viajeroID); err != nil {
		return nil, notFound(err, "Viajero no encontrado")
	}
	a := toAcompanante(req)
	a.ViajeroID = viajeroID
	if err := s.repo.CreateAcompanante(ctx, &a); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, viajeroID)
}

func (s *viajeroService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarViajeroRequest) (*dto.ViajeroResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Viajero no encontrado")
	}
	textos := []struct {
		campo string
		nuevo *string
		dst   *string
	}{
		{"habitacion", req.Habitacion, &v.Habitacion},
		{"nombre", req.Nombre, &v.Nombre},
		{"nacionalidad", req.Nacionalidad, &v.Nacionalidad},
		{"sede", req.Sede, &v.Sede},
		{"procedencia", req.Procedencia, &v.Procedencia},
		{"canal_reserva", req.CanalReserva, &v.CanalReserva},
		{"destino", req.Destino, &v.Destino},
		{"tipo_documento", req.TipoDocumento, &v.TipoDocumento},
		{"numero_documento", req.NumeroDocumento, &v.NumeroDocumento},
		{"lugar_expedicion", req.LugarExpedicion, &v.LugarExpedicion},
		{"metodo_pago", req.MetodoPago, &v.MetodoPago},
	}
	for _, t := range textos {
		if t.nuevo == nil {
			continue
		}
		val := strings.TrimSpace(*t.nuevo)
		if val == "" {
			return nil, apierror.Validation("El campo " + t.campo + " es obligatorio")
		}
		*t.dst = val
	}
	if req.NochesReservadas != nil {
		if *req.NochesReservadas < 1 {
			return nil, apierror.Validation("Las noches reservadas deben ser al menos 1")
		}
		v.NochesReservadas = *req.NochesReservadas
	}
	if req.MontoPagado != nil {
		if req.MontoPagado.IsNegative() {
			return nil, apierror.Validation("El monto pagado no puede ser negativo")
		}
		v.MontoPagado = *req.MontoPagado
	}
	if req.Desayuno != nil {
		v.Desayuno = *req.Desayuno
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, notFound(err, "Viajero no encontrado")
	}
	resp := toViajeroResponse(v)
	return &resp, nil
}

func (s *viajeroService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "Viajero no encontrado")
	}
	return nil
}

func toAcompanante(a dto.AcompananteRequest) model.Acompanante {
	return model.Acompanante{
		Nombre:          strings.TrimSpace(a.Nombre),
		TipoDocumento:   a.TipoDocumento,
		NumeroDocumento: strings.TrimSpace(a.NumeroDocumento),
		LugarExpedicion: a.LugarExpedicion,
	}
}

func toViajeroResponse(v *model.Viajero) dto.ViajeroResponse {
	resp := dto.ViajeroResponse{
		ID:               v.ID.String(),
		Habitacion:       v.Habitacion,
		Fecha:            v.Fecha.Format(fechaLayout),
		Nombre:           v.Nombre,
		Nacionalidad:     v.Nacionalidad,
		Sede:             v.Sede,
		Procedencia:      v.Procedencia,
		NochesReservadas: v.NochesReservadas,
		CanalReserva:     v.CanalReserva,
		HoraLlegada:      v.HoraLlegada,
		Destino:          v.Destino,
		TipoDocumento:    v.TipoDocumento,
		NumeroDocumento:  v.NumeroDocumento,
		LugarExpedicion:  v.LugarExpedicion,
		Desayuno:         v.Desayuno,
		MontoPagado:      v.MontoPagado,
		MetodoPago:       v.MetodoPago,
		UsuarioID:        v.UsuarioID.String(),
		Acompanantes:     make([]dto.AcompananteResponse, len(v.Acompanantes)),
		CreatedAt:        formatTime(v.CreatedAt),
	}
	for i, a := range v.Acompanantes {
		resp.Acompanantes[i] = dto.AcompananteResponse{
			ID:              a.ID.String(),
			Nombre:          a.Nombre,
			TipoDocumento:   a.TipoDocumento,
			NumeroDocumento: a.NumeroDocumento,
			LugarExpedicion: a.LugarExpedicion,
		}
	}
	return resp
}
