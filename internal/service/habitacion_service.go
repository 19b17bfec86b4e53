package service

import (
	"context"
	"errors"
	"strings"

	"github.com/45061/Hotelregistryapp/internal/apierror"
	"github.com/45061/Hotelregistryapp/internal/dto"
	"github.com/45061/Hotelregistryapp/internal/model"
	"github.com/45061/Hotelregistryapp/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HabitacionService interface {
	Listar(ctx context.Context, hotel string) ([]dto.HabitacionResponse, error)
	Crear(ctx context.Context, req dto.HabitacionRequest) (*dto.HabitacionResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.HabitacionRequest) (*dto.HabitacionResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, req dto.CambiarEstadoHabitacionRequest) (*dto.HabitacionResponse, error)
}

type habitacionService struct {
	repo repository.HabitacionRepository
}

func NewHabitacionService(repo repository.HabitacionRepository) HabitacionService {
	return &habitacionService{repo: repo}
}

func (s *habitacionService) Listar(ctx context.Context, hotel string) ([]dto.HabitacionResponse, error) {
	habitaciones, err := s.repo.List(ctx, strings.TrimSpace(hotel))
	if err != nil {
		return nil, err
	}
	resp := make([]dto.HabitacionResponse, len(habitaciones))
	for i := range habitaciones {
		resp[i] = toHabitacionResponse(&habitaciones[i])
	}
	return resp, nil
}

func (s *habitacionService) Crear(ctx context.Context, req dto.HabitacionRequest) (*dto.HabitacionResponse, error) {
	numero := strings.TrimSpace(req.Numero)
	if err := s.numeroLibre(ctx, numero, uuid.Nil); err != nil {
		return nil, err
	}
	h := &model.Habitacion{Numero: numero}
	aplicarHabitacion(h, req)
	if h.Estado == "" {
		h.Estado = model.EstadoDisponible
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	resp := toHabitacionResponse(h)
	return &resp, nil
}

func (s *habitacionService) Actualizar(ctx context.Context, id uuid.UUID, req dto.HabitacionRequest) (*dto.HabitacionResponse, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Habitación no encontrada")
	}
	numero := strings.TrimSpace(req.Numero)
	if numero != h.Numero {
		if err := s.numeroLibre(ctx, numero, id); err != nil {
			return nil, err
		}
		h.Numero = numero
	}
	aplicarHabitacion(h, req)
	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	resp := toHabitacionResponse(h)
	return &resp, nil
}

// CambiarEstado sets the room state. The traveler link is kept only while
// the room is occupied.
func (s *habitacionService) CambiarEstado(ctx context.Context, id uuid.UUID, req dto.CambiarEstadoHabitacionRequest) (*dto.HabitacionResponse, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Habitación no encontrada")
	}
	h.Estado = req.Estado
	h.ViajeroID = nil
	if req.Estado == model.EstadoOcupada && req.ViajeroID != nil {
		vid, err := uuid.Parse(*req.ViajeroID)
		if err != nil {
			return nil, apierror.Validation("viajero_id inválido")
		}
		h.ViajeroID = &vid
	}
	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	resp := toHabitacionResponse(h)
	return &resp, nil
}

func (s *habitacionService) numeroLibre(ctx context.Context, numero string, propio uuid.UUID) error {
	existing, err := s.repo.FindByNumero(ctx, numero)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != propio {
		return apierror.Conflict("Ya existe una habitación con el número " + numero)
	}
	return nil
}

func aplicarHabitacion(h *model.Habitacion, req dto.HabitacionRequest) {
	h.Hotel = strings.TrimSpace(req.Hotel)
	h.Tipo = strings.TrimSpace(req.Tipo)
	if req.Estado != "" {
		h.Estado = req.Estado
	}
	h.Precio = req.Precio
	h.Toallas = req.Toallas
	h.Suministros = req.Suministros
}

func toHabitacionResponse(h *model.Habitacion) dto.HabitacionResponse {
	resp := dto.HabitacionResponse{
		ID:          h.ID.String(),
		Numero:      h.Numero,
		Hotel:       h.Hotel,
		Tipo:        h.Tipo,
		Estado:      h.Estado,
		Precio:      h.Precio,
		Toallas:     h.Toallas,
		Suministros: h.Suministros,
	}
	if resp.Suministros == nil {
		resp.Suministros = []string{}
	}
	if h.ViajeroID != nil {
		v := h.ViajeroID.String()
		resp.ViajeroID = &v
	}
	return resp
}
