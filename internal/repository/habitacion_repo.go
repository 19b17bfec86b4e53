package repository

import (
	"context"

	"github.com/45061/Hotelregistryapp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HabitacionRepository interface {
	Create(ctx context.Context, h *model.Habitacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Habitacion, error)
	FindByNumero(ctx context.Context, numero string) (*model.Habitacion, error)
	// List returns every room, or only those of hotel when it is not empty.
	List(ctx context.Context, hotel string) ([]model.Habitacion, error)
	Update(ctx context.Context, h *model.Habitacion) error
}

type habitacionRepo struct{ db *gorm.DB }

func NewHabitacionRepository(db *gorm.DB) HabitacionRepository { return &habitacionRepo{db: db} }

func (r *habitacionRepo) Create(ctx context.Context, h *model.Habitacion) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *habitacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Habitacion, error) {
	var h model.Habitacion
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	return &h, err
}

func (r *habitacionRepo) FindByNumero(ctx context.Context, numero string) (*model.Habitacion, error) {
	var h model.Habitacion
	err := r.db.WithContext(ctx).Where("numero = ?", numero).First(&h).Error
	return &h, err
}

func (r *habitacionRepo) List(ctx context.Context, hotel string) ([]model.Habitacion, error) {
	q := r.db.WithContext(ctx).Model(&model.Habitacion{})
	if hotel != "" {
		q = q.Where("hotel = ?", hotel)
	}
	var habitaciones []model.Habitacion
	err := q.Order("hotel ASC, numero ASC").Find(&habitaciones).Error
	return habitaciones, err
}

func (r *habitacionRepo) Update(ctx context.Context, h *model.Habitacion) error {
	return r.db.WithContext(ctx).Save(h).Error
}
