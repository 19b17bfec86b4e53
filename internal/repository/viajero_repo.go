package repository

import (
	"context"
	"time"

	"github.com/45061/Hotelregistryapp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ViajeroFilter defines filters for listing travelers.
type ViajeroFilter struct {
	Sede  string
	Page  int
	Limit int
}

type ViajeroRepository interface {
	// Create inserts the traveler together with its companions.
	Create(ctx context.Context, v *model.Viajero) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Viajero, error)
	// FindUltimoPorDocumento returns the most recent record for numeroDocumento.
	FindUltimoPorDocumento(ctx context.Context, numeroDocumento string) (*model.Viajero, error)
	List(ctx context.Context, filter ViajeroFilter) ([]model.Viajero, int64, error)
	// ListEntre returns travelers dated within [desde, hasta], optionally for one sede.
	ListEntre(ctx context.Context, desde, hasta time.Time, sede string) ([]model.Viajero, error)
	CreateAcompanante(ctx context.Context, a *model.Acompanante) error
	// Update saves the traveler's own columns; companions are left untouched.
	Update(ctx context.Context, v *model.Viajero) error
	// Delete removes the traveler and its companions.
	Delete(ctx context.Context, id uuid.UUID) error
}

type viajeroRepo struct{ db *gorm.DB }

func NewViajeroRepository(db *gorm.DB) ViajeroRepository { return &viajeroRepo{db: db} }

func (r *viajeroRepo) Create(ctx context.Context, v *model.Viajero) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *viajeroRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Viajero, error) {
	var v model.Viajero
	err := r.db.WithContext(ctx).Preload("Acompanantes").First(&v, "id = ?", id).Error
	return &v, err
}

func (r *viajeroRepo) FindUltimoPorDocumento(ctx context.Context, numeroDocumento string) (*model.Viajero, error) {
	var v model.Viajero
	err := r.db.WithContext(ctx).
		Preload("Acompanantes").
		Where("numero_documento = ?", numeroDocumento).
		Order("created_at DESC").
		First(&v).Error
	return &v, err
}

func (r *viajeroRepo) List(ctx context.Context, filter ViajeroFilter) ([]model.Viajero, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Viajero{})
	if filter.Sede != "" {
		q = q.Where("sede = ?", filter.Sede)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var viajeros []model.Viajero
	err := q.Preload("Acompanantes").Order("fecha DESC").Offset(offset).Limit(limit).Find(&viajeros).Error
	return viajeros, total, err
}

func (r *viajeroRepo) ListEntre(ctx context.Context, desde, hasta time.Time, sede string) ([]model.Viajero, error) {
	q := r.db.WithContext(ctx).Where("fecha >= ? AND fecha <= ?", desde, hasta)
	if sede != "" {
		q = q.Where("sede = ?", sede)
	}
	var viajeros []model.Viajero
	err := q.Preload("Acompanantes").Order("fecha ASC").Find(&viajeros).Error
	return viajeros, err
}

func (r *viajeroRepo) CreateAcompanante(ctx context.Context, a *model.Acompanante) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *viajeroRepo) Update(ctx context.Context, v *model.Viajero) error {
	return r.db.WithContext(ctx).Omit("Acompanantes").Save(v).Error
}

func (r *viajeroRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("viajero_id = ?", id).Delete(&model.Acompanante{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Viajero{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
