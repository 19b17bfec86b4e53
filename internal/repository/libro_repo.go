package repository

import (
	"context"
	"time"

	"github.com/45061/Hotelregistryapp/internal/model"

	"gorm.io/gorm"
)

// LibroRepository queries ledger entries across every box, for the admin
// summaries and the daily report.
type LibroRepository interface {
	// ListPagosEntre returns payments with desde <= registrado_en <= hasta.
	ListPagosEntre(ctx context.Context, desde, hasta time.Time) ([]model.Pago, error)
	ListRetirosEntre(ctx context.Context, desde, hasta time.Time) ([]model.Retiro, error)
}

type libroRepo struct{ db *gorm.DB }

func NewLibroRepository(db *gorm.DB) LibroRepository { return &libroRepo{db: db} }

func (r *libroRepo) ListPagosEntre(ctx context.Context, desde, hasta time.Time) ([]model.Pago, error) {
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Where("registrado_en >= ? AND registrado_en <= ?", desde, hasta).
		Order("registrado_en ASC").
		Find(&pagos).Error
	return pagos, err
}

func (r *libroRepo) ListRetirosEntre(ctx context.Context, desde, hasta time.Time) ([]model.Retiro, error) {
	var retiros []model.Retiro
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Where("registrado_en >= ? AND registrado_en <= ?", desde, hasta).
		Order("registrado_en ASC").
		Find(&retiros).Error
	return retiros, err
}
