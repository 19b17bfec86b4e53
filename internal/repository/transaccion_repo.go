package repository

import (
	"context"
	"errors"
	"time"

	"github.com/45061/Hotelregistryapp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransaccionFilter narrows a user's transaction log. Zero values are ignored.
type TransaccionFilter struct {
	UsuarioID  uuid.UUID
	Tipo       string
	MedioPago  string // method name
	Habitacion string
	Desde      *time.Time
	Hasta      *time.Time
}

type TransaccionRepository interface {
	ListMedios(ctx context.Context) ([]model.MedioPago, error)
	// MedioPorNombre returns the method named nombre, creating it when missing.
	MedioPorNombre(ctx context.Context, nombre string) (*model.MedioPago, error)
	Create(ctx context.Context, t *model.TransaccionCaja) error
	List(ctx context.Context, filter TransaccionFilter) ([]model.TransaccionCaja, error)
}

type transaccionRepo struct{ db *gorm.DB }

func NewTransaccionRepository(db *gorm.DB) TransaccionRepository { return &transaccionRepo{db: db} }

func (r *transaccionRepo) ListMedios(ctx context.Context) ([]model.MedioPago, error) {
	var medios []model.MedioPago
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&medios).Error
	return medios, err
}

func (r *transaccionRepo) MedioPorNombre(ctx context.Context, nombre string) (*model.MedioPago, error) {
	var m model.MedioPago
	err := r.db.WithContext(ctx).Where(model.MedioPago{Nombre: nombre}).FirstOrCreate(&m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost the insert race against another request; the row exists now
		err = r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&m).Error
	}
	return &m, err
}

func (r *transaccionRepo) Create(ctx context.Context, t *model.TransaccionCaja) error {
	return r.db.WithContext(ctx).Omit("MedioPago").Create(t).Error
}

func (r *transaccionRepo) List(ctx context.Context, filter TransaccionFilter) ([]model.TransaccionCaja, error) {
	q := r.db.WithContext(ctx).Model(&model.TransaccionCaja{}).
		Where("transaccion_cajas.usuario_id = ?", filter.UsuarioID)
	if filter.Tipo != "" {
		q = q.Where("transaccion_cajas.tipo = ?", filter.Tipo)
	}
	if filter.Habitacion != "" {
		q = q.Where("transaccion_cajas.habitacion = ?", filter.Habitacion)
	}
	if filter.MedioPago != "" {
		q = q.Joins("JOIN medio_pagos ON medio_pagos.id = transaccion_cajas.medio_pago_id").
			Where("medio_pagos.nombre = ?", filter.MedioPago)
	}
	if filter.Desde != nil {
		q = q.Where("transaccion_cajas.fecha_hora >= ?", *filter.Desde)
	}
	if filter.Hasta != nil {
		q = q.Where("transaccion_cajas.fecha_hora <= ?", *filter.Hasta)
	}
	var out []model.TransaccionCaja
	err := q.Preload("MedioPago").Order("transaccion_cajas.fecha_hora DESC").Find(&out).Error
	return out, err
}
