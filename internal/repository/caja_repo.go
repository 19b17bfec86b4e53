package repository

import (
	"context"
	"time"

	"github.com/45061/Hotelregistryapp/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CajaRepository persists boxes and their ledger entries.
// Lifecycle transitions are conditional updates: the returned bool is false
// when the row was not in the expected state (or does not exist).
type CajaRepository interface {
	Create(ctx context.Context, c *model.Caja) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	List(ctx context.Context) ([]model.Caja, error)
	FindActivaPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Caja, error)
	UpdateDatos(ctx context.Context, id uuid.UUID, nombre string, descripcion *string) error
	Delete(ctx context.Context, id uuid.UUID) error

	MarcarAbierta(ctx context.Context, id uuid.UUID, saldoInicial decimal.Decimal, usuarioID uuid.UUID, at time.Time) (bool, error)
	MarcarCerrada(ctx context.Context, id uuid.UUID, saldoCierre decimal.Decimal, usuarioID uuid.UUID, at time.Time) (bool, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	// Transaction runs fn with a repository bound to a single DB transaction.
	Transaction(ctx context.Context, fn func(repo CajaRepository) error) error

	CreatePago(ctx context.Context, p *model.Pago) error
	CreateRetiro(ctx context.Context, r *model.Retiro) error
	// ListPagos returns the box entries recorded strictly after desde (all when nil).
	ListPagos(ctx context.Context, cajaID uuid.UUID, desde *time.Time) ([]model.Pago, error)
	ListRetiros(ctx context.Context, cajaID uuid.UUID, desde *time.Time) ([]model.Retiro, error)
	CountMovimientos(ctx context.Context, cajaID uuid.UUID) (int64, error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

// ── Cajas ─────────────────────────────────────────────────────────────────────

func (r *cajaRepo) Create(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).
		Preload("Usuario").Preload("UsuarioApertura").Preload("UsuarioCierre").
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cajaRepo) List(ctx context.Context) ([]model.Caja, error) {
	var cajas []model.Caja
	err := r.db.WithContext(ctx).
		Preload("Usuario").Preload("UsuarioApertura").Preload("UsuarioCierre").
		Order("created_at ASC").
		Find(&cajas).Error
	return cajas, err
}

func (r *cajaRepo) FindActivaPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).
		Where("activa = true AND usuario_apertura_id = ?", usuarioID).
		Order("ultima_apertura DESC").
		First(&c).Error
	return &c, err
}

func (r *cajaRepo) UpdateDatos(ctx context.Context, id uuid.UUID, nombre string, descripcion *string) error {
	res := r.db.WithContext(ctx).Model(&model.Caja{}).Where("id = ?", id).
		Updates(map[string]interface{}{"nombre": nombre, "descripcion": descripcion})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cajaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND activa = false", id).Delete(&model.Caja{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ── Ciclo ─────────────────────────────────────────────────────────────────────

func (r *cajaRepo) MarcarAbierta(ctx context.Context, id uuid.UUID, saldoInicial decimal.Decimal, usuarioID uuid.UUID, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Caja{}).
		Where("id = ? AND activa = false", id).
		Updates(map[string]interface{}{
			"activa":              true,
			"saldo_inicial":       saldoInicial,
			"ultima_apertura":     at,
			"usuario_apertura_id": usuarioID,
			"veces_abierta":       gorm.Expr("veces_abierta + 1"),
		})
	return res.RowsAffected == 1, res.Error
}

func (r *cajaRepo) MarcarCerrada(ctx context.Context, id uuid.UUID, saldoCierre decimal.Decimal, usuarioID uuid.UUID, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Caja{}).
		Where("id = ? AND activa = true", id).
		Updates(map[string]interface{}{
			"activa":              false,
			"ultimo_cierre":       at,
			"saldo_ultimo_cierre": saldoCierre,
			"usuario_cierre_id":   usuarioID,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *cajaRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cajaRepo) Transaction(ctx context.Context, fn func(repo CajaRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&cajaRepo{db: tx})
	})
}

// ── Libro ─────────────────────────────────────────────────────────────────────
// Entries are append-only. There is no update or delete.

func (r *cajaRepo) CreatePago(ctx context.Context, p *model.Pago) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *cajaRepo) CreateRetiro(ctx context.Context, rt *model.Retiro) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *cajaRepo) ListPagos(ctx context.Context, cajaID uuid.UUID, desde *time.Time) ([]model.Pago, error) {
	q := r.db.WithContext(ctx).Where("caja_id = ?", cajaID)
	if desde != nil {
		q = q.Where("registrado_en > ?", *desde)
	}
	var pagos []model.Pago
	err := q.Preload("Usuario").Order("registrado_en ASC").Find(&pagos).Error
	return pagos, err
}

func (r *cajaRepo) ListRetiros(ctx context.Context, cajaID uuid.UUID, desde *time.Time) ([]model.Retiro, error) {
	q := r.db.WithContext(ctx).Where("caja_id = ?", cajaID)
	if desde != nil {
		q = q.Where("registrado_en > ?", *desde)
	}
	var retiros []model.Retiro
	err := q.Preload("Usuario").Order("registrado_en ASC").Find(&retiros).Error
	return retiros, err
}

func (r *cajaRepo) CountMovimientos(ctx context.Context, cajaID uuid.UUID) (int64, error) {
	var pagos, retiros int64
	if err := r.db.WithContext(ctx).Model(&model.Pago{}).Where("caja_id = ?", cajaID).Count(&pagos).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Retiro{}).Where("caja_id = ?", cajaID).Count(&retiros).Error; err != nil {
		return 0, err
	}
	return pagos + retiros, nil
}
