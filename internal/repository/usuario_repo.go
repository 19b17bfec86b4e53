package repository

import (
	"context"
	"strings"

	"github.com/45061/Hotelregistryapp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsuarioRepository stores staff accounts. Emails are kept lower-cased and
// matched case-insensitively.
type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	// UpdatePermisos writes only the access flags and cash role of u.
	UpdatePermisos(ctx context.Context, u *model.Usuario) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	return &u, err
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

// List orders pending accounts first so super-users see them on top.
func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var users []model.Usuario
	err := r.db.WithContext(ctx).
		Order("autorizado ASC").Order("nombre ASC").Order("apellido ASC").
		Find(&users).Error
	return users, err
}

func (r *usuarioRepo) UpdatePermisos(ctx context.Context, u *model.Usuario) error {
	res := r.db.WithContext(ctx).Model(u).
		Select("autorizado", "es_admin", "rol_caja").
		Updates(u)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
