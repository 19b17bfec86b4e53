package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/45061/Hotelregistryapp/internal/apierror"
	"github.com/45061/Hotelregistryapp/internal/config"
	"github.com/45061/Hotelregistryapp/internal/dto"
	"github.com/45061/Hotelregistryapp/internal/model"
	"github.com/45061/Hotelregistryapp/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// BcryptCost is shared with cmd/genhash and cmd/seeduser.
const BcryptCost = 12

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout closes the box the user has open, if any.
	Logout(ctx context.Context, usuarioID uuid.UUID) (*dto.LogoutResponse, error)
	Me(ctx context.Context, usuarioID uuid.UUID) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	ActualizarPermisos(ctx context.Context, id uuid.UUID, req dto.ActualizarPermisosRequest) (*dto.UsuarioResponse, error)
}

type authService struct {
	repo  repository.UsuarioRepository
	cajas CajaService
	cfg   *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cajas CajaService, cfg *config.Config) AuthService {
	return &authService{repo: repo, cajas: cajas, cfg: cfg}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apierror.Validation("Las contraseñas no coinciden")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, apierror.Conflict("El correo ya está registrado")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), BcryptCost)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Email:        email,
		Nombre:       strings.TrimSpace(req.Nombre),
		Apellido:     strings.TrimSpace(req.Apellido),
		Telefono:     strings.TrimSpace(req.Telefono),
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("El correo ya está registrado").Wrap(err)
		}
		return nil, err
	}
	log.Info().Str("usuario_id", user.ID.String()).Msg("usuario registrado, pendiente de autorización")
	resp := toUsuarioResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Auth("Credenciales inválidas")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.Auth("Credenciales inválidas")
	}

	ttl := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	token, err := s.generateToken(user, ttl)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(ttl.Seconds()),
		User:        toUsuarioResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, usuarioID uuid.UUID) (*dto.LogoutResponse, error) {
	caja, err := s.cajas.GetActiva(ctx, usuarioID)
	if err != nil {
		if apierror.Is(err, apierror.KindNotFound) {
			return &dto.LogoutResponse{}, nil
		}
		return nil, err
	}
	cajaID, err := uuid.Parse(caja.ID)
	if err != nil {
		return nil, err
	}
	cerrada, err := s.cajas.Cerrar(ctx, cajaID, usuarioID)
	if err != nil {
		// closed concurrently by someone else
		if apierror.Is(err, apierror.KindState) {
			return &dto.LogoutResponse{}, nil
		}
		return nil, err
	}
	return &dto.LogoutResponse{CajaCerrada: cerrada}, nil
}

func (s *authService) Me(ctx context.Context, usuarioID uuid.UUID) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, notFound(err, "Usuario no encontrado")
	}
	resp := toUsuarioResponse(user)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = toUsuarioResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) ActualizarPermisos(ctx context.Context, id uuid.UUID, req dto.ActualizarPermisosRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Usuario no encontrado")
	}
	if req.Autorizado != nil {
		user.Autorizado = *req.Autorizado
	}
	if req.EsAdmin != nil {
		user.EsAdmin = *req.EsAdmin
	}
	if req.RolCaja != nil {
		rol := *req.RolCaja
		user.RolCaja = &rol
	}
	if err := s.repo.UpdatePermisos(ctx, user); err != nil {
		return nil, notFound(err, "Usuario no encontrado")
	}
	log.Info().Str("usuario_id", id.String()).Bool("autorizado", user.Autorizado).
		Bool("es_admin", user.EsAdmin).Msg("permisos actualizados")
	resp := toUsuarioResponse(user)
	return &resp, nil
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":          user.ID.String(),
		"email":            user.Email,
		"es_admin":         user.EsAdmin,
		"es_super_usuario": user.EsSuperUsuario,
		"autorizado":       user.Autorizado,
		"rol_caja":         user.RolCaja,
		"exp":              time.Now().Add(duration).Unix(),
		"iat":              time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func toUsuarioResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:             u.ID.String(),
		Email:          u.Email,
		Nombre:         u.Nombre,
		Apellido:       u.Apellido,
		Telefono:       u.Telefono,
		EsAdmin:        u.EsAdmin,
		EsSuperUsuario: u.EsSuperUsuario,
		Autorizado:     u.Autorizado,
		RolCaja:        u.RolCaja,
	}
}
