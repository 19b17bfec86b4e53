package service

import (
	"context"
	"testing"

	"github.com/45061/Hotelregistryapp/internal/apierror"
	"github.com/45061/Hotelregistryapp/internal/config"
	"github.com/45061/Hotelregistryapp/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthFixture(t *testing.T) (AuthService, *memUsuarioRepo, *cajaFixture) {
	t.Helper()
	cf := newCajaFixture(t)
	usuarios := cf.svc.usuarios.(*memUsuarioRepo)
	cfg := &config.Config{JWTSecret: testSecret, JWTExpirationHours: 24}
	return NewAuthService(usuarios, cf.svc, cfg), usuarios, cf
}

func registro(email string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email: email, Password: "secreto1", ConfirmPassword: "secreto1",
		Nombre: "Luis", Apellido: "Gómez", Telefono: "3001234567",
	}
}

func TestRegister_NewUserIsNotAuthorized(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	u, err := svc.Register(context.Background(), registro("Luis@Hotel.co"))
	require.NoError(t, err)

	assert.Equal(t, "luis@hotel.co", u.Email)
	assert.False(t, u.Autorizado)
	assert.False(t, u.EsAdmin)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	req := registro("a@hotel.co")
	req.ConfirmPassword = "otra"
	_, err := svc.Register(context.Background(), req)
	assert.True(t, apierror.Is(err, apierror.KindValidation))
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, err := svc.Register(context.Background(), registro("dup@hotel.co"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registro("DUP@hotel.co"))
	assert.True(t, apierror.Is(err, apierror.KindConflict))
}

func TestLogin_IssuesTokenWithFlags(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, err := svc.Register(context.Background(), registro("login@hotel.co"))
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "login@hotel.co", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, 24*3600, resp.ExpiresIn)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims["user_id"])
	assert.Equal(t, false, claims["autorizado"])
}

func TestLogin_WrongPasswordOrUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, err := svc.Register(context.Background(), registro("x@hotel.co"))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "x@hotel.co", Password: "mala"})
	assert.True(t, apierror.Is(err, apierror.KindAuth))

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "nadie@hotel.co", Password: "secreto1"})
	assert.True(t, apierror.Is(err, apierror.KindAuth))
}

func TestLogout_ClosesOpenBox(t *testing.T) {
	svc, _, cf := newAuthFixture(t)
	id := cf.crearCaja(t)
	_, err := cf.svc.Abrir(context.Background(), id, cf.usuario.ID, dec(50000))
	require.NoError(t, err)
	cf.pagar(t, id, 10000, "Efectivo")

	out, err := svc.Logout(context.Background(), cf.usuario.ID)
	require.NoError(t, err)
	require.NotNil(t, out.CajaCerrada)
	assert.True(t, dec(60000).Equal(out.CajaCerrada.SaldoExistente))

	c, _ := cf.repo.get(id)
	assert.False(t, c.Activa)
}

func TestLogout_WithoutOpenBox(t *testing.T) {
	svc, _, cf := newAuthFixture(t)
	out, err := svc.Logout(context.Background(), cf.usuario.ID)
	require.NoError(t, err)
	assert.Nil(t, out.CajaCerrada)
}

func TestActualizarPermisos(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	u, err := svc.Register(context.Background(), registro("nuevo@hotel.co"))
	require.NoError(t, err)

	si := true
	rol := "Supervisor"
	out, err := svc.ActualizarPermisos(context.Background(), uuid.MustParse(u.ID), dto.ActualizarPermisosRequest{
		Autorizado: &si, RolCaja: &rol,
	})
	require.NoError(t, err)
	assert.True(t, out.Autorizado)
	assert.False(t, out.EsAdmin)
	assert.Equal(t, "Supervisor", *out.RolCaja)

	_, err = svc.ActualizarPermisos(context.Background(), uuid.New(), dto.ActualizarPermisosRequest{Autorizado: &si})
	assert.True(t, apierror.Is(err, apierror.KindNotFound))
}
