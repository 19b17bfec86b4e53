package service

import (
	"context"
	"testing"
	"time"

	"github.com/45061/Hotelregistryapp/internal/apierror"
	"github.com/45061/Hotelregistryapp/internal/dto"
	"github.com/45061/Hotelregistryapp/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transaccionFixture struct {
	svc       *transaccionService
	repo      *memTransaccionRepo
	cajero    *model.Usuario
	pendiente *model.Usuario
}

func newTransaccionFixture(t *testing.T) *transaccionFixture {
	t.Helper()
	cajero := &model.Usuario{Email: "cajero@hotel.co", Nombre: "Ana", Autorizado: true}
	pendiente := &model.Usuario{Email: "nuevo@hotel.co", Nombre: "Luis"}
	repo := &memTransaccionRepo{}
	svc := NewTransaccionService(repo, newMemUsuarioRepo(cajero, pendiente), nil).(*transaccionService)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC) }
	return &transaccionFixture{svc: svc, repo: repo, cajero: cajero, pendiente: pendiente}
}

func transaccion(tipo, medio string, monto int64) dto.RegistrarTransaccionRequest {
	return dto.RegistrarTransaccionRequest{
		Tipo: tipo, Concepto: "Hospedaje", Monto: decPtr(monto), MedioPago: medio, Habitacion: "101",
	}
}

func TestTransaccion_RegistrarCreatesMethodOnFirstUse(t *testing.T) {
	f := newTransaccionFixture(t)
	ctx := context.Background()

	req := transaccion(model.TransaccionIngreso, " Nequi ", 50000)
	req.ReferenciaPMS = "PMS-991"
	out, err := f.svc.Registrar(ctx, f.cajero.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Nequi", out.MedioPago)
	assert.Equal(t, "PMS-991", out.ReferenciaPMS)
	assert.Equal(t, f.cajero.ID.String(), out.UsuarioID)
	assert.Equal(t, "2024-03-10T15:00:00Z", out.FechaHora)

	_, err = f.svc.Registrar(ctx, f.cajero.ID, transaccion(model.TransaccionSalida, "Nequi", 1000))
	require.NoError(t, err)
	_, err = f.svc.Registrar(ctx, f.cajero.ID, transaccion(model.TransaccionIngreso, "Efectivo", 1000))
	require.NoError(t, err)

	medios, err := f.svc.ListarMedios(ctx)
	require.NoError(t, err)
	require.Len(t, medios, 2)
	assert.Equal(t, "Efectivo", medios[0].Nombre)
	assert.Equal(t, "Nequi", medios[1].Nombre)
}

func TestTransaccion_RegistrarUsesGivenTimeAndCashier(t *testing.T) {
	f := newTransaccionFixture(t)
	otro := &model.Usuario{Email: "turno2@hotel.co", Nombre: "Eva", Autorizado: true}
	require.NoError(t, f.svc.usuarios.Create(context.Background(), otro))

	req := transaccion(model.TransaccionIngreso, "Efectivo", 2000)
	req.FechaHora = "2024-03-09T22:15:00-05:00"
	req.UsuarioCaja = otro.ID.String()
	out, err := f.svc.Registrar(context.Background(), f.cajero.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-10T03:15:00Z", out.FechaHora)
	assert.Equal(t, otro.ID.String(), out.UsuarioID)
}

func TestTransaccion_RegistrarRejects(t *testing.T) {
	f := newTransaccionFixture(t)
	ctx := context.Background()

	cases := map[string]func(r *dto.RegistrarTransaccionRequest){
		"monto ausente":    func(r *dto.RegistrarTransaccionRequest) { r.Monto = nil },
		"monto negativo":   func(r *dto.RegistrarTransaccionRequest) { r.Monto = decPtr(-1) },
		"tipo desconocido": func(r *dto.RegistrarTransaccionRequest) { r.Tipo = "Traslado" },
		"concepto vacío":   func(r *dto.RegistrarTransaccionRequest) { r.Concepto = " " },
		"medio vacío":      func(r *dto.RegistrarTransaccionRequest) { r.MedioPago = "" },
		"fecha inválida":   func(r *dto.RegistrarTransaccionRequest) { r.FechaHora = "10/03/2024" },
		"cajero inválido":  func(r *dto.RegistrarTransaccionRequest) { r.UsuarioCaja = "abc" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := transaccion(model.TransaccionIngreso, "Efectivo", 100)
			mutate(&req)
			_, err := f.svc.Registrar(ctx, f.cajero.ID, req)
			assert.True(t, apierror.Is(err, apierror.KindValidation), "%v", err)
		})
	}

	req := transaccion(model.TransaccionIngreso, "Efectivo", 100)
	req.UsuarioCaja = f.pendiente.ID.String()
	_, err := f.svc.Registrar(ctx, f.cajero.ID, req)
	assert.True(t, apierror.Is(err, apierror.KindForbidden))

	req.UsuarioCaja = uuid.NewString()
	_, err = f.svc.Registrar(ctx, f.cajero.ID, req)
	assert.True(t, apierror.Is(err, apierror.KindNotFound))

	assert.Empty(t, f.repo.transacciones)
	assert.Empty(t, f.repo.medios)
}

func TestTransaccion_ListarFiltersCallerEntries(t *testing.T) {
	f := newTransaccionFixture(t)
	ctx := context.Background()
	en := func(tipo, medio, hab, fecha string) {
		req := transaccion(tipo, medio, 1000)
		req.Habitacion = hab
		req.FechaHora = fecha
		_, err := f.svc.Registrar(ctx, f.cajero.ID, req)
		require.NoError(t, err)
	}
	en(model.TransaccionIngreso, "Efectivo", "101", "2024-03-08T10:00:00Z")
	en(model.TransaccionIngreso, "Datafono", "102", "2024-03-09T10:00:00Z")
	en(model.TransaccionSalida, "Efectivo", "101", "2024-03-10T10:00:00Z")
	// another cashier's entry never shows up
	f.repo.transacciones = append(f.repo.transacciones, model.TransaccionCaja{
		ID: uuid.New(), UsuarioID: uuid.New(), Tipo: model.TransaccionIngreso, FechaHora: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
	})

	todas, err := f.svc.Listar(ctx, f.cajero.ID, dto.TransaccionFilter{})
	require.NoError(t, err)
	require.Len(t, todas, 3)
	assert.Equal(t, "2024-03-10T10:00:00Z", todas[0].FechaHora)

	ingresos, err := f.svc.Listar(ctx, f.cajero.ID, dto.TransaccionFilter{Tipo: model.TransaccionIngreso})
	require.NoError(t, err)
	assert.Len(t, ingresos, 2)

	efectivo101, err := f.svc.Listar(ctx, f.cajero.ID, dto.TransaccionFilter{MedioPago: "Efectivo", Habitacion: "101"})
	require.NoError(t, err)
	assert.Len(t, efectivo101, 2)

	// both bounds inclusive
	rango, err := f.svc.Listar(ctx, f.cajero.ID, dto.TransaccionFilter{
		FechaInicio: "2024-03-09T10:00:00Z", FechaFin: "2024-03-10T10:00:00Z",
	})
	require.NoError(t, err)
	assert.Len(t, rango, 2)

	_, err = f.svc.Listar(ctx, f.cajero.ID, dto.TransaccionFilter{FechaFin: "mañana"})
	assert.True(t, apierror.Is(err, apierror.KindValidation))
}
