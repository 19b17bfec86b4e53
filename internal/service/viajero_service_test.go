package service

import (
	"context"
	"testing"

	"github.com/45061/Hotelregistryapp/internal/apierror"
	"github.com/45061/Hotelregistryapp/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viajeroRequest(doc string) dto.CrearViajeroRequest {
	return dto.CrearViajeroRequest{
		Habitacion: "101", Fecha: "2024-03-10", Nombre: "Marta Díaz", Nacionalidad: "Colombiana",
		Sede: "Centro", Procedencia: "Medellín", NochesReservadas: 2, CanalReserva: "Booking",
		HoraLlegada: "15:00", Destino: "Cartagena", TipoDocumento: "CC", NumeroDocumento: doc,
		LugarExpedicion: "Medellín", MontoPagado: dec(180000), MetodoPago: "Efectivo",
		Acompanantes: []dto.AcompananteRequest{
			{Nombre: "Juan Díaz", TipoDocumento: "TI", NumeroDocumento: "99", LugarExpedicion: "Medellín"},
		},
	}
}

func TestViajero_CrearWithCompanions(t *testing.T) {
	svc := NewViajeroService(&memViajeroRepo{})
	usuario := uuid.New()

	v, err := svc.Crear(context.Background(), usuario, viajeroRequest("1020"))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", v.Fecha)
	assert.Equal(t, usuario.String(), v.UsuarioID)
	require.Len(t, v.Acompanantes, 1)
	assert.Equal(t, "Juan Díaz", v.Acompanantes[0].Nombre)
}

func TestViajero_CrearRejectsBadDateAndNegativeAmount(t *testing.T) {
	svc := NewViajeroService(&memViajeroRepo{})

	req := viajeroRequest("1")
	req.Fecha = "10/03/2024"
	_, err := svc.Crear(context.Background(), uuid.New(), req)
	assert.True(t, apierror.Is(err, apierror.KindValidation))

	req = viajeroRequest("1")
	req.MontoPagado = dec(-1)
	_, err = svc.Crear(context.Background(), uuid.New(), req)
	assert.True(t, apierror.Is(err, apierror.KindValidation))
}

func TestViajero_BuscarPorDocumentoReturnsLatestStay(t *testing.T) {
	svc := NewViajeroService(&memViajeroRepo{})
	ctx := context.Background()

	_, err := svc.Crear(ctx, uuid.New(), viajeroRequest("555"))
	require.NoError(t, err)
	req := viajeroRequest("555")
	req.Habitacion = "204"
	_, err = svc.Crear(ctx, uuid.New(), req)
	require.NoError(t, err)

	v, err := svc.BuscarPorDocumento(ctx, " 555 ")
	require.NoError(t, err)
	assert.Equal(t, "204", v.Habitacion)

	_, err = svc.BuscarPorDocumento(ctx, "000")
	assert.True(t, apierror.Is(err, apierror.KindNotFound))

	_, err = svc.BuscarPorDocumento(ctx, "  ")
	assert.True(t, apierror.Is(err, apierror.KindValidation))
}

func TestViajero_AgregarAcompanante(t *testing.T) {
	svc := NewViajeroService(&memViajeroRepo{})
	ctx := context.Background()
	v, err := svc.Crear(ctx, uuid.New(), viajeroRequest("777"))
	require.NoError(t, err)

	out, err := svc.AgregarAcompanante(ctx, uuid.MustParse(v.ID), dto.AcompananteRequest{
		Nombre: "Sara", TipoDocumento: "CC", NumeroDocumento: "42", LugarExpedicion: "Cali",
	})
	require.NoError(t, err)
	assert.Len(t, out.Acompanantes, 2)

	_, err = svc.AgregarAcompanante(ctx, uuid.New(), dto.AcompananteRequest{Nombre: "X"})
	assert.True(t, apierror.Is(err, apierror.KindNotFound))
}

func strPtr(s string) *string { return &s }

func TestViajero_ActualizarKeepsDateArrivalAndCompanions(t *testing.T) {
	repo := &memViajeroRepo{}
	svc := NewViajeroService(repo)
	ctx := context.Background()
	v, err := svc.Crear(ctx, uuid.New(), viajeroRequest("888"))
	require.NoError(t, err)

	noches := 4
	desayuno := true
	out, err := svc.Actualizar(ctx, uuid.MustParse(v.ID), dto.ActualizarViajeroRequest{
		Habitacion:       strPtr(" 305 "),
		NochesReservadas: &noches,
		Desayuno:         &desayuno,
		MontoPagado:      decPtr(360000),
	})
	require.NoError(t, err)

	assert.Equal(t, "305", out.Habitacion)
	assert.Equal(t, 4, out.NochesReservadas)
	assert.True(t, out.Desayuno)
	assert.True(t, dec(360000).Equal(out.MontoPagado))
	// untouched
	assert.Equal(t, "Marta Díaz", out.Nombre)
	assert.Equal(t, "2024-03-10", out.Fecha)
	assert.Equal(t, "15:00", out.HoraLlegada)
	assert.Len(t, out.Acompanantes, 1)

	stored, err := svc.Obtener(ctx, uuid.MustParse(v.ID))
	require.NoError(t, err)
	assert.Equal(t, "305", stored.Habitacion)
	assert.Len(t, stored.Acompanantes, 1)
}

func TestViajero_ActualizarRejects(t *testing.T) {
	svc := NewViajeroService(&memViajeroRepo{})
	ctx := context.Background()
	v, err := svc.Crear(ctx, uuid.New(), viajeroRequest("889"))
	require.NoError(t, err)
	id := uuid.MustParse(v.ID)

	_, err = svc.Actualizar(ctx, uuid.New(), dto.ActualizarViajeroRequest{Nombre: strPtr("Otro")})
	assert.True(t, apierror.Is(err, apierror.KindNotFound))

	_, err = svc.Actualizar(ctx, id, dto.ActualizarViajeroRequest{Nombre: strPtr("   ")})
	assert.True(t, apierror.Is(err, apierror.KindValidation))

	_, err = svc.Actualizar(ctx, id, dto.ActualizarViajeroRequest{MontoPagado: decPtr(-1)})
	assert.True(t, apierror.Is(err, apierror.KindValidation))

	cero := 0
	_, err = svc.Actualizar(ctx, id, dto.ActualizarViajeroRequest{NochesReservadas: &cero})
	assert.True(t, apierror.Is(err, apierror.KindValidation))

	stored, err := svc.Obtener(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Marta Díaz", stored.Nombre)
}

func TestViajero_Eliminar(t *testing.T) {
	repo := &memViajeroRepo{}
	svc := NewViajeroService(repo)
	ctx := context.Background()
	v, err := svc.Crear(ctx, uuid.New(), viajeroRequest("890"))
	require.NoError(t, err)
	id := uuid.MustParse(v.ID)

	require.NoError(t, svc.Eliminar(ctx, id))
	assert.Empty(t, repo.viajeros)

	_, err = svc.Obtener(ctx, id)
	assert.True(t, apierror.Is(err, apierror.KindNotFound))
	assert.True(t, apierror.Is(svc.Eliminar(ctx, id), apierror.KindNotFound))
}
