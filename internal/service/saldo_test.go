package service

import (
	"testing"
	"time"

	"github.com/45061/Hotelregistryapp/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func pago(monto int64, tipo string, at time.Time) model.Pago {
	return model.Pago{Monto: dec(monto), TipoPago: tipo, RegistradoEn: at}
}

func retiro(monto int64, at time.Time) model.Retiro {
	return model.Retiro{Monto: dec(monto), TipoRetiro: MetodoEfectivo, RegistradoEn: at}
}

func cajaAbierta(saldo int64, apertura time.Time) *model.Caja {
	return &model.Caja{Activa: true, SaldoInicial: decPtr(saldo), UltimaApertura: &apertura}
}

func TestCalcularSaldoExistente_TypicalCycle(t *testing.T) {
	caja := cajaAbierta(100000, t0)
	pagos := []model.Pago{
		pago(50000, "Efectivo", t0.Add(time.Minute)),
		pago(20000, "Efectivo", t0.Add(2*time.Minute)),
		pago(30000, "Datafono", t0.Add(3*time.Minute)),
	}
	retiros := []model.Retiro{retiro(10000, t0.Add(4*time.Minute))}

	assert.True(t, dec(160000).Equal(CalcularSaldoExistente(caja, pagos, retiros, MetodoEfectivo)))
}

func TestCalcularSaldoExistente_NoEntries(t *testing.T) {
	caja := cajaAbierta(75000, t0)
	assert.True(t, dec(75000).Equal(CalcularSaldoExistente(caja, nil, nil, MetodoEfectivo)))
}

func TestCalcularSaldoExistente_NilSaldoInicialIsZero(t *testing.T) {
	caja := &model.Caja{}
	pagos := []model.Pago{pago(5000, "Efectivo", t0)}
	assert.True(t, dec(5000).Equal(CalcularSaldoExistente(caja, pagos, nil, MetodoEfectivo)))
}

func TestCalcularSaldoExistente_BoundaryIsStrict(t *testing.T) {
	caja := cajaAbierta(1000, t0)
	pagos := []model.Pago{
		pago(500, "Efectivo", t0),                      // exactly at opening: previous cycle
		pago(700, "Efectivo", t0.Add(-time.Second)),    // before opening
		pago(300, "Efectivo", t0.Add(time.Nanosecond)), // just after
	}
	retiros := []model.Retiro{retiro(200, t0)}

	assert.True(t, dec(1300).Equal(CalcularSaldoExistente(caja, pagos, retiros, MetodoEfectivo)))
}

func TestCalcularSaldoExistente_NonCashExcluded(t *testing.T) {
	caja := cajaAbierta(0, t0)
	pagos := []model.Pago{
		pago(30000, "Datafono", t0.Add(time.Minute)),
		pago(12000, "Transferencia", t0.Add(time.Minute)),
		pago(8000, "efectivo", t0.Add(time.Minute)), // comparison is exact
	}

	assert.True(t, decimal.Zero.Equal(CalcularSaldoExistente(caja, pagos, nil, MetodoEfectivo)))

	totales := TotalesPorMetodo(pagos, caja.UltimaApertura)
	require.Len(t, totales, 3)
	assert.True(t, dec(30000).Equal(totales["Datafono"]))
}

func TestCalcularSaldoExistente_OrderIndependent(t *testing.T) {
	caja := cajaAbierta(10000, t0)
	pagos := []model.Pago{
		pago(100, "Efectivo", t0.Add(3*time.Minute)),
		pago(250, "Datafono", t0.Add(1*time.Minute)),
		pago(400, "Efectivo", t0.Add(2*time.Minute)),
	}
	retiros := []model.Retiro{
		retiro(50, t0.Add(5*time.Minute)),
		retiro(75, t0.Add(4*time.Minute)),
	}
	want := CalcularSaldoExistente(caja, pagos, retiros, MetodoEfectivo)

	reversedPagos := []model.Pago{pagos[2], pagos[1], pagos[0]}
	reversedRetiros := []model.Retiro{retiros[1], retiros[0]}
	assert.True(t, want.Equal(CalcularSaldoExistente(caja, reversedPagos, reversedRetiros, MetodoEfectivo)))
	assert.True(t, dec(10375).Equal(want))
}

func TestCalcularSaldoExistente_ReopenIgnoresPreviousCycle(t *testing.T) {
	caja := cajaAbierta(10000, t0)
	pagos := []model.Pago{pago(5000, "Efectivo", t0.Add(time.Minute))}
	assert.True(t, dec(15000).Equal(CalcularSaldoExistente(caja, pagos, nil, MetodoEfectivo)))

	// close then reopen later with 20000
	reapertura := t0.Add(2 * time.Hour)
	caja.SaldoInicial = decPtr(20000)
	caja.UltimaApertura = &reapertura

	assert.True(t, dec(20000).Equal(CalcularSaldoExistente(caja, pagos, nil, MetodoEfectivo)))
}

func TestCalcularSaldoExistente_CanGoNegative(t *testing.T) {
	caja := cajaAbierta(1000, t0)
	retiros := []model.Retiro{retiro(5000, t0.Add(time.Minute))}
	assert.True(t, dec(-4000).Equal(CalcularSaldoExistente(caja, nil, retiros, MetodoEfectivo)))
}

func TestCalcularSaldoExistente_ConfiguredCashMethod(t *testing.T) {
	caja := cajaAbierta(0, t0)
	pagos := []model.Pago{
		pago(100, "Cash", t0.Add(time.Minute)),
		pago(900, "Efectivo", t0.Add(time.Minute)),
	}
	assert.True(t, dec(100).Equal(CalcularSaldoExistente(caja, pagos, nil, "Cash")))
}

func TestResumirCiclo_ConfiguredCashMethod(t *testing.T) {
	caja := cajaAbierta(1000, t0)
	pagos := []model.Pago{
		pago(100, "Cash", t0.Add(time.Minute)),
		pago(900, "Efectivo", t0.Add(time.Minute)),
	}
	r := ResumirCiclo(caja, pagos, nil, "Cash")
	assert.True(t, dec(100).Equal(r.EfectivoRecibido))
	assert.True(t, dec(900).Equal(r.OtrosRecibido))
	assert.True(t, dec(1100).Equal(r.SaldoExistente))
}

func TestTotalesPorMetodo_NilAperturaIncludesAll(t *testing.T) {
	pagos := []model.Pago{
		pago(100, "Efectivo", t0.Add(-48*time.Hour)),
		pago(200, "Efectivo", t0),
		pago(50, "Datafono", t0),
	}
	totales := TotalesPorMetodo(pagos, nil)
	assert.True(t, dec(300).Equal(totales["Efectivo"]))
	assert.True(t, dec(50).Equal(totales["Datafono"]))
}

func TestResumirCiclo(t *testing.T) {
	caja := cajaAbierta(100000, t0)
	pagos := []model.Pago{
		pago(20000, "Efectivo", t0.Add(2*time.Minute)),
		pago(50000, "Efectivo", t0.Add(1*time.Minute)),
		pago(30000, "Datafono", t0.Add(3*time.Minute)),
		pago(99999, "Efectivo", t0.Add(-time.Hour)), // previous cycle
	}
	retiros := []model.Retiro{
		retiro(10000, t0.Add(4*time.Minute)),
		retiro(1, t0.Add(-time.Hour)),
	}

	r := ResumirCiclo(caja, pagos, retiros, MetodoEfectivo)

	assert.Equal(t, 3, r.CantidadPagos)
	assert.Equal(t, 1, r.CantidadRetiros)
	assert.True(t, dec(70000).Equal(r.EfectivoRecibido))
	assert.True(t, dec(30000).Equal(r.OtrosRecibido))
	assert.True(t, dec(10000).Equal(r.Retirado))
	assert.True(t, dec(160000).Equal(r.SaldoExistente))
	assert.True(t, r.SaldoExistente.Equal(CalcularSaldoExistente(caja, pagos, retiros, MetodoEfectivo)))
	// chronological
	assert.True(t, dec(50000).Equal(r.PagosDelCiclo[0].Monto))
	assert.True(t, dec(30000).Equal(r.PagosDelCiclo[2].Monto))
}
