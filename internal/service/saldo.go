package service

import (
	"sort"
	"time"

	"github.com/45061/Hotelregistryapp/internal/model"

	"github.com/shopspring/decimal"
)

// MetodoEfectivo is the payment method counted as cash on hand.
const MetodoEfectivo = "Efectivo"

// ── Saldo existente ───────────────────────────────────────────────────────────
// Single authority for the cash-on-hand arithmetic. Used by the live box
// detail and by Cerrar; the reports only need TotalesPorMetodo.

// enCiclo reports whether an entry recorded at t belongs to the cycle that
// started at apertura. The boundary is strict: an entry recorded exactly at
// the opening instant belongs to the previous cycle.
func enCiclo(t time.Time, apertura *time.Time) bool {
	return apertura == nil || t.After(*apertura)
}

// CalcularSaldoExistente returns SaldoInicial + cash pagos - all retiros,
// counting only entries recorded after caja.UltimaApertura. A pago is cash
// when its TipoPago equals metodoEfectivo. Retiros carry no method filter.
func CalcularSaldoExistente(caja *model.Caja, pagos []model.Pago, retiros []model.Retiro, metodoEfectivo string) decimal.Decimal {
	saldo := decimal.Zero
	if caja.SaldoInicial != nil {
		saldo = *caja.SaldoInicial
	}
	for _, p := range pagos {
		if p.TipoPago == metodoEfectivo && enCiclo(p.RegistradoEn, caja.UltimaApertura) {
			saldo = saldo.Add(p.Monto)
		}
	}
	for _, r := range retiros {
		if enCiclo(r.RegistradoEn, caja.UltimaApertura) {
			saldo = saldo.Sub(r.Monto)
		}
	}
	return saldo
}

// TotalesPorMetodo sums pagos recorded after apertura grouped by TipoPago.
// A nil apertura includes every entry.
func TotalesPorMetodo(pagos []model.Pago, apertura *time.Time) map[string]decimal.Decimal {
	totales := make(map[string]decimal.Decimal)
	for _, p := range pagos {
		if !enCiclo(p.RegistradoEn, apertura) {
			continue
		}
		totales[p.TipoPago] = totales[p.TipoPago].Add(p.Monto)
	}
	return totales
}

// ResumenCiclo is the per-cycle breakdown shown on the box detail and stored at close.
type ResumenCiclo struct {
	SaldoInicial     decimal.Decimal
	EfectivoRecibido decimal.Decimal
	OtrosRecibido    decimal.Decimal
	Retirado         decimal.Decimal
	SaldoExistente   decimal.Decimal
	TotalesPorMetodo map[string]decimal.Decimal
	CantidadPagos    int
	CantidadRetiros  int
	PagosDelCiclo    []model.Pago
	RetirosDelCiclo  []model.Retiro
}

// ResumirCiclo filters the entries of the current cycle and computes every
// figure of the box detail. SaldoExistente always equals CalcularSaldoExistente.
func ResumirCiclo(caja *model.Caja, pagos []model.Pago, retiros []model.Retiro, metodoEfectivo string) ResumenCiclo {
	r := ResumenCiclo{
		SaldoInicial:     decimal.Zero,
		EfectivoRecibido: decimal.Zero,
		OtrosRecibido:    decimal.Zero,
		Retirado:         decimal.Zero,
		TotalesPorMetodo: TotalesPorMetodo(pagos, caja.UltimaApertura),
		PagosDelCiclo:    []model.Pago{},
		RetirosDelCiclo:  []model.Retiro{},
	}
	if caja.SaldoInicial != nil {
		r.SaldoInicial = *caja.SaldoInicial
	}
	for _, p := range pagos {
		if !enCiclo(p.RegistradoEn, caja.UltimaApertura) {
			continue
		}
		r.PagosDelCiclo = append(r.PagosDelCiclo, p)
		if p.TipoPago == metodoEfectivo {
			r.EfectivoRecibido = r.EfectivoRecibido.Add(p.Monto)
		} else {
			r.OtrosRecibido = r.OtrosRecibido.Add(p.Monto)
		}
	}
	for _, rt := range retiros {
		if !enCiclo(rt.RegistradoEn, caja.UltimaApertura) {
			continue
		}
		r.RetirosDelCiclo = append(r.RetirosDelCiclo, rt)
		r.Retirado = r.Retirado.Add(rt.Monto)
	}
	sort.SliceStable(r.PagosDelCiclo, func(i, j int) bool {
		return r.PagosDelCiclo[i].RegistradoEn.Before(r.PagosDelCiclo[j].RegistradoEn)
	})
	sort.SliceStable(r.RetirosDelCiclo, func(i, j int) bool {
		return r.RetirosDelCiclo[i].RegistradoEn.Before(r.RetirosDelCiclo[j].RegistradoEn)
	})
	r.CantidadPagos = len(r.PagosDelCiclo)
	r.CantidadRetiros = len(r.RetirosDelCiclo)
	r.SaldoExistente = CalcularSaldoExistente(caja, pagos, retiros, metodoEfectivo)
	return r
}
