package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/45061/Hotelregistryapp/internal/model"
	"github.com/45061/Hotelregistryapp/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory CajaRepository ─────────────────────────────────────────────────

type memCajaRepo struct {
	mu      sync.Mutex
	cajas   map[uuid.UUID]*model.Caja
	pagos   []model.Pago
	retiros []model.Retiro
	txCalls int
}

var _ repository.CajaRepository = (*memCajaRepo)(nil)

func newMemCajaRepo() *memCajaRepo {
	return &memCajaRepo{cajas: make(map[uuid.UUID]*model.Caja)}
}

func (r *memCajaRepo) Create(_ context.Context, c *model.Caja) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.cajas[c.ID] = &cp
	return nil
}

func (r *memCajaRepo) get(id uuid.UUID) (*model.Caja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cajas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCajaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caja, error) {
	return r.get(id)
}

func (r *memCajaRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*model.Caja, error) {
	return r.get(id)
}

func (r *memCajaRepo) List(_ context.Context) ([]model.Caja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Caja, 0, len(r.cajas))
	for _, c := range r.cajas {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCajaRepo) FindActivaPorUsuario(_ context.Context, usuarioID uuid.UUID) (*model.Caja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cajas {
		if c.Activa && c.UsuarioAperturaID != nil && *c.UsuarioAperturaID == usuarioID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCajaRepo) UpdateDatos(_ context.Context, id uuid.UUID, nombre string, descripcion *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cajas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Nombre = nombre
	c.Descripcion = descripcion
	return nil
}

func (r *memCajaRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cajas[id]
	if !ok || c.Activa {
		return gorm.ErrRecordNotFound
	}
	delete(r.cajas, id)
	return nil
}

func (r *memCajaRepo) MarcarAbierta(_ context.Context, id uuid.UUID, saldoInicial decimal.Decimal, usuarioID uuid.UUID, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cajas[id]
	if !ok || c.Activa {
		return false, nil
	}
	c.Activa = true
	c.SaldoInicial = &saldoInicial
	c.UltimaApertura = &at
	c.UsuarioAperturaID = &usuarioID
	c.VecesAbierta++
	return true, nil
}

func (r *memCajaRepo) MarcarCerrada(_ context.Context, id uuid.UUID, saldoCierre decimal.Decimal, usuarioID uuid.UUID, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cajas[id]
	if !ok || !c.Activa {
		return false, nil
	}
	c.Activa = false
	c.SaldoUltimoCierre = &saldoCierre
	c.UltimoCierre = &at
	c.UsuarioCierreID = &usuarioID
	return true, nil
}

func (r *memCajaRepo) Transaction(_ context.Context, fn func(repo repository.CajaRepository) error) error {
	r.mu.Lock()
	r.txCalls++
	r.mu.Unlock()
	return fn(r)
}

func (r *memCajaRepo) CreatePago(_ context.Context, p *model.Pago) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pagos = append(r.pagos, *p)
	return nil
}

func (r *memCajaRepo) CreateRetiro(_ context.Context, rt *model.Retiro) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	r.retiros = append(r.retiros, *rt)
	return nil
}

func (r *memCajaRepo) ListPagos(_ context.Context, cajaID uuid.UUID, desde *time.Time) ([]model.Pago, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Pago
	for _, p := range r.pagos {
		if p.CajaID == cajaID && (desde == nil || p.RegistradoEn.After(*desde)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memCajaRepo) ListRetiros(_ context.Context, cajaID uuid.UUID, desde *time.Time) ([]model.Retiro, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Retiro
	for _, rt := range r.retiros {
		if rt.CajaID == cajaID && (desde == nil || rt.RegistradoEn.After(*desde)) {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (r *memCajaRepo) CountMovimientos(_ context.Context, cajaID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.pagos {
		if p.CajaID == cajaID {
			n++
		}
	}
	for _, rt := range r.retiros {
		if rt.CajaID == cajaID {
			n++
		}
	}
	return n, nil
}

// ── In-memory UsuarioRepository ──────────────────────────────────────────────

type memUsuarioRepo struct {
	mu       sync.Mutex
	usuarios map[uuid.UUID]*model.Usuario
}

var _ repository.UsuarioRepository = (*memUsuarioRepo)(nil)

func newMemUsuarioRepo(us ...*model.Usuario) *memUsuarioRepo {
	r := &memUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
	for _, u := range us {
		_ = r.Create(context.Background(), u)
	}
	return r
}

func (r *memUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.usuarios {
		if strings.EqualFold(existing.Email, u.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.usuarios[u.ID] = &cp
	return nil
}

func (r *memUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.usuarios {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUsuarioRepo) UpdatePermisos(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.usuarios[u.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Autorizado = u.Autorizado
	stored.EsAdmin = u.EsAdmin
	stored.RolCaja = u.RolCaja
	return nil
}

// ── Clock ────────────────────────────────────────────────────────────────────

// fakeClock advances one second on every read so each entry gets a distinct
// timestamp after the opening.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// ── In-memory HabitacionRepository ───────────────────────────────────────────

type memHabitacionRepo struct {
	habitaciones []model.Habitacion
}

var _ repository.HabitacionRepository = (*memHabitacionRepo)(nil)

func (r *memHabitacionRepo) Create(_ context.Context, h *model.Habitacion) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.habitaciones = append(r.habitaciones, *h)
	return nil
}

func (r *memHabitacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Habitacion, error) {
	for _, h := range r.habitaciones {
		if h.ID == id {
			return &h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memHabitacionRepo) FindByNumero(_ context.Context, numero string) (*model.Habitacion, error) {
	for _, h := range r.habitaciones {
		if h.Numero == numero {
			return &h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memHabitacionRepo) List(_ context.Context, hotel string) ([]model.Habitacion, error) {
	var out []model.Habitacion
	for _, h := range r.habitaciones {
		if hotel == "" || h.Hotel == hotel {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *memHabitacionRepo) Update(_ context.Context, h *model.Habitacion) error {
	for i := range r.habitaciones {
		if r.habitaciones[i].ID == h.ID {
			r.habitaciones[i] = *h
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── In-memory ViajeroRepository ──────────────────────────────────────────────

type memViajeroRepo struct {
	viajeros []model.Viajero
	seq      int
}

var _ repository.ViajeroRepository = (*memViajeroRepo)(nil)

func (r *memViajeroRepo) Create(_ context.Context, v *model.Viajero) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.seq++
	v.CreatedAt = time.Date(2024, 1, 1, 0, 0, r.seq, 0, time.UTC)
	for i := range v.Acompanantes {
		v.Acompanantes[i].ID = uuid.New()
		v.Acompanantes[i].ViajeroID = v.ID
	}
	r.viajeros = append(r.viajeros, *v)
	return nil
}

func (r *memViajeroRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Viajero, error) {
	for _, v := range r.viajeros {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memViajeroRepo) FindUltimoPorDocumento(_ context.Context, doc string) (*model.Viajero, error) {
	var last *model.Viajero
	for i := range r.viajeros {
		v := r.viajeros[i]
		if v.NumeroDocumento == doc && (last == nil || v.CreatedAt.After(last.CreatedAt)) {
			last = &v
		}
	}
	if last == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return last, nil
}

func (r *memViajeroRepo) List(_ context.Context, filter repository.ViajeroFilter) ([]model.Viajero, int64, error) {
	var out []model.Viajero
	for _, v := range r.viajeros {
		if filter.Sede == "" || v.Sede == filter.Sede {
			out = append(out, v)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memViajeroRepo) ListEntre(_ context.Context, desde, hasta time.Time, sede string) ([]model.Viajero, error) {
	var out []model.Viajero
	for _, v := range r.viajeros {
		if enRango(v.Fecha, desde, hasta) && (sede == "" || v.Sede == sede) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *memViajeroRepo) CreateAcompanante(_ context.Context, a *model.Acompanante) error {
	for i := range r.viajeros {
		if r.viajeros[i].ID == a.ViajeroID {
			a.ID = uuid.New()
			r.viajeros[i].Acompanantes = append(r.viajeros[i].Acompanantes, *a)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memViajeroRepo) Update(_ context.Context, v *model.Viajero) error {
	for i := range r.viajeros {
		if r.viajeros[i].ID == v.ID {
			acompanantes := r.viajeros[i].Acompanantes
			r.viajeros[i] = *v
			r.viajeros[i].Acompanantes = acompanantes
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memViajeroRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.viajeros {
		if r.viajeros[i].ID == id {
			r.viajeros = append(r.viajeros[:i], r.viajeros[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── In-memory TransaccionRepository ──────────────────────────────────────────

type memTransaccionRepo struct {
	medios        []model.MedioPago
	transacciones []model.TransaccionCaja
}

var _ repository.TransaccionRepository = (*memTransaccionRepo)(nil)

func (r *memTransaccionRepo) ListMedios(context.Context) ([]model.MedioPago, error) {
	out := append([]model.MedioPago(nil), r.medios...)
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *memTransaccionRepo) MedioPorNombre(_ context.Context, nombre string) (*model.MedioPago, error) {
	for _, m := range r.medios {
		if m.Nombre == nombre {
			return &m, nil
		}
	}
	m := model.MedioPago{ID: uuid.New(), Nombre: nombre}
	r.medios = append(r.medios, m)
	return &m, nil
}

func (r *memTransaccionRepo) Create(_ context.Context, t *model.TransaccionCaja) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.transacciones = append(r.transacciones, *t)
	return nil
}

func (r *memTransaccionRepo) List(_ context.Context, f repository.TransaccionFilter) ([]model.TransaccionCaja, error) {
	var out []model.TransaccionCaja
	for _, t := range r.transacciones {
		switch {
		case t.UsuarioID != f.UsuarioID,
			f.Tipo != "" && t.Tipo != f.Tipo,
			f.Habitacion != "" && t.Habitacion != f.Habitacion,
			f.MedioPago != "" && (t.MedioPago == nil || t.MedioPago.Nombre != f.MedioPago),
			f.Desde != nil && t.FechaHora.Before(*f.Desde),
			f.Hasta != nil && t.FechaHora.After(*f.Hasta):
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaHora.After(out[j].FechaHora) })
	return out, nil
}
