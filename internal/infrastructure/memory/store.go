// Package memory implementa los puertos de repositorio en memoria.
// Sirve para tests y para levantar la API sin PostgreSQL (APP_STORAGE=memory).
package memory

import (
	"context"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/luanmenezes0/lift2/internal/application/delivery"
	"github.com/luanmenezes0/lift2/internal/domain"
	"github.com/luanmenezes0/lift2/internal/domain/entity"
	"github.com/luanmenezes0/lift2/internal/domain/repository"
)

var (
	_ repository.UserRepository         = (*Store)(nil)
	_ repository.ClientRepository       = (*ClientRepo)(nil)
	_ repository.BuildingSiteRepository = (*BuildingSiteRepo)(nil)
	_ repository.RentableRepository     = (*RentableRepo)(nil)
	_ repository.DeliveryRepository     = (*DeliveryRepo)(nil)
	_ delivery.TxRunner                 = (*Store)(nil)
)

// Store guarda todas las entidades. Los repos son vistas sobre el mismo Store.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	users      map[string]entity.User
	clients    map[int64]entity.Client
	sites      map[int64]entity.BuildingSite
	rentables  map[int64]entity.Rentable
	deliveries map[int64]entity.Delivery
	seq        int64
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		users:      map[string]entity.User{},
		clients:    map[int64]entity.Client{},
		sites:      map[int64]entity.BuildingSite{},
		rentables:  map[int64]entity.Rentable{},
		deliveries: map[int64]entity.Delivery{},
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// Clients, Sites, Rentables y Deliveries devuelven los repos sobre este Store.
func (s *Store) Clients() *ClientRepo             { return &ClientRepo{s} }
func (s *Store) Sites() *BuildingSiteRepo         { return &BuildingSiteRepo{s} }
func (s *Store) Rentables() *RentableRepo         { return &RentableRepo{s} }
func (s *Store) Deliveries() *DeliveryRepo        { return &DeliveryRepo{s} }
func (s *Store) Users() repository.UserRepository { return s }

// Run serializa las transacciones y restaura obras y entregas si fn falla.
// La secuencia de ids no retrocede: un id entregado no se reutiliza.
func (s *Store) Run(ctx context.Context, fn func(
	deliveryRepo repository.DeliveryRepository,
	siteRepo repository.BuildingSiteRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	sites, deliveries := maps.Clone(s.sites), maps.Clone(s.deliveries)
	s.mu.Unlock()

	if err := fn(s.Deliveries(), s.Sites()); err != nil {
		s.mu.Lock()
		s.sites, s.deliveries = sites, deliveries
		s.mu.Unlock()
		return err
	}
	return nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

func (s *Store) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	s.users[u.ID] = *u
	return nil
}

func (s *Store) GetByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

// ── Clients ───────────────────────────────────────────────────────────────────

// ClientRepo repositorio de clientes en memoria.
type ClientRepo struct{ s *Store }

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.duplicateRegistration(c) {
		return domain.ErrDuplicate
	}
	c.ID = r.s.nextID()
	r.s.clients[c.ID] = *c
	return nil
}

func (r *ClientRepo) duplicateRegistration(c *entity.Client) bool {
	if c.RegistrationNumber == "" {
		return false
	}
	for _, other := range r.s.clients {
		if other.ID != c.ID && other.RegistrationNumber == c.RegistrationNumber {
			return true
		}
	}
	return false
}

func (r *ClientRepo) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[c.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.duplicateRegistration(c) {
		return domain.ErrDuplicate
	}
	r.s.clients[c.ID] = *c
	return nil
}

func (r *ClientRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[id]; !ok {
		return domain.ErrNotFound
	}
	for _, site := range r.s.sites {
		if site.ClientID == id {
			return domain.ErrHasDependents
		}
	}
	delete(r.s.clients, id)
	return nil
}

func (r *ClientRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.Client, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Client
	for _, c := range r.s.clients {
		if contains(c.Name, f.Search) {
			c := c
			all = append(all, &c)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	return page(all, f.Limit, f.Offset), len(all), nil
}

// ── Building sites ────────────────────────────────────────────────────────────

// BuildingSiteRepo repositorio de obras en memoria.
type BuildingSiteRepo struct{ s *Store }

func (r *BuildingSiteRepo) Create(_ context.Context, site *entity.BuildingSite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[site.ClientID]; !ok {
		return domain.ErrNotFound
	}
	site.ID = r.s.nextID()
	site.LedgerVersion = 0
	r.s.sites[site.ID] = *site
	return nil
}

func (r *BuildingSiteRepo) GetByID(_ context.Context, id int64) (*entity.BuildingSite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	site, ok := r.s.sites[id]
	if !ok {
		return nil, nil
	}
	return &site, nil
}

func (r *BuildingSiteRepo) Update(_ context.Context, site *entity.BuildingSite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.sites[site.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Name, cur.Address, cur.UpdatedAt = site.Name, site.Address, site.UpdatedAt
	r.s.sites[site.ID] = cur
	return nil
}

func (r *BuildingSiteRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sites[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.sites, id)
	for did, d := range r.s.deliveries {
		if d.BuildingSiteID == id {
			delete(r.s.deliveries, did)
		}
	}
	return nil
}

func (r *BuildingSiteRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.BuildingSite, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.BuildingSite
	for _, site := range r.s.sites {
		if contains(site.Name, f.Search) {
			site := site
			all = append(all, &site)
		}
	}
	sortSites(all)
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (r *BuildingSiteRepo) ListByClient(_ context.Context, clientID int64) ([]*entity.BuildingSite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.BuildingSite
	for _, site := range r.s.sites {
		if site.ClientID == clientID {
			site := site
			out = append(out, &site)
		}
	}
	sortSites(out)
	return out, nil
}

func (r *BuildingSiteRepo) BumpLedgerVersion(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	site, ok := r.s.sites[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	site.LedgerVersion++
	r.s.sites[id] = site
	return site.LedgerVersion, nil
}

func sortSites(list []*entity.BuildingSite) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
}

// ── Rentables ─────────────────────────────────────────────────────────────────

// RentableRepo catálogo en memoria.
type RentableRepo struct{ s *Store }

func (r *RentableRepo) Create(_ context.Context, e *entity.Rentable) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.nextID()
	r.s.rentables[e.ID] = *e
	return nil
}

func (r *RentableRepo) GetByID(_ context.Context, id int64) (*entity.Rentable, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.rentables[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *RentableRepo) Update(_ context.Context, e *entity.Rentable) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rentables[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.rentables[e.ID] = *e
	return nil
}

func (r *RentableRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rentables[id]; !ok {
		return domain.ErrNotFound
	}
	for _, d := range r.s.deliveries {
		if d.RentableID == id {
			return domain.ErrHasDependents
		}
	}
	delete(r.s.rentables, id)
	return nil
}

func (r *RentableRepo) List(_ context.Context) ([]*entity.Rentable, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := slices.Sorted(maps.Keys(r.s.rentables))
	out := make([]*entity.Rentable, 0, len(ids))
	for _, id := range ids {
		e := r.s.rentables[id]
		out = append(out, &e)
	}
	return out, nil
}

// ── Deliveries ────────────────────────────────────────────────────────────────

// DeliveryRepo líneas de remesa en memoria.
type DeliveryRepo struct{ s *Store }

func (r *DeliveryRepo) CreateBatch(_ context.Context, lines []*entity.Delivery) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range lines {
		if _, ok := r.s.sites[d.BuildingSiteID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := r.s.rentables[d.RentableID]; !ok {
			return domain.ErrNotFound
		}
	}
	for _, d := range lines {
		d.ID = r.s.nextID()
		r.s.deliveries[d.ID] = *d
	}
	return nil
}

func (r *DeliveryRepo) GetByID(_ context.Context, id int64) (*entity.Delivery, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.deliveries[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *DeliveryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.deliveries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.deliveries, id)
	return nil
}

func (r *DeliveryRepo) ListBySite(ctx context.Context, siteID int64, limit, offset int) ([]*entity.Delivery, int, error) {
	all, _ := r.ListAllBySite(ctx, siteID)
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].ID > all[j].ID
	})
	return page(all, limit, offset), len(all), nil
}

func (r *DeliveryRepo) ListAllBySite(_ context.Context, siteID int64) ([]*entity.Delivery, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Delivery
	for _, d := range r.s.deliveries {
		if d.BuildingSiteID == siteID {
			d := d
			out = append(out, &d)
		}
	}
	return out, nil
}

func contains(name, search string) bool {
	search = strings.TrimSpace(search)
	return search == "" || strings.Contains(strings.ToLower(name), strings.ToLower(search))
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
