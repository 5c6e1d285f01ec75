// Package memstore implementa los puertos de persistencia en memoria.
// Sirve para desarrollo (STORE_DRIVER=memory) y como colaborador en los tests de casos de uso.
package memstore

import (
	"context"
	"sync"

	"github.com/jhoicas/orcamentos-api/internal/application/auth"
	"github.com/jhoicas/orcamentos-api/internal/domain"
	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
)

var _ auth.SignupTxRunner = (*Store)(nil)

type membershipKey struct {
	userID    string
	companyID string
}

// tables estado completo; se clona entero al abrir una transacción.
type tables struct {
	companies   map[string]entity.Company
	users       map[string]entity.User
	memberships map[membershipKey]entity.Membership
	plans       map[string]entity.Plan // por code
	subs        map[string]entity.Subscription
	items       map[string]map[string]entity.CatalogItem // company_id -> key
}

func newTables() *tables {
	return &tables{
		companies:   map[string]entity.Company{},
		users:       map[string]entity.User{},
		memberships: map[membershipKey]entity.Membership{},
		plans:       map[string]entity.Plan{},
		subs:        map[string]entity.Subscription{},
		items:       map[string]map[string]entity.CatalogItem{},
	}
}

func (t *tables) clone() *tables {
	c := newTables()
	for k, v := range t.companies {
		c.companies[k] = v
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.memberships {
		c.memberships[k] = v
	}
	for k, v := range t.plans {
		c.plans[k] = v
	}
	for k, v := range t.subs {
		if v.PeriodEnd != nil {
			end := *v.PeriodEnd
			v.PeriodEnd = &end
		}
		c.subs[k] = v
	}
	for company, byKey := range t.items {
		m := make(map[string]entity.CatalogItem, len(byKey))
		for k, v := range byKey {
			m[k] = v
		}
		c.items[company] = m
	}
	return c
}

// db tablas más su candado. Los repos solo conocen un *db: el vivo o el de una transacción.
type db struct {
	mu   sync.Mutex
	t    *tables
	fail error
}

func (d *db) lock(op string) (func(), error) {
	d.mu.Lock()
	if d.fail != nil {
		d.mu.Unlock()
		return nil, domain.NewStoreError(op, d.fail)
	}
	return d.mu.Unlock, nil
}

// Store almacenamiento en memoria con transacciones serializadas.
type Store struct {
	live *db
}

// New crea un store vacío.
func New() *Store {
	return &Store{live: &db{t: newTables()}}
}

// FailWith hace que toda operación posterior devuelva un domain.StoreError con err. nil lo desactiva.
func (s *Store) FailWith(err error) {
	s.live.mu.Lock()
	s.live.fail = err
	s.live.mu.Unlock()
}

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{db: s.live} }

// Memberships repositorio de membresías.
func (s *Store) Memberships() *MembershipRepo { return &MembershipRepo{db: s.live} }

// Companies repositorio de empresas.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{db: s.live} }

// Plans repositorio de planes.
func (s *Store) Plans() *PlanRepo { return &PlanRepo{db: s.live} }

// Subscriptions repositorio de suscripciones.
func (s *Store) Subscriptions() *SubscriptionRepo { return &SubscriptionRepo{db: s.live} }

// Catalog repositorio del catálogo.
func (s *Store) Catalog() *CatalogRepo { return &CatalogRepo{db: s.live} }

// RunSignup ejecuta fn sobre una copia del estado y la publica solo si fn no falla.
// Mientras dura la transacción el resto de operaciones espera.
func (s *Store) RunSignup(ctx context.Context, fn func(repos auth.SignupRepos) error) error {
	unlock, err := s.live.lock("begin transaction")
	if err != nil {
		return err
	}
	defer unlock()

	tx := &db{t: s.live.t.clone()}
	repos := auth.SignupRepos{
		Users:         &UserRepo{db: tx},
		Companies:     &CompanyRepo{db: tx},
		Memberships:   &MembershipRepo{db: tx},
		Plans:         &PlanRepo{db: tx},
		Subscriptions: &SubscriptionRepo{db: tx},
		Catalog:       &CatalogRepo{db: tx},
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return domain.NewStoreError("commit transaction", err)
	}
	s.live.t = tx.t
	return nil
}
