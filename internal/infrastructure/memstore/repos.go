package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/orcamentos-api/internal/domain"
	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/orcamentos-api/internal/domain/repository"
)

var (
	_ repository.UserRepository         = (*UserRepo)(nil)
	_ repository.MembershipRepository   = (*MembershipRepo)(nil)
	_ repository.CompanyRepository      = (*CompanyRepo)(nil)
	_ repository.PlanRepository         = (*PlanRepo)(nil)
	_ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)
)

// UserRepo usuarios en memoria.
type UserRepo struct{ db *db }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	unlock, err := r.db.lock("insert user")
	if err != nil {
		return err
	}
	defer unlock()
	for _, u := range r.db.t.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.db.t.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	unlock, err := r.db.lock("get user by id")
	if err != nil {
		return nil, err
	}
	defer unlock()
	u, ok := r.db.t.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	unlock, err := r.db.lock("get user by email")
	if err != nil {
		return nil, err
	}
	defer unlock()
	for _, u := range r.db.t.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

// MembershipRepo membresías en memoria.
type MembershipRepo struct{ db *db }

func (r *MembershipRepo) Create(_ context.Context, m *entity.Membership) error {
	unlock, err := r.db.lock("insert membership")
	if err != nil {
		return err
	}
	defer unlock()
	k := membershipKey{m.UserID, m.CompanyID}
	if _, dup := r.db.t.memberships[k]; dup {
		return domain.NewStoreError("insert membership", errDuplicate)
	}
	r.db.t.memberships[k] = entity.Membership{UserID: m.UserID, CompanyID: m.CompanyID, Role: m.Role}
	return nil
}

func (r *MembershipRepo) FirstByUser(_ context.Context, userID string) (*entity.Membership, error) {
	unlock, err := r.db.lock("first membership")
	if err != nil {
		return nil, err
	}
	defer unlock()
	var first *entity.Membership
	for k, m := range r.db.t.memberships {
		if k.userID != userID {
			continue
		}
		if first == nil || m.CompanyID < first.CompanyID {
			m := m
			first = &m
		}
	}
	if first != nil {
		first.CompanyName = r.db.t.companies[first.CompanyID].Name
	}
	return first, nil
}

// CompanyRepo empresas en memoria.
type CompanyRepo struct{ db *db }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	unlock, err := r.db.lock("insert company")
	if err != nil {
		return err
	}
	defer unlock()
	if _, dup := r.db.t.companies[c.ID]; dup {
		return domain.NewStoreError("insert company", errDuplicate)
	}
	r.db.t.companies[c.ID] = *c
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	unlock, err := r.db.lock("get company")
	if err != nil {
		return nil, err
	}
	defer unlock()
	c, ok := r.db.t.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// PlanRepo planes en memoria.
type PlanRepo struct{ db *db }

func (r *PlanRepo) GetByCode(_ context.Context, code string) (*entity.Plan, error) {
	unlock, err := r.db.lock("get plan")
	if err != nil {
		return nil, err
	}
	defer unlock()
	p, ok := r.db.t.plans[code]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PlanRepo) List(_ context.Context) ([]*entity.Plan, error) {
	unlock, err := r.db.lock("list plans")
	if err != nil {
		return nil, err
	}
	defer unlock()
	list := make([]*entity.Plan, 0, len(r.db.t.plans))
	for _, p := range r.db.t.plans {
		p := p
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].PriceCents != list[j].PriceCents {
			return list[i].PriceCents < list[j].PriceCents
		}
		return list[i].Code < list[j].Code
	})
	return list, nil
}

func (r *PlanRepo) Seed(_ context.Context, plans []entity.Plan) error {
	unlock, err := r.db.lock("seed plans")
	if err != nil {
		return err
	}
	defer unlock()
	for _, p := range plans {
		if _, ok := r.db.t.plans[p.Code]; ok {
			continue
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		r.db.t.plans[p.Code] = p
	}
	return nil
}

// SubscriptionRepo suscripciones en memoria.
type SubscriptionRepo struct{ db *db }

func (r *SubscriptionRepo) Create(_ context.Context, sub *entity.Subscription) error {
	unlock, err := r.db.lock("insert subscription")
	if err != nil {
		return err
	}
	defer unlock()
	if _, dup := r.db.t.subs[sub.CompanyID]; dup {
		return domain.NewStoreError("insert subscription", errDuplicate)
	}
	r.db.t.subs[sub.CompanyID] = *sub
	return nil
}

// Put reemplaza la suscripción de la empresa (herramientas y tests: cambio de estado o vencimiento).
func (r *SubscriptionRepo) Put(_ context.Context, sub *entity.Subscription) error {
	unlock, err := r.db.lock("put subscription")
	if err != nil {
		return err
	}
	defer unlock()
	r.db.t.subs[sub.CompanyID] = *sub
	return nil
}

func (r *SubscriptionRepo) GetInfo(_ context.Context, companyID string) (*entity.SubscriptionInfo, error) {
	unlock, err := r.db.lock("get subscription")
	if err != nil {
		return nil, err
	}
	defer unlock()
	s, ok := r.db.t.subs[companyID]
	if !ok {
		return nil, nil
	}
	info := &entity.SubscriptionInfo{Subscription: s}
	for _, p := range r.db.t.plans {
		if p.ID == s.PlanID {
			info.PlanCode, info.PlanName, info.MaxUsers = p.Code, p.Name, p.MaxUsers
			break
		}
	}
	return info, nil
}
