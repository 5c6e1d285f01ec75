package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/orcamentos-api/internal/application/auth"
	"github.com/jhoicas/orcamentos-api/internal/application/dto"
	"github.com/jhoicas/orcamentos-api/internal/domain"
	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/orcamentos-api/internal/domain/repository"
)

type brokenSubscriptions struct {
	repository.SubscriptionRepository
}

func (b *brokenSubscriptions) Create(context.Context, *entity.Subscription) error {
	return domain.NewStoreError("create subscription", errors.New("conexión perdida"))
}

type subscriptionFault struct {
	s    *Store
	seen func(t *tables)
}

func (f subscriptionFault) RunSignup(ctx context.Context, fn func(auth.SignupRepos) error) error {
	return f.s.RunSignup(ctx, func(r auth.SignupRepos) error {
		r.Subscriptions = &brokenSubscriptions{SubscriptionRepository: r.Subscriptions}
		err := fn(r)
		f.seen(r.Users.(*UserRepo).db.t)
		return err
	})
}

func TestRunSignup_FallaEnSuscripcionNoDejaFilas(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Plans().Seed(ctx, entity.DefaultPlans()))

	var inTx *tables
	uc := auth.NewAuthUseCase(auth.Deps{
		Users:         s.Users(),
		Memberships:   s.Memberships(),
		Subscriptions: s.Subscriptions(),
		Tx:            subscriptionFault{s: s, seen: func(t *tables) { inTx = t }},
	}, auth.JWTConfig{Secret: "x", ExpMinutes: 5},
		auth.BillingConfig{TrialDays: 7, DefaultPlan: entity.PlanBasic},
	).WithHashCost(bcrypt.MinCost)

	_, err := uc.CreateTenantWithOwner(ctx, dto.SignupRequest{
		Email: "dono@acme.com", Name: "Dono", Password: "senha-forte", CompanyName: "ACME",
	})
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)

	// Dentro de la transacción la falla llegó después de usuario, empresa y membresía.
	require.NotNil(t, inTx)
	assert.Len(t, inTx.users, 1)
	assert.Len(t, inTx.companies, 1)
	assert.Len(t, inTx.memberships, 1)
	assert.Empty(t, inTx.subs)

	live := s.live.t
	assert.Empty(t, live.users)
	assert.Empty(t, live.companies)
	assert.Empty(t, live.memberships)
	assert.Empty(t, live.subs)
	assert.Empty(t, live.items)
	assert.Len(t, live.plans, len(entity.DefaultPlans()))
}
