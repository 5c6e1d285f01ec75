package auth_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/orcamentos-api/internal/application/auth"
	"github.com/jhoicas/orcamentos-api/internal/application/dto"
	"github.com/jhoicas/orcamentos-api/internal/domain"
	"github.com/jhoicas/orcamentos-api/internal/domain/catalog"
	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/orcamentos-api/internal/domain/repository"
	"github.com/jhoicas/orcamentos-api/internal/infrastructure/memstore"
	"github.com/jhoicas/orcamentos-api/pkg/jwt"
	"github.com/jhoicas/orcamentos-api/pkg/logger"
)

const secret = "test-secret"

func newUseCase(t *testing.T, tx auth.SignupTxRunner, store *memstore.Store) *auth.AuthUseCase {
	t.Helper()
	require.NoError(t, store.Plans().Seed(context.Background(), entity.DefaultPlans()))
	if tx == nil {
		tx = store
	}
	return auth.NewAuthUseCase(auth.Deps{
		Users:         store.Users(),
		Memberships:   store.Memberships(),
		Subscriptions: store.Subscriptions(),
		Tx:            tx,
	}, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"},
		auth.BillingConfig{TrialDays: 7, DefaultPlan: entity.PlanBasic},
	).WithHashCost(bcrypt.MinCost)
}

func signupReq() dto.SignupRequest {
	return dto.SignupRequest{
		Email:       "  Dono@ACME.com ",
		Name:        "Dono",
		Password:    "senha-forte",
		CompanyName: "ACME Segurança",
		Contact:     "+55 11 99999-0000",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Hash / Verify
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifyPassword(t *testing.T) {
	uc := newUseCase(t, nil, memstore.New())
	digest, err := uc.HashPassword("segredo")
	require.NoError(t, err)

	assert.True(t, auth.VerifyPassword(digest, "segredo"))
	assert.False(t, auth.VerifyPassword(digest, "outro"))
	assert.False(t, auth.VerifyPassword("no-es-bcrypt", "segredo"))
	assert.False(t, auth.VerifyPassword("", ""))
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta de empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTenantWithOwner_CreatesEverything(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := newUseCase(t, nil, store)

	s, err := uc.CreateTenantWithOwner(ctx, signupReq())
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, s.Role)

	user, err := store.Users().GetByEmail(ctx, "dono@acme.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, "senha-forte", user.PasswordHash)

	st, err := uc.SubscriptionStatus(ctx, s.CompanyID)
	require.NoError(t, err)
	assert.True(t, st.Active)
	assert.Equal(t, "trial", st.Status)
	assert.Equal(t, entity.PlanBasic, st.PlanCode)
	assert.Equal(t, 1, st.MaxUsers)
	require.NotNil(t, st.PeriodEnd)

	items, err := store.Catalog().List(ctx, s.CompanyID, entity.CatalogFilter{})
	require.NoError(t, err)
	assert.Len(t, items, len(catalog.DefaultItems()))
}

func TestCreateTenantWithOwner_BlankFields(t *testing.T) {
	cases := []struct {
		field string
		blank func(*dto.SignupRequest)
	}{
		{"email", func(r *dto.SignupRequest) { r.Email = "  " }},
		{"name", func(r *dto.SignupRequest) { r.Name = "" }},
		{"password", func(r *dto.SignupRequest) { r.Password = "" }},
		{"company_name", func(r *dto.SignupRequest) { r.CompanyName = " \t" }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			uc := newUseCase(t, nil, memstore.New())
			req := signupReq()
			tc.blank(&req)

			_, err := uc.CreateTenantWithOwner(context.Background(), req)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestCreateTenantWithOwner_ContactOpcional(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := newUseCase(t, nil, store)
	req := signupReq()
	req.Contact = "   "

	s, err := uc.CreateTenantWithOwner(ctx, req)
	require.NoError(t, err)

	company, err := store.Companies().GetByID(ctx, s.CompanyID)
	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, "", company.Contact)
}

func TestCreateTenantWithOwner_LogConUnSoloComponent(t *testing.T) {
	store := memstore.New()
	require.NoError(t, store.Plans().Seed(context.Background(), entity.DefaultPlans()))
	var buf bytes.Buffer
	uc := auth.NewAuthUseCase(auth.Deps{
		Users:         store.Users(),
		Memberships:   store.Memberships(),
		Subscriptions: store.Subscriptions(),
		Tx:            store,
		Log:           logger.New(logger.Config{Env: "production", Level: "info", Output: &buf}),
	}, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"},
		auth.BillingConfig{TrialDays: 7, DefaultPlan: entity.PlanBasic},
	).WithHashCost(bcrypt.MinCost)

	_, err := uc.CreateTenantWithOwner(context.Background(), signupReq())
	require.NoError(t, err)

	line := buf.String()
	require.Contains(t, line, "empresa creada")
	assert.Equal(t, 1, strings.Count(line, `"component":"auth"`), line)
}

func TestCreateTenantWithOwner_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t, nil, memstore.New())
	_, err := uc.CreateTenantWithOwner(ctx, signupReq())
	require.NoError(t, err)

	req := signupReq()
	req.Email = "dono@acme.com"
	_, err = uc.CreateTenantWithOwner(ctx, req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// failingCatalog falla en la n-ésima escritura para simular una caída a mitad del alta.
type failingCatalog struct {
	repository.CatalogRepository
	left int
}

func (f *failingCatalog) Upsert(ctx context.Context, item *entity.CatalogItem) error {
	if f.left == 0 {
		return domain.NewStoreError("upsert catalog item", errors.New("disco lleno"))
	}
	f.left--
	return f.CatalogRepository.Upsert(ctx, item)
}

// failingSubscriptions falla al crear la suscripción: usuario, empresa y membresía ya están escritos.
type failingSubscriptions struct {
	repository.SubscriptionRepository
}

func (failingSubscriptions) Create(context.Context, *entity.Subscription) error {
	return domain.NewStoreError("create subscription", errors.New("conexión perdida"))
}

type faultyRunner struct {
	store  *memstore.Store
	inject func(*auth.SignupRepos)
}

func (r faultyRunner) RunSignup(ctx context.Context, fn func(auth.SignupRepos) error) error {
	return r.store.RunSignup(ctx, func(repos auth.SignupRepos) error {
		r.inject(&repos)
		return fn(repos)
	})
}

func TestCreateTenantWithOwner_IsAtomic(t *testing.T) {
	cases := []struct {
		name   string
		inject func(*auth.SignupRepos)
	}{
		{"falla al crear la suscripción", func(r *auth.SignupRepos) {
			r.Subscriptions = failingSubscriptions{r.Subscriptions}
		}},
		{"falla a mitad del catálogo", func(r *auth.SignupRepos) {
			r.Catalog = &failingCatalog{CatalogRepository: r.Catalog, left: 3}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			store := memstore.New()
			uc := newUseCase(t, faultyRunner{store: store, inject: tc.inject}, store)

			_, err := uc.CreateTenantWithOwner(ctx, signupReq())
			require.ErrorIs(t, err, domain.ErrStoreUnavailable)

			user, err := store.Users().GetByEmail(ctx, "dono@acme.com")
			require.NoError(t, err)
			assert.Nil(t, user, "no debe quedar el usuario")

			// El mismo email vuelve a estar libre.
			ok := newUseCase(t, nil, store)
			_, err = ok.CreateTenantWithOwner(ctx, signupReq())
			assert.NoError(t, err)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t, nil, memstore.New())
	created, err := uc.CreateTenantWithOwner(ctx, signupReq())
	require.NoError(t, err)

	s, companyName, err := uc.Authenticate(ctx, "DONO@acme.com ", "senha-forte")
	require.NoError(t, err)
	assert.Equal(t, *created, *s)
	assert.Equal(t, "ACME Segurança", companyName)

	_, _, err = uc.Authenticate(ctx, "dono@acme.com", "errada")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, _, err = uc.Authenticate(ctx, "ninguem@acme.com", "senha-forte")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticate_FirstMembershipByCompanyID(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := newUseCase(t, nil, store)
	created, err := uc.CreateTenantWithOwner(ctx, signupReq())
	require.NoError(t, err)

	// Segunda empresa con id menor: pasa a ser la primera.
	require.NoError(t, store.Companies().Create(ctx, &entity.Company{ID: "0000-first", Name: "Primeira"}))
	require.NoError(t, store.Memberships().Create(ctx, &entity.Membership{
		UserID: created.UserID, CompanyID: "0000-first", Role: entity.RoleAdmin,
	}))

	s, name, err := uc.Authenticate(ctx, "dono@acme.com", "senha-forte")
	require.NoError(t, err)
	assert.Equal(t, "0000-first", s.CompanyID)
	assert.Equal(t, "Primeira", name)
}

func TestAuthenticate_NoMembership(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := newUseCase(t, nil, store)
	digest, err := uc.HashPassword("senha")
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "u1", Email: "solo@x.com", PasswordHash: digest}))

	_, _, err = uc.Authenticate(ctx, "solo@x.com", "senha")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_IssuesToken(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t, nil, memstore.New())
	_, err := uc.CreateTenantWithOwner(ctx, signupReq())
	require.NoError(t, err)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "dono@acme.com", Password: "senha-forte"})
	require.NoError(t, err)

	uid, cid, role, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Session.UserID, uid)
	assert.Equal(t, resp.Session.CompanyID, cid)
	assert.Equal(t, entity.RoleAdmin, role)
}

// ──────────────────────────────────────────────────────────────────────────────
// Suscripción
// ──────────────────────────────────────────────────────────────────────────────

func TestSubscriptionStatus_NoRow(t *testing.T) {
	uc := newUseCase(t, nil, memstore.New())
	st, err := uc.SubscriptionStatus(context.Background(), "sin-empresa")
	require.NoError(t, err)
	assert.False(t, st.Active)
	assert.Equal(t, "none", st.Status)

	assert.ErrorIs(t, uc.RequireActive(context.Background(), "sin-empresa"), domain.ErrSubscriptionInactive)
}

func TestSubscriptionStatus_TrialExpires(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t, nil, memstore.New())
	s, err := uc.CreateTenantWithOwner(ctx, signupReq())
	require.NoError(t, err)
	require.NoError(t, uc.RequireActive(ctx, s.CompanyID))

	later := time.Now().AddDate(0, 0, 8)
	uc.WithClock(func() time.Time { return later })

	st, err := uc.SubscriptionStatus(ctx, s.CompanyID)
	require.NoError(t, err)
	assert.False(t, st.Active)
	assert.Equal(t, "trial", st.Status)
	assert.ErrorIs(t, uc.RequireActive(ctx, s.CompanyID), domain.ErrSubscriptionInactive)
}

func TestSubscriptionStatus_StoreFailure(t *testing.T) {
	store := memstore.New()
	uc := newUseCase(t, nil, store)
	store.FailWith(errors.New("timeout"))

	_, err := uc.SubscriptionStatus(context.Background(), "c1")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
