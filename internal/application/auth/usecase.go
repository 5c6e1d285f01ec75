package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/orcamentos-api/internal/application/dto"
	"github.com/jhoicas/orcamentos-api/internal/domain"
	"github.com/jhoicas/orcamentos-api/internal/domain/catalog"
	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/orcamentos-api/internal/domain/repository"
	"github.com/jhoicas/orcamentos-api/pkg/jwt"
	"github.com/jhoicas/orcamentos-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// BillingConfig parámetros de la suscripción inicial.
type BillingConfig struct {
	TrialDays   int
	DefaultPlan string
}

// Deps colaboradores del caso de uso.
type Deps struct {
	Users         repository.UserRepository
	Memberships   repository.MembershipRepository
	Subscriptions repository.SubscriptionRepository
	Tx            SignupTxRunner
	Log           *logger.Logger
}

// AuthUseCase registro de empresas, login y puerta de suscripción.
type AuthUseCase struct {
	users   repository.UserRepository
	members repository.MembershipRepository
	subs    repository.SubscriptionRepository
	tx      SignupTxRunner
	jwtCfg  JWTConfig
	billing BillingConfig
	log     *logger.Logger
	now     func() time.Time
	cost    int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(deps Deps, jwtCfg JWTConfig, billing BillingConfig) *AuthUseCase {
	if billing.DefaultPlan == "" {
		billing.DefaultPlan = entity.PlanBasic
	}
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		users:   deps.Users,
		members: deps.Memberships,
		subs:    deps.Subscriptions,
		tx:      deps.Tx,
		jwtCfg:  jwtCfg,
		billing: billing,
		log:     log.Component("auth"),
		now:     time.Now,
		cost:    bcrypt.DefaultCost,
	}
}

// WithClock reemplaza el reloj (tests de vencimiento).
func (uc *AuthUseCase) WithClock(now func() time.Time) *AuthUseCase {
	uc.now = now
	return uc
}

// WithHashCost ajusta el costo de bcrypt (bcrypt.MinCost en tests).
func (uc *AuthUseCase) WithHashCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// HashPassword devuelve el digest bcrypt de password.
func (uc *AuthUseCase) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compara password con el digest. Un digest mal formado da false, nunca error.
func VerifyPassword(digest, password string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// CreateTenantWithOwner crea usuario, empresa, membresía admin, suscripción trial y catálogo
// por defecto en una sola transacción. Si algo falla no queda ninguna fila.
func (uc *AuthUseCase) CreateTenantWithOwner(ctx context.Context, in dto.SignupRequest) (*entity.Session, error) {
	in.Email = entity.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.Contact = strings.TrimSpace(in.Contact)
	for _, f := range []struct{ name, value string }{
		{"email", in.Email},
		{"name", in.Name},
		{"password", in.Password},
		{"company_name", in.CompanyName},
	} {
		if f.value == "" {
			return nil, domain.NewValidationError(f.name, "es requerido")
		}
	}

	hash, err := uc.HashPassword(in.Password)
	if err != nil {
		return nil, domain.NewValidationError("password", err.Error())
	}

	now := uc.now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		CreatedAt:    now,
	}
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.CompanyName,
		Contact:   in.Contact,
		CreatedAt: now,
	}

	err = uc.tx.RunSignup(ctx, func(r SignupRepos) error {
		if err := r.Users.Create(ctx, user); err != nil {
			return err
		}
		if err := r.Companies.Create(ctx, company); err != nil {
			return err
		}
		if err := r.Memberships.Create(ctx, &entity.Membership{
			UserID: user.ID, CompanyID: company.ID, Role: entity.RoleAdmin,
		}); err != nil {
			return err
		}
		plan, err := r.Plans.GetByCode(ctx, uc.billing.DefaultPlan)
		if err != nil {
			return err
		}
		if plan == nil {
			return domain.NewStoreError("get plan", errors.New("plan "+uc.billing.DefaultPlan+" no sembrado"))
		}
		end := now.AddDate(0, 0, uc.billing.TrialDays)
		if err := r.Subscriptions.Create(ctx, &entity.Subscription{
			CompanyID: company.ID,
			PlanID:    plan.ID,
			Status:    entity.SubscriptionTrial,
			PeriodEnd: &end,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		return catalog.Seed(ctx, r.Catalog, company.ID)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("email", in.Email).Msg("alta de empresa fallida")
		return nil, err
	}

	uc.log.Info().Str("company_id", company.ID).Str("user_id", user.ID).Msg("empresa creada")
	return &entity.Session{UserID: user.ID, CompanyID: company.ID, Role: entity.RoleAdmin}, nil
}

// Authenticate verifica credenciales y devuelve la sesión de la primera membresía (por company_id).
// Email desconocido, password incorrecto o usuario sin empresa devuelven domain.ErrUnauthorized.
func (uc *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*entity.Session, string, error) {
	user, err := uc.users.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, "", err
	}
	if user == nil || !VerifyPassword(user.PasswordHash, password) {
		return nil, "", domain.ErrUnauthorized
	}
	m, err := uc.members.FirstByUser(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	if m == nil {
		return nil, "", domain.ErrUnauthorized
	}
	return &entity.Session{UserID: user.ID, CompanyID: m.CompanyID, Role: m.Role}, m.CompanyName, nil
}

// Login Authenticate más el token JWT firmado.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	s, companyName, err := uc.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	return uc.issue(s, companyName)
}

// Signup CreateTenantWithOwner más el token JWT, para entrar directo después del alta.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.LoginResponse, error) {
	s, err := uc.CreateTenantWithOwner(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.issue(s, strings.TrimSpace(in.CompanyName))
}

func (uc *AuthUseCase) issue(s *entity.Session, companyName string) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, s.UserID, s.CompanyID, s.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		Session: dto.SessionResponse{
			UserID:      s.UserID,
			CompanyID:   s.CompanyID,
			CompanyName: companyName,
			Role:        s.Role,
		},
	}, nil
}

// SubscriptionStatus estado de la suscripción. Sin fila devuelve active=false, status "none".
func (uc *AuthUseCase) SubscriptionStatus(ctx context.Context, companyID string) (*dto.SubscriptionResponse, error) {
	info, err := uc.subs.GetInfo(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return &dto.SubscriptionResponse{Active: false, Status: string(entity.SubscriptionNone)}, nil
	}
	return &dto.SubscriptionResponse{
		Active:    info.IsActive(uc.now()),
		Status:    string(info.Status),
		PlanCode:  info.PlanCode,
		PlanName:  info.PlanName,
		MaxUsers:  info.MaxUsers,
		PeriodEnd: info.PeriodEnd,
	}, nil
}

// RequireActive devuelve domain.ErrSubscriptionInactive si la empresa no puede usar el motor.
func (uc *AuthUseCase) RequireActive(ctx context.Context, companyID string) error {
	st, err := uc.SubscriptionStatus(ctx, companyID)
	if err != nil {
		return err
	}
	if !st.Active {
		return domain.ErrSubscriptionInactive
	}
	return nil
}
