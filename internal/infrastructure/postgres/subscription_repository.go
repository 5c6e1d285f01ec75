package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/orcamentos-api/internal/domain/repository"
)

var (
	_ repository.PlanRepository         = (*PlanRepo)(nil)
	_ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)
)

// PlanRepo planes sobre PostgreSQL.
type PlanRepo struct {
	db Querier
}

// NewPlanRepository construye el adaptador de planes.
func NewPlanRepository(db Querier) *PlanRepo {
	return &PlanRepo{db: db}
}

// GetByCode obtiene un plan por código, o nil si no existe.
func (r *PlanRepo) GetByCode(ctx context.Context, code string) (*entity.Plan, error) {
	const query = `SELECT id, code, name, price_cents, max_users FROM plans WHERE code = $1`
	var p entity.Plan
	err := r.db.QueryRow(ctx, query, code).Scan(&p.ID, &p.Code, &p.Name, &p.PriceCents, &p.MaxUsers)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storeErr("get plan", err)
	}
	return &p, nil
}

// List devuelve los planes ordenados por precio.
func (r *PlanRepo) List(ctx context.Context) ([]*entity.Plan, error) {
	const query = `SELECT id, code, name, price_cents, max_users FROM plans ORDER BY price_cents, code`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list plans", err)
	}
	defer rows.Close()
	var list []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.PriceCents, &p.MaxUsers); err != nil {
			return nil, storeErr("scan plan", err)
		}
		list = append(list, &p)
	}
	return list, storeErr("list plans", rows.Err())
}

// Seed inserta los planes cuyo código no exista. Nunca modifica los existentes.
func (r *PlanRepo) Seed(ctx context.Context, plans []entity.Plan) error {
	const query = `
		INSERT INTO plans (id, code, name, price_cents, max_users)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO NOTHING`
	for _, p := range plans {
		id := p.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := r.db.Exec(ctx, query, id, p.Code, p.Name, p.PriceCents, p.MaxUsers); err != nil {
			return storeErr("seed plan "+p.Code, err)
		}
	}
	return nil
}

// SubscriptionRepo suscripciones sobre PostgreSQL.
type SubscriptionRepo struct {
	db Querier
}

// NewSubscriptionRepository construye el adaptador de suscripciones.
func NewSubscriptionRepository(db Querier) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

// Create persiste la suscripción de una empresa (una por empresa).
func (r *SubscriptionRepo) Create(ctx context.Context, sub *entity.Subscription) error {
	const query = `
		INSERT INTO subscriptions (company_id, plan_id, status, period_end, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, sub.CompanyID, sub.PlanID, string(sub.Status), sub.PeriodEnd, sub.CreatedAt)
	return storeErr("insert subscription", err)
}

// GetInfo devuelve la suscripción con el plan, o nil si la empresa no tiene.
func (r *SubscriptionRepo) GetInfo(ctx context.Context, companyID string) (*entity.SubscriptionInfo, error) {
	const query = `
		SELECT s.company_id, s.plan_id, s.status, s.period_end, s.created_at,
		       p.code, p.name, p.max_users
		  FROM subscriptions s
		  JOIN plans p ON p.id = s.plan_id
		 WHERE s.company_id = $1`
	var (
		info   entity.SubscriptionInfo
		status string
	)
	err := r.db.QueryRow(ctx, query, companyID).Scan(
		&info.CompanyID, &info.PlanID, &status, &info.PeriodEnd, &info.CreatedAt,
		&info.PlanCode, &info.PlanName, &info.MaxUsers,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storeErr("get subscription", err)
	}
	info.Status = entity.SubscriptionStatus(status)
	return &info, nil
}
