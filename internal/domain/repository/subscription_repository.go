package repository

import (
	"context"

	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
)

// PlanRepository acceso de solo lectura a planes (más la siembra inicial).
type PlanRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Plan, error)
	List(ctx context.Context) ([]*entity.Plan, error)
	// Seed inserta los planes que falten; nunca modifica los existentes.
	Seed(ctx context.Context, plans []entity.Plan) error
}

// SubscriptionRepository define el puerto de persistencia para Subscription.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	// GetInfo devuelve la suscripción con los datos del plan, o nil si la empresa no tiene.
	GetInfo(ctx context.Context, companyID string) (*entity.SubscriptionInfo, error)
}
