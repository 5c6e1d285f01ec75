package ports

import "context"

// SubscriptionGate decide si una empresa puede usar el catálogo y el motor de presupuestos.
type SubscriptionGate interface {
	// RequireActive devuelve domain.ErrSubscriptionInactive si la suscripción no está vigente.
	RequireActive(ctx context.Context, companyID string) error
}
