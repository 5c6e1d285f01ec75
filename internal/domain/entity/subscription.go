package entity

import "time"

// SubscriptionStatus estados posibles de una suscripción.
type SubscriptionStatus string

const (
	SubscriptionTrial    SubscriptionStatus = "trial"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	// SubscriptionNone no se persiste: indica que la empresa no tiene fila en subscriptions.
	SubscriptionNone SubscriptionStatus = "none"
)

// Subscription uno-a-uno con Company (CompanyID es la PK).
type Subscription struct {
	CompanyID string
	PlanID    string
	Status    SubscriptionStatus
	PeriodEnd *time.Time // nil = sin vencimiento
	CreatedAt time.Time
}

// IsActive aplica la regla de elegibilidad: trial o active, y periodo sin vencer.
func (s Subscription) IsActive(now time.Time) bool {
	if s.Status != SubscriptionTrial && s.Status != SubscriptionActive {
		return false
	}
	return s.PeriodEnd == nil || s.PeriodEnd.After(now)
}

// SubscriptionInfo vista de lectura de la suscripción con los datos del plan.
type SubscriptionInfo struct {
	Subscription
	PlanCode string
	PlanName string
	MaxUsers int
}
