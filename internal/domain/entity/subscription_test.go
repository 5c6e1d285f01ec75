package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
)

func TestSubscription_IsActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name      string
		status    entity.SubscriptionStatus
		periodEnd *time.Time
		want      bool
	}{
		{"trial vencido hace 1s", entity.SubscriptionTrial, &past, false},
		{"trial vigente", entity.SubscriptionTrial, &future, true},
		{"active sin vencimiento", entity.SubscriptionActive, nil, true},
		{"active vencida", entity.SubscriptionActive, &past, false},
		{"vence exactamente ahora", entity.SubscriptionActive, &now, false},
		{"past_due vigente", entity.SubscriptionPastDue, &future, false},
		{"canceled sin vencimiento", entity.SubscriptionCanceled, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := entity.Subscription{Status: tt.status, PeriodEnd: tt.periodEnd}
			assert.Equal(t, tt.want, s.IsActive(now))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", entity.NormalizeEmail("  Ana@Example.COM "))
}
