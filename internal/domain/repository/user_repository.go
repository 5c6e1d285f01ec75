package repository

import (
	"context"

	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// GetByEmail devuelve (nil, nil) si no existe; el email llega ya normalizado.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// MembershipRepository define el puerto de persistencia para Membership.
type MembershipRepository interface {
	Create(ctx context.Context, m *entity.Membership) error
	// FirstByUser devuelve la primera membresía del usuario (orden por company_id), o nil.
	FirstByUser(ctx context.Context, userID string) (*entity.Membership, error)
}
