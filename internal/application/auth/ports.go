package auth

import (
	"context"

	"github.com/jhoicas/orcamentos-api/internal/domain/repository"
)

// SignupRepos repositorios atados a la misma transacción del alta de empresa.
type SignupRepos struct {
	Users         repository.UserRepository
	Companies     repository.CompanyRepository
	Memberships   repository.MembershipRepository
	Plans         repository.PlanRepository
	Subscriptions repository.SubscriptionRepository
	Catalog       repository.CatalogRepository
}

// SignupTxRunner ejecuta fn dentro de una transacción. Si fn devuelve error no queda ninguna fila escrita.
type SignupTxRunner interface {
	RunSignup(ctx context.Context, fn func(repos SignupRepos) error) error
}
