package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/orcamentos-api/internal/application/auth"
	"github.com/jhoicas/orcamentos-api/internal/domain"
)

// Ensure TxRunner implements auth.SignupTxRunner.
var _ auth.SignupTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSignup inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunSignup(ctx context.Context, fn func(repos auth.SignupRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.NewStoreError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := auth.SignupRepos{
		Users:         NewUserRepository(tx),
		Companies:     NewCompanyRepository(tx),
		Memberships:   NewMembershipRepository(tx),
		Plans:         NewPlanRepository(tx),
		Subscriptions: NewSubscriptionRepository(tx),
		Catalog:       NewCatalogRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.NewStoreError("commit transaction", fmt.Errorf("signup: %w", err))
	}
	return nil
}
