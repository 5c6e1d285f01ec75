package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema crea las tablas que falten y siembra los planes. Es idempotente.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	if err := NewPlanRepository(pool).Seed(ctx, entity.DefaultPlans()); err != nil {
		return fmt.Errorf("sembrar planes: %w", err)
	}
	return nil
}
