package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
)

// CatalogRepository define el puerto de persistencia del catálogo por empresa.
// Toda lectura y escritura va acotada por companyID; ítems inactivos nunca se devuelven en lecturas de precio ni listados.
type CatalogRepository interface {
	// Upsert inserta o reemplaza label/module/category/unit/price y fuerza active=true, en una sola operación atómica.
	Upsert(ctx context.Context, item *entity.CatalogItem) error
	// GetPrice devuelve el precio del ítem activo o decimal.Zero si no existe.
	GetPrice(ctx context.Context, companyID, key string) (decimal.Decimal, error)
	// GetByKey devuelve el ítem (activo o no) o nil si no existe.
	GetByKey(ctx context.Context, companyID, key string) (*entity.CatalogItem, error)
	// List devuelve ítems activos ordenados por category y label.
	List(ctx context.Context, companyID string, filter entity.CatalogFilter) ([]*entity.CatalogItem, error)
	// Deactivate marca el ítem como inactivo. Devuelve false si la clave no existe para la empresa.
	Deactivate(ctx context.Context, companyID, key string) (bool, error)
}
