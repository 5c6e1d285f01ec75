package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/orcamentos-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo catálogo de precios por empresa sobre PostgreSQL.
type CatalogRepo struct {
	db Querier
}

// NewCatalogRepository construye el adaptador del catálogo.
func NewCatalogRepository(db Querier) *CatalogRepo {
	return &CatalogRepo{db: db}
}

const catalogColumns = `id, company_id, key, name, module, category, unit, price, active, created_at`

// Upsert inserta o reemplaza el ítem en una sola sentencia (ON CONFLICT) y lo deja activo.
// Completa item.ID y item.CreatedAt con los valores persistidos.
func (r *CatalogRepo) Upsert(ctx context.Context, item *entity.CatalogItem) error {
	const query = `
		INSERT INTO items (id, company_id, key, name, module, category, unit, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true, $9, $9)
		ON CONFLICT (company_id, key) DO UPDATE SET
			name       = EXCLUDED.name,
			module     = EXCLUDED.module,
			category   = EXCLUDED.category,
			unit       = EXCLUDED.unit,
			price      = EXCLUDED.price,
			active     = true,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	id := item.ID
	if id == "" {
		id = uuid.New().String()
	}
	err := r.db.QueryRow(ctx, query,
		id, item.CompanyID, item.Key, item.Label, item.Module, item.Category, item.Unit, item.Price, time.Now(),
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return storeErr("upsert catalog item", err)
	}
	item.Active = true
	return nil
}

// GetPrice devuelve el precio del ítem activo, o cero si no existe.
func (r *CatalogRepo) GetPrice(ctx context.Context, companyID, key string) (decimal.Decimal, error) {
	const query = `SELECT price FROM items WHERE company_id = $1 AND key = $2 AND active`
	var price decimal.Decimal
	if err := r.db.QueryRow(ctx, query, companyID, key).Scan(&price); err != nil {
		if isNoRows(err) {
			return decimal.Zero, nil
		}
		return decimal.Zero, storeErr("get price", err)
	}
	return price, nil
}

// GetByKey devuelve el ítem aunque esté inactivo, o nil.
func (r *CatalogRepo) GetByKey(ctx context.Context, companyID, key string) (*entity.CatalogItem, error) {
	query := `SELECT ` + catalogColumns + ` FROM items WHERE company_id = $1 AND key = $2`
	item, err := scanCatalogItem(r.db.QueryRow(ctx, query, companyID, key))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storeErr("get catalog item", err)
	}
	return item, nil
}

// List devuelve los ítems activos que cumplen todos los filtros, ordenados por category y name.
func (r *CatalogRepo) List(ctx context.Context, companyID string, f entity.CatalogFilter) ([]*entity.CatalogItem, error) {
	var (
		where = []string{"company_id = $1", "active"}
		args  = []any{companyID}
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Module != "" {
		add("module = $%d", f.Module)
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Keys != nil {
		add("key = ANY($%d)", f.Keys)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		add(`(name ILIKE $%[1]d ESCAPE '\' OR key ILIKE $%[1]d ESCAPE '\')`, "%"+escapeLike(s)+"%")
	}
	query := `SELECT ` + catalogColumns + ` FROM items WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY category, name, key`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list catalog", err)
	}
	defer rows.Close()
	list := []*entity.CatalogItem{}
	for rows.Next() {
		item, err := scanCatalogItem(rows)
		if err != nil {
			return nil, storeErr("scan catalog item", err)
		}
		list = append(list, item)
	}
	return list, storeErr("list catalog", rows.Err())
}

// Deactivate marca active=false. Devuelve false si la clave no existe para la empresa.
func (r *CatalogRepo) Deactivate(ctx context.Context, companyID, key string) (bool, error) {
	const query = `
		UPDATE items SET active = false, updated_at = now()
		 WHERE company_id = $1 AND key = $2`
	cmd, err := r.db.Exec(ctx, query, companyID, key)
	if err != nil {
		return false, storeErr("deactivate catalog item", err)
	}
	return cmd.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCatalogItem(row rowScanner) (*entity.CatalogItem, error) {
	var it entity.CatalogItem
	err := row.Scan(&it.ID, &it.CompanyID, &it.Key, &it.Label, &it.Module, &it.Category,
		&it.Unit, &it.Price, &it.Active, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// escapeLike escapa los comodines de LIKE para que la búsqueda sea literal.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
