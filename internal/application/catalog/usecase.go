package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/orcamentos-api/internal/application/dto"
	"github.com/jhoicas/orcamentos-api/internal/application/ports"
	"github.com/jhoicas/orcamentos-api/internal/domain"
	domcatalog "github.com/jhoicas/orcamentos-api/internal/domain/catalog"
	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/orcamentos-api/internal/domain/quote"
	"github.com/jhoicas/orcamentos-api/internal/domain/repository"
	"github.com/jhoicas/orcamentos-api/pkg/money"
)

// CatalogUseCase lectura y edición del catálogo de la empresa de la sesión.
// Toda operación pasa antes por la puerta de suscripción.
type CatalogUseCase struct {
	repo     repository.CatalogRepository
	gate     ports.SubscriptionGate
	registry *quote.Registry
	money    money.Formatter
	metrics  ports.MetricsRecorder
}

// NewCatalogUseCase construye el caso de uso. metrics puede ser nil.
func NewCatalogUseCase(
	repo repository.CatalogRepository,
	gate ports.SubscriptionGate,
	registry *quote.Registry,
	formatter money.Formatter,
	metrics ports.MetricsRecorder,
) *CatalogUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &CatalogUseCase{repo: repo, gate: gate, registry: registry, money: formatter, metrics: metrics}
}

// GetPrice precio activo de key; cero si no existe.
func (uc *CatalogUseCase) GetPrice(ctx context.Context, s entity.Session, key string) (*dto.PriceResponse, error) {
	if err := uc.gate.RequireActive(ctx, s.CompanyID); err != nil {
		return nil, err
	}
	key = strings.TrimSpace(key)
	price, err := uc.repo.GetPrice(ctx, s.CompanyID, key)
	if err != nil {
		return nil, err
	}
	return &dto.PriceResponse{Key: key, Price: price, PriceFormatted: uc.money.Format(price)}, nil
}

// List ítems activos con filtros conjuntivos. Con Service devuelve solo las dependencias de esa
// calculadora (claves fijas más categorías dinámicas), combinadas con el resto de filtros.
func (uc *CatalogUseCase) List(ctx context.Context, s entity.Session, q dto.CatalogListQuery) ([]dto.CatalogItemResponse, error) {
	if err := uc.gate.RequireActive(ctx, s.CompanyID); err != nil {
		return nil, err
	}
	filter := entity.CatalogFilter{
		Module:   strings.TrimSpace(q.Module),
		Category: strings.TrimSpace(q.Category),
		Keys:     q.Keys,
		Search:   q.Search,
	}
	var (
		items []*entity.CatalogItem
		err   error
	)
	if svc := strings.TrimSpace(q.Service); svc != "" {
		items, err = uc.listForService(ctx, s.CompanyID, svc, filter)
	} else {
		items, err = uc.repo.List(ctx, s.CompanyID, filter)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, uc.toResponse(it))
	}
	return out, nil
}

func (uc *CatalogUseCase) listForService(ctx context.Context, companyID, service string, base entity.CatalogFilter) ([]*entity.CatalogItem, error) {
	calc, err := uc.registry.Get(service)
	if err != nil {
		return nil, err
	}
	items, err := LoadDependencies(ctx, uc.repo, companyID, calc.Dependencies(), base)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Label < items[j].Label
	})
	return items, nil
}

// LoadDependencies carga los ítems activos de deps (claves fijas y categorías) sin repetir claves.
// base aporta filtros adicionales; sus Keys se intersectan con las de deps.
func LoadDependencies(ctx context.Context, repo repository.CatalogRepository, companyID string, deps quote.Dependencies, base entity.CatalogFilter) ([]*entity.CatalogItem, error) {
	var out []*entity.CatalogItem
	seen := map[string]bool{}
	add := func(list []*entity.CatalogItem) {
		for _, it := range list {
			if !seen[it.Key] {
				seen[it.Key] = true
				out = append(out, it)
			}
		}
	}
	if len(deps.Keys) > 0 {
		f := base
		f.Keys = intersect(deps.Keys, base.Keys)
		list, err := repo.List(ctx, companyID, f)
		if err != nil {
			return nil, err
		}
		add(list)
	}
	for _, cat := range deps.Categories {
		if base.Category != "" && base.Category != cat {
			continue
		}
		f := base
		f.Category = cat
		list, err := repo.List(ctx, companyID, f)
		if err != nil {
			return nil, err
		}
		add(list)
	}
	return out, nil
}

func intersect(keys, filter []string) []string {
	if filter == nil {
		return keys
	}
	allowed := make(map[string]bool, len(filter))
	for _, k := range filter {
		allowed[k] = true
	}
	out := []string{}
	for _, k := range keys {
		if allowed[k] {
			out = append(out, k)
		}
	}
	return out
}

// Upsert crea o reemplaza el ítem key de la empresa y lo deja activo. Solo admin.
func (uc *CatalogUseCase) Upsert(ctx context.Context, s entity.Session, key string, in dto.UpsertCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	item, err := uc.upsert(ctx, s, key, in)
	uc.metrics.CatalogUpserted(ports.Outcome(err))
	if err != nil {
		return nil, err
	}
	resp := uc.toResponse(item)
	return &resp, nil
}

func (uc *CatalogUseCase) upsert(ctx context.Context, s entity.Session, key string, in dto.UpsertCatalogItemRequest) (*entity.CatalogItem, error) {
	if err := uc.gate.RequireActive(ctx, s.CompanyID); err != nil {
		return nil, err
	}
	if !s.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	item := &entity.CatalogItem{
		CompanyID: s.CompanyID,
		Key:       key,
		Label:     in.Label,
		Module:    in.Module,
		Category:  in.Category,
		Unit:      in.Unit,
		Price:     in.Price,
	}
	domcatalog.Normalize(item)
	if err := domcatalog.Validate(item); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Deactivate retira el ítem de listados y precios. domain.ErrNotFound si la clave no existe.
func (uc *CatalogUseCase) Deactivate(ctx context.Context, s entity.Session, key string) error {
	if err := uc.gate.RequireActive(ctx, s.CompanyID); err != nil {
		return err
	}
	if !s.IsAdmin() {
		return domain.ErrForbidden
	}
	ok, err := uc.repo.Deactivate(ctx, s.CompanyID, strings.TrimSpace(key))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("ítem %q: %w", key, domain.ErrNotFound)
	}
	return nil
}

// SeedDefaults aplica el catálogo por defecto. Idempotente: restaura precios y reactiva ítems.
func (uc *CatalogUseCase) SeedDefaults(ctx context.Context, s entity.Session) (*dto.SeedResponse, error) {
	if err := uc.gate.RequireActive(ctx, s.CompanyID); err != nil {
		return nil, err
	}
	if !s.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := domcatalog.Seed(ctx, uc.repo, s.CompanyID); err != nil {
		uc.metrics.CatalogUpserted(ports.Outcome(err))
		return nil, err
	}
	n := len(domcatalog.DefaultItems())
	for i := 0; i < n; i++ {
		uc.metrics.CatalogUpserted(ports.OutcomeOK)
	}
	return &dto.SeedResponse{Items: n}, nil
}

func (uc *CatalogUseCase) toResponse(it *entity.CatalogItem) dto.CatalogItemResponse {
	return dto.CatalogItemResponse{
		Key:            it.Key,
		Label:          it.Label,
		Module:         it.Module,
		Category:       it.Category,
		Unit:           it.Unit,
		Price:          it.Price,
		PriceFormatted: uc.money.Format(it.Price),
		Active:         it.Active,
	}
}
