package memstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/orcamentos-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

var errDuplicate = errors.New("clave duplicada")

// CatalogRepo catálogo en memoria. Cada operación toma el candado completo, así Upsert es atómico.
type CatalogRepo struct{ db *db }

func (r *CatalogRepo) Upsert(_ context.Context, item *entity.CatalogItem) error {
	unlock, err := r.db.lock("upsert catalog item")
	if err != nil {
		return err
	}
	defer unlock()
	byKey, ok := r.db.t.items[item.CompanyID]
	if !ok {
		byKey = map[string]entity.CatalogItem{}
		r.db.t.items[item.CompanyID] = byKey
	}
	if prev, ok := byKey[item.Key]; ok {
		item.ID, item.CreatedAt = prev.ID, prev.CreatedAt
	} else {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.CreatedAt = time.Now()
	}
	item.Active = true
	byKey[item.Key] = *item
	return nil
}

func (r *CatalogRepo) GetPrice(_ context.Context, companyID, key string) (decimal.Decimal, error) {
	unlock, err := r.db.lock("get price")
	if err != nil {
		return decimal.Zero, err
	}
	defer unlock()
	it, ok := r.db.t.items[companyID][key]
	if !ok || !it.Active {
		return decimal.Zero, nil
	}
	return it.Price, nil
}

func (r *CatalogRepo) GetByKey(_ context.Context, companyID, key string) (*entity.CatalogItem, error) {
	unlock, err := r.db.lock("get catalog item")
	if err != nil {
		return nil, err
	}
	defer unlock()
	it, ok := r.db.t.items[companyID][key]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *CatalogRepo) List(_ context.Context, companyID string, f entity.CatalogFilter) ([]*entity.CatalogItem, error) {
	unlock, err := r.db.lock("list catalog")
	if err != nil {
		return nil, err
	}
	defer unlock()
	var keys map[string]bool
	if f.Keys != nil {
		keys = make(map[string]bool, len(f.Keys))
		for _, k := range f.Keys {
			keys[k] = true
		}
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	list := []*entity.CatalogItem{}
	for _, it := range r.db.t.items[companyID] {
		switch {
		case !it.Active,
			f.Module != "" && it.Module != f.Module,
			f.Category != "" && it.Category != f.Category,
			keys != nil && !keys[it.Key],
			search != "" && !strings.Contains(strings.ToLower(it.Label), search) &&
				!strings.Contains(strings.ToLower(it.Key), search):
			continue
		}
		it := it
		list = append(list, &it)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Label != b.Label {
			return a.Label < b.Label
		}
		return a.Key < b.Key
	})
	return list, nil
}

func (r *CatalogRepo) Deactivate(_ context.Context, companyID, key string) (bool, error) {
	unlock, err := r.db.lock("deactivate catalog item")
	if err != nil {
		return false, err
	}
	defer unlock()
	it, ok := r.db.t.items[companyID][key]
	if !ok {
		return false, nil
	}
	it.Active = false
	r.db.t.items[companyID][key] = it
	return true, nil
}
