package quote

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
)

// Snapshot precios del catálogo de una empresa en el momento del cálculo.
// Solo contiene ítems activos; una clave ausente vale cero.
type Snapshot struct {
	byKey map[string]*entity.CatalogItem
	items []*entity.CatalogItem
}

// NewSnapshot construye la instantánea. Ítems inactivos o repetidos se ignoran.
func NewSnapshot(items []*entity.CatalogItem) Snapshot {
	s := Snapshot{byKey: make(map[string]*entity.CatalogItem, len(items))}
	for _, it := range items {
		if it == nil || !it.Active {
			continue
		}
		if _, dup := s.byKey[it.Key]; dup {
			continue
		}
		s.byKey[it.Key] = it
		s.items = append(s.items, it)
	}
	return s
}

// PricesSnapshot atajo para tests y llamadores que solo tienen clave → precio.
func PricesSnapshot(prices map[string]decimal.Decimal) Snapshot {
	items := make([]*entity.CatalogItem, 0, len(prices))
	for k, p := range prices {
		items = append(items, &entity.CatalogItem{Key: k, Label: k, Price: p, Active: true})
	}
	return NewSnapshot(items)
}

// Price devuelve el precio de key o cero.
func (s Snapshot) Price(key string) decimal.Decimal {
	if it, ok := s.byKey[key]; ok {
		return it.Price
	}
	return decimal.Zero
}

// Item devuelve el ítem de key si está en la instantánea.
func (s Snapshot) Item(key string) (*entity.CatalogItem, bool) {
	it, ok := s.byKey[key]
	return it, ok
}

// Category devuelve los ítems de la categoría en el orden en que se cargaron.
func (s Snapshot) Category(category string) []*entity.CatalogItem {
	var out []*entity.CatalogItem
	for _, it := range s.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}
