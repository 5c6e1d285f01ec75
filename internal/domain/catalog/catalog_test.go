package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/orcamentos-api/internal/domain"
	"github.com/jhoicas/orcamentos-api/internal/domain/catalog"
	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
)

func validItem() *entity.CatalogItem {
	return &entity.CatalogItem{
		CompanyID: "c1",
		Key:       "k",
		Label:     "A",
		Module:    "seguranca",
		Category:  "cftv",
		Unit:      entity.UnitPiece,
		Price:     decimal.NewFromInt(10),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entity.CatalogItem)
		field  string
	}{
		{"válido", func(*entity.CatalogItem) {}, ""},
		{"precio cero es válido", func(i *entity.CatalogItem) { i.Price = decimal.Zero }, ""},
		{"sin key", func(i *entity.CatalogItem) { i.Key = "" }, "key"},
		{"sin label", func(i *entity.CatalogItem) { i.Label = "" }, "label"},
		{"sin empresa", func(i *entity.CatalogItem) { i.CompanyID = "" }, "company_id"},
		{"unidad desconocida", func(i *entity.CatalogItem) { i.Unit = "kg" }, "unit"},
		{"precio negativo", func(i *entity.CatalogItem) { i.Price = decimal.RequireFromString("-0.01") }, "price"},
		{"precio con 4 decimales", func(i *entity.CatalogItem) { i.Price = decimal.RequireFromString("12.3456") }, ""},
		{"ceros finales no cuentan", func(i *entity.CatalogItem) { i.Price = decimal.RequireFromString("12.345600") }, ""},
		{"precio con 5 decimales", func(i *entity.CatalogItem) { i.Price = decimal.RequireFromString("12.34567") }, "price"},
		{"precio en el límite", func(i *entity.CatalogItem) { i.Price = decimal.RequireFromString("9999999999.9999") }, ""},
		{"precio fuera de rango", func(i *entity.CatalogItem) { i.Price = decimal.RequireFromString("10000000000") }, "price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.mutate(item)
			err := catalog.Validate(item)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestNormalize_TrimsAndDefaults(t *testing.T) {
	item := &entity.CatalogItem{Key: "  k1 ", Label: " Caixa  "}
	catalog.Normalize(item)

	assert.Equal(t, "k1", item.Key)
	assert.Equal(t, "Caixa", item.Label)
	assert.Equal(t, catalog.ModuleSecurity, item.Module)
	assert.Equal(t, entity.UnitPiece, item.Unit)
}

func TestDefaultItems_UniqueKeysAndValid(t *testing.T) {
	seen := map[string]bool{}
	for _, it := range catalog.DefaultItems() {
		assert.False(t, seen[it.Key], "clave repetida: %s", it.Key)
		seen[it.Key] = true
		it.CompanyID = "c1"
		assert.NoError(t, catalog.Validate(&it), it.Key)
	}
	for _, k := range []string{"cftv_camera", "mao_cftv_por_camera", "haste_reta", "haste_canto", "concertina_linear_20m"} {
		assert.True(t, seen[k], "falta la clave %s", k)
	}
}
