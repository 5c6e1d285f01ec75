// Package catalog reúne las reglas del catálogo de precios que no dependen del almacenamiento:
// validación de ítems y el conjunto de ítems por defecto de una empresa nueva.
package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/orcamentos-api/internal/domain"
	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/orcamentos-api/internal/domain/repository"
)

// ModuleSecurity módulo por defecto (seguridad electrónica).
const ModuleSecurity = "seguranca"

// Categorías usadas por las calculadoras.
const (
	CategoryCFTV       = "cftv"
	CategoryCamera     = "cftv_camera"
	CategoryLabor      = "mao_obra"
	CategoryFence      = "cerca"
	CategoryConcertina = "concertina"
)

// Normalize recorta espacios y aplica valores por defecto (module, unit).
func Normalize(item *entity.CatalogItem) {
	item.Key = strings.TrimSpace(item.Key)
	item.Label = strings.TrimSpace(item.Label)
	item.Module = strings.TrimSpace(item.Module)
	item.Category = strings.TrimSpace(item.Category)
	item.Unit = strings.TrimSpace(item.Unit)
	if item.Module == "" {
		item.Module = ModuleSecurity
	}
	if item.Unit == "" {
		item.Unit = entity.UnitPiece
	}
}

// PriceScale decimales que admite la columna price (NUMERIC(14, 4)).
const PriceScale = 4

// maxPrice primer valor que ya no entra en NUMERIC(14, 4).
var maxPrice = decimal.New(1, 14-PriceScale)

// Validate verifica los campos obligatorios y la unidad. El precio debe ser no negativo y
// representable sin redondeo en la columna price.
func Validate(item *entity.CatalogItem) error {
	if item.CompanyID == "" {
		return domain.NewValidationError("company_id", "es requerido")
	}
	if item.Key == "" {
		return domain.NewValidationError("key", "es requerido")
	}
	if item.Label == "" {
		return domain.NewValidationError("label", "es requerido")
	}
	if !entity.ValidUnit(item.Unit) {
		return domain.NewValidationError("unit", "debe ser un, m, m2 o taxa")
	}
	if item.Price.IsNegative() {
		return domain.NewValidationError("price", "no puede ser negativo")
	}
	if !item.Price.Equal(item.Price.Round(PriceScale)) {
		return domain.NewValidationError("price", "admite como máximo 4 decimales")
	}
	if item.Price.GreaterThanOrEqual(maxPrice) {
		return domain.NewValidationError("price", "excede el máximo permitido")
	}
	return nil
}

// Seed aplica DefaultItems vía Upsert. Es idempotente; repo puede estar atado a una tx.
func Seed(ctx context.Context, repo repository.CatalogRepository, companyID string) error {
	for _, d := range DefaultItems() {
		item := d
		item.CompanyID = companyID
		if err := repo.Upsert(ctx, &item); err != nil {
			return err
		}
	}
	return nil
}

func seed(key, label, category, unit, price string) entity.CatalogItem {
	return entity.CatalogItem{
		Key:      key,
		Label:    label,
		Module:   ModuleSecurity,
		Category: category,
		Unit:     unit,
		Price:    decimal.RequireFromString(price),
		Active:   true,
	}
}

// DefaultItems ítems sembrados en cada empresa nueva. Cubre todas las claves que usan las calculadoras.
func DefaultItems() []entity.CatalogItem {
	return []entity.CatalogItem{
		// CFTV
		seed("cftv_camera", "Câmera (padrão)", CategoryCFTV, entity.UnitPiece, "115.17"),
		seed("cftv_camera_bullet_2mp", "Câmera Bullet 2MP", CategoryCamera, entity.UnitPiece, "115.17"),
		seed("cftv_camera_dome_4mp", "Câmera Dome 4MP", CategoryCamera, entity.UnitPiece, "165.00"),
		seed("cftv_dvr", "DVR", CategoryCFTV, entity.UnitPiece, "0"),
		seed("cftv_hd", "HD para DVR", CategoryCFTV, entity.UnitPiece, "0"),
		seed("mao_cftv_dvr", "Mão de obra (instalação DVR)", CategoryLabor, entity.UnitFlatFee, "200.00"),
		seed("mao_cftv_por_camera", "Mão de obra (instalação por câmera)", CategoryLabor, entity.UnitPiece, "120.00"),
		// Estructura de cerca y concertina
		seed("haste_reta", "Haste reta", CategoryFence, entity.UnitPiece, "19.00"),
		seed("haste_canto", "Haste de canto", CategoryFence, entity.UnitPiece, "50.00"),
		seed("concertina_linear_20m", "Concertina linear (20m)", CategoryConcertina, entity.UnitPiece, "53.00"),
		// Cerca eléctrica
		seed("fio_aco_500m", "Fio de aço inox (rolo 500m)", CategoryFence, entity.UnitPiece, "89.90"),
		seed("isolador", "Isolador", CategoryFence, entity.UnitPiece, "0.85"),
		seed("central_choque", "Central de choque", CategoryFence, entity.UnitPiece, "389.00"),
		seed("mao_cerca_por_metro", "Mão de obra (cerca por metro)", CategoryLabor, entity.UnitMeter, "12.00"),
	}
}
