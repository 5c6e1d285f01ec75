package dto

import "github.com/shopspring/decimal"

// CatalogItemResponse ítem del catálogo con el precio formateado según el locale configurado.
type CatalogItemResponse struct {
	Key            string          `json:"key"`
	Label          string          `json:"label"`
	Module         string          `json:"module"`
	Category       string          `json:"category"`
	Unit           string          `json:"unit"`
	Price          decimal.Decimal `json:"price" swaggertype:"string"`
	PriceFormatted string          `json:"price_formatted"`
	Active         bool            `json:"active"`
}

// UpsertCatalogItemRequest cuerpo de PUT /api/catalog/:key.
type UpsertCatalogItemRequest struct {
	Label    string          `json:"label" validate:"required"`
	Module   string          `json:"module"`
	Category string          `json:"category"`
	Unit     string          `json:"unit" validate:"omitempty,oneof=un m m2 taxa"`
	Price    decimal.Decimal `json:"price" swaggertype:"string"`
}

// CatalogListQuery filtros de GET /api/catalog. Service lista las dependencias de una calculadora.
type CatalogListQuery struct {
	Module   string   `query:"module"`
	Category string   `query:"category"`
	Keys     []string `query:"keys"`
	Search   string   `query:"search"`
	Service  string   `query:"service"`
}

// PriceResponse precio de una clave (cero si no existe o está inactiva).
type PriceResponse struct {
	Key            string          `json:"key"`
	Price          decimal.Decimal `json:"price" swaggertype:"string"`
	PriceFormatted string          `json:"price_formatted"`
}

// SeedResponse resultado de sembrar el catálogo por defecto.
type SeedResponse struct {
	Items int `json:"items"`
}
