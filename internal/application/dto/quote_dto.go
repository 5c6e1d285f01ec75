package dto

import "github.com/shopspring/decimal"

// ServiceResponse entrada del menú de servicios cotizables.
type ServiceResponse struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Module string `json:"module"`
}

// ParamSchemaResponse descripción de un parámetro del formulario.
type ParamSchemaResponse struct {
	Name     string          `json:"name"`
	Label    string          `json:"label"`
	Type     string          `json:"type"`
	Min      decimal.Decimal `json:"min" swaggertype:"string"`
	Max      decimal.Decimal `json:"max" swaggertype:"string"`
	Default  decimal.Decimal `json:"default" swaggertype:"string"`
	Category string          `json:"category,omitempty"`
	// Options SKUs disponibles (solo parámetros por SKU).
	Options []CatalogItemResponse `json:"options,omitempty"`
}

// SchemaResponse esquema de parámetros de un servicio.
type SchemaResponse struct {
	Service ServiceResponse       `json:"service"`
	Params  []ParamSchemaResponse `json:"params"`
}

// QuoteRequest parámetros del cálculo por nombre. Para servicios por SKU las claves son SKUs.
type QuoteRequest struct {
	Params map[string]decimal.Decimal `json:"params"`
}

// QuoteLineResponse una línea del presupuesto.
type QuoteLineResponse struct {
	Key                string          `json:"key"`
	Label              string          `json:"label"`
	Quantity           decimal.Decimal `json:"quantity" swaggertype:"string"`
	UnitPrice          decimal.Decimal `json:"unit_price" swaggertype:"string"`
	Subtotal           decimal.Decimal `json:"subtotal" swaggertype:"string"`
	UnitPriceFormatted string          `json:"unit_price_formatted"`
	SubtotalFormatted  string          `json:"subtotal_formatted"`
}

// QuoteResponse presupuesto calculado.
type QuoteResponse struct {
	Service           string              `json:"service"`
	ServiceLabel      string              `json:"service_label"`
	Lines             []QuoteLineResponse `json:"lines"`
	Subtotal          decimal.Decimal     `json:"subtotal" swaggertype:"string"`
	SubtotalFormatted string              `json:"subtotal_formatted"`
}
