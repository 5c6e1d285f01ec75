package quote

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/orcamentos-api/internal/domain"
)

// ParamType tipo de un parámetro del formulario.
type ParamType string

const (
	ParamInt     ParamType = "int"
	ParamDecimal ParamType = "decimal"
	// ParamSKUQuantities cantidad por SKU: las claves de entrada son claves del catálogo de Category.
	ParamSKUQuantities ParamType = "sku_quantities"
)

// Param metadato descriptivo de un parámetro; el núcleo nunca lo renderiza.
type Param struct {
	Name     string
	Label    string
	Type     ParamType
	Min      decimal.Decimal
	Max      decimal.Decimal
	Default  decimal.Decimal
	Category string // solo ParamSKUQuantities
}

// Params valores de entrada por nombre.
type Params map[string]decimal.Decimal

// Get devuelve el valor de name o cero.
func (p Params) Get(name string) decimal.Decimal {
	if v, ok := p[name]; ok {
		return v
	}
	return decimal.Zero
}

func intParam(name, label string, lo, hi, def int64) Param {
	return Param{
		Name:    name,
		Label:   label,
		Type:    ParamInt,
		Min:     decimal.NewFromInt(lo),
		Max:     decimal.NewFromInt(hi),
		Default: decimal.NewFromInt(def),
	}
}

func decimalParam(name, label, lo, hi, def string) Param {
	return Param{
		Name:    name,
		Label:   label,
		Type:    ParamDecimal,
		Min:     decimal.RequireFromString(lo),
		Max:     decimal.RequireFromString(hi),
		Default: decimal.RequireFromString(def),
	}
}

// ValidateParams aplica valores por defecto y verifica tipo y rango de cada parámetro.
// Parámetros desconocidos se rechazan, salvo que el esquema declare un ParamSKUQuantities:
// en ese caso se aceptan como cantidades por SKU (la calculadora verifica que el SKU exista).
func ValidateParams(schema []Param, in Params) (Params, error) {
	out := make(Params, len(schema)+len(in))
	known := make(map[string]bool, len(schema))
	var sku *Param
	for i := range schema {
		p := schema[i]
		if p.Type == ParamSKUQuantities {
			sku = &schema[i]
			continue
		}
		known[p.Name] = true
		v, ok := in[p.Name]
		if !ok {
			v = p.Default
		}
		if err := checkValue(p, p.Name, v); err != nil {
			return nil, err
		}
		out[p.Name] = v
	}
	for name, v := range in {
		if known[name] {
			continue
		}
		if sku == nil {
			return nil, domain.NewValidationError(name, "parámetro desconocido")
		}
		if err := checkValue(*sku, name, v); err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

func checkValue(p Param, field string, v decimal.Decimal) error {
	if (p.Type == ParamInt || p.Type == ParamSKUQuantities) && !v.Equal(v.Truncate(0)) {
		return domain.NewValidationError(field, "debe ser un número entero")
	}
	if v.LessThan(p.Min) || v.GreaterThan(p.Max) {
		return domain.NewValidationError(field, fmt.Sprintf("debe estar entre %s y %s", p.Min, p.Max))
	}
	return nil
}
