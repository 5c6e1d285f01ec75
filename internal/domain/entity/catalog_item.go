package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida válidas para CatalogItem.
const (
	UnitPiece       = "un"   // unidad
	UnitMeter       = "m"    // metro lineal
	UnitSquareMeter = "m2"   // metro cuadrado
	UnitFlatFee     = "taxa" // tarifa fija
)

// ValidUnit informa si u es una unidad de medida admitida.
func ValidUnit(u string) bool {
	switch u {
	case UnitPiece, UnitMeter, UnitSquareMeter, UnitFlatFee:
		return true
	}
	return false
}

// CatalogItem ítem con precio del catálogo de una empresa. (CompanyID, Key) es único.
// Nunca se borra: Active=false es la única forma de retirarlo.
type CatalogItem struct {
	ID        string
	CompanyID string
	Key       string
	Label     string
	Module    string          // agrupación gruesa (ej. "seguranca")
	Category  string          // agrupación fina (ej. "cftv", "mao_obra")
	Unit      string          // ver constantes Unit*
	Price     decimal.Decimal // siempre >= 0
	Active    bool
	CreatedAt time.Time
}

// CatalogFilter filtros conjuntivos para listar el catálogo. Campos vacíos no filtran.
type CatalogFilter struct {
	Module   string
	Category string
	Keys     []string
	Search   string // coincidencia parcial, sin distinguir mayúsculas, en label o key
}
