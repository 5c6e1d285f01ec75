// Package quote contiene las calculadoras de servicios: funciones puras que convierten
// parámetros del usuario y una instantánea de precios del catálogo en líneas de presupuesto.
//
// Toda la aritmética monetaria usa decimal exacto; nunca float64.
package quote

import (
	"github.com/shopspring/decimal"
)

// Descriptor identifica una calculadora en el registro.
type Descriptor struct {
	Key    string
	Label  string
	Module string
}

// Dependencies claves del catálogo que la calculadora necesita.
// Keys es una lista fija; Categories se resuelve al momento del cálculo (todos los ítems activos de la categoría).
type Dependencies struct {
	Keys       []string
	Categories []string
}

// Calculator contrato de un servicio cotizable. Las implementaciones son inmutables y sin I/O.
type Calculator interface {
	Descriptor() Descriptor
	Schema() []Param
	Dependencies() Dependencies
	// Compute valida params contra Schema y calcula el presupuesto con los precios de snap.
	Compute(snap Snapshot, params Params) (*Result, error)
}

// LineItem una línea del presupuesto: cantidad × precio unitario.
type LineItem struct {
	Key       string
	Label     string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Result presupuesto calculado. Es efímero: no se persiste.
type Result struct {
	ServiceKey   string
	ServiceLabel string
	Lines        []LineItem
	Subtotal     decimal.Decimal
}

func newResult(d Descriptor) *Result {
	return &Result{ServiceKey: d.Key, ServiceLabel: d.Label, Lines: []LineItem{}, Subtotal: decimal.Zero}
}

// Add agrega una línea y acumula el subtotal.
func (r *Result) Add(key, label string, qty, unitPrice decimal.Decimal) {
	sub := qty.Mul(unitPrice)
	r.Lines = append(r.Lines, LineItem{
		Key:       key,
		Label:     label,
		Quantity:  qty,
		UnitPrice: unitPrice,
		Subtotal:  sub,
	})
	r.Subtotal = r.Subtotal.Add(sub)
}

// CeilDiv devuelve ceil(a/b). Con b == 0 devuelve 0 en lugar de fallar.
func CeilDiv(a, b decimal.Decimal) int64 {
	if b.IsZero() {
		return 0
	}
	return a.Div(b).Ceil().IntPart()
}
