// Package money formatea montos como texto de moneda local (ej. "R$ 1.234,56").
package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// DefaultLocale locale usado cuando el configurado no se reconoce.
const DefaultLocale = "pt-BR"

// Símbolos por código ISO 4217. Códigos sin símbolo se imprimen con el código.
var symbols = map[string]string{
	"BRL": "R$",
	"COP": "$",
	"USD": "US$",
	"EUR": "€",
}

// Formatter convierte montos en texto. Es un valor inmutable, seguro para uso concurrente.
type Formatter struct {
	symbol   string
	group    string
	decimals string
}

// New construye un Formatter para el locale BCP 47 dado (pt-BR, es-CO, en-US...).
// La moneda se deduce de la región del locale; un locale inválido cae en DefaultLocale.
func New(locale string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	unit, _ := currency.FromTag(tag)
	code := unit.String()
	sym, ok := symbols[code]
	if !ok {
		sym = code
	}

	f := Formatter{symbol: sym, group: ".", decimals: ","}
	if base, _ := tag.Base(); base.String() == "en" {
		f.group, f.decimals = ",", "."
	}
	return f
}

// Format devuelve el monto redondeado a 2 decimales, con separador de miles.
func (f Formatter) Format(v decimal.Decimal) string {
	fixed := v.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	b.WriteString(f.symbol)
	b.WriteByte(' ')
	if neg && strings.Trim(fixed, "0.") != "" {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(f.group)
		}
		b.WriteRune(r)
	}
	b.WriteString(f.decimals)
	b.WriteString(frac)
	return b.String()
}

// FormatFloat igual que Format; NaN e infinitos se muestran como cero.
func (f Formatter) FormatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return f.Format(decimal.Zero)
	}
	return f.Format(decimal.NewFromFloat(v))
}

var brl = New(DefaultLocale)

// BRL atajo para reales brasileños.
func BRL(v decimal.Decimal) string { return brl.Format(v) }
