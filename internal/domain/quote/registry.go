package quote

import (
	"fmt"

	"github.com/jhoicas/orcamentos-api/internal/domain"
)

// Registry tabla fija clave → calculadora. Se construye una vez al iniciar; no admite registro dinámico.
type Registry struct {
	order []Calculator
	byKey map[string]Calculator
}

// NewRegistry construye el registro en el orden dado. Claves repetidas son un error de programación.
func NewRegistry(calcs ...Calculator) *Registry {
	r := &Registry{byKey: make(map[string]Calculator, len(calcs))}
	for _, c := range calcs {
		key := c.Descriptor().Key
		if _, dup := r.byKey[key]; dup {
			panic(fmt.Sprintf("quote: calculadora %q registrada dos veces", key))
		}
		r.byKey[key] = c
		r.order = append(r.order, c)
	}
	return r
}

// DefaultRegistry todos los servicios conocidos, en el orden del menú.
func DefaultRegistry() *Registry {
	return NewRegistry(
		CFTVInstall{},
		ElectricFence{},
		ConcertinaLinear{},
		CFTVCameras{},
	)
}

// Get devuelve la calculadora de key o domain.ErrNotFound.
func (r *Registry) Get(key string) (Calculator, error) {
	c, ok := r.byKey[key]
	if !ok {
		return nil, fmt.Errorf("servicio %q: %w", key, domain.ErrNotFound)
	}
	return c, nil
}

// List devuelve las calculadoras en orden de registro.
func (r *Registry) List() []Calculator {
	out := make([]Calculator, len(r.order))
	copy(out, r.order)
	return out
}
