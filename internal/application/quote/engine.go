// Package quote orquesta el cálculo de presupuestos: resuelve la calculadora, aplica la puerta
// de suscripción, valida parámetros, carga la instantánea del catálogo y ejecuta el cálculo.
package quote

import (
	"context"
	"fmt"
	"time"

	appcatalog "github.com/jhoicas/orcamentos-api/internal/application/catalog"
	"github.com/jhoicas/orcamentos-api/internal/application/dto"
	"github.com/jhoicas/orcamentos-api/internal/application/ports"
	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/orcamentos-api/internal/domain/quote"
	"github.com/jhoicas/orcamentos-api/internal/domain/repository"
	"github.com/jhoicas/orcamentos-api/pkg/money"
)

// Deps colaboradores del motor. Metrics y PDF son opcionales.
type Deps struct {
	Registry  *quote.Registry
	Catalog   repository.CatalogRepository
	Companies repository.CompanyRepository
	Gate      ports.SubscriptionGate
	Money     money.Formatter
	Metrics   ports.MetricsRecorder
	PDF       ports.QuotePDFGenerator
}

// Engine motor de presupuestos. No guarda estado entre llamadas ni reintenta.
type Engine struct {
	registry  *quote.Registry
	catalog   repository.CatalogRepository
	companies repository.CompanyRepository
	gate      ports.SubscriptionGate
	money     money.Formatter
	metrics   ports.MetricsRecorder
	pdf       ports.QuotePDFGenerator
	now       func() time.Time
}

// NewEngine construye el motor.
func NewEngine(d Deps) *Engine {
	if d.Registry == nil {
		d.Registry = quote.DefaultRegistry()
	}
	if d.Metrics == nil {
		d.Metrics = ports.NopMetrics{}
	}
	return &Engine{
		registry:  d.Registry,
		catalog:   d.Catalog,
		companies: d.Companies,
		gate:      d.Gate,
		money:     d.Money,
		metrics:   d.Metrics,
		pdf:       d.PDF,
		now:       time.Now,
	}
}

// ListServices servicios cotizables en orden de registro.
func (e *Engine) ListServices(ctx context.Context, s entity.Session) ([]dto.ServiceResponse, error) {
	if err := e.gate.RequireActive(ctx, s.CompanyID); err != nil {
		return nil, err
	}
	calcs := e.registry.List()
	out := make([]dto.ServiceResponse, 0, len(calcs))
	for _, c := range calcs {
		out = append(out, toServiceResponse(c.Descriptor()))
	}
	return out, nil
}

// GetSchema esquema de parámetros del servicio key. Los parámetros por SKU incluyen las opciones
// activas del catálogo de la empresa.
func (e *Engine) GetSchema(ctx context.Context, s entity.Session, key string) (*dto.SchemaResponse, error) {
	if err := e.gate.RequireActive(ctx, s.CompanyID); err != nil {
		return nil, err
	}
	calc, err := e.registry.Get(key)
	if err != nil {
		return nil, err
	}
	resp := &dto.SchemaResponse{Service: toServiceResponse(calc.Descriptor())}
	for _, p := range calc.Schema() {
		ps := dto.ParamSchemaResponse{
			Name:     p.Name,
			Label:    p.Label,
			Type:     string(p.Type),
			Min:      p.Min,
			Max:      p.Max,
			Default:  p.Default,
			Category: p.Category,
		}
		if p.Type == quote.ParamSKUQuantities {
			items, err := e.catalog.List(ctx, s.CompanyID, entity.CatalogFilter{Category: p.Category})
			if err != nil {
				return nil, err
			}
			for _, it := range items {
				ps.Options = append(ps.Options, dto.CatalogItemResponse{
					Key: it.Key, Label: it.Label, Module: it.Module, Category: it.Category,
					Unit: it.Unit, Price: it.Price, PriceFormatted: e.money.Format(it.Price), Active: it.Active,
				})
			}
		}
		resp.Params = append(resp.Params, ps)
	}
	return resp, nil
}

// Compute calcula el presupuesto del servicio key con params.
func (e *Engine) Compute(ctx context.Context, s entity.Session, key string, params quote.Params) (*dto.QuoteResponse, error) {
	res, err := e.compute(ctx, s, key, params)
	if err != nil {
		return nil, err
	}
	return e.toQuoteResponse(res), nil
}

// ComputePDF calcula el presupuesto y lo devuelve renderizado como PDF junto al nombre de archivo.
func (e *Engine) ComputePDF(ctx context.Context, s entity.Session, key string, params quote.Params) ([]byte, string, error) {
	if e.pdf == nil {
		return nil, "", fmt.Errorf("generador de PDF no configurado")
	}
	res, err := e.compute(ctx, s, key, params)
	if err != nil {
		return nil, "", err
	}
	company, err := e.companies.GetByID(ctx, s.CompanyID)
	if err != nil {
		return nil, "", err
	}
	now := e.now()
	doc, err := e.pdf.GenerateQuotePDF(ctx, company, res, now)
	if err != nil {
		return nil, "", err
	}
	return doc, fmt.Sprintf("orcamento-%s-%s.pdf", res.ServiceKey, now.Format("20060102")), nil
}

func (e *Engine) compute(ctx context.Context, s entity.Session, key string, params quote.Params) (res *quote.Result, err error) {
	defer func() { e.metrics.QuoteComputed(metricKey(e.registry, key), ports.Outcome(err)) }()

	if err := e.gate.RequireActive(ctx, s.CompanyID); err != nil {
		return nil, err
	}
	calc, err := e.registry.Get(key)
	if err != nil {
		return nil, err
	}
	validated, err := quote.ValidateParams(calc.Schema(), params)
	if err != nil {
		return nil, err
	}
	items, err := appcatalog.LoadDependencies(ctx, e.catalog, s.CompanyID, calc.Dependencies(), entity.CatalogFilter{})
	if err != nil {
		return nil, err
	}
	return calc.Compute(quote.NewSnapshot(items), validated)
}

// metricKey evita cardinalidad ilimitada: claves desconocidas se agrupan.
func metricKey(r *quote.Registry, key string) string {
	if _, err := r.Get(key); err != nil {
		return "unknown"
	}
	return key
}

func (e *Engine) toQuoteResponse(r *quote.Result) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		Service:           r.ServiceKey,
		ServiceLabel:      r.ServiceLabel,
		Lines:             make([]dto.QuoteLineResponse, 0, len(r.Lines)),
		Subtotal:          r.Subtotal,
		SubtotalFormatted: e.money.Format(r.Subtotal),
	}
	for _, l := range r.Lines {
		resp.Lines = append(resp.Lines, dto.QuoteLineResponse{
			Key:                l.Key,
			Label:              l.Label,
			Quantity:           l.Quantity,
			UnitPrice:          l.UnitPrice,
			Subtotal:           l.Subtotal,
			UnitPriceFormatted: e.money.Format(l.UnitPrice),
			SubtotalFormatted:  e.money.Format(l.Subtotal),
		})
	}
	return resp
}

func toServiceResponse(d quote.Descriptor) dto.ServiceResponse {
	return dto.ServiceResponse{Key: d.Key, Label: d.Label, Module: d.Module}
}
