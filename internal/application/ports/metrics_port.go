package ports

import (
	"errors"

	"github.com/jhoicas/orcamentos-api/internal/domain"
)

// Resultados que se etiquetan en las métricas.
const (
	OutcomeOK           = "ok"
	OutcomeInvalid      = "invalid"
	OutcomeInactive     = "inactive"
	OutcomeNotFound     = "not_found"
	OutcomeStoreFailure = "store_error"
)

// MetricsRecorder puerto de salida para contadores de negocio.
// La aplicación solo conoce este contrato; el adaptador Prometheus vive en infrastructure.
type MetricsRecorder interface {
	// QuoteComputed cuenta un cálculo de presupuesto por servicio y resultado.
	QuoteComputed(service, outcome string)
	// CatalogUpserted cuenta una escritura del catálogo por resultado.
	CatalogUpserted(outcome string)
}

// NopMetrics descarta todas las métricas.
type NopMetrics struct{}

func (NopMetrics) QuoteComputed(string, string) {}
func (NopMetrics) CatalogUpserted(string)       {}

// Outcome etiqueta de métricas para err.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrForbidden):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrSubscriptionInactive):
		return OutcomeInactive
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeStoreFailure
	}
}
