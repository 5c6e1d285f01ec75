package ports

import (
	"context"
	"time"

	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/orcamentos-api/internal/domain/quote"
)

// QuotePDFGenerator puerto de salida para renderizar un presupuesto como PDF.
type QuotePDFGenerator interface {
	// GenerateQuotePDF devuelve los bytes del documento. company puede ser nil.
	GenerateQuotePDF(ctx context.Context, company *entity.Company, result *quote.Result, issuedAt time.Time) ([]byte, error)
}
