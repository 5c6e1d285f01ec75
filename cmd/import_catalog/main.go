// import_catalog carga precios del catálogo de una empresa desde un CSV separado por ';'.
//
// Uso: go run ./cmd/import_catalog -company <uuid> [-encoding iso-8859-1] [-dry-run] precos.csv
// Columnas: key;label;module;category;unit;price. La cabecera es opcional.
// Cada fila se aplica como un upsert de administrador: mismas validaciones y puerta de suscripción que la API.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/orcamentos-api/internal/application/auth"
	"github.com/jhoicas/orcamentos-api/internal/application/catalog"
	"github.com/jhoicas/orcamentos-api/internal/application/dto"
	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/orcamentos-api/internal/domain/quote"
	"github.com/jhoicas/orcamentos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/orcamentos-api/pkg/config"
	"github.com/jhoicas/orcamentos-api/pkg/logger"
	"github.com/jhoicas/orcamentos-api/pkg/money"
)

// row una fila del CSV ya interpretada.
type row struct {
	Line int
	Key  string
	Req  dto.UpsertCatalogItemRequest
}

var columns = []string{"key", "label", "module", "category", "unit", "price"}

// decodeInput envuelve r según la codificación del archivo (utf-8 o iso-8859-1).
func decodeInput(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(encoding, "_", "-")) {
	case "", "utf-8", "utf8":
		return r, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}
}

// parsePrice acepta "1234.5", "1234,50" y "1.234,50".
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

// parseRows lee todas las filas. Una fila inválida corta la lectura con su número de línea.
func parseRows(r io.Reader) ([]row, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.Comment = '#'
	cr.FieldsPerRecord = len(columns)
	cr.TrimLeadingSpace = true

	var out []row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(out) == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), columns[0]) {
			continue
		}
		price, err := parsePrice(rec[5])
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio inválido %q", line, rec[5])
		}
		out = append(out, row{
			Line: line,
			Key:  rec[0],
			Req: dto.UpsertCatalogItemRequest{
				Label:    rec[1],
				Module:   rec[2],
				Category: rec[3],
				Unit:     rec[4],
				Price:    price,
			},
		})
	}
}

// itemUpserter lo implementa catalog.CatalogUseCase.
type itemUpserter interface {
	Upsert(ctx context.Context, s entity.Session, key string, in dto.UpsertCatalogItemRequest) (*dto.CatalogItemResponse, error)
}

// apply ejecuta el upsert de cada fila; sigue con las demás si una falla y devuelve cuántas fallaron.
func apply(ctx context.Context, uc itemUpserter, s entity.Session, rows []row, log *logger.Logger) int {
	failed := 0
	for _, r := range rows {
		item, err := uc.Upsert(ctx, s, r.Key, r.Req)
		if err != nil {
			failed++
			log.Error().Err(err).Int("line", r.Line).Str("key", r.Key).Msg("fila rechazada")
			continue
		}
		log.Debug().Str("key", item.Key).Str("price", item.PriceFormatted).Msg("ítem aplicado")
	}
	return failed
}

func main() {
	companyID := flag.String("company", "", "ID de la empresa destino")
	encoding := flag.String("encoding", "utf-8", "codificación del archivo: utf-8, iso-8859-1 o windows-1252")
	dryRun := flag.Bool("dry-run", false, "solo valida el archivo, no escribe")
	flag.Parse()
	if flag.NArg() != 1 || (*companyID == "" && !*dryRun) {
		fmt.Fprintln(os.Stderr, "uso: import_catalog -company <uuid> [-encoding iso-8859-1] [-dry-run] archivo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("import_catalog")

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	in, err := decodeInput(f, *encoding)
	if err != nil {
		log.Fatal().Err(err).Msg("codificación")
	}
	rows, err := parseRows(in)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	log.Info().Int("rows", len(rows)).Msg("archivo leído")
	if *dryRun {
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema")
	}

	authUC := auth.NewAuthUseCase(auth.Deps{
		Users:         postgres.NewUserRepository(pool),
		Memberships:   postgres.NewMembershipRepository(pool),
		Subscriptions: postgres.NewSubscriptionRepository(pool),
		Tx:            postgres.NewTxRunner(pool),
		Log:           log,
	}, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
		auth.BillingConfig{TrialDays: cfg.Billing.TrialDays, DefaultPlan: cfg.Billing.DefaultPlan})

	uc := catalog.NewCatalogUseCase(postgres.NewCatalogRepository(pool), authUC, quote.DefaultRegistry(), money.New(cfg.Money.Locale), nil)
	session := entity.Session{CompanyID: *companyID, Role: entity.RoleAdmin}

	failed := apply(ctx, uc, session, rows, log)
	log.Info().Int("applied", len(rows)-failed).Int("failed", failed).Msg("importación terminada")
	if failed > 0 {
		os.Exit(1)
	}
}
