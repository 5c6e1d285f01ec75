package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/orcamentos-api/docs"
	"github.com/jhoicas/orcamentos-api/internal/application/auth"
	"github.com/jhoicas/orcamentos-api/internal/application/catalog"
	appquote "github.com/jhoicas/orcamentos-api/internal/application/quote"
	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/orcamentos-api/internal/domain/quote"
	"github.com/jhoicas/orcamentos-api/internal/domain/repository"
	"github.com/jhoicas/orcamentos-api/internal/infrastructure/memstore"
	"github.com/jhoicas/orcamentos-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/orcamentos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/orcamentos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/orcamentos-api/internal/interfaces/http"
	"github.com/jhoicas/orcamentos-api/pkg/config"
	"github.com/jhoicas/orcamentos-api/pkg/logger"
	"github.com/jhoicas/orcamentos-api/pkg/money"
)

// stores repositorios según el driver configurado.
type stores struct {
	users         repository.UserRepository
	memberships   repository.MembershipRepository
	companies     repository.CompanyRepository
	subscriptions repository.SubscriptionRepository
	catalog       repository.CatalogRepository
	tx            auth.SignupTxRunner
	close         func()
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.Store.Driver == config.StoreMemory {
		mem := memstore.New()
		if err := mem.Plans().Seed(ctx, entity.DefaultPlans()); err != nil {
			return nil, err
		}
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &stores{
			users:         mem.Users(),
			memberships:   mem.Memberships(),
			companies:     mem.Companies(),
			subscriptions: mem.Subscriptions(),
			catalog:       mem.Catalog(),
			tx:            mem,
			close:         func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &stores{
		users:         postgres.NewUserRepository(pool),
		memberships:   postgres.NewMembershipRepository(pool),
		companies:     postgres.NewCompanyRepository(pool),
		subscriptions: postgres.NewSubscriptionRepository(pool),
		catalog:       postgres.NewCatalogRepository(pool),
		tx:            postgres.NewTxRunner(pool),
		close:         pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	m := metrics.New(nil)
	formatter := money.New(cfg.Money.Locale)
	registry := quote.DefaultRegistry()

	authUC := auth.NewAuthUseCase(auth.Deps{
		Users:         st.users,
		Memberships:   st.memberships,
		Subscriptions: st.subscriptions,
		Tx:            st.tx,
		Log:           log,
	}, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auth.BillingConfig{
		TrialDays:   cfg.Billing.TrialDays,
		DefaultPlan: cfg.Billing.DefaultPlan,
	})
	catalogUC := catalog.NewCatalogUseCase(st.catalog, authUC, registry, formatter, m)
	engine := appquote.NewEngine(appquote.Deps{
		Registry:  registry,
		Catalog:   st.catalog,
		Companies: st.companies,
		Gate:      authUC,
		Money:     formatter,
		Metrics:   m,
		PDF:       infrapdf.NewMarotoPDFGenerator(formatter),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		// Los params de ruta terminan en etiquetas de métricas y claves del almacén en memoria.
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestMetrics(m))

	// Swagger UI en local: http://localhost:<port>/docs
	if f := cfg.HTTP.SwaggerFile; f != "" {
		if _, err := os.Stat(f); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: f,
				Path:     "docs",
				Title:    "Orçamentos API",
			}))
		} else {
			log.Warn().Str("file", f).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CatalogUC: catalogUC,
		Engine:    engine,
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
