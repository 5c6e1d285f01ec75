package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orcamentos-api/internal/application/auth"
	"github.com/jhoicas/orcamentos-api/internal/application/catalog"
	appquote "github.com/jhoicas/orcamentos-api/internal/application/quote"
	"github.com/jhoicas/orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/orcamentos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	CatalogUC *catalog.CatalogUseCase
	Engine    *appquote.Engine
	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/subscription", authHandler.Subscription)

	// Catálogo: lectura para toda sesión, escritura solo admin
	catalogHandler := NewCatalogHandler(deps.CatalogUC, log)
	cat := protected.Group("/catalog")
	cat.Get("/", catalogHandler.List)
	cat.Post("/seed", RequireRole(entity.RoleAdmin), catalogHandler.Seed)
	cat.Get("/:key/price", catalogHandler.GetPrice)
	cat.Put("/:key", RequireRole(entity.RoleAdmin), catalogHandler.Upsert)
	cat.Delete("/:key", RequireRole(entity.RoleAdmin), catalogHandler.Deactivate)

	// Servicios y presupuestos
	quoteHandler := NewQuoteHandler(deps.Engine, log)
	protected.Get("/services", quoteHandler.ListServices)
	protected.Get("/services/:key/schema", quoteHandler.Schema)
	protected.Post("/quotes/:key", quoteHandler.Compute)
	protected.Post("/quotes/:key/pdf", quoteHandler.ComputePDF)
}

// requestObserver lo implementa el adaptador de métricas.
type requestObserver interface {
	ObserveHTTP(method, route, status string, seconds float64)
}

// RequestMetrics registra método, ruta (patrón, no path) y status de cada petición.
func RequestMetrics(obs requestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		obs.ObserveHTTP(c.Method(), c.Route().Path, strconv.Itoa(status), time.Since(start).Seconds())
		return err
	}
}
