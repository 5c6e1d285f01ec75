package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orcamentos-api/internal/application/dto"
	appquote "github.com/jhoicas/orcamentos-api/internal/application/quote"
	"github.com/jhoicas/orcamentos-api/internal/domain/quote"
	"github.com/jhoicas/orcamentos-api/pkg/logger"
)

// QuoteHandler servicios cotizables y cálculo de presupuestos (protegido).
type QuoteHandler struct {
	engine *appquote.Engine
	log    *logger.Logger
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(engine *appquote.Engine, log *logger.Logger) *QuoteHandler {
	return &QuoteHandler{engine: engine, log: log}
}

// ListServices godoc
// @Summary      Servicios cotizables
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ServiceResponse
// @Failure      402  {object}  dto.ErrorResponse
// @Router       /api/services [get]
func (h *QuoteHandler) ListServices(c *fiber.Ctx) error {
	out, err := h.engine.ListServices(c.UserContext(), GetSession(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Schema godoc
// @Summary      Esquema de parámetros de un servicio
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        key  path  string  true  "Clave del servicio"
// @Success      200  {object}  dto.SchemaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/services/{key}/schema [get]
func (h *QuoteHandler) Schema(c *fiber.Ctx) error {
	out, err := h.engine.GetSchema(c.UserContext(), GetSession(c), keyParam(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Compute godoc
// @Summary      Calcular presupuesto
// @Description  Valida los parámetros contra el esquema y calcula con los precios actuales del catálogo.
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        key   path  string            true  "Clave del servicio"
// @Param        body  body  dto.QuoteRequest  false "Parámetros por nombre"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotes/{key} [post]
func (h *QuoteHandler) Compute(c *fiber.Ctx) error {
	params, ok := parseParams(c)
	if !ok {
		return badBody(c)
	}
	out, err := h.engine.Compute(c.UserContext(), GetSession(c), keyParam(c), params)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ComputePDF godoc
// @Summary      Presupuesto en PDF
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        key   path  string            true  "Clave del servicio"
// @Param        body  body  dto.QuoteRequest  false "Parámetros por nombre"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/quotes/{key}/pdf [post]
func (h *QuoteHandler) ComputePDF(c *fiber.Ctx) error {
	params, ok := parseParams(c)
	if !ok {
		return badBody(c)
	}
	doc, filename, err := h.engine.ComputePDF(c.UserContext(), GetSession(c), keyParam(c), params)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(doc)
}

// parseParams lee dto.QuoteRequest; cuerpo vacío equivale a usar los valores por defecto.
func parseParams(c *fiber.Ctx) (quote.Params, bool) {
	if len(c.Body()) == 0 {
		return quote.Params{}, true
	}
	var in dto.QuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return nil, false
	}
	return quote.Params(in.Params), true
}
