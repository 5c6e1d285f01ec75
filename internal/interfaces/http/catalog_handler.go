package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/orcamentos-api/internal/application/catalog"
	"github.com/jhoicas/orcamentos-api/internal/application/dto"
	"github.com/jhoicas/orcamentos-api/pkg/logger"
)

// CatalogHandler maneja el catálogo de precios de la empresa (protegido).
type CatalogHandler struct {
	uc  *catalog.CatalogUseCase
	log *logger.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.CatalogUseCase, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar catálogo
// @Description  Ítems activos ordenados por categoría y nombre. service lista las dependencias de una calculadora.
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        module    query  string  false  "Módulo"
// @Param        category  query  string  false  "Categoría"
// @Param        keys      query  string  false  "Claves separadas por coma"
// @Param        search    query  string  false  "Texto en nombre o clave"
// @Param        service   query  string  false  "Clave de servicio"
// @Success      200  {array}   dto.CatalogItemResponse
// @Failure      402  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	q := dto.CatalogListQuery{
		Module:   c.Query("module"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Service:  c.Query("service"),
	}
	if raw := strings.TrimSpace(c.Query("keys")); raw != "" {
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				q.Keys = append(q.Keys, k)
			}
		}
	}
	out, err := h.uc.List(c.UserContext(), GetSession(c), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetPrice godoc
// @Summary      Precio de un ítem
// @Description  Cero si la clave no existe o está inactiva.
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        key  path  string  true  "Clave del ítem"
// @Success      200  {object}  dto.PriceResponse
// @Failure      402  {object}  dto.ErrorResponse
// @Router       /api/catalog/{key}/price [get]
func (h *CatalogHandler) GetPrice(c *fiber.Ctx) error {
	out, err := h.uc.GetPrice(c.UserContext(), GetSession(c), keyParam(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o reemplazar ítem
// @Description  Reemplaza todos los campos y deja el ítem activo. Idempotente.
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        key   path  string                        true  "Clave del ítem"
// @Param        body  body  dto.UpsertCatalogItemRequest  true  "label, module, category, unit, price"
// @Success      200   {object}  dto.CatalogItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/catalog/{key} [put]
func (h *CatalogHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertCatalogItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Upsert(c.UserContext(), GetSession(c), keyParam(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar ítem
// @Tags         catalog
// @Security     Bearer
// @Param        key  path  string  true  "Clave del ítem"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/{key} [delete]
func (h *CatalogHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), GetSession(c), keyParam(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Seed godoc
// @Summary      Restaurar catálogo por defecto
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SeedResponse
// @Failure      402  {object}  dto.ErrorResponse
// @Router       /api/catalog/seed [post]
func (h *CatalogHandler) Seed(c *fiber.Ctx) error {
	out, err := h.uc.SeedDefaults(c.UserContext(), GetSession(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// keyParam copia el param :key; sin Immutable fiber lo devuelve apuntando al buffer de la petición,
// que se reutiliza y el valor termina retenido en métricas y en el almacén.
func keyParam(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("key"))
}
