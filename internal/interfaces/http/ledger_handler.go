package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/luanmenezes0/lift2/internal/application/dto"
	"github.com/luanmenezes0/lift2/internal/application/ledger"
)

// LedgerHandler expone el libro de alquiler de una obra y sus exportaciones.
type LedgerHandler struct {
	uc    *ledger.UseCase
	pdf   ledger.ReportRenderer
	xlsx  ledger.ReportRenderer
	clock Clock
}

// NewLedgerHandler construye el handler del libro. pdf o xlsx nil deshabilitan esa descarga.
func NewLedgerHandler(uc *ledger.UseCase, pdf, xlsx ledger.ReportRenderer, clock Clock) *LedgerHandler {
	return &LedgerHandler{uc: uc, pdf: pdf, xlsx: xlsx, clock: clock}
}

// Get godoc
// @Summary      Libro de alquiler de una obra
// @Description  Saldos, días y costo por equipo hasta as_of (default: ahora). 422 si las entregas son inconsistentes.
// @Tags         ledger
// @Produce      json
// @Security     BearerAuth
// @Param        id     path   int     true   "ID de la obra"
// @Param        as_of  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Success      200    {object}  dto.SiteLedgerResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      422    {object}  dto.ErrorResponse
// @Router       /api/building-sites/{id}/ledger [get]
func (h *LedgerHandler) Get(c *fiber.Ctx) error {
	siteID, err := paramID(c, "id")
	if siteID == 0 {
		return err
	}
	asOf, err := h.clock.asOf(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.SiteLedger(c.UserContext(), siteID, asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Libro de alquiler en PDF
// @Tags         ledger
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id     path   int     true   "ID de la obra"
// @Param        as_of  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Success      200    {file}    binary
// @Failure      422    {object}  dto.ErrorResponse
// @Router       /api/building-sites/{id}/ledger.pdf [get]
func (h *LedgerHandler) PDF(c *fiber.Ctx) error {
	return h.export(c, h.pdf)
}

// XLSX godoc
// @Summary      Libro de alquiler en planilla
// @Tags         ledger
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        id     path   int     true   "ID de la obra"
// @Param        as_of  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Success      200    {file}    binary
// @Failure      422    {object}  dto.ErrorResponse
// @Router       /api/building-sites/{id}/ledger.xlsx [get]
func (h *LedgerHandler) XLSX(c *fiber.Ctx) error {
	return h.export(c, h.xlsx)
}

func (h *LedgerHandler) export(c *fiber.Ctx, renderer ledger.ReportRenderer) error {
	if renderer == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "EXPORT_DISABLED", Message: "exportación no disponible"})
	}
	siteID, err := paramID(c, "id")
	if siteID == 0 {
		return err
	}
	asOf, err := h.clock.asOf(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	b, err := h.uc.Export(c.UserContext(), siteID, asOf, renderer)
	if err != nil {
		return writeError(c, err)
	}
	name := fmt.Sprintf("obra-%d-%s.%s", siteID, asOf.In(h.clock.loc()).Format(dateLayout), renderer.Extension())
	c.Set(fiber.HeaderContentType, renderer.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(b)
}
