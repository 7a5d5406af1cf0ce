package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/luanmenezes0/lift2/internal/application/delivery"
	"github.com/luanmenezes0/lift2/internal/application/dto"
)

// DeliveryHandler maneja las remesas (entregas y retiros) de una obra.
type DeliveryHandler struct {
	uc    *delivery.UseCase
	clock Clock
}

// NewDeliveryHandler construye el handler de entregas.
func NewDeliveryHandler(uc *delivery.UseCase, clock Clock) *DeliveryHandler {
	return &DeliveryHandler{uc: uc, clock: clock}
}

// Register godoc
// @Summary      Registrar remesa
// @Description  Las líneas con count 0 se descartan. Todas las líneas comparten batch_id y fecha.
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                          true  "ID de la obra"
// @Param        body  body  dto.RegisterDeliveryRequest  true  "fecha opcional y líneas"
// @Success      201   {object}  dto.RegisterDeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/building-sites/{id}/deliveries [post]
func (h *DeliveryHandler) Register(c *fiber.Ctx) error {
	siteID, err := paramID(c, "id")
	if siteID == 0 {
		return err
	}
	var in dto.RegisterDeliveryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Register(c.UserContext(), siteID, GetUserID(c), h.clock.now(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar entregas de una obra
// @Description  Más recientes primero.
// @Tags         deliveries
// @Produce      json
// @Security     BearerAuth
// @Param        id      path   int  true   "ID de la obra"
// @Param        limit   query  int  false  "límite (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200     {object}  dto.DeliveryListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/building-sites/{id}/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	siteID, err := paramID(c, "id")
	if siteID == 0 {
		return err
	}
	page, verr := parsePage(c)
	if verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(verr)
	}
	out, err := h.uc.List(c.UserContext(), siteID, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar línea de entrega
// @Tags         deliveries
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [delete]
func (h *DeliveryHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if id == 0 {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
