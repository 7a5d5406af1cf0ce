package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/luanmenezes0/lift2/internal/application/dto"
	"github.com/luanmenezes0/lift2/internal/application/usecase"
	"github.com/luanmenezes0/lift2/internal/domain/entity"
)

// RentableHandler maneja el catálogo de equipos.
type RentableHandler struct {
	uc *usecase.RentableUseCase
}

// NewRentableHandler construye el handler del catálogo.
func NewRentableHandler(uc *usecase.RentableUseCase) *RentableHandler {
	return &RentableHandler{uc: uc}
}

// Create godoc
// @Summary      Crear equipo
// @Tags         rentables
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateRentableRequest  true  "nombre, precio diario, cantidad total"
// @Success      201   {object}  dto.RentableResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/rentables [post]
func (h *RentableHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRentableRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar equipos
// @Tags         rentables
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.RentableResponse
// @Router       /api/rentables [get]
func (h *RentableHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener equipo
// @Tags         rentables
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del equipo"
// @Success      200  {object}  dto.RentableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rentables/{id} [get]
func (h *RentableHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if id == 0 {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar equipo
// @Description  Cambiar el precio requiere rol admin.
// @Tags         rentables
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                        true  "ID del equipo"
// @Param        body  body  dto.UpdateRentableRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.RentableResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rentables/{id} [put]
func (h *RentableHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if id == 0 {
		return err
	}
	var in dto.UpdateRentableRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in, GetRole(c) == entity.RoleAdmin)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar equipo
// @Description  Rechazado con 409 si el equipo tiene entregas registradas.
// @Tags         rentables
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del equipo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rentables/{id} [delete]
func (h *RentableHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if id == 0 {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
