package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/luanmenezes0/lift2/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar campos con el nombre JSON/query que ve el cliente.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// validateStruct devuelve nil si in es válido, o la respuesta 400 con los campos que fallan.
func validateStruct(in any) *dto.ErrorResponse {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	resp := &dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		resp.Message = err.Error()
		return resp
	}
	for _, fe := range verrs {
		resp.Fields = append(resp.Fields, fieldPath(fe)+": "+fe.Tag())
	}
	return resp
}

// fieldPath quita el nombre del struct raíz: "RegisterDeliveryRequest.lines[0].count" → "lines[0].count".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// parseBody decodifica y valida el cuerpo JSON. Si falla, ya escribió la respuesta y devuelve false.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badBody(c)
	}
	if resp := validateStruct(out); resp != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	return true, nil
}

// parsePage lee search/limit/offset de la query.
func parsePage(c *fiber.Ctx) (dto.PageRequest, *dto.ErrorResponse) {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		return p, &dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"}
	}
	if resp := validateStruct(p); resp != nil {
		return p, resp
	}
	p.DefaultPage()
	return p, nil
}
