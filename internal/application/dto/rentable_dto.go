package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRentableRequest entrada para crear un equipo del catálogo. UnitPrice nulo = sin precio.
type CreateRentableRequest struct {
	Name       string           `json:"name" validate:"required,min=1,max=200"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
	TotalCount int64            `json:"total_count" validate:"min=0"`
}

// UpdateRentableRequest entrada para actualizar un equipo.
// ClearPrice quita el precio (UnitPrice nulo no distingue "no enviado" de "borrar").
type UpdateRentableRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
	ClearPrice bool             `json:"clear_price"`
	TotalCount *int64           `json:"total_count" validate:"omitempty,min=0"`
}

// TouchesPrice indica si el request cambia el precio.
func (r UpdateRentableRequest) TouchesPrice() bool {
	return r.UnitPrice != nil || r.ClearPrice
}

// RentableResponse salida de un equipo. unit_price es null si no tiene precio.
type RentableResponse struct {
	ID         int64               `json:"id"`
	Name       string              `json:"name"`
	UnitPrice  decimal.NullDecimal `json:"unit_price" swaggertype:"string"`
	TotalCount int64               `json:"total_count"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}
