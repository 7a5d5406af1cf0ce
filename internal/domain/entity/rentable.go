package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rentable tipo de equipo del catálogo (andaime, escora...).
// UnitPrice es el precio por unidad y por día; sin precio el equipo no se puede facturar.
type Rentable struct {
	ID         int64
	Name       string
	UnitPrice  decimal.NullDecimal
	TotalCount int64 // unidades propias de la empresa
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
