package repository

import (
	"context"

	"github.com/luanmenezes0/lift2/internal/domain/entity"
)

// DeliveryRepository define el puerto de persistencia de las líneas de remesa.
type DeliveryRepository interface {
	// CreateBatch inserta todas las líneas y completa sus IDs.
	CreateBatch(ctx context.Context, lines []*entity.Delivery) error
	GetByID(ctx context.Context, id int64) (*entity.Delivery, error)
	Delete(ctx context.Context, id int64) error
	// ListBySite devuelve las entregas de la obra, más recientes primero.
	ListBySite(ctx context.Context, buildingSiteID int64, limit, offset int) ([]*entity.Delivery, int, error)
	// ListAllBySite devuelve todas las entregas de la obra sin orden garantizado.
	ListAllBySite(ctx context.Context, buildingSiteID int64) ([]*entity.Delivery, error)
}
