package delivery

import (
	"context"

	"github.com/luanmenezes0/lift2/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que las líneas de una remesa y el cambio de versión del libro se guarden juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		deliveryRepo repository.DeliveryRepository,
		siteRepo repository.BuildingSiteRepository,
	) error) error
}
