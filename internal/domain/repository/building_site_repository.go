package repository

import (
	"context"

	"github.com/luanmenezes0/lift2/internal/domain/entity"
)

// BuildingSiteRepository define el puerto de persistencia para BuildingSite.
type BuildingSiteRepository interface {
	Create(ctx context.Context, site *entity.BuildingSite) error
	GetByID(ctx context.Context, id int64) (*entity.BuildingSite, error)
	Update(ctx context.Context, site *entity.BuildingSite) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter) ([]*entity.BuildingSite, int, error)
	ListByClient(ctx context.Context, clientID int64) ([]*entity.BuildingSite, error)
	// BumpLedgerVersion incrementa la versión del libro y devuelve la nueva.
	BumpLedgerVersion(ctx context.Context, id int64) (int64, error)
}
