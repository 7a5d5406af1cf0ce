package repository

import (
	"context"

	"github.com/luanmenezes0/lift2/internal/domain/entity"
)

// RentableRepository define el puerto de persistencia del catálogo de equipos.
type RentableRepository interface {
	Create(ctx context.Context, r *entity.Rentable) error
	GetByID(ctx context.Context, id int64) (*entity.Rentable, error)
	Update(ctx context.Context, r *entity.Rentable) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entity.Rentable, error)
}
