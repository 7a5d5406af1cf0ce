package repository

import (
	"context"

	"github.com/luanmenezes0/lift2/internal/domain/entity"
)

// ListFilter búsqueda y paginación comunes a los listados.
type ListFilter struct {
	Search string // contiene, sin distinguir mayúsculas
	Limit  int
	Offset int
}

// ClientRepository define el puerto de persistencia para Client.
// GetByID devuelve (nil, nil) si no existe.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	// Delete devuelve domain.ErrHasDependents si el cliente aún tiene obras.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter) ([]*entity.Client, int, error)
}
