package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/luanmenezes0/lift2/internal/domain"
	"github.com/luanmenezes0/lift2/internal/domain/entity"
	"github.com/luanmenezes0/lift2/internal/domain/repository"
)

var _ repository.RentableRepository = (*RentableRepo)(nil)

// RentableRepo catálogo de equipos. unit_price NUMERIC se lee como decimal.NullDecimal
// gracias al codec registrado en el pool.
type RentableRepo struct {
	q Querier
}

// NewRentableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRentableRepository(q Querier) *RentableRepo {
	return &RentableRepo{q: q}
}

const rentableColumns = `id, name, unit_price, total_count, created_at, updated_at`

// Create persiste un equipo y completa su ID.
func (r *RentableRepo) Create(ctx context.Context, e *entity.Rentable) error {
	query := `
		INSERT INTO rentables (name, unit_price, total_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, e.Name, e.UnitPrice, e.TotalCount, e.CreatedAt, e.UpdatedAt).Scan(&e.ID); err != nil {
		return fmt.Errorf("insert rentable: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo por ID.
func (r *RentableRepo) GetByID(ctx context.Context, id int64) (*entity.Rentable, error) {
	e, err := scanRentable(r.q.QueryRow(ctx, `SELECT `+rentableColumns+` FROM rentables WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rentable: %w", err)
	}
	return e, nil
}

// Update actualiza nombre, precio y stock propio.
func (r *RentableRepo) Update(ctx context.Context, e *entity.Rentable) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE rentables SET name = $2, unit_price = $3, total_count = $4, updated_at = $5 WHERE id = $1`,
		e.ID, e.Name, e.UnitPrice, e.TotalCount, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update rentable: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un equipo sin entregas registradas.
func (r *RentableRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM rentables WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasDependents
		}
		return fmt.Errorf("delete rentable: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve el catálogo completo ordenado por ID.
func (r *RentableRepo) List(ctx context.Context) ([]*entity.Rentable, error) {
	rows, err := r.q.Query(ctx, `SELECT `+rentableColumns+` FROM rentables ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list rentables: %w", err)
	}
	defer rows.Close()
	var list []*entity.Rentable
	for rows.Next() {
		e, err := scanRentable(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rentable: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanRentable(row pgx.Row) (*entity.Rentable, error) {
	var e entity.Rentable
	if err := row.Scan(&e.ID, &e.Name, &e.UnitPrice, &e.TotalCount, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
