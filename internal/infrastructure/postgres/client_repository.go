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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, is_legal_entity, registration_number, address, neighborhood, city, state, phone_number, created_at, updated_at`

// Create persiste un nuevo cliente y completa su ID.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (name, is_legal_entity, registration_number, address, neighborhood, city, state, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.Name, c.IsLegalEntity, nullIfEmpty(c.RegistrationNumber), c.Address, c.Neighborhood, c.City,
		nullIfEmpty(c.State), c.PhoneNumber, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	row := r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, is_legal_entity = $3, registration_number = $4, address = $5,
			neighborhood = $6, city = $7, state = $8, phone_number = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.IsLegalEntity, nullIfEmpty(c.RegistrationNumber), c.Address, c.Neighborhood,
		c.City, nullIfEmpty(c.State), c.PhoneNumber, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente. Las obras lo referencian con ON DELETE RESTRICT.
func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasDependents
		}
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista clientes por nombre, con búsqueda y total, en una sola transacción.
func (r *ClientRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Client, int, error) {
	var (
		list  []*entity.Client
		total int
	)
	pattern := likePattern(f.Search)
	err := inTx(ctx, r.q, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM clients WHERE name ILIKE $1`, pattern).Scan(&total); err != nil {
			return fmt.Errorf("count clients: %w", err)
		}
		rows, err := tx.Query(ctx, `
			SELECT `+clientColumns+` FROM clients
			WHERE name ILIKE $1 ORDER BY name, id LIMIT $2 OFFSET $3`, pattern, f.Limit, f.Offset)
		if err != nil {
			return fmt.Errorf("list clients: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			c, err := scanClient(rows)
			if err != nil {
				return fmt.Errorf("scan client: %w", err)
			}
			list = append(list, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var (
		c     entity.Client
		reg   *string
		state *string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.IsLegalEntity, &reg, &c.Address, &c.Neighborhood, &c.City,
		&state, &c.PhoneNumber, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if reg != nil {
		c.RegistrationNumber = *reg
	}
	if state != nil {
		c.State = *state
	}
	return &c, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
