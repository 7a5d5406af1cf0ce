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

var _ repository.BuildingSiteRepository = (*BuildingSiteRepo)(nil)

// BuildingSiteRepo implementación de BuildingSiteRepository (usable con pool o tx).
type BuildingSiteRepo struct {
	q Querier
}

// NewBuildingSiteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBuildingSiteRepository(q Querier) *BuildingSiteRepo {
	return &BuildingSiteRepo{q: q}
}

const siteColumns = `id, client_id, name, address, ledger_version, created_at, updated_at`

// Create persiste una obra. Un client_id inexistente devuelve domain.ErrNotFound.
func (r *BuildingSiteRepo) Create(ctx context.Context, s *entity.BuildingSite) error {
	query := `
		INSERT INTO building_sites (client_id, name, address, ledger_version, created_at, updated_at)
		VALUES ($1, $2, $3, 0, $4, $5)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, s.ClientID, s.Name, s.Address, s.CreatedAt, s.UpdatedAt).Scan(&s.ID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert building site: %w", err)
	}
	s.LedgerVersion = 0
	return nil
}

// GetByID obtiene una obra por ID.
func (r *BuildingSiteRepo) GetByID(ctx context.Context, id int64) (*entity.BuildingSite, error) {
	s, err := scanSite(r.q.QueryRow(ctx, `SELECT `+siteColumns+` FROM building_sites WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get building site: %w", err)
	}
	return s, nil
}

// Update actualiza nombre y dirección.
func (r *BuildingSiteRepo) Update(ctx context.Context, s *entity.BuildingSite) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE building_sites SET name = $2, address = $3, updated_at = $4 WHERE id = $1`,
		s.ID, s.Name, s.Address, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update building site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una obra y, en cascada, sus entregas.
func (r *BuildingSiteRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM building_sites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete building site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista obras con búsqueda por nombre; cuenta y página en la misma transacción.
func (r *BuildingSiteRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.BuildingSite, int, error) {
	var (
		list  []*entity.BuildingSite
		total int
	)
	pattern := likePattern(f.Search)
	err := inTx(ctx, r.q, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM building_sites WHERE name ILIKE $1`, pattern).Scan(&total); err != nil {
			return fmt.Errorf("count building sites: %w", err)
		}
		rows, err := tx.Query(ctx, `
			SELECT `+siteColumns+` FROM building_sites
			WHERE name ILIKE $1 ORDER BY name, id LIMIT $2 OFFSET $3`, pattern, f.Limit, f.Offset)
		if err != nil {
			return fmt.Errorf("list building sites: %w", err)
		}
		list, err = collectSites(rows)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByClient lista las obras de un cliente.
func (r *BuildingSiteRepo) ListByClient(ctx context.Context, clientID int64) ([]*entity.BuildingSite, error) {
	rows, err := r.q.Query(ctx, `SELECT `+siteColumns+` FROM building_sites WHERE client_id = $1 ORDER BY name, id`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list building sites by client: %w", err)
	}
	return collectSites(rows)
}

// BumpLedgerVersion incrementa ledger_version y devuelve el nuevo valor.
func (r *BuildingSiteRepo) BumpLedgerVersion(ctx context.Context, id int64) (int64, error) {
	var v int64
	err := r.q.QueryRow(ctx,
		`UPDATE building_sites SET ledger_version = ledger_version + 1 WHERE id = $1 RETURNING ledger_version`, id,
	).Scan(&v)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("bump ledger version: %w", err)
	}
	return v, nil
}

func collectSites(rows pgx.Rows) ([]*entity.BuildingSite, error) {
	defer rows.Close()
	var list []*entity.BuildingSite
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan building site: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSite(row pgx.Row) (*entity.BuildingSite, error) {
	var s entity.BuildingSite
	if err := row.Scan(&s.ID, &s.ClientID, &s.Name, &s.Address, &s.LedgerVersion, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
