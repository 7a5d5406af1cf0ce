package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/luanmenezes0/lift2/internal/domain"
	"github.com/luanmenezes0/lift2/internal/domain/entity"
	"github.com/luanmenezes0/lift2/internal/domain/rental"
	"github.com/luanmenezes0/lift2/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo líneas de remesa (usable con pool o tx).
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

const deliveryColumns = `id, batch_id, building_site_id, rentable_id, count, delivery_type, date, created_by, created_at`

// CreateBatch inserta las líneas en un pgx.Batch y completa los IDs en orden.
// Debe llamarse dentro de una tx para que el lote sea atómico.
func (r *DeliveryRepo) CreateBatch(ctx context.Context, lines []*entity.Delivery) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO deliveries (batch_id, building_site_id, rentable_id, count, delivery_type, date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	tx, ok := r.q.(pgx.Tx)
	if !ok {
		return fmt.Errorf("insert deliveries: se requiere una transacción")
	}
	b := &pgx.Batch{}
	for _, d := range lines {
		b.Queue(query, d.BatchID, d.BuildingSiteID, d.RentableID, d.Count, int16(d.DeliveryType), d.Date,
			nullIfEmpty(d.CreatedBy), d.CreatedAt)
	}
	br := tx.SendBatch(ctx, b)
	for _, d := range lines {
		if err := br.QueryRow().Scan(&d.ID); err != nil {
			_ = br.Close()
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert delivery: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("insert deliveries: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *DeliveryRepo) GetByID(ctx context.Context, id int64) (*entity.Delivery, error) {
	d, err := scanDelivery(r.q.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return d, nil
}

// Delete elimina una línea.
func (r *DeliveryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBySite devuelve las entregas de una obra, más recientes primero, con el total.
func (r *DeliveryRepo) ListBySite(ctx context.Context, siteID int64, limit, offset int) ([]*entity.Delivery, int, error) {
	var (
		list  []*entity.Delivery
		total int
	)
	err := inTx(ctx, r.q, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM deliveries WHERE building_site_id = $1`, siteID).Scan(&total); err != nil {
			return fmt.Errorf("count deliveries: %w", err)
		}
		rows, err := tx.Query(ctx, `
			SELECT `+deliveryColumns+` FROM deliveries
			WHERE building_site_id = $1 ORDER BY date DESC, id DESC LIMIT $2 OFFSET $3`, siteID, limit, offset)
		if err != nil {
			return fmt.Errorf("list deliveries: %w", err)
		}
		list, err = collectDeliveries(rows)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAllBySite devuelve todas las entregas de una obra, para el cálculo del libro.
func (r *DeliveryRepo) ListAllBySite(ctx context.Context, siteID int64) ([]*entity.Delivery, error) {
	rows, err := r.q.Query(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE building_site_id = $1`, siteID)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	return collectDeliveries(rows)
}

func collectDeliveries(rows pgx.Rows) ([]*entity.Delivery, error) {
	defer rows.Close()
	var list []*entity.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	var (
		d         entity.Delivery
		kind      int16
		createdBy *string
	)
	if err := row.Scan(&d.ID, &d.BatchID, &d.BuildingSiteID, &d.RentableID, &d.Count, &kind, &d.Date,
		&createdBy, &d.CreatedAt); err != nil {
		return nil, err
	}
	d.DeliveryType = rental.Direction(kind)
	if createdBy != nil {
		d.CreatedBy = *createdBy
	}
	return &d, nil
}
