package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/luanmenezes0/lift2/internal/application/dto"
	"github.com/luanmenezes0/lift2/internal/domain"
	"github.com/luanmenezes0/lift2/internal/domain/entity"
	"github.com/luanmenezes0/lift2/internal/domain/rental"
	"github.com/luanmenezes0/lift2/internal/domain/repository"
)

// UseCase registra, lista y elimina entregas ("remesas") de equipos en obras.
type UseCase struct {
	txRunner     TxRunner
	siteRepo     repository.BuildingSiteRepository
	rentableRepo repository.RentableRepository
	deliveryRepo repository.DeliveryRepository
	log          zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	siteRepo repository.BuildingSiteRepository,
	rentableRepo repository.RentableRepository,
	deliveryRepo repository.DeliveryRepository,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		siteRepo:     siteRepo,
		rentableRepo: rentableRepo,
		deliveryRepo: deliveryRepo,
		log:          log.With().Str("component", "delivery").Logger(),
	}
}

// Register guarda una remesa: valida obra, equipos, cantidades y tipo; descarta líneas en cero
// y persiste el resto con un batch_id común, en la misma transacción que incrementa la versión del libro.
// now es la fecha de la remesa cuando el request no trae una.
func (uc *UseCase) Register(ctx context.Context, siteID int64, userID string, now time.Time, in dto.RegisterDeliveryRequest) (*dto.RegisterDeliveryResponse, error) {
	site, err := uc.siteRepo.GetByID(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}

	date := now
	if in.Date != nil {
		date = *in.Date
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: fecha vacía", domain.ErrInvalidInput)
	}

	batchID := uuid.New().String()
	lines := make([]*entity.Delivery, 0, len(in.Lines))
	checked := make(map[int64]bool, len(in.Lines))
	for i, l := range in.Lines {
		dir := rental.Direction(l.DeliveryType)
		if !dir.Valid() {
			return nil, fmt.Errorf("%w: línea %d: delivery_type %d", domain.ErrInvalidInput, i, l.DeliveryType)
		}
		if l.Count < 0 {
			return nil, fmt.Errorf("%w: línea %d: cantidad negativa", domain.ErrInvalidInput, i)
		}
		if l.Count == 0 {
			continue
		}
		if !checked[l.RentableID] {
			r, err := uc.rentableRepo.GetByID(ctx, l.RentableID)
			if err != nil {
				return nil, err
			}
			if r == nil {
				return nil, fmt.Errorf("%w: línea %d: equipo %d no existe", domain.ErrInvalidInput, i, l.RentableID)
			}
			checked[l.RentableID] = true
		}
		lines = append(lines, &entity.Delivery{
			BatchID:        batchID,
			BuildingSiteID: site.ID,
			RentableID:     l.RentableID,
			Count:          l.Count,
			DeliveryType:   dir,
			Date:           date,
			CreatedBy:      userID,
			CreatedAt:      now,
		})
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: la remesa no tiene cantidades", domain.ErrInvalidInput)
	}

	var version int64
	err = uc.txRunner.Run(ctx, func(deliveryRepo repository.DeliveryRepository, siteRepo repository.BuildingSiteRepository) error {
		if err := deliveryRepo.CreateBatch(ctx, lines); err != nil {
			return err
		}
		v, err := siteRepo.BumpLedgerVersion(ctx, site.ID)
		if err != nil {
			return err
		}
		version = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("building_site_id", site.ID).
		Str("batch_id", batchID).
		Int("lines", len(lines)).
		Int64("ledger_version", version).
		Msg("remesa registrada")

	items := make([]dto.DeliveryResponse, 0, len(lines))
	for _, d := range lines {
		items = append(items, toDeliveryResponse(d))
	}
	return &dto.RegisterDeliveryResponse{BatchID: batchID, LedgerVersion: version, Items: items}, nil
}

// List lista las entregas de una obra, más recientes primero.
func (uc *UseCase) List(ctx context.Context, siteID int64, page dto.PageRequest) (*dto.DeliveryListResponse, error) {
	page.DefaultPage()
	site, err := uc.siteRepo.GetByID(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}
	list, total, err := uc.deliveryRepo.ListBySite(ctx, siteID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		items = append(items, toDeliveryResponse(d))
	}
	return &dto.DeliveryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina una línea de remesa e incrementa la versión del libro de su obra.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	d, err := uc.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.ErrNotFound
	}
	err = uc.txRunner.Run(ctx, func(deliveryRepo repository.DeliveryRepository, siteRepo repository.BuildingSiteRepository) error {
		if err := deliveryRepo.Delete(ctx, id); err != nil {
			return err
		}
		_, err := siteRepo.BumpLedgerVersion(ctx, d.BuildingSiteID)
		return err
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("delivery_id", id).Int64("building_site_id", d.BuildingSiteID).Msg("entrega eliminada")
	return nil
}

func toDeliveryResponse(d *entity.Delivery) dto.DeliveryResponse {
	return dto.DeliveryResponse{
		ID:             d.ID,
		BatchID:        d.BatchID,
		BuildingSiteID: d.BuildingSiteID,
		RentableID:     d.RentableID,
		Count:          d.Count,
		DeliveryType:   int(d.DeliveryType),
		Date:           d.Date,
		CreatedBy:      d.CreatedBy,
	}
}
