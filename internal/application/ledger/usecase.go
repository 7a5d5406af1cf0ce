package ledger

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/luanmenezes0/lift2/internal/application/dto"
	"github.com/luanmenezes0/lift2/internal/domain"
	"github.com/luanmenezes0/lift2/internal/domain/entity"
	"github.com/luanmenezes0/lift2/internal/domain/rental"
	"github.com/luanmenezes0/lift2/internal/domain/repository"
)

// UseCase calcula el libro de locación de una obra a partir de sus entregas y del catálogo.
// No lee el reloj: el instante de corte siempre llega del llamador.
type UseCase struct {
	siteRepo     repository.BuildingSiteRepository
	clientRepo   repository.ClientRepository
	rentableRepo repository.RentableRepository
	deliveryRepo repository.DeliveryRepository
	cache        Cache
	policy       rental.Policy
	log          zerolog.Logger
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(
	siteRepo repository.BuildingSiteRepository,
	clientRepo repository.ClientRepository,
	rentableRepo repository.RentableRepository,
	deliveryRepo repository.DeliveryRepository,
	cache Cache,
	policy rental.Policy,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		siteRepo:     siteRepo,
		clientRepo:   clientRepo,
		rentableRepo: rentableRepo,
		deliveryRepo: deliveryRepo,
		cache:        cache,
		policy:       policy,
		log:          log.With().Str("component", "ledger").Logger(),
	}
}

// SiteLedger devuelve el libro de la obra con corte en asOf.
// Registros inválidos devuelven un error que cumple errors.Is(err, rental.ErrValidation);
// la falta de precio no es error y se informa en price_unavailable.
func (uc *UseCase) SiteLedger(ctx context.Context, siteID int64, asOf time.Time) (*dto.SiteLedgerResponse, error) {
	site, err := uc.siteRepo.GetByID(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}
	return uc.ledgerFor(ctx, site, asOf)
}

func (uc *UseCase) ledgerFor(ctx context.Context, site *entity.BuildingSite, asOf time.Time) (*dto.SiteLedgerResponse, error) {
	// El catálogo se lee siempre: su huella es parte de la clave de cache.
	rentables, err := uc.rentableRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	key := CacheKey{
		BuildingSiteID: site.ID,
		Version:        site.LedgerVersion,
		Catalogue:      catalogueFingerprint(rentables),
		Period:         uc.period(asOf),
	}
	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, key)
		if err != nil {
			uc.log.Warn().Err(err).Int64("building_site_id", site.ID).Msg("cache de libros no disponible")
		}
		if ok {
			cached.AsOf = asOf
			return cached, nil
		}
	}

	deliveries, err := uc.deliveryRepo.ListAllBySite(ctx, site.ID)
	if err != nil {
		return nil, err
	}

	records := make([]rental.RawDeliveryRecord, 0, len(deliveries))
	for _, d := range deliveries {
		records = append(records, d.Record())
	}
	catalogue := make(rental.Catalogue, len(rentables))
	for _, r := range rentables {
		catalogue[r.ID] = rental.CatalogueEntry{Name: r.Name, UnitPrice: r.UnitPrice}
	}

	computed, err := rental.ComputeLedger(records, catalogue, asOf, uc.policy)
	if err != nil {
		uc.log.Warn().Err(err).Int64("building_site_id", site.ID).Msg("entregas inválidas en el libro")
		return nil, err
	}
	if cfgErr := computed.ConfigurationErr(); cfgErr != nil {
		uc.log.Warn().Err(cfgErr).Int64("building_site_id", site.ID).Msg("equipos sin precio en el libro")
	}

	out := toSiteLedgerResponse(site, computed)
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, out); err != nil {
			uc.log.Warn().Err(err).Int64("building_site_id", site.ID).Msg("no se pudo guardar el libro en cache")
		}
	}
	uc.log.Debug().
		Int64("building_site_id", site.ID).
		Int64("ledger_version", site.LedgerVersion).
		Int("equipment", len(out.Equipment)).
		Msg("libro calculado")
	return out, nil
}

// Balances saldo de cada equipo que tuvo movimientos en la obra, a la fecha asOf.
func (uc *UseCase) Balances(ctx context.Context, siteID int64, asOf time.Time) ([]dto.EquipmentBalance, error) {
	l, err := uc.SiteLedger(ctx, siteID, asOf)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EquipmentBalance, 0, len(l.Equipment))
	for _, e := range l.Equipment {
		out = append(out, dto.EquipmentBalance{EquipmentID: e.EquipmentID, Name: e.Name, Balance: e.Balance})
	}
	return out, nil
}

// Report arma los datos de exportación: obra, cliente y libro.
func (uc *UseCase) Report(ctx context.Context, siteID int64, asOf time.Time) (*Report, error) {
	site, err := uc.siteRepo.GetByID(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}
	var (
		client *entity.Client
		l      *dto.SiteLedgerResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		client, err = uc.clientRepo.GetByID(gctx, site.ClientID)
		return err
	})
	g.Go(func() error {
		var err error
		l, err = uc.ledgerFor(gctx, site, asOf)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	r := &Report{
		Site: dto.BuildingSiteResponse{
			ID:            site.ID,
			ClientID:      site.ClientID,
			Name:          site.Name,
			Address:       site.Address,
			LedgerVersion: site.LedgerVersion,
			CreatedAt:     site.CreatedAt,
			UpdatedAt:     site.UpdatedAt,
		},
		Ledger:      *l,
		GeneratedAt: asOf,
	}
	if client != nil {
		r.Client = dto.ClientSummary{ID: client.ID, Name: client.Name}
	}
	return r, nil
}

// Export renderiza el libro con el exportador dado.
func (uc *UseCase) Export(ctx context.Context, siteID int64, asOf time.Time, renderer ReportRenderer) ([]byte, error) {
	r, err := uc.Report(ctx, siteID, asOf)
	if err != nil {
		return nil, err
	}
	b, err := renderer.Render(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", renderer.Extension(), err)
	}
	return b, nil
}

// catalogueFingerprint resume (id, nombre, precio) de cada equipo, en orden de id.
func catalogueFingerprint(rentables []*entity.Rentable) string {
	sorted := slices.Clone(rentables)
	slices.SortFunc(sorted, func(a, b *entity.Rentable) int { return cmp.Compare(a.ID, b.ID) })
	h := xxhash.New()
	for _, r := range sorted {
		price := "-"
		if r.UnitPrice.Valid {
			price = r.UnitPrice.Decimal.String()
		}
		_, _ = h.WriteString(strconv.FormatInt(r.ID, 10) + "\x1f" + r.Name + "\x1f" + price + "\x1e")
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

func (uc *UseCase) period(asOf time.Time) string {
	if uc.policy.SpanMode == rental.SpanCalendarDays || uc.policy.SpanMode == "" {
		loc := uc.policy.Location
		if loc == nil {
			loc = time.UTC
		}
		return asOf.In(loc).Format("2006-01-02")
	}
	return asOf.UTC().Format(time.RFC3339Nano)
}

func toSiteLedgerResponse(site *entity.BuildingSite, l *rental.SiteLedger) *dto.SiteLedgerResponse {
	out := &dto.SiteLedgerResponse{
		BuildingSiteID: site.ID,
		AsOf:           l.AsOf,
		LedgerVersion:  site.LedgerVersion,
		Equipment:      make([]dto.EquipmentLedgerResponse, 0, len(l.EquipmentIDs)),
		GrandTotal:     l.GrandTotal,
	}
	for _, g := range l.Ordered() {
		anomalies := map[int64][]string{}
		for _, a := range rental.DetectAnomalies(g.Rows) {
			anomalies[a.RecordID] = append(anomalies[a.RecordID], string(a.Kind))
		}
		rows := make([]dto.LedgerRowResponse, 0, len(g.Rows))
		for _, r := range g.Rows {
			rows = append(rows, dto.LedgerRowResponse{
				RecordID:  r.RecordID,
				Date:      r.Date,
				Delta:     r.Delta,
				Balance:   r.Balance,
				DaySpan:   r.DaySpan,
				Cost:      r.Cost,
				Anomalies: anomalies[r.RecordID],
			})
		}
		name := g.Name
		if name == "" {
			name = fmt.Sprintf("#%d", g.EquipmentID)
		}
		out.Equipment = append(out.Equipment, dto.EquipmentLedgerResponse{
			EquipmentID:      g.EquipmentID,
			Name:             name,
			UnitPrice:        g.UnitPrice,
			PriceUnavailable: g.Err != nil,
			Balance:          g.Balance,
			Total:            g.Total,
			Rows:             rows,
		})
	}
	for _, err := range l.ConfigErrors {
		out.Warnings = append(out.Warnings, err.Error())
	}
	return out
}
