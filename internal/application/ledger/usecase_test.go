package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luanmenezes0/lift2/internal/application/dto"
	"github.com/luanmenezes0/lift2/internal/application/ledger"
	"github.com/luanmenezes0/lift2/internal/application/usecase"
	"github.com/luanmenezes0/lift2/internal/domain"
	"github.com/luanmenezes0/lift2/internal/domain/entity"
	"github.com/luanmenezes0/lift2/internal/domain/rental"
	"github.com/luanmenezes0/lift2/internal/infrastructure/memory"
	"github.com/luanmenezes0/lift2/pkg/logger"
)

var asOf = time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)

func day(d int) time.Time { return time.Date(2024, 3, d, 9, 0, 0, 0, time.UTC) }

// spyCache cache en memoria que cuenta accesos.
type spyCache struct {
	data map[ledger.CacheKey]dto.SiteLedgerResponse
	gets int
	hits int
	sets int
}

func newSpyCache() *spyCache { return &spyCache{data: map[ledger.CacheKey]dto.SiteLedgerResponse{}} }

func (c *spyCache) Get(_ context.Context, k ledger.CacheKey) (*dto.SiteLedgerResponse, bool, error) {
	c.gets++
	v, ok := c.data[k]
	if !ok {
		return nil, false, nil
	}
	c.hits++
	return &v, true, nil
}

func (c *spyCache) Set(_ context.Context, k ledger.CacheKey, v *dto.SiteLedgerResponse) error {
	c.sets++
	c.data[k] = *v
	return nil
}

type fixture struct {
	store   *memory.Store
	siteID  int64
	andaime int64
	escora  int64
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	client := &entity.Client{Name: "Construtora Alfa"}
	require.NoError(t, store.Clients().Create(ctx, client))
	site := &entity.BuildingSite{ClientID: client.ID, Name: "Edifício Sol"}
	require.NoError(t, store.Sites().Create(ctx, site))
	andaime := &entity.Rentable{Name: "Andaime", UnitPrice: decimal.NewNullDecimal(decimal.RequireFromString("10.00"))}
	escora := &entity.Rentable{Name: "Escora"}
	require.NoError(t, store.Rentables().Create(ctx, andaime))
	require.NoError(t, store.Rentables().Create(ctx, escora))

	return fixture{store: store, siteID: site.ID, andaime: andaime.ID, escora: escora.ID}
}

func (f fixture) deliver(t *testing.T, rentableID, count int64, dir rental.Direction, date time.Time) {
	t.Helper()
	err := f.store.Deliveries().CreateBatch(context.Background(), []*entity.Delivery{{
		BatchID: "b", BuildingSiteID: f.siteID, RentableID: rentableID, Count: count, DeliveryType: dir, Date: date,
	}})
	require.NoError(t, err)
}

func (f fixture) useCase(cache ledger.Cache) *ledger.UseCase {
	return ledger.NewUseCase(f.store.Sites(), f.store.Clients(), f.store.Rentables(), f.store.Deliveries(),
		cache, rental.Policy{Location: time.UTC}, logger.Nop())
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── SiteLedger ────────────────────────────────────────────────────────────────

func TestSiteLedger_CalculaSaldosDiasYCostos(t *testing.T) {
	f := setup(t)
	f.deliver(t, f.andaime, 10, rental.DirectionAdd, day(1))
	f.deliver(t, f.andaime, 4, rental.DirectionRemove, day(5))

	out, err := f.useCase(nil).SiteLedger(context.Background(), f.siteID, asOf)
	require.NoError(t, err)

	require.Len(t, out.Equipment, 1)
	eq := out.Equipment[0]
	assert.Equal(t, "Andaime", eq.Name)
	assert.Equal(t, int64(6), eq.Balance)
	assert.False(t, eq.PriceUnavailable)
	require.Len(t, eq.Rows, 2)
	assert.Equal(t, int64(4), eq.Rows[0].DaySpan)
	assert.Equal(t, int64(5), eq.Rows[1].DaySpan)
	assert.True(t, eq.Rows[0].Cost.Decimal.Equal(dec("400")))
	assert.True(t, eq.Rows[1].Cost.Decimal.Equal(dec("300")))
	assert.True(t, eq.Total.Decimal.Equal(dec("700")))
	assert.True(t, out.GrandTotal.Valid)
	assert.True(t, out.GrandTotal.Decimal.Equal(dec("700")))
	assert.Equal(t, asOf, out.AsOf)
	assert.Empty(t, out.Warnings)
}

func TestSiteLedger_EquipoSinPrecio(t *testing.T) {
	f := setup(t)
	f.deliver(t, f.andaime, 10, rental.DirectionAdd, day(1))
	f.deliver(t, f.escora, 3, rental.DirectionAdd, day(2))

	out, err := f.useCase(nil).SiteLedger(context.Background(), f.siteID, asOf)
	require.NoError(t, err)

	require.Len(t, out.Equipment, 2)
	assert.Equal(t, f.andaime, out.Equipment[0].EquipmentID, "orden ascendente por id")
	esc := out.Equipment[1]
	assert.True(t, esc.PriceUnavailable)
	assert.Equal(t, int64(3), esc.Balance)
	assert.Equal(t, int64(8), esc.Rows[0].DaySpan)
	assert.False(t, esc.Rows[0].Cost.Valid)
	assert.False(t, esc.Total.Valid)
	assert.False(t, out.GrandTotal.Valid)
	assert.Len(t, out.Warnings, 1)
}

func TestSiteLedger_MarcaAnomalias(t *testing.T) {
	f := setup(t)
	f.deliver(t, f.andaime, 2, rental.DirectionAdd, day(3))
	f.deliver(t, f.andaime, 5, rental.DirectionRemove, day(3))

	out, err := f.useCase(nil).SiteLedger(context.Background(), f.siteID, asOf)
	require.NoError(t, err)

	rows := out.Equipment[0].Rows
	assert.Equal(t, []string{"zero_span"}, rows[0].Anomalies)
	assert.Equal(t, []string{"negative_balance"}, rows[1].Anomalies)
}

func TestSiteLedger_RegistroInvalido(t *testing.T) {
	f := setup(t)
	f.deliver(t, f.andaime, 1, rental.Direction(7), day(1))

	_, err := f.useCase(nil).SiteLedger(context.Background(), f.siteID, asOf)
	assert.ErrorIs(t, err, rental.ErrValidation)
}

func TestSiteLedger_ObraInexistente(t *testing.T) {
	f := setup(t)
	_, err := f.useCase(nil).SiteLedger(context.Background(), 999, asOf)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSiteLedger_SinEntregas(t *testing.T) {
	f := setup(t)
	out, err := f.useCase(nil).SiteLedger(context.Background(), f.siteID, asOf)
	require.NoError(t, err)
	assert.Empty(t, out.Equipment)
	assert.Equal(t, f.siteID, out.BuildingSiteID)
	assert.True(t, out.GrandTotal.Valid)
	assert.True(t, out.GrandTotal.Decimal.IsZero())
}

// ── Cache ─────────────────────────────────────────────────────────────────────

func TestSiteLedger_UsaCacheMismoDia(t *testing.T) {
	f := setup(t)
	f.deliver(t, f.andaime, 10, rental.DirectionAdd, day(1))
	cache := newSpyCache()
	uc := f.useCase(cache)
	ctx := context.Background()

	first, err := uc.SiteLedger(ctx, f.siteID, asOf)
	require.NoError(t, err)
	later := asOf.Add(2 * time.Hour)
	second, err := uc.SiteLedger(ctx, f.siteID, later)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, later, second.AsOf)
	assert.Equal(t, first.Equipment, second.Equipment)
}

func TestSiteLedger_VersionNuevaRecalcula(t *testing.T) {
	f := setup(t)
	f.deliver(t, f.andaime, 10, rental.DirectionAdd, day(1))
	cache := newSpyCache()
	uc := f.useCase(cache)
	ctx := context.Background()

	_, err := uc.SiteLedger(ctx, f.siteID, asOf)
	require.NoError(t, err)

	f.deliver(t, f.andaime, 2, rental.DirectionRemove, day(4))
	_, err = f.store.Sites().BumpLedgerVersion(ctx, f.siteID)
	require.NoError(t, err)

	out, err := uc.SiteLedger(ctx, f.siteID, asOf)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.sets)
	assert.Equal(t, 0, cache.hits)
	assert.Equal(t, int64(8), out.Equipment[0].Balance)
}

func TestSiteLedger_PrecioNuevoRecalcula(t *testing.T) {
	f := setup(t)
	f.deliver(t, f.escora, 3, rental.DirectionAdd, day(2))
	cache := newSpyCache()
	uc := f.useCase(cache)
	ctx := context.Background()

	before, err := uc.SiteLedger(ctx, f.siteID, asOf)
	require.NoError(t, err)
	require.True(t, before.Equipment[0].PriceUnavailable)

	price := dec("5.00")
	_, err = usecase.NewRentableUseCase(f.store.Rentables()).
		Update(ctx, f.escora, dto.UpdateRentableRequest{UnitPrice: &price}, true)
	require.NoError(t, err)

	after, err := uc.SiteLedger(ctx, f.siteID, asOf)
	require.NoError(t, err)
	assert.Equal(t, 0, cache.hits, "el libro con el precio viejo no se reutiliza")
	assert.Equal(t, 2, cache.sets)
	eq := after.Equipment[0]
	assert.False(t, eq.PriceUnavailable)
	require.True(t, eq.Total.Valid)
	assert.True(t, eq.Total.Decimal.Equal(dec("120")), "3 escoras × 8 días × 5,00")
	assert.True(t, after.GrandTotal.Valid)
}

func TestSiteLedger_RenombrarEquipoRecalcula(t *testing.T) {
	f := setup(t)
	f.deliver(t, f.andaime, 10, rental.DirectionAdd, day(1))
	cache := newSpyCache()
	uc := f.useCase(cache)
	ctx := context.Background()

	_, err := uc.SiteLedger(ctx, f.siteID, asOf)
	require.NoError(t, err)

	name := "Andaime tubular"
	_, err = usecase.NewRentableUseCase(f.store.Rentables()).
		Update(ctx, f.andaime, dto.UpdateRentableRequest{Name: &name}, false)
	require.NoError(t, err)

	out, err := uc.SiteLedger(ctx, f.siteID, asOf)
	require.NoError(t, err)
	assert.Equal(t, 0, cache.hits)
	assert.Equal(t, "Andaime tubular", out.Equipment[0].Name)
}

func TestSiteLedger_CatalogoSinCambiosUsaCache(t *testing.T) {
	f := setup(t)
	f.deliver(t, f.andaime, 10, rental.DirectionAdd, day(1))
	cache := newSpyCache()
	uc := f.useCase(cache)
	ctx := context.Background()

	_, err := uc.SiteLedger(ctx, f.siteID, asOf)
	require.NoError(t, err)

	// Cambiar solo el stock total no afecta el libro.
	total := int64(50)
	_, err = usecase.NewRentableUseCase(f.store.Rentables()).
		Update(ctx, f.andaime, dto.UpdateRentableRequest{TotalCount: &total}, false)
	require.NoError(t, err)

	_, err = uc.SiteLedger(ctx, f.siteID, asOf)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
}

// ── Balances / Report ─────────────────────────────────────────────────────────

func TestBalances(t *testing.T) {
	f := setup(t)
	f.deliver(t, f.andaime, 10, rental.DirectionAdd, day(1))
	f.deliver(t, f.escora, 6, rental.DirectionAdd, day(1))
	f.deliver(t, f.escora, 6, rental.DirectionRemove, day(2))

	out, err := f.useCase(nil).Balances(context.Background(), f.siteID, asOf)
	require.NoError(t, err)
	assert.Equal(t, []dto.EquipmentBalance{
		{EquipmentID: f.andaime, Name: "Andaime", Balance: 10},
		{EquipmentID: f.escora, Name: "Escora", Balance: 0},
	}, out)
}

type fakeRenderer struct{ got *ledger.Report }

func (r *fakeRenderer) Render(_ context.Context, rep *ledger.Report) ([]byte, error) {
	r.got = rep
	return []byte("ok"), nil
}
func (r *fakeRenderer) ContentType() string { return "text/plain" }
func (r *fakeRenderer) Extension() string   { return "txt" }

func TestExport_ArmaReporte(t *testing.T) {
	f := setup(t)
	f.deliver(t, f.andaime, 10, rental.DirectionAdd, day(1))
	r := &fakeRenderer{}

	b, err := f.useCase(nil).Export(context.Background(), f.siteID, asOf, r)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), b)
	require.NotNil(t, r.got)
	assert.Equal(t, "Construtora Alfa", r.got.Client.Name)
	assert.Equal(t, "Edifício Sol", r.got.Site.Name)
	assert.Len(t, r.got.Ledger.Equipment, 1)
	assert.Equal(t, asOf, r.got.GeneratedAt)
}
