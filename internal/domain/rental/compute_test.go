package rental_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luanmenezes0/lift2/internal/domain/rental"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSiteID    = int64(42)
	testAndaimeID = int64(1)
	testEscoraID  = int64(2)
)

var d0 = time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

func days(n int) time.Duration { return time.Duration(n) * 24 * time.Hour }

func add(id, equipmentID, qty int64, at time.Time) rental.RawDeliveryRecord {
	return rental.RawDeliveryRecord{ID: id, EquipmentID: equipmentID, Magnitude: qty, Direction: rental.DirectionAdd, Date: at, BuildingSiteID: testSiteID}
}

func remove(id, equipmentID, qty int64, at time.Time) rental.RawDeliveryRecord {
	return rental.RawDeliveryRecord{ID: id, EquipmentID: equipmentID, Magnitude: qty, Direction: rental.DirectionRemove, Date: at, BuildingSiteID: testSiteID}
}

func price(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func testCatalogue() rental.Catalogue {
	return rental.Catalogue{
		testAndaimeID: {Name: "Andaime", UnitPrice: price("10.00")},
		testEscoraID:  {Name: "Escora", UnitPrice: price("2.50")},
	}
}

func balances(rows []rental.LedgerRow) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.Balance
	}
	return out
}

func spans(rows []rental.LedgerRow) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.DaySpan
	}
	return out
}

func costs(rows []rental.LedgerRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		if !r.Cost.Valid {
			out[i] = "n/a"
			continue
		}
		out[i] = r.Cost.Decimal.StringFixed(2)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios de facturación
// ──────────────────────────────────────────────────────────────────────────────

// Entrega 10, retira 3 a los 3 días, entrega 5 a los 2 días; evaluado 4 días después.
func TestComputeLedger_AndaimeEntregaRetiradaEntrega(t *testing.T) {
	d1 := d0.Add(days(3))
	d2 := d1.Add(days(2))
	now := d2.Add(days(4))

	records := []rental.RawDeliveryRecord{
		add(1, testAndaimeID, 10, d0),
		remove(2, testAndaimeID, 3, d1),
		add(3, testAndaimeID, 5, d2),
	}

	ledger, err := rental.ComputeLedger(records, testCatalogue(), now, rental.Policy{})
	require.NoError(t, err)
	require.Contains(t, ledger.Groups, testAndaimeID)

	res := ledger.Groups[testAndaimeID]
	assert.Equal(t, "Andaime", res.Name)
	assert.Equal(t, []int64{10, 7, 12}, balances(res.Rows))
	assert.Equal(t, []int64{3, 2, 4}, spans(res.Rows))
	assert.Equal(t, []string{"300.00", "140.00", "480.00"}, costs(res.Rows))
	require.True(t, res.Total.Valid)
	assert.Equal(t, "920.00", res.Total.Decimal.StringFixed(2))
	assert.Equal(t, int64(12), res.Balance)
	assert.NoError(t, res.Err)

	require.True(t, ledger.GrandTotal.Valid)
	assert.Equal(t, "920.00", ledger.GrandTotal.Decimal.StringFixed(2))
	assert.Equal(t, testSiteID, ledger.BuildingSiteID)
	assert.Equal(t, now, ledger.AsOf)
}

// Retirar más de lo entregado no es error: el saldo negativo se devuelve tal cual.
func TestComputeLedger_RetiradaMayorQueSaldo(t *testing.T) {
	d1 := d0.Add(days(1))
	now := d1.Add(days(2))

	ledger, err := rental.ComputeLedger([]rental.RawDeliveryRecord{
		add(1, testAndaimeID, 5, d0),
		remove(2, testAndaimeID, 8, d1),
	}, testCatalogue(), now, rental.Policy{})
	require.NoError(t, err)

	res := ledger.Groups[testAndaimeID]
	assert.Equal(t, []int64{5, -3}, balances(res.Rows))
	assert.Equal(t, []string{"50.00", "-60.00"}, costs(res.Rows))
	assert.Equal(t, "-10.00", res.Total.Decimal.StringFixed(2))

	anomalies := rental.DetectAnomalies(res.Rows)
	assert.Contains(t, anomalies, rental.Anomaly{RecordID: 2, Kind: rental.AnomalyNegativeBalance})
}

// Equipo sin precio: filas con saldo y días, costo indisponible y error de configuración al lado.
func TestComputeLedger_EquipoSinPrecio(t *testing.T) {
	const sinPrecioID = int64(99)
	now := d0.Add(days(5))

	ledger, err := rental.ComputeLedger([]rental.RawDeliveryRecord{
		add(1, sinPrecioID, 4, d0),
		add(2, testAndaimeID, 1, d0),
	}, testCatalogue(), now, rental.Policy{})
	require.NoError(t, err, "la falta de precio no aborta el cálculo")

	res := ledger.Groups[sinPrecioID]
	assert.Equal(t, []int64{4}, balances(res.Rows))
	assert.Equal(t, []int64{5}, spans(res.Rows))
	assert.Equal(t, []string{"n/a"}, costs(res.Rows))
	assert.False(t, res.Total.Valid, "el total debe quedar indisponible, no en cero")

	var cfgErr *rental.ConfigurationError
	require.ErrorAs(t, res.Err, &cfgErr)
	assert.Equal(t, sinPrecioID, cfgErr.EquipmentID)
	assert.ErrorIs(t, ledger.ConfigurationErr(), rental.ErrConfiguration)
	assert.Len(t, ledger.ConfigErrors, 1)

	// El equipo con precio se factura igual.
	assert.True(t, ledger.Groups[testAndaimeID].Total.Valid)
	assert.False(t, ledger.GrandTotal.Valid, "el total general no puede ocultar un equipo sin precio")
}

// Dos movimientos en el mismo instante: desempate por id de registro, 0 días y costo 0.
func TestComputeLedger_MismoDiaDesempatePorID(t *testing.T) {
	now := d0.Add(days(2))

	ledger, err := rental.ComputeLedger([]rental.RawDeliveryRecord{
		remove(7, testAndaimeID, 2, d0),
		add(5, testAndaimeID, 6, d0),
	}, testCatalogue(), now, rental.Policy{})
	require.NoError(t, err)

	rows := ledger.Groups[testAndaimeID].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, int64(5), rows[0].RecordID)
	assert.Equal(t, int64(7), rows[1].RecordID)
	assert.Equal(t, []int64{6, 4}, balances(rows))
	assert.Equal(t, []int64{0, 2}, spans(rows))
	assert.True(t, rows[0].Cost.Decimal.IsZero())
	assert.Equal(t, "80.00", ledger.Groups[testAndaimeID].Total.Decimal.StringFixed(2))
}

// Mismo día calendario con horas distintas también cuenta 0 días.
func TestComputeLedger_MismoDiaHorasDistintas(t *testing.T) {
	later := d0.Add(6 * time.Hour)
	ledger, err := rental.ComputeLedger([]rental.RawDeliveryRecord{
		add(1, testAndaimeID, 3, d0),
		add(2, testAndaimeID, 3, later),
	}, testCatalogue(), later.Add(days(1)), rental.Policy{})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1}, spans(ledger.Groups[testAndaimeID].Rows))
}

// ──────────────────────────────────────────────────────────────────────────────
// Bordes y errores
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeLedger_SinMovimientos(t *testing.T) {
	ledger, err := rental.ComputeLedger(nil, testCatalogue(), d0, rental.Policy{})
	require.NoError(t, err)
	assert.Empty(t, ledger.Groups)
	assert.Empty(t, ledger.EquipmentIDs)
	assert.True(t, ledger.GrandTotal.Valid)
	assert.True(t, ledger.GrandTotal.Decimal.IsZero())
}

func TestComputeLedger_DescartaCantidadCero(t *testing.T) {
	ledger, err := rental.ComputeLedger([]rental.RawDeliveryRecord{
		add(1, testAndaimeID, 0, d0),
		remove(2, testEscoraID, 0, d0),
		add(3, testEscoraID, 2, d0),
	}, testCatalogue(), d0.Add(days(1)), rental.Policy{})
	require.NoError(t, err)
	assert.Equal(t, []int64{testEscoraID}, ledger.EquipmentIDs)
	assert.Len(t, ledger.Groups[testEscoraID].Rows, 1)
}

func TestComputeLedger_RegistroInvalidoAbortaLaObra(t *testing.T) {
	cases := []struct {
		name   string
		record rental.RawDeliveryRecord
		field  string
	}{
		{"cantidad negativa", add(9, testAndaimeID, -1, d0), "magnitude"},
		{"tipo desconocido", rental.RawDeliveryRecord{ID: 9, EquipmentID: testAndaimeID, Magnitude: 1, Direction: 3, Date: d0, BuildingSiteID: testSiteID}, "direction"},
		{"fecha ausente", add(9, testAndaimeID, 1, time.Time{}), "date"},
		{"fecha ausente con cantidad cero", add(9, testAndaimeID, 0, time.Time{}), "date"},
		{"otra obra", rental.RawDeliveryRecord{ID: 9, EquipmentID: testAndaimeID, Magnitude: 1, Direction: rental.DirectionAdd, Date: d0, BuildingSiteID: testSiteID + 1}, "building_site_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records := []rental.RawDeliveryRecord{add(1, testAndaimeID, 10, d0), tc.record}
			ledger, err := rental.ComputeLedger(records, testCatalogue(), d0.Add(days(3)), rental.Policy{})
			require.Error(t, err)
			assert.Nil(t, ledger, "no debe devolver un libro parcial")
			assert.True(t, errors.Is(err, rental.ErrValidation))

			var vErr *rental.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, int64(9), vErr.RecordID)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

// now anterior a la última fecha: días negativos se exponen salvo que la política recorte.
func TestComputeLedger_InstanteAnteriorAlUltimoMovimiento(t *testing.T) {
	records := []rental.RawDeliveryRecord{add(1, testAndaimeID, 2, d0)}
	now := d0.Add(-days(3))

	ledger, err := rental.ComputeLedger(records, testCatalogue(), now, rental.Policy{})
	require.NoError(t, err)
	rows := ledger.Groups[testAndaimeID].Rows
	assert.Equal(t, []int64{-3}, spans(rows))
	assert.Equal(t, []string{"-60.00"}, costs(rows))
	assert.Contains(t, rental.DetectAnomalies(rows), rental.Anomaly{RecordID: 1, Kind: rental.AnomalyNegativeSpan})

	clamped, err := rental.ComputeLedger(records, testCatalogue(), now, rental.Policy{ClampNegativeSpans: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{0}, spans(clamped.Groups[testAndaimeID].Rows))
}

func TestComputeLedger_VariosEquiposOrdenados(t *testing.T) {
	ledger, err := rental.ComputeLedger([]rental.RawDeliveryRecord{
		add(1, testEscoraID, 10, d0),
		add(2, testAndaimeID, 4, d0),
	}, testCatalogue(), d0.Add(days(10)), rental.Policy{})
	require.NoError(t, err)

	assert.Equal(t, []int64{testAndaimeID, testEscoraID}, ledger.EquipmentIDs)
	ordered := ledger.Ordered()
	require.Len(t, ordered, 2)
	assert.Equal(t, "Andaime", ordered[0].Name)
	// 4×10×10.00 + 10×10×2.50
	assert.Equal(t, "650.00", ledger.GrandTotal.Decimal.StringFixed(2))
}
