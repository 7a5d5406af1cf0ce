package rental

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRow es una fila del libro de un equipo: saldo tras el movimiento,
// días que ese saldo permaneció en obra y costo aportado.
type LedgerRow struct {
	RecordID int64
	Date     time.Time
	Delta    int64
	Balance  int64
	DaySpan  int64
	Cost     decimal.NullDecimal // inválido = costo indisponible (sin precio)
}

// BuildLedger ordena los movimientos del grupo por fecha (desempate por id de registro)
// y acumula el saldo de izquierda a derecha partiendo de 0.
// Saldos negativos (retiradas de más) se devuelven tal cual; no son error.
func BuildLedger(g EquipmentGroup) ([]LedgerRow, error) {
	sorted := make([]Movement, len(g.Movements))
	copy(sorted, g.Movements)
	for _, m := range sorted {
		if m.Date.IsZero() {
			return nil, &ValidationError{RecordID: m.RecordID, Field: "date", Reason: "fecha ausente"}
		}
		if m.EquipmentID != g.EquipmentID {
			return nil, &ValidationError{RecordID: m.RecordID, Field: "equipment_id", Reason: "movimiento fuera de su grupo"}
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.RecordID < b.RecordID
	})

	rows := make([]LedgerRow, len(sorted))
	var balance int64
	for i, m := range sorted {
		balance += m.Delta
		rows[i] = LedgerRow{
			RecordID: m.RecordID,
			Date:     m.Date,
			Delta:    m.Delta,
			Balance:  balance,
		}
	}
	return rows, nil
}
