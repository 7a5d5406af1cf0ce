package rental

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerResult libro completo de un equipo en una obra.
type LedgerResult struct {
	EquipmentID int64
	Name        string
	UnitPrice   decimal.NullDecimal
	Rows        []LedgerRow
	Balance     int64               // saldo final en obra
	Total       decimal.NullDecimal // inválido si falta el precio
	Err         error               // *ConfigurationError cuando el precio no está en catálogo
}

// SiteLedger resultado de ComputeLedger para una obra.
type SiteLedger struct {
	BuildingSiteID int64
	AsOf           time.Time
	Groups         map[int64]LedgerResult
	EquipmentIDs   []int64             // ids en orden ascendente para render determinista
	GrandTotal     decimal.NullDecimal // inválido si algún equipo no tiene precio
	ConfigErrors   []error
}

// Ordered devuelve los libros en el orden de EquipmentIDs.
func (s *SiteLedger) Ordered() []LedgerResult {
	out := make([]LedgerResult, 0, len(s.EquipmentIDs))
	for _, id := range s.EquipmentIDs {
		out = append(out, s.Groups[id])
	}
	return out
}

// ConfigurationErr agrupa los errores de configuración, o nil si no hay.
func (s *SiteLedger) ConfigurationErr() error {
	return errors.Join(s.ConfigErrors...)
}

// ComputeLedger es el punto de entrada del cálculo de locación de una obra:
// normaliza, descarta deltas en cero, agrupa por equipo, acumula saldos,
// calcula días hasta now y costos con el precio del catálogo.
//
// Devuelve error solo para registros inválidos (*ValidationError); la falta de
// precio se informa dentro del resultado.
func ComputeLedger(records []RawDeliveryRecord, catalogue Catalogue, now time.Time, policy Policy) (*SiteLedger, error) {
	movements, err := NormalizeAll(records)
	if err != nil {
		return nil, err
	}

	result := &SiteLedger{
		AsOf:         now,
		Groups:       make(map[int64]LedgerResult),
		EquipmentIDs: []int64{},
		GrandTotal:   decimal.NullDecimal{Decimal: decimal.Zero, Valid: true},
	}
	if len(movements) > 0 {
		result.BuildingSiteID = movements[0].BuildingSiteID
	}
	for _, m := range movements {
		if m.BuildingSiteID != result.BuildingSiteID {
			return nil, &ValidationError{RecordID: m.RecordID, Field: "building_site_id", Reason: "registros de más de una obra"}
		}
	}

	groups := Group(DropZero(movements))
	for id := range groups {
		result.EquipmentIDs = append(result.EquipmentIDs, id)
	}
	sort.Slice(result.EquipmentIDs, func(i, j int) bool { return result.EquipmentIDs[i] < result.EquipmentIDs[j] })

	for _, id := range result.EquipmentIDs {
		entry := catalogue[id]
		g := EquipmentGroup{EquipmentID: id, Entry: entry, Movements: groups[id]}

		rows, err := BuildLedger(g)
		if err != nil {
			return nil, err
		}
		rows = ApplySpans(rows, now, policy)
		rows, total, billErr := Bill(id, rows, entry.UnitPrice)

		res := LedgerResult{
			EquipmentID: id,
			Name:        entry.Name,
			UnitPrice:   entry.UnitPrice,
			Rows:        rows,
			Total:       total,
			Err:         billErr,
		}
		if n := len(rows); n > 0 {
			res.Balance = rows[n-1].Balance
		}
		result.Groups[id] = res

		if billErr != nil {
			result.ConfigErrors = append(result.ConfigErrors, billErr)
			result.GrandTotal = decimal.NullDecimal{}
			continue
		}
		if result.GrandTotal.Valid {
			result.GrandTotal.Decimal = result.GrandTotal.Decimal.Add(total.Decimal)
		}
	}
	return result, nil
}
