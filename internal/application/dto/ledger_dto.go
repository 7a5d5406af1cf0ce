package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRowResponse una fila del libro de un equipo.
// cost es null cuando el equipo no tiene precio.
type LedgerRowResponse struct {
	RecordID  int64               `json:"record_id"`
	Date      time.Time           `json:"date"`
	Delta     int64               `json:"delta"`
	Balance   int64               `json:"balance"`
	DaySpan   int64               `json:"day_span"`
	Cost      decimal.NullDecimal `json:"cost" swaggertype:"string"`
	Anomalies []string            `json:"anomalies,omitempty"` // negative_balance, zero_span, negative_span
}

// EquipmentLedgerResponse libro de un equipo en una obra.
type EquipmentLedgerResponse struct {
	EquipmentID      int64               `json:"equipment_id"`
	Name             string              `json:"name"`
	UnitPrice        decimal.NullDecimal `json:"unit_price" swaggertype:"string"`
	PriceUnavailable bool                `json:"price_unavailable"`
	Balance          int64               `json:"balance"`
	Total            decimal.NullDecimal `json:"total" swaggertype:"string"`
	Rows             []LedgerRowResponse `json:"rows"`
}

// SiteLedgerResponse libro completo de una obra a una fecha de corte.
// grand_total es null si algún equipo con movimientos no tiene precio.
type SiteLedgerResponse struct {
	BuildingSiteID int64                     `json:"building_site_id"`
	AsOf           time.Time                 `json:"as_of"`
	LedgerVersion  int64                     `json:"ledger_version"`
	Equipment      []EquipmentLedgerResponse `json:"equipment"`
	GrandTotal     decimal.NullDecimal       `json:"grand_total" swaggertype:"string"`
	Warnings       []string                  `json:"warnings,omitempty"`
}

// EquipmentBalance saldo actual de un equipo en una obra.
type EquipmentBalance struct {
	EquipmentID int64  `json:"equipment_id"`
	Name        string `json:"name"`
	Balance     int64  `json:"balance"`
}
