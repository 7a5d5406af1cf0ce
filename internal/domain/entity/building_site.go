package entity

import "time"

// BuildingSite obra de un cliente; los equipos se entregan y retiran por obra.
// LedgerVersion cambia con cada alta o baja de entregas de la obra.
type BuildingSite struct {
	ID            int64
	ClientID      int64
	Name          string
	Address       string
	LedgerVersion int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
