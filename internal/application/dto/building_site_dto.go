package dto

import "time"

// CreateBuildingSiteRequest entrada para crear una obra.
type CreateBuildingSiteRequest struct {
	ClientID int64  `json:"client_id" validate:"required,gt=0"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Address  string `json:"address" validate:"max=300"`
}

// UpdateBuildingSiteRequest entrada para actualizar una obra.
type UpdateBuildingSiteRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address" validate:"omitempty,max=300"`
}

// ClientSummary datos mínimos del cliente dueño de una obra.
type ClientSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BuildingSiteResponse salida de una obra.
type BuildingSiteResponse struct {
	ID            int64          `json:"id"`
	ClientID      int64          `json:"client_id"`
	Client        *ClientSummary `json:"client,omitempty"`
	Name          string         `json:"name"`
	Address       string         `json:"address"`
	LedgerVersion int64          `json:"ledger_version"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// BuildingSiteDetailResponse obra con los saldos actuales de equipos en ella.
type BuildingSiteDetailResponse struct {
	BuildingSiteResponse
	Balances []EquipmentBalance `json:"balances"`
}

// BuildingSiteListResponse lista paginada de obras.
type BuildingSiteListResponse struct {
	Items []BuildingSiteResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
