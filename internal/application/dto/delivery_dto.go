package dto

import "time"

// DeliveryLineRequest una línea del formulario de remesa.
// DeliveryType: 1 = entrega en obra, 2 = retiro.
type DeliveryLineRequest struct {
	RentableID   int64 `json:"rentable_id" validate:"required,gt=0"`
	Count        int64 `json:"count" validate:"min=0"`
	DeliveryType int   `json:"delivery_type" validate:"required,oneof=1 2"`
}

// RegisterDeliveryRequest entrada para registrar una remesa en una obra.
// Date vacío = momento del registro.
type RegisterDeliveryRequest struct {
	Date  *time.Time            `json:"date"`
	Lines []DeliveryLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// DeliveryResponse salida de una línea de remesa.
type DeliveryResponse struct {
	ID             int64     `json:"id"`
	BatchID        string    `json:"batch_id"`
	BuildingSiteID int64     `json:"building_site_id"`
	RentableID     int64     `json:"rentable_id"`
	Count          int64     `json:"count"`
	DeliveryType   int       `json:"delivery_type"`
	Date           time.Time `json:"date"`
	CreatedBy      string    `json:"created_by,omitempty"`
}

// RegisterDeliveryResponse resultado del registro: las líneas guardadas y la nueva versión del libro.
type RegisterDeliveryResponse struct {
	BatchID       string             `json:"batch_id"`
	LedgerVersion int64              `json:"ledger_version"`
	Items         []DeliveryResponse `json:"items"`
}

// DeliveryListResponse lista paginada de entregas.
type DeliveryListResponse struct {
	Items []DeliveryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
