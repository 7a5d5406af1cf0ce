package entity

import (
	"time"

	"github.com/luanmenezes0/lift2/internal/domain/rental"
)

// Delivery una línea de remesa: count unidades de un equipo que entran o salen de una obra.
// Las líneas de un mismo envío de formulario comparten BatchID y Date.
type Delivery struct {
	ID             int64
	BatchID        string
	BuildingSiteID int64
	RentableID     int64
	Count          int64
	DeliveryType   rental.Direction
	Date           time.Time
	CreatedBy      string
	CreatedAt      time.Time
}

// Record convierte la línea al registro de entrada del cálculo de locación.
func (d *Delivery) Record() rental.RawDeliveryRecord {
	return rental.RawDeliveryRecord{
		ID:             d.ID,
		EquipmentID:    d.RentableID,
		Magnitude:      d.Count,
		Direction:      d.DeliveryType,
		Date:           d.Date,
		BuildingSiteID: d.BuildingSiteID,
	}
}
