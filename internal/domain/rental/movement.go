package rental

import "time"

// Direction es el tipo de remesa tal como se persiste (delivery_type).
type Direction int

const (
	DirectionAdd    Direction = 1 // entrega: suma equipos a la obra
	DirectionRemove Direction = 2 // retirada: resta equipos de la obra
)

// Valid indica si el tipo es reconocido.
func (d Direction) Valid() bool {
	return d == DirectionAdd || d == DirectionRemove
}

func (d Direction) String() string {
	switch d {
	case DirectionAdd:
		return "ADD"
	case DirectionRemove:
		return "REMOVE"
	default:
		return "UNKNOWN"
	}
}

// RawDeliveryRecord es el registro de entrega que entrega la capa de persistencia.
type RawDeliveryRecord struct {
	ID             int64 // id estable del registro; desempata movimientos del mismo instante
	EquipmentID    int64
	Magnitude      int64
	Direction      Direction
	Date           time.Time
	BuildingSiteID int64
}

// Movement es un cambio con signo en la cantidad de un equipo en la obra.
type Movement struct {
	RecordID       int64
	EquipmentID    int64
	Delta          int64
	Date           time.Time
	BuildingSiteID int64
}

// Normalize convierte un registro en un Movement con delta firmado.
// El signo sale solo del tipo; nunca de la magnitud. No filtra deltas en cero,
// pero un registro sin fecha es inválido aunque su cantidad sea cero.
func Normalize(rec RawDeliveryRecord) (Movement, error) {
	if rec.Date.IsZero() {
		return Movement{}, &ValidationError{RecordID: rec.ID, Field: "date", Reason: "fecha ausente"}
	}
	if rec.Magnitude < 0 {
		return Movement{}, &ValidationError{RecordID: rec.ID, Field: "magnitude", Reason: "cantidad negativa"}
	}
	var delta int64
	switch rec.Direction {
	case DirectionAdd:
		delta = rec.Magnitude
	case DirectionRemove:
		delta = -rec.Magnitude
	default:
		return Movement{}, &ValidationError{RecordID: rec.ID, Field: "direction", Reason: "tipo de remesa no reconocido"}
	}
	return Movement{
		RecordID:       rec.ID,
		EquipmentID:    rec.EquipmentID,
		Delta:          delta,
		Date:           rec.Date,
		BuildingSiteID: rec.BuildingSiteID,
	}, nil
}

// NormalizeAll aplica Normalize a cada registro y se detiene en el primer error.
func NormalizeAll(records []RawDeliveryRecord) ([]Movement, error) {
	out := make([]Movement, 0, len(records))
	for _, rec := range records {
		m, err := Normalize(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
