package rental

// AnomalyKind clasifica situaciones válidas que conviene revisar.
type AnomalyKind string

const (
	AnomalyNegativeBalance AnomalyKind = "negative_balance" // se retiró más de lo entregado
	AnomalyZeroSpan        AnomalyKind = "zero_span"        // movimientos en el mismo día
	AnomalyNegativeSpan    AnomalyKind = "negative_span"    // fecha posterior al instante de evaluación
)

// Anomaly marca una fila del libro para revisión humana.
type Anomaly struct {
	RecordID int64
	Kind     AnomalyKind
}

// DetectAnomalies recorre las filas y reporta saldos negativos y días cero o negativos.
func DetectAnomalies(rows []LedgerRow) []Anomaly {
	var out []Anomaly
	for _, r := range rows {
		if r.Balance < 0 {
			out = append(out, Anomaly{RecordID: r.RecordID, Kind: AnomalyNegativeBalance})
		}
		switch {
		case r.DaySpan == 0:
			out = append(out, Anomaly{RecordID: r.RecordID, Kind: AnomalyZeroSpan})
		case r.DaySpan < 0:
			out = append(out, Anomaly{RecordID: r.RecordID, Kind: AnomalyNegativeSpan})
		}
	}
	return out
}
