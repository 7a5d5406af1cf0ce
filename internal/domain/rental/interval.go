package rental

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// SpanMode define cómo se cuentan los días entre dos instantes.
type SpanMode string

const (
	// SpanCalendarDays resta fechas de calendario en la zona de la política (default).
	SpanCalendarDays SpanMode = "calendar"
	// SpanElapsedTruncate divide el tiempo transcurrido en días de 24h, truncando hacia cero.
	SpanElapsedTruncate SpanMode = "truncate"
	// SpanElapsedRound divide el tiempo transcurrido en días de 24h, redondeando.
	SpanElapsedRound SpanMode = "round"
)

// ParseSpanMode interpreta el modo configurado. Vacío = calendario.
func ParseSpanMode(s string) (SpanMode, error) {
	switch SpanMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SpanCalendarDays:
		return SpanCalendarDays, nil
	case SpanElapsedTruncate:
		return SpanElapsedTruncate, nil
	case SpanElapsedRound:
		return SpanElapsedRound, nil
	}
	return "", fmt.Errorf("rental: modo de conteo de días desconocido %q", s)
}

// Policy parámetros del cálculo de intervalos. El valor cero es la política por defecto:
// días de calendario en UTC, sin recortar días negativos.
type Policy struct {
	Location           *time.Location
	SpanMode           SpanMode
	ClampNegativeSpans bool
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// DaysBetween devuelve los días enteros entre from y to según la política.
// Puede ser negativo si to es anterior a from.
func (p Policy) DaysBetween(from, to time.Time) int64 {
	switch p.SpanMode {
	case SpanElapsedTruncate:
		return int64(to.Sub(from) / (24 * time.Hour))
	case SpanElapsedRound:
		return int64(math.Round(to.Sub(from).Hours() / 24))
	default:
		loc := p.location()
		return dayNumber(to, loc) - dayNumber(from, loc)
	}
}

// dayNumber número de día civil de t en loc, contado desde 1970-01-01.
func dayNumber(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// ApplySpans calcula los días que cada saldo estuvo en obra: hasta la fecha de la
// fila siguiente, o hasta now para la última. now siempre lo provee el llamador.
func ApplySpans(rows []LedgerRow, now time.Time, p Policy) []LedgerRow {
	out := make([]LedgerRow, len(rows))
	copy(out, rows)
	for i := range out {
		end := now
		if i < len(out)-1 {
			end = out[i+1].Date
		}
		span := p.DaysBetween(out[i].Date, end)
		if span < 0 && p.ClampNegativeSpans {
			span = 0
		}
		out[i].DaySpan = span
	}
	return out
}
