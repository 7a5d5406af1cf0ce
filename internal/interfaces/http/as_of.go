package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// Clock es la única fuente de "ahora" de la API; los casos de uso reciben la hora como parámetro.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func (k Clock) now() time.Time {
	if k.Now == nil {
		return time.Now()
	}
	return k.Now()
}

func (k Clock) loc() *time.Location {
	if k.Location == nil {
		return time.UTC
	}
	return k.Location
}

// asOf lee ?as_of= como RFC3339 o YYYY-MM-DD. Una fecha sola se toma como fin de ese día
// en la zona configurada, así las entregas del propio día quedan incluidas.
func (k Clock) asOf(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("as_of")
	if raw == "" {
		return k.now(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	d, err := time.ParseInLocation(dateLayout, raw, k.loc())
	if err != nil {
		return time.Time{}, fmt.Errorf("as_of %q: use RFC3339 o YYYY-MM-DD", raw)
	}
	return d.Add(24*time.Hour - time.Second), nil
}
