package ledger

import (
	"context"
	"time"

	"github.com/luanmenezes0/lift2/internal/application/dto"
)

// CacheKey identifica un libro calculado: la obra, su versión de entregas, el estado del
// catálogo y el corte. Catalogue es la huella de (id, nombre, precio) de los equipos, así
// un cambio de precio o de nombre no reutiliza libros viejos.
// Period es el día de corte en modo calendario o el instante exacto en los otros modos.
type CacheKey struct {
	BuildingSiteID int64
	Version        int64
	Catalogue      string
	Period         string
}

// Cache memoriza libros ya calculados. Una implementación nil-safe no es requerida:
// el caso de uso acepta Cache nil.
type Cache interface {
	Get(ctx context.Context, key CacheKey) (*dto.SiteLedgerResponse, bool, error)
	Set(ctx context.Context, key CacheKey, v *dto.SiteLedgerResponse) error
}

// Report datos que necesita un exportador para renderizar el libro de una obra.
type Report struct {
	Site        dto.BuildingSiteResponse
	Client      dto.ClientSummary
	Ledger      dto.SiteLedgerResponse
	GeneratedAt time.Time
}

// ReportRenderer convierte un Report en un archivo (PDF, XLSX).
type ReportRenderer interface {
	Render(ctx context.Context, r *Report) ([]byte, error)
	ContentType() string
	Extension() string
}
