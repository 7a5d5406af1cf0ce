package rental

import "github.com/shopspring/decimal"

// CatalogueEntry datos de catálogo de un equipo. UnitPrice es el valor por día;
// inválido cuando el equipo no tiene precio cargado.
type CatalogueEntry struct {
	Name      string
	UnitPrice decimal.NullDecimal
}

// Catalogue mapea id de equipo a su entrada de catálogo.
type Catalogue map[int64]CatalogueEntry

// EquipmentGroup reúne los movimientos de un equipo dentro de una obra.
type EquipmentGroup struct {
	EquipmentID int64
	Entry       CatalogueEntry
	Movements   []Movement
}

// DropZero descarta movimientos con delta cero: no tienen significado en el libro.
func DropZero(movements []Movement) []Movement {
	out := make([]Movement, 0, len(movements))
	for _, m := range movements {
		if m.Delta != 0 {
			out = append(out, m)
		}
	}
	return out
}

// Group particiona los movimientos por equipo conservando el orden relativo de entrada.
// No consulta el catálogo: un equipo sin precio igual se agrupa.
func Group(movements []Movement) map[int64][]Movement {
	groups := make(map[int64][]Movement)
	for _, m := range movements {
		groups[m.EquipmentID] = append(groups[m.EquipmentID], m)
	}
	return groups
}
