package rental

import (
	"errors"
	"fmt"
)

// Errores base del cálculo de locación. Usar errors.Is para clasificarlos.
var (
	ErrValidation    = errors.New("rental: movimiento inválido")
	ErrConfiguration = errors.New("rental: precio unitario no configurado")
)

// ValidationError indica un registro de entrega que no puede entrar al libro.
// El cálculo completo de la obra se rechaza: omitir el registro corrompería
// el saldo de todas las filas posteriores.
type ValidationError struct {
	RecordID int64
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rental: registro %d: %s: %s", e.RecordID, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConfigurationError indica un equipo con movimientos pero sin precio en el catálogo.
// Es recuperable: saldos y días se calculan igual, solo el costo queda indisponible.
type ConfigurationError struct {
	EquipmentID int64
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("rental: equipo %d sin precio unitario en el catálogo", e.EquipmentID)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }
