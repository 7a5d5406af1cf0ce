package rental

import "github.com/shopspring/decimal"

// Bill calcula costo = saldo × días × precio unitario para cada fila y el total del grupo.
// Sin precio devuelve las filas con costo indisponible y un *ConfigurationError.
func Bill(equipmentID int64, rows []LedgerRow, unitPrice decimal.NullDecimal) ([]LedgerRow, decimal.NullDecimal, error) {
	out := make([]LedgerRow, len(rows))
	copy(out, rows)

	if !unitPrice.Valid {
		for i := range out {
			out[i].Cost = decimal.NullDecimal{}
		}
		if len(out) == 0 {
			return out, decimal.NullDecimal{}, nil
		}
		return out, decimal.NullDecimal{}, &ConfigurationError{EquipmentID: equipmentID}
	}

	total := decimal.Zero
	for i, r := range out {
		cost := decimal.NewFromInt(r.Balance).
			Mul(decimal.NewFromInt(r.DaySpan)).
			Mul(unitPrice.Decimal)
		out[i].Cost = decimal.NullDecimal{Decimal: cost, Valid: true}
		total = total.Add(cost)
	}
	return out, decimal.NullDecimal{Decimal: total, Valid: true}, nil
}
