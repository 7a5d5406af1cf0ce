// Package xlsx exporta el libro de locación de una obra como planilla Excel.
package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/luanmenezes0/lift2/internal/application/dto"
	"github.com/luanmenezes0/lift2/internal/application/ledger"
)

var _ ledger.ReportRenderer = (*LedgerXLSX)(nil)

const (
	summarySheet = "Resumo"
	movesSheet   = "Movimentos"
)

// LedgerXLSX implementa ledger.ReportRenderer con excelize: una hoja de resumen por equipo
// y una hoja con todas las filas del libro.
type LedgerXLSX struct {
	loc *time.Location
}

// NewLedgerXLSX construye el exportador. Las fechas se escriben en loc (UTC si es nil).
func NewLedgerXLSX(loc *time.Location) *LedgerXLSX {
	if loc == nil {
		loc = time.UTC
	}
	return &LedgerXLSX{loc: loc}
}

func (x *LedgerXLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (x *LedgerXLSX) Extension() string { return "xlsx" }

// Render escribe el libro y devuelve los bytes del archivo.
func (x *LedgerXLSX) Render(_ context.Context, r *ledger.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(movesSheet); err != nil {
		return nil, err
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}
	if err := x.writeSummary(f, styles, r); err != nil {
		return nil, err
	}
	if err := x.writeMovements(f, styles, r.Ledger); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}

type styles struct {
	header int
	money  int
	date   int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	}); err != nil {
		return s, err
	}
	moneyFmt := `"R$" #,##0.00`
	if s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt}); err != nil {
		return s, err
	}
	dateFmt := "dd/mm/yyyy"
	if s.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt}); err != nil {
		return s, err
	}
	return s, nil
}

func (x *LedgerXLSX) writeSummary(f *excelize.File, st styles, r *ledger.Report) error {
	head := [][]any{
		{"Obra", r.Site.Name},
		{"Cliente", r.Client.Name},
		{"Corte", r.Ledger.AsOf.In(x.loc).Format("02/01/2006 15:04")},
	}
	for i, values := range head {
		if err := f.SetSheetRow(summarySheet, cell("A", i+1), &values); err != nil {
			return err
		}
	}

	const first = 5
	header := []any{"Equipamento", "Preço/dia", "Em obra", "Total"}
	if err := f.SetSheetRow(summarySheet, cell("A", first), &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, cell("A", first), cell("D", first), st.header); err != nil {
		return err
	}

	n := first + 1
	for _, eq := range r.Ledger.Equipment {
		values := []any{eq.Name, money(eq.UnitPrice), eq.Balance, money(eq.Total)}
		if err := f.SetSheetRow(summarySheet, cell("A", n), &values); err != nil {
			return err
		}
		n++
	}
	total := []any{"TOTAL", nil, nil, money(r.Ledger.GrandTotal)}
	if err := f.SetSheetRow(summarySheet, cell("A", n), &total); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, cell("B", first+1), cell("B", n), st.money); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, cell("D", first+1), cell("D", n), st.money); err != nil {
		return err
	}
	for i, w := range r.Ledger.Warnings {
		if err := f.SetCellValue(summarySheet, cell("A", n+2+i), "Aviso: "+w); err != nil {
			return err
		}
	}
	return f.SetColWidth(summarySheet, "A", "A", 28)
}

func (x *LedgerXLSX) writeMovements(f *excelize.File, st styles, l dto.SiteLedgerResponse) error {
	header := []any{"Equipamento", "Data", "Movimento", "Saldo", "Dias", "Custo", "Alertas"}
	if err := f.SetSheetRow(movesSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(movesSheet, "A1", "G1", st.header); err != nil {
		return err
	}
	n := 2
	for _, eq := range l.Equipment {
		for _, r := range eq.Rows {
			d := r.Date.In(x.loc)
			values := []any{
				eq.Name,
				time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
				r.Delta, r.Balance, r.DaySpan, money(r.Cost), joinAnomalies(r.Anomalies),
			}
			if err := f.SetSheetRow(movesSheet, cell("A", n), &values); err != nil {
				return err
			}
			n++
		}
	}
	if n > 2 {
		if err := f.SetCellStyle(movesSheet, "B2", cell("B", n-1), st.date); err != nil {
			return err
		}
		if err := f.SetCellStyle(movesSheet, "F2", cell("F", n-1), st.money); err != nil {
			return err
		}
	}
	return f.SetColWidth(movesSheet, "A", "A", 28)
}

// money devuelve el valor numérico para la celda, o nil (celda vacía) si no hay precio.
func money(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.InexactFloat64()
}

func joinAnomalies(a []string) string {
	out := ""
	for i, s := range a {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

func cell(column string, row int) string {
	return fmt.Sprintf("%s%d", column, row)
}
