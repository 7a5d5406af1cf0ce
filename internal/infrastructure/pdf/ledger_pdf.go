// Package pdf genera el extrato de locação de una obra en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Obra + Cliente        │  Data de corte             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  por equipo: nombre + precio unitario                       │
//	│  TABLA: Data | Movimento | Saldo | Dias | Custo             │
//	│  subtotal del equipo                                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL GERAL + avisos de equipos sin precio                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/luanmenezes0/lift2/internal/application/dto"
	"github.com/luanmenezes0/lift2/internal/application/ledger"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 40, Blue: 40}
)

var _ ledger.ReportRenderer = (*LedgerPDF)(nil)

// LedgerPDF implementa ledger.ReportRenderer usando Maroto v2.
type LedgerPDF struct {
	loc *time.Location
}

// NewLedgerPDF construye el generador. Las fechas se imprimen en loc (UTC si es nil).
func NewLedgerPDF(loc *time.Location) *LedgerPDF {
	if loc == nil {
		loc = time.UTC
	}
	return &LedgerPDF{loc: loc}
}

func (g *LedgerPDF) ContentType() string { return "application/pdf" }
func (g *LedgerPDF) Extension() string   { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *LedgerPDF) Render(_ context.Context, r *ledger.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Extrato de locação - "+r.Site.Name, true).
		WithAuthor("lift2", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(r.Ledger.Equipment) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Nenhuma movimentação registrada nesta obra.", props.Text{Size: 9, Top: 3, Color: colorGray}),
		)))
	}
	for _, eq := range r.Ledger.Equipment {
		m.AddRows(equipmentTitleRow(eq))
		m.AddRows(tableHeaderRow())
		m.AddRows(g.movementRows(eq)...)
		m.AddRows(subtotalRow(eq))
		m.AddRows(line.NewRow(3))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(grandTotalRow(r.Ledger))
	m.AddRows(warningRows(r.Ledger.Warnings)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *LedgerPDF) headerRow(r *ledger.Report) core.Row {
	return row.New(20).Add(
		col.New(8).Add(
			text.New(r.Site.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cliente: "+nonEmpty(r.Client.Name, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
			text.New("Endereço: "+nonEmpty(r.Site.Address, "-"), props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("EXTRATO DE LOCAÇÃO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Corte: "+r.Ledger.AsOf.In(g.loc).Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 8,
			}),
			text.New(fmt.Sprintf("Versão %d", r.Ledger.LedgerVersion), props.Text{
				Size: 7, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func equipmentTitleRow(eq dto.EquipmentLedgerResponse) core.Row {
	price := FormatMoney(eq.UnitPrice) + " / dia"
	if eq.PriceUnavailable {
		price = "sem preço cadastrado"
	}
	return row.New(9).Add(
		col.New(8).Add(text.New(eq.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 2})),
		col.New(4).Add(text.New(price, props.Text{Size: 8, Align: align.Right, Top: 3, Color: colorGray})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Data", 3, align.Left),
		h("Movimento", 2, align.Right),
		h("Saldo", 2, align.Right),
		h("Dias", 2, align.Right),
		h("Custo", 3, align.Right),
	)
}

func (g *LedgerPDF) movementRows(eq dto.EquipmentLedgerResponse) []core.Row {
	rows := make([]core.Row, 0, len(eq.Rows))
	for _, r := range eq.Rows {
		style := props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1}
		balance := style
		if r.Balance < 0 {
			balance.Color = colorAlert
		}
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(r.Date.In(g.loc).Format("02/01/2006"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(FormatCount(r.Delta, true), style)),
			col.New(2).Add(text.New(FormatCount(r.Balance, false), balance)),
			col.New(2).Add(text.New(formatDays(r.DaySpan), style)),
			col.New(3).Add(text.New(FormatMoney(r.Cost), style)),
		))
	}
	return rows
}

func subtotalRow(eq dto.EquipmentLedgerResponse) core.Row {
	return row.New(6).Add(
		col.New(5).Add(text.New(fmt.Sprintf("Em obra: %s", FormatCount(eq.Balance, false)), props.Text{
			Size: 8, Top: 1, Left: 1, Color: colorGray,
		})),
		col.New(4).Add(text.New("Subtotal:", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1})),
		col.New(3).Add(text.New(FormatMoney(eq.Total), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func grandTotalRow(l dto.SiteLedgerResponse) core.Row {
	total := FormatMoney(l.GrandTotal)
	if !l.GrandTotal.Valid {
		total = "indisponível"
	}
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL GERAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(total, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func warningRows(warnings []string) []core.Row {
	rows := make([]core.Row, 0, len(warnings))
	for _, w := range warnings {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Aviso: "+w, props.Text{Size: 7, Color: colorAlert, Top: 1}),
		)))
	}
	return rows
}
