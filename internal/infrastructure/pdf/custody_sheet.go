// Package pdf implementa la generación del Termo de Responsabilidade: la
// planilla firmable con los activos entregados a un técnico, una fila por
// custodia con fecha de entrega, devolución y motivo, agrupadas por categoría.
package pdf

import (
	"context"
	"fmt"

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

	appcustody "github.com/jhoicas/CampoStock-api/internal/application/custody"
	"github.com/jhoicas/CampoStock-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appcustody.SheetPDFGenerator = (*MarotoSheetGenerator)(nil)

// MarotoSheetGenerator implementa custody.SheetPDFGenerator usando Maroto v2.
type MarotoSheetGenerator struct{}

// NewMarotoSheetGenerator construye el generador.
func NewMarotoSheetGenerator() *MarotoSheetGenerator { return &MarotoSheetGenerator{} }

// GenerateCustodySheet genera el PDF y devuelve sus bytes.
func (g *MarotoSheetGenerator) GenerateCustodySheet(_ context.Context, sheet *dto.CustodySheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Termo de Responsabilidade", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	currentCategory := ""
	for _, r := range sheet.Rows {
		if r.Category != currentCategory {
			currentCategory = r.Category
			m.AddRows(categoryRow(currentCategory))
		}
		m.AddRows(detailRow(r))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(sheet)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar termo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del técnico + matrícula (izq), fecha de emisión (der).
func headerRow(sheet *dto.CustodySheet) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("TERMO DE RESPONSABILIDADE", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Matrícula: %s", sheet.TechnicianName, sheet.Registration), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Emitido em: "+sheet.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Itens sob responsabilidade: %d", sheet.ActiveCount), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 9,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de custodias.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Item", 4, align.Left),
		h("Série", 2, align.Left),
		h("Qtd.", 1, align.Center),
		h("Entrega", 2, align.Center),
		h("Devolução", 2, align.Center),
		h("Motivo", 1, align.Left),
	)
}

// categoryRow: separador de grupo por categoría.
func categoryRow(category string) core.Row {
	return row.New(6).Add(
		col.New(12).Add(text.New(category, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1,
		})),
	)
}

// detailRow: una fila por custodia.
func detailRow(r dto.CustodySheetRow) core.Row {
	returned := "—"
	if r.ReturnedAt != nil {
		returned = r.ReturnedAt.Format("02/01/2006")
	}
	return row.New(7).Add(
		col.New(4).Add(text.New(r.ProductName, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(nonEmpty(r.SerialNumber, "—"), props.Text{Size: 8, Top: 1})),
		col.New(1).Add(text.New(fmt.Sprintf("%d %s", r.Quantity, r.Unit), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(r.AssignedAt.Format("02/01/2006"), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(returned, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(1).Add(text.New(nonEmpty(r.ReturnReason, "—"), props.Text{Size: 7, Top: 1})),
	)
}

// footerRows: leyenda legal + línea de firma.
func footerRows(sheet *dto.CustodySheet) []core.Row {
	return []core.Row{
		row.New(10).Add(
			col.New(12).Add(text.New(
				"Declaro ter recebido os itens acima relacionados, responsabilizando-me pela sua guarda e conservação.",
				props.Text{Size: 8, Color: colorGray, Top: 3},
			)),
		),
		row.New(14).Add(
			col.New(6).Add(
				text.New("_________________________________", props.Text{Size: 9, Top: 6}),
				text.New(sheet.TechnicianName, props.Text{Size: 8, Top: 11, Color: colorGray}),
			),
		),
	}
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
