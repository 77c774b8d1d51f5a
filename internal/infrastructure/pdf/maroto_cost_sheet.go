// Package pdf implementa la generación de la ficha de costos de un BOM.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Producto + SKU  │  Versión de BOM + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Material | Cantidad | Unidad | C.Unit | Subtotal     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Materiales / Mano de obra / Overhead / TOTAL       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS + leyenda de vigencia de la versión                   │
//	└─────────────────────────────────────────────────────────────┘
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

	appbom "github.com/Macruz95/zadia-os-api/internal/application/bom"
	dombom "github.com/Macruz95/zadia-os-api/internal/domain/bom"
	"github.com/Macruz95/zadia-os-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appbom.CostSheetGenerator = (*MarotoCostSheetGenerator)(nil)

// MarotoCostSheetGenerator implementa bom.CostSheetGenerator usando Maroto v2.
type MarotoCostSheetGenerator struct{}

// NewMarotoCostSheetGenerator construye el generador.
func NewMarotoCostSheetGenerator() *MarotoCostSheetGenerator { return &MarotoCostSheetGenerator{} }

// GenerateCostSheet genera el PDF de la ficha de costos y devuelve sus bytes.
func (g *MarotoCostSheetGenerator) GenerateCostSheet(
	_ context.Context,
	b *entity.BillOfMaterials,
	costs dombom.Costs,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de Costos BOM", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(b))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Tabla de materiales
	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(b.Items) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(costs))

	// Notas y leyenda de vigencia
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(b) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: producto (izq) y versión de BOM + fecha (der).
func headerRow(b *entity.BillOfMaterials) core.Row {
	fecha := b.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(b.FinishedProductName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Producto: "+b.FinishedProductID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FICHA DE COSTOS DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("BOM versión %d", b.Version), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de materiales.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Materia prima", 5, align.Left),
		h("Cant./unidad", 2, align.Center),
		h("Unidad", 1, align.Center),
		h("C.Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// tableItemRows: una fila por ítem de la receta.
func tableItemRows(items []entity.BOMItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				it.RawMaterialName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				it.UnitMeasure,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(it.UnitCost.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(it.TotalCost.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: desglose de costos alineado a la derecha.
func totalsRow(costs dombom.Costs) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(32).Add(
		col.New(3), // espacio izquierdo
		col.New(3).Add(
			label("Materiales:"),
			label("Mano de obra:"),
			label("Overhead:"),
			grandLabel("COSTO TOTAL:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(costs.TotalMaterialCost.StringFixed(0))),
			value("$"+formatMoney(costs.TotalLaborCost.StringFixed(0))),
			value("$"+formatMoney(costs.TotalOverheadCost.StringFixed(0))),
			grandValue("$"+formatMoney(costs.TotalCost.StringFixed(0))),
		),
		col.New(3), // espacio derecho
	)
}

// footerRows: notas del BOM + vigencia de la versión.
func footerRows(b *entity.BillOfMaterials) []core.Row {
	var rows []core.Row

	if b.Notes != "" {
		rows = append(rows,
			row.New(5).Add(col.New(12).Add(
				text.New("NOTAS", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
			)),
			row.New(8).Add(col.New(12).Add(
				text.New(b.Notes, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
			)),
		)
	}

	vigencia := "Versión vigente del BOM."
	if !b.IsActive {
		vigencia = "Versión histórica: este BOM fue reemplazado o dado de baja. " +
			"Los costos corresponden a la instantánea capturada en su momento."
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(vigencia, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
