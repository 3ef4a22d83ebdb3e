// Package pdf implementa la hoja de ruta imprimible del repartidor con
// Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Delivery Run Sheet  │  Repartidor + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° Pedido | Cliente | Teléfono | Dirección | Items  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: pedidos en reparto / monto total a recaudar       │
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/courier-dashboard/internal/application/runsheet"
	"github.com/jhoicas/courier-dashboard/internal/domain/entity"
)

// Verificar en tiempo de compilación que MarotoRunSheetGenerator implementa Generator.
var _ runsheet.Generator = (*MarotoRunSheetGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoRunSheetGenerator implementa runsheet.Generator usando Maroto v2.
type MarotoRunSheetGenerator struct{}

// NewMarotoRunSheetGenerator construye el generador.
func NewMarotoRunSheetGenerator() *MarotoRunSheetGenerator { return &MarotoRunSheetGenerator{} }

// GenerateRunSheet genera el PDF y devuelve sus bytes.
func (g *MarotoRunSheetGenerator) GenerateRunSheet(
	_ context.Context,
	courier entity.User,
	list []entity.Order,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Delivery Run Sheet", true).
		WithAuthor(courier.FullName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(courier, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, o := range list {
		m.AddRows(orderRow(o))
	}
	if len(list) == 0 {
		m.AddRows(row.New(8).Add(
			col.New(12).Add(text.New("No orders out for delivery.", props.Text{
				Size: 9, Color: colorGray, Align: align.Center, Top: 2,
			})),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(list))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de ruta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y repartidor + fecha (der).
func headerRow(courier entity.User, generatedAt time.Time) core.Row {
	who := courier.FullName
	if courier.Vehicle != "" {
		who += " · " + courier.Vehicle
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New("DELIVERY RUN SHEET", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Orders out for delivery", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(who, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(generatedAt.Format("Jan 2, 2006 3:04 PM"), props.Text{
				Size: 9, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		header(2, "Order #"),
		header(2, "Customer"),
		header(2, "Phone"),
		header(4, "Address"),
		header(1, "Items"),
		header(1, "Total"),
	)
}

func orderRow(o entity.Order) core.Row {
	cell := func(size int, value string) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Top: 1}))
	}
	return row.New(8).Add(
		cell(2, o.OrderNumber),
		cell(2, o.Customer.Name),
		cell(2, o.Customer.Phone),
		cell(4, o.Customer.ShippingAddress),
		cell(1, fmt.Sprintf("%d", o.ItemCount())),
		cell(1, "$"+o.TotalAmount.StringFixed(2)),
	)
}

// totalsRow: cantidad de pedidos y monto total de la ruta.
func totalsRow(list []entity.Order) core.Row {
	total := decimal.Zero
	for _, o := range list {
		total = total.Add(o.TotalAmount)
	}
	return row.New(10).Add(
		col.New(8).Add(text.New(
			fmt.Sprintf("%d order(s) on this run", len(list)),
			props.Text{Size: 9, Top: 2, Color: colorGray},
		)),
		col.New(4).Add(text.New(
			"Total: $"+total.StringFixed(2),
			props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1},
		)),
	)
}
