// Package pdf genera el estado de cuenta de un proveedor en una obra.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Obra (código + nombre)  │  Proveedor + fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: LPO / facturado / pagado / comprometido / saldo    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FACTURAS: N° | Fecha | Tipo | Total | Pagado | Saldo | Días │
//	│  PAGOS: Fecha | Forma | Instrumento | Monto | IVA | Estado   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appledger "github.com/jhoicas/Obras-api/internal/application/ledger"
	"github.com/jhoicas/Obras-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStatementGenerator implementa ledger.StatementPDFGenerator usando Maroto v2.
type MarotoStatementGenerator struct {
	printer *message.Printer
}

var _ appledger.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

// NewMarotoStatementGenerator construye el generador; los montos se agrupan por miles en inglés (1,234.50).
func NewMarotoStatementGenerator() *MarotoStatementGenerator {
	return &MarotoStatementGenerator{printer: message.NewPrinter(language.English)}
}

// GenerateStatement genera el PDF y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatement(ctx context.Context, st *appledger.Statement) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta "+st.Supplier.Name, true).
		WithAuthor(st.Project.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRows(st)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("FACTURAS"))
	m.AddRows(tableHeader(
		[]string{"N°", "Fecha", "Tipo", "Total", "Pagado", "Saldo", "Días"},
		[]int{2, 2, 2, 2, 1, 2, 1},
	))
	if len(st.Invoices) == 0 {
		m.AddRows(emptyRow("Sin facturas registradas"))
	}
	for _, inv := range st.Invoices {
		m.AddRows(g.invoiceRow(inv))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("PAGOS"))
	m.AddRows(tableHeader(
		[]string{"Fecha", "Forma", "Instrumento", "Monto", "IVA", "Estado"},
		[]int{2, 2, 2, 2, 2, 2},
	))
	if len(st.Payments) == 0 {
		m.AddRows(emptyRow("Sin pagos registrados"))
	}
	for _, p := range st.Payments {
		m.AddRows(g.paymentRow(p))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoStatementGenerator) headerRow(st *appledger.Statement) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(st.Project.Code+" · "+st.Project.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Moneda: "+st.Currency, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(st.Supplier.Name, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("TRN: "+nonEmpty(st.Supplier.TRN, "-")+"   |   "+st.GeneratedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoStatementGenerator) summaryRows(st *appledger.Statement) []core.Row {
	s := st.Summary
	pair := func(label string, v decimal.Decimal, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(g.money(v), props.Text{Style: fontstyle.Bold, Size: 10, Top: 5, Color: c}),
		)
	}
	return []core.Row{
		row.New(12).Add(
			pair("Total LPO", s.TotalPOAmounts, nil),
			pair("Entregado", s.TotalDelivered, nil),
			pair("Saldo LPO", s.LPOBalance, nil),
			pair("Facturado", s.TotalInvoiced, nil),
		),
		row.New(12).Add(
			pair("Pagado", s.TotalPaid, nil),
			pair("Comprometido", s.CommittedPayments, nil),
			pair("Saldo por pagar", s.BalanceToBePaid, colorPrimary),
			pair("Vencido", s.DueAmount, colorDanger),
		),
	}
}

func (g *MarotoStatementGenerator) invoiceRow(si appledger.StatementInvoice) core.Row {
	inv := si.Invoice
	days := "-"
	var daysColor *props.Color
	if si.DueDays != nil {
		days = strconv.Itoa(*si.DueDays)
		if *si.DueDays < 0 {
			daysColor = colorDanger
		}
	}
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(7).Add(
		cell(inv.InvoiceNumber, 2, align.Left),
		cell(inv.InvoiceDate.Format("02/01/2006"), 2, align.Left),
		cell(paymentTypeLabel(inv.PaymentType), 2, align.Left),
		cell(g.money(inv.TotalAmount), 2, align.Right),
		cell(g.money(si.TotalPaid), 1, align.Right),
		cell(g.money(si.Balance), 2, align.Right),
		col.New(1).Add(text.New(days, props.Text{Size: 8, Align: align.Center, Top: 1, Color: daysColor})),
	)
}

func (g *MarotoStatementGenerator) paymentRow(p entity.Payment) core.Row {
	state := "Liquidado"
	if !p.IsLiquidated() {
		state = "Comprometido"
	}
	cell := func(s string, a align.Type) core.Col {
		return col.New(2).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(7).Add(
		cell(p.PaymentDate.Format("02/01/2006"), align.Left),
		cell(string(p.PaymentMethod), align.Left),
		cell(nonEmpty(string(p.InstrumentType), "-"), align.Left),
		cell(g.money(p.TotalPaymentAmount), align.Right),
		cell(g.money(p.TotalVATAmount), align.Right),
		cell(state, align.Center),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(cols...)
}

func emptyRow(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con dos decimales y separador de miles: 12345.6 → "12,345.60".
func (g *MarotoStatementGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func paymentTypeLabel(t entity.PaymentType) string {
	switch t {
	case entity.PaymentTypeDownPayment:
		return "Anticipo"
	case entity.PaymentTypeProgress:
		return "Avance"
	case entity.PaymentTypeRetentionRelease:
		return "Retención"
	}
	return string(t)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
