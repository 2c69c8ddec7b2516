package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obras-api/internal/domain"
	"github.com/jhoicas/Obras-api/internal/domain/entity"
	ledgercore "github.com/jhoicas/Obras-api/internal/domain/ledger"
)

// Statement estado de cuenta de un proveedor en una obra.
type Statement struct {
	Project     entity.Project
	Supplier    entity.Supplier
	Currency    string
	GeneratedAt time.Time
	Summary     ledgercore.Summary
	Invoices    []StatementInvoice
	Payments    []entity.Payment
}

// StatementInvoice factura con su pagado, saldo y días al vencimiento.
type StatementInvoice struct {
	Invoice   entity.Invoice
	TotalPaid decimal.Decimal
	Balance   decimal.Decimal
	DueDays   *int
}

// StatementUseCase arma el estado de cuenta y lo entrega como PDF.
type StatementUseCase struct {
	summary   *SummaryUseCase
	generator StatementPDFGenerator
	currency  string
}

// NewStatementUseCase construye el caso de uso; comparte repos, IVA y reloj con summary.
func NewStatementUseCase(summary *SummaryUseCase, generator StatementPDFGenerator, currency string) *StatementUseCase {
	return &StatementUseCase{summary: summary, generator: generator, currency: currency}
}

// Build arma el estado de cuenta: facturas por fecha y pagos por fecha.
func (uc *StatementUseCase) Build(ctx context.Context, projectID, supplierID string) (*Statement, error) {
	repos := uc.summary.repos

	project, err := repos.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("obtener obra: %w", err)
	}
	supplier, err := repos.Suppliers.GetByID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("obtener proveedor: %w", err)
	}
	if project == nil || supplier == nil {
		return nil, domain.ErrNotFound
	}

	in, err := uc.summary.supplierInput(ctx, projectID, supplierID)
	if err != nil {
		return nil, err
	}
	summary, err := ledgercore.ComputeSupplierSummary(in)
	if err != nil {
		return nil, err
	}

	var lines []entity.PaymentInvoice
	for _, p := range in.Payments {
		for _, l := range p.Lines {
			l.PaymentDate = p.PaymentDate
			lines = append(lines, l)
		}
	}
	byInvoice := ledgercore.LinesByInvoice(lines)

	st := &Statement{
		Project:     *project,
		Supplier:    *supplier,
		Currency:    uc.currency,
		GeneratedAt: in.Today,
		Summary:     summary,
		Invoices:    make([]StatementInvoice, 0, len(in.Invoices)),
		Payments:    in.Payments,
	}
	for _, inv := range in.Invoices {
		invLines := byInvoice[inv.ID]
		paid := ledgercore.TotalPaid(invLines)
		row := StatementInvoice{
			Invoice:   inv,
			TotalPaid: paid,
			Balance:   decimal.Max(decimal.Zero, inv.TotalAmount.Sub(paid)),
		}
		if days, ok := ledgercore.ComputeDueDays(inv.DueDate, inv.Status, ledgercore.PaymentDates(invLines), in.Today); ok {
			row.DueDays = &days
		}
		st.Invoices = append(st.Invoices, row)
	}
	sort.SliceStable(st.Invoices, func(i, j int) bool {
		return st.Invoices[i].Invoice.InvoiceDate.Before(st.Invoices[j].Invoice.InvoiceDate)
	})
	sort.SliceStable(st.Payments, func(i, j int) bool {
		return st.Payments[i].PaymentDate.Before(st.Payments[j].PaymentDate)
	})
	return st, nil
}

// DownloadPDF genera el PDF del estado de cuenta y un nombre de archivo sugerido.
func (uc *StatementUseCase) DownloadPDF(ctx context.Context, projectID, supplierID string) ([]byte, string, error) {
	st, err := uc.Build(ctx, projectID, supplierID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateStatement(ctx, st)
	if err != nil {
		return nil, "", fmt.Errorf("generar estado de cuenta: %w", err)
	}
	filename := fmt.Sprintf("estado-cuenta-%s-%s.pdf", st.Project.Code, st.Supplier.Name)
	return pdf, sanitizeFilename(filename), nil
}

func sanitizeFilename(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
