package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obras-api/internal/application/dto"
	"github.com/jhoicas/Obras-api/internal/domain/entity"
	ledgercore "github.com/jhoicas/Obras-api/internal/domain/ledger"
)

// ── fechas ────────────────────────────────────────────────────────────────────

func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, ledgercore.NewValidationError(ledgercore.ReasonInvalidDate, field,
			"%s debe ser una fecha con formato YYYY-MM-DD", field)
	}
	return t, nil
}

func parseOptionalDate(field, s string) (*time.Time, error) {
	t, err := parseDate(field, s)
	if err != nil || t.IsZero() {
		return nil, err
	}
	return &t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dto.DateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

// ── requests → borradores ────────────────────────────────────────────────────

func toInvoiceDraft(id string, in dto.InvoiceRequest) (ledgercore.InvoiceDraft, error) {
	invoiceDate, err := parseDate("invoice_date", in.InvoiceDate)
	if err != nil {
		return ledgercore.InvoiceDraft{}, err
	}
	dueDate, err := parseOptionalDate("due_date", in.DueDate)
	if err != nil {
		return ledgercore.InvoiceDraft{}, err
	}
	paymentType, ok := entity.ParsePaymentType(in.PaymentType)
	if !ok {
		// se deja pasar el valor crudo para que el núcleo lo reporte junto con las demás reglas
		paymentType = entity.PaymentType(in.PaymentType)
	}
	return ledgercore.InvoiceDraft{
		ID:                       id,
		ProjectID:                strings.TrimSpace(in.ProjectID),
		SupplierID:               strings.TrimSpace(in.SupplierID),
		PartyKind:                entity.PartyKind(strings.ToLower(strings.TrimSpace(in.PartyKind))),
		InvoiceNumber:            in.InvoiceNumber,
		InvoiceDate:              invoiceDate,
		DueDate:                  dueDate,
		PaymentType:              paymentType,
		PurchaseOrderID:          strings.TrimSpace(in.PurchaseOrderID),
		GRNIDs:                   in.GRNIDs,
		ChangeOrderIDs:           in.ChangeOrderIDs,
		AdvanceAmount:            in.AdvanceAmount,
		BaseAmount:               in.BaseAmount,
		DownPaymentRecovery:      in.DownPaymentRecovery,
		AdvanceRecovery:          in.AdvanceRecovery,
		Retention:                in.Retention,
		ContraChargesAmount:      in.ContraChargesAmount,
		ContraChargesDescription: in.ContraChargesDescription,
		VATOverride:              in.VATAmount,
	}, nil
}

func toPaymentDraft(id string, in dto.PaymentRequest) (ledgercore.PaymentDraft, error) {
	paymentDate, err := parseDate("payment_date", in.PaymentDate)
	if err != nil {
		return ledgercore.PaymentDraft{}, err
	}
	dueDate, err := parseOptionalDate("due_date", in.DueDate)
	if err != nil {
		return ledgercore.PaymentDraft{}, err
	}
	lines := make([]ledgercore.PaymentLineDraft, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, ledgercore.PaymentLineDraft{
			InvoiceID:     strings.TrimSpace(l.InvoiceID),
			PaymentAmount: l.PaymentAmount,
			VATAmount:     l.VATAmount,
		})
	}
	return ledgercore.PaymentDraft{
		ID:             id,
		ProjectID:      strings.TrimSpace(in.ProjectID),
		SupplierID:     strings.TrimSpace(in.SupplierID),
		PaymentMethod:  entity.PaymentMethod(strings.TrimSpace(in.PaymentMethod)),
		InstrumentType: entity.InstrumentType(strings.TrimSpace(in.InstrumentType)),
		PaymentDate:    paymentDate,
		DueDate:        dueDate,
		Liquidated:     in.Liquidated,
		Lines:          lines,
	}, nil
}

// ── entidades → responses ────────────────────────────────────────────────────

func toDeductionsDTO(d ledgercore.Deductions) dto.DeductionsDTO {
	return dto.DeductionsDTO{
		DownPaymentRecovery: d.DownPaymentRecovery,
		AdvanceRecovery:     d.AdvanceRecovery,
		Retention:           d.Retention,
		ContraCharges:       d.ContraCharges,
		Total:               d.Total(),
	}
}

func invoiceDeductions(inv *entity.Invoice) ledgercore.Deductions {
	return ledgercore.Deductions{
		DownPaymentRecovery: inv.DownPaymentRecovery,
		AdvanceRecovery:     inv.AdvanceRecovery,
		Retention:           inv.Retention,
		ContraCharges:       inv.ContraChargesAmount,
	}
}

// toInvoiceResponse arma la respuesta con pagado, saldo y días al vencimiento calculados
// a partir de las líneas de pago de la factura.
func toInvoiceResponse(inv *entity.Invoice, lines []entity.PaymentInvoice, today time.Time) dto.InvoiceResponse {
	paid := ledgercore.TotalPaid(lines)
	resp := dto.InvoiceResponse{
		ID:                       inv.ID,
		ProjectID:                inv.ProjectID,
		SupplierID:               inv.SupplierID,
		PartyKind:                string(inv.PartyKind),
		InvoiceNumber:            inv.InvoiceNumber,
		InvoiceDate:              formatDate(inv.InvoiceDate),
		DueDate:                  formatOptionalDate(inv.DueDate),
		PaymentType:              string(inv.PaymentType),
		PurchaseOrderID:          inv.PurchaseOrderID,
		GRNIDs:                   inv.GRNIDs,
		ChangeOrderIDs:           inv.ChangeOrderIDs,
		InvoiceAmount:            inv.InvoiceAmount,
		Deductions:               toDeductionsDTO(invoiceDeductions(inv)),
		ContraChargesDescription: inv.ContraChargesDescription,
		NetAmount:                inv.NetAmount,
		VATAmount:                inv.VATAmount,
		TotalAmount:              inv.TotalAmount,
		TotalPaid:                paid,
		Balance:                  decimal.Max(decimal.Zero, inv.TotalAmount.Sub(paid)),
		Status:                   string(inv.Status),
	}
	if days, ok := ledgercore.ComputeDueDays(inv.DueDate, inv.Status, ledgercore.PaymentDates(lines), today); ok {
		resp.DueDays = &days
	}
	return resp
}

func toPaymentResponse(p *entity.Payment, statuses map[string]entity.InvoiceStatus) *dto.PaymentResponse {
	resp := &dto.PaymentResponse{
		ID:                 p.ID,
		ProjectID:          p.ProjectID,
		SupplierID:         p.SupplierID,
		PaymentMethod:      string(p.PaymentMethod),
		InstrumentType:     string(p.InstrumentType),
		PaymentDate:        formatDate(p.PaymentDate),
		DueDate:            formatOptionalDate(p.DueDate),
		Liquidated:         p.IsLiquidated(),
		TotalPaymentAmount: p.TotalPaymentAmount,
		TotalVATAmount:     p.TotalVATAmount,
		Lines:              make([]dto.PaymentLineResponse, 0, len(p.Lines)),
	}
	for _, l := range p.Lines {
		resp.Lines = append(resp.Lines, dto.PaymentLineResponse{
			ID:            l.ID,
			InvoiceID:     l.InvoiceID,
			PaymentAmount: l.PaymentAmount,
			VATAmount:     l.VATAmount,
		})
	}
	if len(statuses) > 0 {
		resp.InvoiceStatuses = make(map[string]string, len(statuses))
		for id, s := range statuses {
			resp.InvoiceStatuses[id] = string(s)
		}
	}
	return resp
}

func toSummaryResponse(s ledgercore.Summary) dto.SummaryResponse {
	return dto.SummaryResponse{
		TotalPOAmounts:    s.TotalPOAmounts,
		TotalPOBase:       s.TotalPOBase,
		TotalDelivered:    s.TotalDelivered,
		LPOBalance:        s.LPOBalance,
		TotalInvoiced:     s.TotalInvoiced,
		TotalPaid:         s.TotalPaid,
		CommittedPayments: s.CommittedPayments,
		BalanceToBePaid:   s.BalanceToBePaid,
		DueAmount:         s.DueAmount,
	}
}

func toGRNResponse(g entity.GRN) dto.GRNResponse {
	return dto.GRNResponse{
		ID:              g.ID,
		PurchaseOrderID: g.PurchaseOrderID,
		GRNRefNo:        g.GRNRefNo,
		GRNDate:         formatDate(g.GRNDate),
		DeliveredAmount: g.DeliveredAmount,
	}
}

// values copia los punteros devueltos por los repositorios a un slice de valores para el núcleo.
func values[T any](ptrs []*T) []T {
	out := make([]T, 0, len(ptrs))
	for _, p := range ptrs {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
