package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
)

// PaymentLineDraft monto aplicado a una factura dentro de un pago.
type PaymentLineDraft struct {
	InvoiceID     string
	PaymentAmount decimal.Decimal // sin IVA
	VATAmount     decimal.Decimal
}

// Gross monto de la línea con IVA.
func (l PaymentLineDraft) Gross() decimal.Decimal {
	return l.PaymentAmount.Add(l.VATAmount)
}

// PaymentDraft datos capturados para crear o editar un pago. ID vacío al crear.
type PaymentDraft struct {
	ID             string
	ProjectID      string
	SupplierID     string
	PaymentMethod  entity.PaymentMethod
	InstrumentType entity.InstrumentType
	PaymentDate    time.Time
	DueDate        *time.Time
	Liquidated     bool
	Lines          []PaymentLineDraft
}

// ValidatePayment verifica el pago contra las facturas que cubre.
// invoices: facturas referenciadas por las líneas. existingLines: todas las líneas de pago
// de esas facturas; las del propio pago (ID del borrador) se ignoran.
func ValidatePayment(d PaymentDraft, invoices []entity.Invoice, existingLines []entity.PaymentInvoice) error {
	var vs violations
	validatePayment(d, invoices, existingLines, &vs)
	return vs.err()
}

// BuildPayment valida y arma el pago; los totales se derivan de las líneas.
func BuildPayment(d PaymentDraft, invoices []entity.Invoice, existingLines []entity.PaymentInvoice) (entity.Payment, error) {
	if err := ValidatePayment(d, invoices, existingLines); err != nil {
		return entity.Payment{}, err
	}

	p := entity.Payment{
		ID:            d.ID,
		ProjectID:     d.ProjectID,
		SupplierID:    d.SupplierID,
		PaymentMethod: d.PaymentMethod,
		PaymentDate:   d.PaymentDate,
	}
	if d.PaymentMethod == entity.PaymentMethodPostDated {
		p.InstrumentType = d.InstrumentType
		p.DueDate = d.DueDate
		p.Liquidated = d.Liquidated
	}

	amount := decimal.Zero
	vat := decimal.Zero
	p.Lines = make([]entity.PaymentInvoice, 0, len(d.Lines))
	for _, l := range d.Lines {
		line := entity.PaymentInvoice{
			PaymentID:     d.ID,
			InvoiceID:     l.InvoiceID,
			PaymentAmount: Round(l.PaymentAmount),
			VATAmount:     Round(l.VATAmount),
			PaymentDate:   d.PaymentDate,
		}
		amount = amount.Add(line.PaymentAmount)
		vat = vat.Add(line.VATAmount)
		p.Lines = append(p.Lines, line)
	}
	p.TotalPaymentAmount = amount
	p.TotalVATAmount = vat
	return p, nil
}

func validatePayment(d PaymentDraft, invoices []entity.Invoice, existingLines []entity.PaymentInvoice, vs *violations) {
	if d.ProjectID == "" {
		vs.add(ReasonMissingField, "project_id", "la obra es obligatoria")
	}
	if d.SupplierID == "" {
		vs.add(ReasonMissingField, "supplier_id", "el proveedor es obligatorio")
	}
	if d.PaymentDate.IsZero() {
		vs.add(ReasonMissingField, "payment_date", "la fecha de pago es obligatoria")
	}
	switch d.PaymentMethod {
	case entity.PaymentMethodCurrentDated:
	case entity.PaymentMethodPostDated:
		if !d.InstrumentType.Valid() {
			vs.add(ReasonMissingField, "instrument_type", "los pagos posfechados requieren tipo de instrumento (PDC, LC o TrustReceipt)")
		}
		if d.DueDate == nil || d.DueDate.IsZero() {
			vs.add(ReasonMissingField, "due_date", "los pagos posfechados requieren fecha de vencimiento")
		}
	default:
		vs.add(ReasonMissingField, "payment_method", "el método de pago debe ser CurrentDated o PostDated")
	}

	if len(d.Lines) == 0 {
		vs.add(ReasonMissingField, "lines", "seleccione al menos una factura a pagar")
		return
	}

	byID := make(map[string]entity.Invoice, len(invoices))
	for _, inv := range invoices {
		byID[inv.ID] = inv
	}
	paid := make(map[string]decimal.Decimal)
	for _, l := range existingLines {
		if d.ID != "" && l.PaymentID == d.ID {
			continue
		}
		paid[l.InvoiceID] = paid[l.InvoiceID].Add(l.Gross())
	}

	seen := make(map[string]bool, len(d.Lines))
	for _, l := range d.Lines {
		inv, ok := byID[l.InvoiceID]
		if !ok {
			vs.add(ReasonForeignReference, "lines", "factura %s no encontrada", l.InvoiceID)
			continue
		}
		if inv.ProjectID != d.ProjectID || inv.SupplierID != d.SupplierID {
			vs.add(ReasonForeignReference, "lines", "la factura %s no pertenece a esta obra y proveedor", inv.InvoiceNumber)
			continue
		}
		if seen[l.InvoiceID] {
			vs.add(ReasonDuplicateSelection, "lines", "la factura %s aparece más de una vez en el pago", inv.InvoiceNumber)
			continue
		}
		seen[l.InvoiceID] = true

		if l.PaymentAmount.IsNegative() || l.VATAmount.IsNegative() {
			vs.add(ReasonInvalidAmount, "lines", "los montos de la factura %s no pueden ser negativos", inv.InvoiceNumber)
			continue
		}
		if !l.Gross().IsPositive() {
			vs.add(ReasonInvalidAmount, "lines", "el pago de la factura %s debe ser mayor que cero", inv.InvoiceNumber)
			continue
		}
		after := paid[l.InvoiceID].Add(Round(l.PaymentAmount)).Add(Round(l.VATAmount))
		if after.GreaterThan(inv.TotalAmount.Add(Tolerance)) {
			remaining := decimal.Max(decimal.Zero, inv.TotalAmount.Sub(paid[l.InvoiceID]))
			vs.add(ReasonPaymentExceedsInvoice, "lines", "el pago de la factura %s supera su saldo pendiente (%s)",
				inv.InvoiceNumber, remaining.StringFixed(moneyPlaces))
		}
	}
}

// SuggestPaymentLine propone una línea por el saldo pendiente de la factura, separado en base e IVA.
func SuggestPaymentLine(inv entity.Invoice, lines []entity.PaymentInvoice, vatPercent decimal.Decimal) PaymentLineDraft {
	remaining := decimal.Max(decimal.Zero, inv.TotalAmount.Sub(TotalPaid(lines)))
	base, vat := SplitGross(remaining, vatPercent)
	return PaymentLineDraft{
		InvoiceID:     inv.ID,
		PaymentAmount: base,
		VATAmount:     vat,
	}
}

// AffectedInvoiceIDs facturas cuyo estado cambia al editar un pago: las de la versión
// anterior y las de la nueva, sin repetir. Cualquiera de los dos puede ser nil.
func AffectedInvoiceIDs(before, after *entity.Payment) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range []*entity.Payment{before, after} {
		if p == nil {
			continue
		}
		for _, id := range p.InvoiceIDs() {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}
