package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
)

// InvoiceDraft datos capturados para crear o editar una factura.
// ID vacío al crear; al editar se usa para excluir la propia factura de las reglas de unicidad.
type InvoiceDraft struct {
	ID                       string
	ProjectID                string
	SupplierID               string
	PartyKind                entity.PartyKind
	InvoiceNumber            string
	InvoiceDate              time.Time
	DueDate                  *time.Time
	PaymentType              entity.PaymentType
	PurchaseOrderID          string
	GRNIDs                   []string
	ChangeOrderIDs           []string
	AdvanceAmount            decimal.Decimal  // DownPayment / Advance
	BaseAmount               decimal.Decimal  // avance o liberación de retención de subcontrato
	DownPaymentRecovery      decimal.Decimal
	AdvanceRecovery          *decimal.Decimal // nil => 10% de la base en ProgressPayment
	Retention                *decimal.Decimal // nil => 10% de la base en ProgressPayment
	ContraChargesAmount      decimal.Decimal
	ContraChargesDescription string
	VATOverride              *decimal.Decimal // IVA digitado por el usuario (avances)
}

// Deductions deducciones previas al IVA.
type Deductions struct {
	DownPaymentRecovery decimal.Decimal
	AdvanceRecovery     decimal.Decimal
	Retention           decimal.Decimal
	ContraCharges       decimal.Decimal
}

// Total suma de las deducciones.
func (d Deductions) Total() decimal.Decimal {
	return d.DownPaymentRecovery.Add(d.AdvanceRecovery).Add(d.Retention).Add(d.ContraCharges)
}

// InvoiceAmounts montos calculados de una factura.
// InvoiceAmount: sin IVA y antes de deducciones. NetAmount: tras deducciones. TotalAmount = NetAmount + VATAmount.
type InvoiceAmounts struct {
	InvoiceAmount decimal.Decimal
	Deductions    Deductions
	NetAmount     decimal.Decimal
	VATAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
}

// ComputeInvoiceAmounts calcula montos según el tipo de pago.
// selected son los GRNs elegidos (solo avances de proveedor). Las entradas inválidas se
// reportan todas juntas en un *ValidationError.
func ComputeInvoiceAmounts(d InvoiceDraft, selected []entity.GRN, vatPercent decimal.Decimal) (InvoiceAmounts, error) {
	var vs violations
	amounts := computeAmounts(d, selected, vatPercent, &vs)
	if err := vs.err(); err != nil {
		return InvoiceAmounts{}, err
	}
	return amounts, nil
}

func computeAmounts(d InvoiceDraft, selected []entity.GRN, vatPercent decimal.Decimal, vs *violations) InvoiceAmounts {
	switch d.PaymentType {
	case entity.PaymentTypeDownPayment:
		return downPaymentAmounts(d, vatPercent, vs)
	case entity.PaymentTypeProgress:
		if d.PartyKind == entity.PartySubcontractor {
			return subcontractAmounts(d, vatPercent, defaultDeductionRate, vs)
		}
		return supplierProgressAmounts(d, selected, vatPercent, vs)
	case entity.PaymentTypeRetentionRelease:
		if d.PartyKind != entity.PartySubcontractor {
			vs.add(ReasonUnsupportedPaymentType, "payment_type", "la liberación de retención solo aplica a facturas de subcontratista")
			return InvoiceAmounts{}
		}
		return subcontractAmounts(d, vatPercent, decimal.Zero, vs)
	}
	vs.add(ReasonUnsupportedPaymentType, "payment_type", "tipo de pago no soportado %q", d.PaymentType)
	return InvoiceAmounts{}
}

// downPaymentAmounts: monto digitado, sin deducciones.
func downPaymentAmounts(d InvoiceDraft, vatPercent decimal.Decimal, vs *violations) InvoiceAmounts {
	if !d.AdvanceAmount.IsPositive() {
		vs.add(ReasonInvalidAmount, "advance_amount", "el monto del anticipo debe ser mayor que cero")
		return InvoiceAmounts{}
	}
	amount := Round(d.AdvanceAmount)
	return finish(amount, Deductions{}, vatPercent, d.VATOverride, vs)
}

// supplierProgressAmounts: suma de GRNs menos recuperación de anticipo, antes de IVA.
func supplierProgressAmounts(d InvoiceDraft, selected []entity.GRN, vatPercent decimal.Decimal, vs *violations) InvoiceAmounts {
	if len(selected) == 0 {
		vs.add(ReasonMissingField, "grn_ids", "seleccione al menos un GRN para el avance")
		return InvoiceAmounts{}
	}
	if (d.AdvanceRecovery != nil && !d.AdvanceRecovery.IsZero()) || (d.Retention != nil && !d.Retention.IsZero()) {
		vs.add(ReasonInvalidAmount, "retention", "la recuperación de anticipo y la retención solo aplican a subcontratistas")
	}
	gross := decimal.Zero
	for _, g := range selected {
		gross = gross.Add(g.DeliveredAmount)
	}
	ded := Deductions{
		DownPaymentRecovery: Round(d.DownPaymentRecovery),
		ContraCharges:       Round(d.ContraChargesAmount),
	}
	return finish(Round(gross), ded, vatPercent, d.VATOverride, vs)
}

// subcontractAmounts: base digitada menos recuperaciones, retención y contracargos.
// defaultRate se aplica a anticipo recuperado y retención cuando no vienen informados.
func subcontractAmounts(d InvoiceDraft, vatPercent, defaultRate decimal.Decimal, vs *violations) InvoiceAmounts {
	if !d.BaseAmount.IsPositive() {
		vs.add(ReasonInvalidAmount, "base_amount", "el monto base de la factura debe ser mayor que cero")
		return InvoiceAmounts{}
	}
	base := Round(d.BaseAmount)
	ded := Deductions{
		DownPaymentRecovery: Round(d.DownPaymentRecovery),
		AdvanceRecovery:     Round(valueOr(d.AdvanceRecovery, percentOf(base, defaultRate))),
		Retention:           Round(valueOr(d.Retention, percentOf(base, defaultRate))),
		ContraCharges:       Round(d.ContraChargesAmount),
	}
	return finish(base, ded, vatPercent, d.VATOverride, vs)
}

// finish valida deducciones y calcula neto, IVA y total.
func finish(amount decimal.Decimal, ded Deductions, vatPercent decimal.Decimal, vatOverride *decimal.Decimal, vs *violations) InvoiceAmounts {
	for _, c := range []struct {
		field string
		v     decimal.Decimal
	}{
		{"down_payment_recovery", ded.DownPaymentRecovery},
		{"advance_recovery", ded.AdvanceRecovery},
		{"retention", ded.Retention},
		{"contra_charges_amount", ded.ContraCharges},
	} {
		if c.v.IsNegative() {
			vs.add(ReasonInvalidAmount, c.field, "%s no puede ser negativo", c.field)
		}
	}
	net := amount.Sub(ded.Total())
	if net.IsNegative() {
		vs.add(ReasonInvalidAmount, "deductions", "las deducciones (%s) superan el monto de la factura (%s)",
			ded.Total().StringFixed(moneyPlaces), amount.StringFixed(moneyPlaces))
	}
	vat := Round(vatOf(net, vatPercent))
	if vatOverride != nil {
		if vatOverride.IsNegative() {
			vs.add(ReasonInvalidAmount, "vat_amount", "el IVA no puede ser negativo")
		}
		vat = Round(*vatOverride)
	}
	return InvoiceAmounts{
		InvoiceAmount: amount,
		Deductions:    ded,
		NetAmount:     net,
		VATAmount:     vat,
		TotalAmount:   net.Add(vat),
	}
}

func valueOr(p *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if p != nil {
		return *p
	}
	return def
}
