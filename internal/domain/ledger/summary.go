package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
)

// SummaryInput registros de un proveedor en una obra (o de toda la obra).
// Payments trae sus Lines; cada línea debe referenciar una factura de Invoices.
type SummaryInput struct {
	PurchaseOrders    []entity.PurchaseOrder
	GRNs              []entity.GRN
	Invoices          []entity.Invoice
	Payments          []entity.Payment
	DefaultVATPercent decimal.Decimal
	Today             time.Time
}

// Summary cifras de la tarjeta de proveedor.
//
// TotalPaid cuenta solo pagos liquidados (CurrentDated siempre, PostDated si Liquidated).
// CommittedPayments son los PostDated aún no liquidados. BalanceToBePaid y DueAmount suman
// el saldo pendiente de las facturas no pagadas; DueAmount solo las vencidas antes de Today.
type Summary struct {
	TotalPOAmounts    decimal.Decimal // Σ valor LPO con IVA
	TotalPOBase       decimal.Decimal // Σ valor LPO sin IVA
	TotalDelivered    decimal.Decimal // Σ entregado con IVA
	LPOBalance        decimal.Decimal // Σ saldo LPO con IVA
	TotalInvoiced     decimal.Decimal
	TotalPaid         decimal.Decimal
	CommittedPayments decimal.Decimal
	BalanceToBePaid   decimal.Decimal
	DueAmount         decimal.Decimal
}

// ComputeSupplierSummary agrega órdenes, facturas y pagos en las cifras del resumen.
func ComputeSupplierSummary(in SummaryInput) (Summary, error) {
	po, err := AggregatePurchaseOrders(in.PurchaseOrders, in.GRNs, in.DefaultVATPercent)
	if err != nil {
		return Summary{}, err
	}

	paidByInvoice := make(map[string]decimal.Decimal, len(in.Invoices))
	for _, inv := range in.Invoices {
		paidByInvoice[inv.ID] = decimal.Zero
	}

	totalPaid := decimal.Zero
	committed := decimal.Zero
	for _, p := range in.Payments {
		if p.IsLiquidated() {
			totalPaid = totalPaid.Add(p.Gross())
		} else {
			committed = committed.Add(p.Gross())
		}
		for _, l := range p.Lines {
			acc, ok := paidByInvoice[l.InvoiceID]
			if !ok {
				return Summary{}, invariantf("pago %s aplica a la factura %s fuera del conjunto", p.ID, l.InvoiceID)
			}
			paidByInvoice[l.InvoiceID] = acc.Add(l.Gross())
		}
	}

	today := dateOnly(in.Today)
	invoiced := decimal.Zero
	balance := decimal.Zero
	due := decimal.Zero
	for _, inv := range in.Invoices {
		invoiced = invoiced.Add(inv.TotalAmount)
		paid := paidByInvoice[inv.ID]
		if statusFor(inv.TotalAmount, Round(paid)) == entity.InvoiceStatusPaid {
			continue
		}
		remaining := decimal.Max(decimal.Zero, inv.TotalAmount.Sub(paid))
		balance = balance.Add(remaining)
		if inv.DueDate != nil && dateOnly(*inv.DueDate).Before(today) {
			due = due.Add(remaining)
		}
	}

	return Summary{
		TotalPOAmounts:    po.LPOValueWithVAT,
		TotalPOBase:       po.LPOValue,
		TotalDelivered:    po.DeliveredWithVAT,
		LPOBalance:        po.LPOBalanceWithVAT,
		TotalInvoiced:     Round(invoiced),
		TotalPaid:         Round(totalPaid),
		CommittedPayments: Round(committed),
		BalanceToBePaid:   Round(balance),
		DueAmount:         Round(due),
	}, nil
}
