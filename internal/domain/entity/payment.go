package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod forma de pago.
type PaymentMethod string

const (
	PaymentMethodCurrentDated PaymentMethod = "CurrentDated"
	PaymentMethodPostDated    PaymentMethod = "PostDated"
)

// InstrumentType instrumento de un pago posfechado.
type InstrumentType string

const (
	InstrumentPDC          InstrumentType = "PDC"
	InstrumentLC           InstrumentType = "LC"
	InstrumentTrustReceipt InstrumentType = "TrustReceipt"
)

// Valid indica si el instrumento es uno de los soportados.
func (t InstrumentType) Valid() bool {
	switch t {
	case InstrumentPDC, InstrumentLC, InstrumentTrustReceipt:
		return true
	}
	return false
}

// Payment pago a un proveedor; cubre una o varias facturas mediante Lines.
type Payment struct {
	ID                 string
	ProjectID          string
	SupplierID         string
	PaymentMethod      PaymentMethod
	InstrumentType     InstrumentType // solo PostDated
	PaymentDate        time.Time
	DueDate            *time.Time // solo PostDated
	Liquidated         bool       // solo PostDated: el instrumento ya fue cobrado
	TotalPaymentAmount decimal.Decimal
	TotalVATAmount     decimal.Decimal
	Lines              []PaymentInvoice
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsLiquidated: un pago CurrentDated siempre está liquidado; uno PostDated solo si fue marcado.
func (p *Payment) IsLiquidated() bool {
	if p.PaymentMethod == PaymentMethodPostDated {
		return p.Liquidated
	}
	return true
}

// Gross devuelve el total del pago con IVA.
func (p *Payment) Gross() decimal.Decimal {
	return p.TotalPaymentAmount.Add(p.TotalVATAmount)
}

// InvoiceIDs devuelve los IDs de las facturas cubiertas por el pago.
func (p *Payment) InvoiceIDs() []string {
	ids := make([]string, 0, len(p.Lines))
	for _, l := range p.Lines {
		ids = append(ids, l.InvoiceID)
	}
	return ids
}

// PaymentInvoice línea de pago aplicada a una factura (tabla puente payment_invoices).
// PaymentDate es de solo lectura: se toma del pago al consultar.
type PaymentInvoice struct {
	ID            string
	PaymentID     string
	InvoiceID     string
	PaymentAmount decimal.Decimal // sin IVA
	VATAmount     decimal.Decimal
	PaymentDate   time.Time
}

// Gross devuelve el monto de la línea con IVA.
func (l PaymentInvoice) Gross() decimal.Decimal {
	return l.PaymentAmount.Add(l.VATAmount)
}
