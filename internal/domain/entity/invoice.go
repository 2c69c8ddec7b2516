package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType tipo de factura del proveedor/subcontratista.
type PaymentType string

const (
	PaymentTypeDownPayment      PaymentType = "DownPayment" // "Advance" para subcontratistas
	PaymentTypeProgress         PaymentType = "ProgressPayment"
	PaymentTypeRetentionRelease PaymentType = "RetentionRelease"
)

// ParsePaymentType normaliza el tipo recibido; "Advance" y "AdvancePayment" son alias de DownPayment.
func ParsePaymentType(s string) (PaymentType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "downpayment", "down_payment", "advance", "advancepayment", "advance_payment":
		return PaymentTypeDownPayment, true
	case "progresspayment", "progress_payment", "progress":
		return PaymentTypeProgress, true
	case "retentionrelease", "retention_release":
		return PaymentTypeRetentionRelease, true
	}
	return "", false
}

// InvoiceStatus estado de cobro derivado de los pagos aplicados (se persiste desnormalizado).
type InvoiceStatus string

const (
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusUnpaid        InvoiceStatus = "unpaid"
)

// Invoice factura de proveedor o subcontratista.
//
// InvoiceAmount siempre va sin IVA y antes de deducciones; NetAmount es el monto tras
// deducciones y TotalAmount = NetAmount + VATAmount.
type Invoice struct {
	ID                       string
	ProjectID                string
	SupplierID               string
	PartyKind                PartyKind
	InvoiceNumber            string
	InvoiceDate              time.Time
	PaymentType              PaymentType
	PurchaseOrderID          string
	GRNIDs                   []string
	ChangeOrderIDs           []string
	InvoiceAmount            decimal.Decimal
	DownPaymentRecovery      decimal.Decimal
	AdvanceRecovery          decimal.Decimal
	Retention                decimal.Decimal
	ContraChargesAmount      decimal.Decimal
	ContraChargesDescription string
	NetAmount                decimal.Decimal
	VATAmount                decimal.Decimal
	TotalAmount              decimal.Decimal
	DueDate                  *time.Time
	Status                   InvoiceStatus
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// HasGRN indica si la factura ya incluye el GRN.
func (i *Invoice) HasGRN(grnID string) bool {
	for _, id := range i.GRNIDs {
		if id == grnID {
			return true
		}
	}
	return false
}

// HasChangeOrder indica si la factura referencia el change order.
func (i *Invoice) HasChangeOrder(coID string) bool {
	for _, id := range i.ChangeOrderIDs {
		if id == coID {
			return true
		}
	}
	return false
}
