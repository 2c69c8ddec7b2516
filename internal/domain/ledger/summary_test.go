package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
	"github.com/jhoicas/Obras-api/internal/domain/ledger"
)

func postDated(liquidated bool) entity.Payment {
	return entity.Payment{
		ID:                 "pay-pdc",
		PaymentMethod:      entity.PaymentMethodPostDated,
		InstrumentType:     entity.InstrumentPDC,
		PaymentDate:        day("2024-01-20"),
		DueDate:            dayPtr("2024-03-20"),
		Liquidated:         liquidated,
		TotalPaymentAmount: dec("1000"),
		TotalVATAmount:     dec("50"),
		Lines:              []entity.PaymentInvoice{line("inv-1", "1000", "50")},
	}
}

// TestComputeSupplierSummary_Liquidacion un PDC no liquidado es compromiso; al liquidarlo pasa a pagado.
func TestComputeSupplierSummary_Liquidacion(t *testing.T) {
	in := ledger.SummaryInput{
		Invoices:          []entity.Invoice{{ID: "inv-1", TotalAmount: dec("1050")}},
		Payments:          []entity.Payment{postDated(false)},
		DefaultVATPercent: dec("5"),
		Today:             day("2024-02-01"),
	}

	before, err := ledger.ComputeSupplierSummary(in)
	require.NoError(t, err)
	assertMoney(t, "1050", before.CommittedPayments)
	assertMoney(t, "0", before.TotalPaid)

	in.Payments = []entity.Payment{postDated(true)}
	after, err := ledger.ComputeSupplierSummary(in)
	require.NoError(t, err)
	assertMoney(t, "0", after.CommittedPayments)
	assertMoney(t, "1050", after.TotalPaid)
}

func TestComputeSupplierSummary(t *testing.T) {
	in := ledger.SummaryInput{
		PurchaseOrders: []entity.PurchaseOrder{
			{ID: "po-1", LPOValue: dec("10000")},
			{ID: "po-2", LPOValue: dec("2000"), VATPercent: decPtr("0")},
		},
		GRNs: []entity.GRN{
			{ID: "g-1", PurchaseOrderID: "po-1", DeliveredAmount: dec("4000")},
			{ID: "g-2", PurchaseOrderID: "po-2", DeliveredAmount: dec("500")},
		},
		Invoices: []entity.Invoice{
			// pagada
			{ID: "inv-1", TotalAmount: dec("1050"), DueDate: dayPtr("2024-01-01")},
			// parcial y vencida: saldo 600
			{ID: "inv-2", TotalAmount: dec("1000"), DueDate: dayPtr("2024-01-10")},
			// sin pagos, aún no vence: saldo 2100
			{ID: "inv-3", TotalAmount: dec("2100"), DueDate: dayPtr("2024-02-10")},
			// sin vencimiento: saldo 500, nunca vencida
			{ID: "inv-4", TotalAmount: dec("500")},
		},
		Payments: []entity.Payment{
			{
				ID: "pay-1", PaymentMethod: entity.PaymentMethodCurrentDated,
				TotalPaymentAmount: dec("1000"), TotalVATAmount: dec("50"),
				Lines: []entity.PaymentInvoice{line("inv-1", "1000", "50")},
			},
			{
				ID: "pay-2", PaymentMethod: entity.PaymentMethodPostDated, Liquidated: false,
				TotalPaymentAmount: dec("400"), TotalVATAmount: dec("0"),
				Lines: []entity.PaymentInvoice{line("inv-2", "400", "0")},
			},
		},
		DefaultVATPercent: dec("5"),
		Today:             day("2024-01-15"),
	}

	s, err := ledger.ComputeSupplierSummary(in)
	require.NoError(t, err)
	assertMoney(t, "12500", s.TotalPOAmounts)
	assertMoney(t, "12000", s.TotalPOBase)
	assertMoney(t, "4700", s.TotalDelivered)
	assertMoney(t, "7800", s.LPOBalance)
	assertMoney(t, "4650", s.TotalInvoiced)
	assertMoney(t, "1050", s.TotalPaid)
	assertMoney(t, "400", s.CommittedPayments)
	assertMoney(t, "3200", s.BalanceToBePaid)
	assertMoney(t, "600", s.DueAmount)
}

func TestComputeSupplierSummary_PagoDeFacturaAjena(t *testing.T) {
	in := ledger.SummaryInput{
		Invoices: []entity.Invoice{{ID: "inv-1", TotalAmount: dec("10")}},
		Payments: []entity.Payment{{
			ID: "pay-1", PaymentMethod: entity.PaymentMethodCurrentDated,
			Lines: []entity.PaymentInvoice{line("inv-x", "1", "0")},
		}},
		DefaultVATPercent: dec("5"),
	}

	_, err := ledger.ComputeSupplierSummary(in)
	assert.ErrorIs(t, err, ledger.ErrInvariant)
}
