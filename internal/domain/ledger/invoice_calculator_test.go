package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Obras-api/internal/domain"
	"github.com/jhoicas/Obras-api/internal/domain/entity"
	"github.com/jhoicas/Obras-api/internal/domain/ledger"
)

func twoGRNs() []entity.GRN {
	return []entity.GRN{
		{ID: "g-1", PurchaseOrderID: "po-1", DeliveredAmount: dec("6000")},
		{ID: "g-2", PurchaseOrderID: "po-1", DeliveredAmount: dec("4000")},
	}
}

// TestComputeInvoiceAmounts_AvanceProveedor GRNs por 10.000, recuperación 2.000, IVA 5%.
func TestComputeInvoiceAmounts_AvanceProveedor(t *testing.T) {
	d := ledger.InvoiceDraft{
		PartyKind:           entity.PartySupplier,
		PaymentType:         entity.PaymentTypeProgress,
		DownPaymentRecovery: dec("2000"),
	}

	got, err := ledger.ComputeInvoiceAmounts(d, twoGRNs(), dec("5"))
	require.NoError(t, err)
	assertMoney(t, "10000", got.InvoiceAmount, "el monto de factura va antes de deducciones")
	assertMoney(t, "2000", got.Deductions.DownPaymentRecovery)
	assertMoney(t, "8000", got.NetAmount)
	assertMoney(t, "400", got.VATAmount)
	assertMoney(t, "8400", got.TotalAmount)
}

func TestComputeInvoiceAmounts_IVADigitado(t *testing.T) {
	d := ledger.InvoiceDraft{
		PartyKind:           entity.PartySupplier,
		PaymentType:         entity.PaymentTypeProgress,
		DownPaymentRecovery: dec("2000"),
		VATOverride:         decPtr("350"),
	}

	got, err := ledger.ComputeInvoiceAmounts(d, twoGRNs(), dec("5"))
	require.NoError(t, err)
	assertMoney(t, "350", got.VATAmount)
	assertMoney(t, "8350", got.TotalAmount)
}

func TestComputeInvoiceAmounts_Subcontrato(t *testing.T) {
	tests := []struct {
		name        string
		draft       ledger.InvoiceDraft
		advRecovery string
		retention   string
		net         string
		vat         string
		total       string
	}{
		{
			name: "deducciones por defecto al 10%",
			draft: ledger.InvoiceDraft{
				PaymentType:         entity.PaymentTypeProgress,
				BaseAmount:          dec("10000"),
				ContraChargesAmount: dec("500"),
			},
			advRecovery: "1000", retention: "1000", net: "7500", vat: "375", total: "7875",
		},
		{
			name: "deducciones informadas",
			draft: ledger.InvoiceDraft{
				PaymentType:     entity.PaymentTypeProgress,
				BaseAmount:      dec("10000"),
				AdvanceRecovery: decPtr("2000"),
				Retention:       decPtr("0"),
			},
			advRecovery: "2000", retention: "0", net: "8000", vat: "400", total: "8400",
		},
		{
			name: "liberación de retención sin deducciones por defecto",
			draft: ledger.InvoiceDraft{
				PaymentType: entity.PaymentTypeRetentionRelease,
				BaseAmount:  dec("5000"),
			},
			advRecovery: "0", retention: "0", net: "5000", vat: "250", total: "5250",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.draft.PartyKind = entity.PartySubcontractor
			got, err := ledger.ComputeInvoiceAmounts(tt.draft, nil, dec("5"))
			require.NoError(t, err)
			assertMoney(t, tt.draft.BaseAmount.String(), got.InvoiceAmount)
			assertMoney(t, tt.advRecovery, got.Deductions.AdvanceRecovery)
			assertMoney(t, tt.retention, got.Deductions.Retention)
			assertMoney(t, tt.net, got.NetAmount)
			assertMoney(t, tt.vat, got.VATAmount)
			assertMoney(t, tt.total, got.TotalAmount)
		})
	}
}

func TestComputeInvoiceAmounts_Anticipo(t *testing.T) {
	d := ledger.InvoiceDraft{
		PartyKind:     entity.PartySupplier,
		PaymentType:   entity.PaymentTypeDownPayment,
		AdvanceAmount: dec("20000"),
	}

	got, err := ledger.ComputeInvoiceAmounts(d, nil, dec("5"))
	require.NoError(t, err)
	assertMoney(t, "20000", got.InvoiceAmount)
	assertMoney(t, "20000", got.NetAmount)
	assertMoney(t, "1000", got.VATAmount)
	assertMoney(t, "21000", got.TotalAmount)
}

func TestComputeInvoiceAmounts_Errores(t *testing.T) {
	tests := []struct {
		name     string
		draft    ledger.InvoiceDraft
		selected []entity.GRN
		reason   ledger.Reason
	}{
		{
			name:   "anticipo en cero",
			draft:  ledger.InvoiceDraft{PartyKind: entity.PartySupplier, PaymentType: entity.PaymentTypeDownPayment},
			reason: ledger.ReasonInvalidAmount,
		},
		{
			name:   "avance de proveedor sin GRNs",
			draft:  ledger.InvoiceDraft{PartyKind: entity.PartySupplier, PaymentType: entity.PaymentTypeProgress},
			reason: ledger.ReasonMissingField,
		},
		{
			name: "retención en factura de proveedor",
			draft: ledger.InvoiceDraft{
				PartyKind: entity.PartySupplier, PaymentType: entity.PaymentTypeProgress, Retention: decPtr("100"),
			},
			selected: twoGRNs(),
			reason:   ledger.ReasonInvalidAmount,
		},
		{
			name:   "liberación de retención para proveedor",
			draft:  ledger.InvoiceDraft{PartyKind: entity.PartySupplier, PaymentType: entity.PaymentTypeRetentionRelease, BaseAmount: dec("10")},
			reason: ledger.ReasonUnsupportedPaymentType,
		},
		{
			name:   "tipo desconocido",
			draft:  ledger.InvoiceDraft{PartyKind: entity.PartySupplier, PaymentType: "Bonus"},
			reason: ledger.ReasonUnsupportedPaymentType,
		},
		{
			name: "deducciones mayores que la base",
			draft: ledger.InvoiceDraft{
				PartyKind: entity.PartySubcontractor, PaymentType: entity.PaymentTypeProgress,
				BaseAmount: dec("1000"), DownPaymentRecovery: dec("900"),
			},
			reason: ledger.ReasonInvalidAmount,
		},
		{
			name: "contracargo negativo",
			draft: ledger.InvoiceDraft{
				PartyKind: entity.PartySubcontractor, PaymentType: entity.PaymentTypeProgress,
				BaseAmount: dec("1000"), ContraChargesAmount: dec("-1"),
			},
			reason: ledger.ReasonInvalidAmount,
		},
		{
			name: "IVA digitado negativo",
			draft: ledger.InvoiceDraft{
				PartyKind: entity.PartySupplier, PaymentType: entity.PaymentTypeDownPayment,
				AdvanceAmount: dec("100"), VATOverride: decPtr("-5"),
			},
			reason: ledger.ReasonInvalidAmount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.ComputeInvoiceAmounts(tt.draft, tt.selected, dec("5"))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			ve, ok := ledger.AsValidationError(err)
			require.True(t, ok)
			assert.True(t, ve.Has(tt.reason), "motivos: %v", ve.Messages())
		})
	}
}

func TestComputeInvoiceAmounts_MensajeDeduccionesExcedidas(t *testing.T) {
	d := ledger.InvoiceDraft{
		PartyKind:   entity.PartySubcontractor,
		PaymentType: entity.PaymentTypeProgress,
		BaseAmount:  dec("1000"),
		// 10% + 10% por defecto + 900 = 1100
		DownPaymentRecovery: dec("900"),
	}

	_, err := ledger.ComputeInvoiceAmounts(d, nil, dec("5"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "las deducciones (1100.00) superan el monto de la factura (1000.00)")
}
