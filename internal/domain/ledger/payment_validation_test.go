package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
	"github.com/jhoicas/Obras-api/internal/domain/ledger"
)

func payableInvoices() []entity.Invoice {
	return []entity.Invoice{
		{ID: "inv-1", ProjectID: "p-1", SupplierID: "s-1", InvoiceNumber: "INV-1", TotalAmount: dec("1050")},
		{ID: "inv-2", ProjectID: "p-1", SupplierID: "s-1", InvoiceNumber: "INV-2", TotalAmount: dec("2100")},
		{ID: "inv-x", ProjectID: "p-1", SupplierID: "s-2", InvoiceNumber: "INV-X", TotalAmount: dec("100")},
	}
}

func paymentDraft(lines ...ledger.PaymentLineDraft) ledger.PaymentDraft {
	return ledger.PaymentDraft{
		ProjectID:     "p-1",
		SupplierID:    "s-1",
		PaymentMethod: entity.PaymentMethodCurrentDated,
		PaymentDate:   day("2024-01-20"),
		Lines:         lines,
	}
}

func lineDraft(invoiceID, amount, vat string) ledger.PaymentLineDraft {
	return ledger.PaymentLineDraft{InvoiceID: invoiceID, PaymentAmount: dec(amount), VATAmount: dec(vat)}
}

func TestBuildPayment_TotalesDesdeLineas(t *testing.T) {
	d := paymentDraft(lineDraft("inv-1", "500", "25"), lineDraft("inv-2", "1000", "50"))
	d.ID = "pay-1"

	p, err := ledger.BuildPayment(d, payableInvoices(), nil)
	require.NoError(t, err)
	assertMoney(t, "1500", p.TotalPaymentAmount)
	assertMoney(t, "75", p.TotalVATAmount)
	require.Len(t, p.Lines, 2)
	assert.Equal(t, "pay-1", p.Lines[0].PaymentID)
	assert.Equal(t, day("2024-01-20"), p.Lines[1].PaymentDate)
}

func TestBuildPayment_CorrienteLimpiaCamposPosfechados(t *testing.T) {
	d := paymentDraft(lineDraft("inv-1", "100", "5"))
	d.InstrumentType = entity.InstrumentLC
	d.DueDate = dayPtr("2024-05-01")
	d.Liquidated = false

	p, err := ledger.BuildPayment(d, payableInvoices(), nil)
	require.NoError(t, err)
	assert.Empty(t, p.InstrumentType)
	assert.Nil(t, p.DueDate)
	assert.True(t, p.IsLiquidated())
}

func TestValidatePayment_Errores(t *testing.T) {
	pdc := paymentDraft(lineDraft("inv-1", "100", "5"))
	pdc.PaymentMethod = entity.PaymentMethodPostDated

	noMethod := paymentDraft(lineDraft("inv-1", "100", "5"))
	noMethod.PaymentMethod = ""

	tests := []struct {
		name   string
		draft  ledger.PaymentDraft
		reason ledger.Reason
	}{
		{"sin líneas", paymentDraft(), ledger.ReasonMissingField},
		{"posfechado sin instrumento ni vencimiento", pdc, ledger.ReasonMissingField},
		{"sin forma de pago", noMethod, ledger.ReasonMissingField},
		{"factura de otro proveedor", paymentDraft(lineDraft("inv-x", "10", "0")), ledger.ReasonForeignReference},
		{"factura desconocida", paymentDraft(lineDraft("inv-404", "10", "0")), ledger.ReasonForeignReference},
		{"factura repetida", paymentDraft(lineDraft("inv-1", "10", "0"), lineDraft("inv-1", "10", "0")), ledger.ReasonDuplicateSelection},
		{"monto negativo", paymentDraft(lineDraft("inv-1", "-10", "0")), ledger.ReasonInvalidAmount},
		{"monto cero", paymentDraft(lineDraft("inv-1", "0", "0")), ledger.ReasonInvalidAmount},
		{"excede el total", paymentDraft(lineDraft("inv-1", "1000", "51")), ledger.ReasonPaymentExceedsInvoice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireReason(t, ledger.ValidatePayment(tt.draft, payableInvoices(), nil), tt.reason)
		})
	}
}

func TestValidatePayment_SaldoConsideraOtrosPagos(t *testing.T) {
	existing := []entity.PaymentInvoice{
		{PaymentID: "pay-old", InvoiceID: "inv-1", PaymentAmount: dec("500"), VATAmount: dec("25")},
	}

	// 525 ya pagados: caben 525 más, no 526
	ok := paymentDraft(lineDraft("inv-1", "500", "25"))
	assert.NoError(t, ledger.ValidatePayment(ok, payableInvoices(), existing))

	over := paymentDraft(lineDraft("inv-1", "501", "25"))
	ve := requireReason(t, ledger.ValidatePayment(over, payableInvoices(), existing), ledger.ReasonPaymentExceedsInvoice)
	assert.Contains(t, ve.Error(), "525.00")

	// al editar pay-old sus propias líneas no cuentan
	edit := paymentDraft(lineDraft("inv-1", "1000", "50"))
	edit.ID = "pay-old"
	assert.NoError(t, ledger.ValidatePayment(edit, payableInvoices(), existing))
}

func TestSuggestPaymentLine(t *testing.T) {
	inv := entity.Invoice{ID: "inv-1", TotalAmount: dec("1050")}

	s := ledger.SuggestPaymentLine(inv, []entity.PaymentInvoice{line("inv-1", "500", "25")}, dec("5"))
	assert.Equal(t, "inv-1", s.InvoiceID)
	assertMoney(t, "500", s.PaymentAmount)
	assertMoney(t, "25", s.VATAmount)

	paid := ledger.SuggestPaymentLine(inv, []entity.PaymentInvoice{line("inv-1", "1000", "50")}, dec("5"))
	assert.True(t, paid.Gross().IsZero())
}

func TestAffectedInvoiceIDs(t *testing.T) {
	before := &entity.Payment{Lines: []entity.PaymentInvoice{{InvoiceID: "inv-1"}, {InvoiceID: "inv-2"}}}
	after := &entity.Payment{Lines: []entity.PaymentInvoice{{InvoiceID: "inv-2"}, {InvoiceID: "inv-3"}}}

	assert.Equal(t, []string{"inv-1", "inv-2", "inv-3"}, ledger.AffectedInvoiceIDs(before, after))
	assert.Equal(t, []string{"inv-2", "inv-3"}, ledger.AffectedInvoiceIDs(nil, after))
	assert.Empty(t, ledger.AffectedInvoiceIDs(nil, nil))
}
