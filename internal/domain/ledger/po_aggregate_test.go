package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
	"github.com/jhoicas/Obras-api/internal/domain/ledger"
)

func TestComputePOAggregate(t *testing.T) {
	po := entity.PurchaseOrder{ID: "po-1", LPOValue: dec("10000")}
	grns := []entity.GRN{
		{ID: "g-1", PurchaseOrderID: "po-1", DeliveredAmount: dec("3000")},
		{ID: "g-2", PurchaseOrderID: "po-1", DeliveredAmount: dec("2000")},
	}

	agg, err := ledger.ComputePOAggregate(po, grns, dec("5"))
	require.NoError(t, err)
	assertMoney(t, "10000", agg.LPOValue)
	assertMoney(t, "10500", agg.LPOValueWithVAT)
	assertMoney(t, "5000", agg.DeliveredBase)
	assertMoney(t, "5250", agg.DeliveredWithVAT)
	assertMoney(t, "5250", agg.LPOBalanceWithVAT)
}

func TestComputePOAggregate_SobreEntregaNoSeRecorta(t *testing.T) {
	po := entity.PurchaseOrder{ID: "po-1", LPOValue: dec("1000")}
	grns := []entity.GRN{{ID: "g-1", PurchaseOrderID: "po-1", DeliveredAmount: dec("1200")}}

	agg, err := ledger.ComputePOAggregate(po, grns, dec("5"))
	require.NoError(t, err)
	assertMoney(t, "-210", agg.LPOBalanceWithVAT)
}

func TestComputePOAggregate_GRNDeOtraOrden(t *testing.T) {
	po := entity.PurchaseOrder{ID: "po-1", LPOValue: dec("1000")}
	grns := []entity.GRN{{ID: "g-9", PurchaseOrderID: "po-2", DeliveredAmount: dec("10")}}

	_, err := ledger.ComputePOAggregate(po, grns, dec("5"))
	assert.ErrorIs(t, err, ledger.ErrInvariant)
}

// TestComputePOAggregate_IdentidadSaldo saldo + entregado == valor con IVA (±0.01).
func TestComputePOAggregate_IdentidadSaldo(t *testing.T) {
	cases := []struct {
		value     string
		delivered []string
		vat       string
	}{
		{"10000", []string{"3333.33", "1111.11"}, "5"},
		{"999.99", []string{"0.01"}, "5"},
		{"123456.78", []string{"100.10", "200.20", "300.30"}, "7.5"},
		{"50", nil, "15"},
		{"7777.77", []string{"7777.76"}, "19"},
	}
	for _, c := range cases {
		po := entity.PurchaseOrder{ID: "po", LPOValue: dec(c.value)}
		var grns []entity.GRN
		for i, amt := range c.delivered {
			grns = append(grns, entity.GRN{ID: string(rune('a' + i)), PurchaseOrderID: "po", DeliveredAmount: dec(amt)})
		}
		agg, err := ledger.ComputePOAggregate(po, grns, dec(c.vat))
		require.NoError(t, err)
		diff := agg.LPOBalanceWithVAT.Add(agg.DeliveredWithVAT).Sub(agg.LPOValueWithVAT).Abs()
		assert.True(t, diff.LessThanOrEqual(ledger.Tolerance), "valor %s: diferencia %s", c.value, diff)
	}
}

func TestAggregatePurchaseOrders_CadaOrdenConSuIVA(t *testing.T) {
	pos := []entity.PurchaseOrder{
		// po-a usa el IVA por defecto; po-b es exenta
		{ID: "po-a", LPOValue: dec("1000")},
		{ID: "po-b", LPOValue: dec("2000"), VATPercent: decPtr("0")},
		{ID: "po-c", LPOValue: dec("100"), VATPercent: decPtr("15")},
	}
	grns := []entity.GRN{
		{ID: "g-1", PurchaseOrderID: "po-a", DeliveredAmount: dec("500")},
		{ID: "g-2", PurchaseOrderID: "po-b", DeliveredAmount: dec("2500")},
	}

	agg, err := ledger.AggregatePurchaseOrders(pos, grns, dec("5"))
	require.NoError(t, err)
	assertMoney(t, "3100", agg.LPOValue)
	assertMoney(t, "3165", agg.LPOValueWithVAT)
	assertMoney(t, "3000", agg.DeliveredBase)
	assertMoney(t, "3025", agg.DeliveredWithVAT)
	// 525 + (-500) + 115
	assertMoney(t, "140", agg.LPOBalanceWithVAT)
}

func TestAggregatePurchaseOrders_GRNFueraDelConjunto(t *testing.T) {
	pos := []entity.PurchaseOrder{{ID: "po-a", LPOValue: dec("1000")}}
	grns := []entity.GRN{{ID: "g-1", PurchaseOrderID: "po-x", DeliveredAmount: dec("1")}}

	_, err := ledger.AggregatePurchaseOrders(pos, grns, dec("5"))
	assert.ErrorIs(t, err, ledger.ErrInvariant)
}

func TestAggregatePurchaseOrders_SinOrdenes(t *testing.T) {
	agg, err := ledger.AggregatePurchaseOrders(nil, nil, dec("5"))
	require.NoError(t, err)
	assert.True(t, agg.LPOValueWithVAT.IsZero())
	assert.True(t, agg.LPOBalanceWithVAT.IsZero())
}

func TestAvailableGRNs(t *testing.T) {
	grns := []entity.GRN{{ID: "g-1"}, {ID: "g-2"}, {ID: "g-3"}}
	invoices := []entity.Invoice{
		{ID: "inv-1", GRNIDs: []string{"g-1"}},
		{ID: "inv-2", GRNIDs: []string{"g-2"}},
	}

	ids := func(gs []entity.GRN) []string {
		out := make([]string, 0, len(gs))
		for _, g := range gs {
			out = append(out, g.ID)
		}
		return out
	}

	assert.Equal(t, []string{"g-3"}, ids(ledger.AvailableGRNs(grns, invoices, "")))
	assert.Equal(t, []string{"g-2", "g-3"}, ids(ledger.AvailableGRNs(grns, invoices, "inv-2")),
		"los GRNs de la factura en edición siguen disponibles")
}
