package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Obras-api/internal/domain/ledger"
)

func TestApplyVAT(t *testing.T) {
	tests := []struct {
		name      string
		base, pct string
		vat       string
		total     string
	}{
		{"iva 5%", "1000", "5", "50", "1050"},
		{"iva cero", "1000", "0", "0", "1000"},
		{"redondeo mitad hacia arriba", "0.10", "5", "0.01", "0.11"},
		{"base con centavos", "1234.56", "5", "61.73", "1296.29"},
		{"iva fraccionario", "200", "7.5", "15", "215"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ledger.ApplyVAT(dec(tt.base), dec(tt.pct))
			assertMoney(t, tt.vat, r.VATAmount)
			assertMoney(t, tt.total, r.TotalWithVAT)
		})
	}
}

func TestSplitGross(t *testing.T) {
	base, vat := ledger.SplitGross(dec("1050"), dec("5"))
	assertMoney(t, "1000", base)
	assertMoney(t, "50", vat)

	// base + iva siempre reconstruye el bruto
	base, vat = ledger.SplitGross(dec("100"), dec("5"))
	assertMoney(t, "95.24", base)
	assertMoney(t, "4.76", vat)
	assertMoney(t, "100", base.Add(vat))
}

// TestSplitGross_RoundTrip separar el total con IVA devuelve la base original (±0.01).
func TestSplitGross_RoundTrip(t *testing.T) {
	bases := []string{"0", "0.01", "1", "99.99", "1234.56", "100000.10", "987654.32"}
	rates := []string{"0", "5", "7.5", "15", "19"}
	for _, b := range bases {
		for _, r := range rates {
			base := dec(b)
			total := ledger.ApplyVAT(base, dec(r)).TotalWithVAT
			got, _ := ledger.SplitGross(total, dec(r))
			diff := got.Sub(base).Abs()
			assert.True(t, diff.LessThanOrEqual(ledger.Tolerance),
				"base=%s iva=%s: obtenido %s", b, r, got.StringFixed(2))
		}
	}
}

func TestResolveVATPercent(t *testing.T) {
	assertMoney(t, "5", ledger.ResolveVATPercent(nil, ledger.DefaultVATPercent))
	assertMoney(t, "0", ledger.ResolveVATPercent(decPtr("0"), ledger.DefaultVATPercent))
	assertMoney(t, "15", ledger.ResolveVATPercent(decPtr("15"), dec("5")))
}
