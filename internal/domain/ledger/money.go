// Package ledger es el núcleo contable de proveedores de obra: órdenes de compra, GRNs,
// facturas y pagos. Todas las funciones son puras: reciben registros ya cargados y el
// porcentaje de IVA explícito, y devuelven montos o estados calculados. No acceden a la BD.
package ledger

import "github.com/shopspring/decimal"

// moneyPlaces decimales con los que se almacenan y muestran los montos.
const moneyPlaces = 2

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)

	// DefaultVATPercent IVA del sitio cuando no hay configuración.
	DefaultVATPercent = decimal.NewFromInt(5)

	// Tolerance absorbe diferencias de redondeo al comparar pagado vs. total (0.01).
	Tolerance = decimal.New(1, -moneyPlaces)

	// defaultDeductionRate anticipo recuperado y retención por defecto en subcontratos (10%).
	defaultDeductionRate = decimal.NewFromInt(10)
)

// VATResult resultado de aplicar IVA a una base.
type VATResult struct {
	VATAmount    decimal.Decimal
	TotalWithVAT decimal.Decimal
}

// Round redondea a 2 decimales (mitad hacia arriba).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// ApplyVAT calcula IVA y total con IVA: vat = base * pct/100; total = base + vat.
func ApplyVAT(base, vatPercent decimal.Decimal) VATResult {
	vat := vatOf(base, vatPercent)
	return VATResult{
		VATAmount:    Round(vat),
		TotalWithVAT: Round(base.Add(vat)),
	}
}

// SplitGross separa un monto con IVA en base e IVA: base = gross / (1 + pct/100); vat = gross - base.
// La base se redondea y el IVA se obtiene por diferencia para que base + vat == gross.
func SplitGross(gross, vatPercent decimal.Decimal) (base, vat decimal.Decimal) {
	base = Round(gross.Div(vatFactor(vatPercent)))
	vat = Round(gross).Sub(base)
	return base, vat
}

// ResolveVATPercent usa el IVA propio de la orden si existe, si no el IVA por defecto.
func ResolveVATPercent(override *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return def
}

// vatOf IVA sin redondear.
func vatOf(base, vatPercent decimal.Decimal) decimal.Decimal {
	return base.Mul(vatPercent).Div(hundred)
}

// grossUp base * (1 + pct/100) sin redondear.
func grossUp(base, vatPercent decimal.Decimal) decimal.Decimal {
	return base.Add(vatOf(base, vatPercent))
}

func vatFactor(vatPercent decimal.Decimal) decimal.Decimal {
	return one.Add(vatPercent.Div(hundred))
}

// percentOf pct% de d, sin redondear.
func percentOf(d, pct decimal.Decimal) decimal.Decimal {
	return d.Mul(pct).Div(hundred)
}
