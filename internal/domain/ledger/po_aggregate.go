package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
)

// POAggregate cifras de una orden de compra (o suma de varias) frente a sus GRNs.
// LPOBalanceWithVAT puede ser negativo si se entregó de más: no se recorta a cero.
type POAggregate struct {
	LPOValue          decimal.Decimal
	LPOValueWithVAT   decimal.Decimal
	DeliveredBase     decimal.Decimal
	DeliveredWithVAT  decimal.Decimal
	LPOBalanceWithVAT decimal.Decimal
}

func (a POAggregate) add(b POAggregate) POAggregate {
	return POAggregate{
		LPOValue:          a.LPOValue.Add(b.LPOValue),
		LPOValueWithVAT:   a.LPOValueWithVAT.Add(b.LPOValueWithVAT),
		DeliveredBase:     a.DeliveredBase.Add(b.DeliveredBase),
		DeliveredWithVAT:  a.DeliveredWithVAT.Add(b.DeliveredWithVAT),
		LPOBalanceWithVAT: a.LPOBalanceWithVAT.Add(b.LPOBalanceWithVAT),
	}
}

func (a POAggregate) rounded() POAggregate {
	return POAggregate{
		LPOValue:          Round(a.LPOValue),
		LPOValueWithVAT:   Round(a.LPOValueWithVAT),
		DeliveredBase:     Round(a.DeliveredBase),
		DeliveredWithVAT:  Round(a.DeliveredWithVAT),
		LPOBalanceWithVAT: Round(a.LPOBalanceWithVAT),
	}
}

// ComputePOAggregate calcula valor con IVA, entregado con IVA y saldo LPO de una orden.
// grns deben pertenecer a la orden; un GRN ajeno es un error de invariante.
func ComputePOAggregate(po entity.PurchaseOrder, grns []entity.GRN, vatPercent decimal.Decimal) (POAggregate, error) {
	agg, err := aggregatePO(po, grns, vatPercent)
	if err != nil {
		return POAggregate{}, err
	}
	return agg.rounded(), nil
}

// aggregatePO versión sin redondear, para acumular varias órdenes con precisión completa.
func aggregatePO(po entity.PurchaseOrder, grns []entity.GRN, vatPercent decimal.Decimal) (POAggregate, error) {
	delivered := decimal.Zero
	for _, g := range grns {
		if g.PurchaseOrderID != po.ID {
			return POAggregate{}, invariantf("GRN %s pertenece a la orden %s, no a %s", g.ID, g.PurchaseOrderID, po.ID)
		}
		delivered = delivered.Add(g.DeliveredAmount)
	}
	return POAggregate{
		LPOValue:          po.LPOValue,
		LPOValueWithVAT:   grossUp(po.LPOValue, vatPercent),
		DeliveredBase:     delivered,
		DeliveredWithVAT:  grossUp(delivered, vatPercent),
		LPOBalanceWithVAT: grossUp(po.LPOValue.Sub(delivered), vatPercent),
	}, nil
}

// AggregatePurchaseOrders suma componente a componente varias órdenes (de un proveedor o de la obra).
// Cada orden usa su propio IVA; nunca se deriva una tasa agregada.
func AggregatePurchaseOrders(pos []entity.PurchaseOrder, grns []entity.GRN, defaultVAT decimal.Decimal) (POAggregate, error) {
	byPO := make(map[string][]entity.GRN, len(pos))
	known := make(map[string]bool, len(pos))
	for _, po := range pos {
		known[po.ID] = true
	}
	for _, g := range grns {
		if !known[g.PurchaseOrderID] {
			return POAggregate{}, invariantf("GRN %s referencia la orden %s fuera del conjunto", g.ID, g.PurchaseOrderID)
		}
		byPO[g.PurchaseOrderID] = append(byPO[g.PurchaseOrderID], g)
	}

	var total POAggregate
	for _, po := range pos {
		agg, err := aggregatePO(po, byPO[po.ID], ResolveVATPercent(po.VATPercent, defaultVAT))
		if err != nil {
			return POAggregate{}, err
		}
		total = total.add(agg)
	}
	return total.rounded(), nil
}

// AvailableGRNs GRNs que se pueden seleccionar en una factura de avance: los que no están en
// ninguna otra factura. Los GRNs de la factura en edición (editingInvoiceID) siguen disponibles.
func AvailableGRNs(grns []entity.GRN, invoices []entity.Invoice, editingInvoiceID string) []entity.GRN {
	taken := make(map[string]bool)
	for _, inv := range invoices {
		if editingInvoiceID != "" && inv.ID == editingInvoiceID {
			continue
		}
		for _, id := range inv.GRNIDs {
			taken[id] = true
		}
	}
	out := make([]entity.GRN, 0, len(grns))
	for _, g := range grns {
		if !taken[g.ID] {
			out = append(out, g)
		}
	}
	return out
}
