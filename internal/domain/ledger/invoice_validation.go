package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
)

// InvoiceContext registros ya cargados que las reglas de factura necesitan consultar.
type InvoiceContext struct {
	// PurchaseOrder orden seleccionada en el borrador (nil si no se encontró o no aplica).
	PurchaseOrder *entity.PurchaseOrder
	// PurchaseOrders órdenes del proveedor en la obra (dueñas de GRNs).
	PurchaseOrders []entity.PurchaseOrder
	// GRNs elegibles: los GRNs de las órdenes del proveedor en la obra.
	GRNs []entity.GRN
	// ChangeOrders de la orden seleccionada.
	ChangeOrders []entity.ChangeOrder
	// ProjectInvoices todas las facturas de la obra, de todos los proveedores.
	ProjectInvoices []entity.Invoice
	// SupplierInvoices todas las facturas del proveedor, en cualquier obra.
	SupplierInvoices []entity.Invoice
}

// ValidateInvoice aplica todas las reglas al borrador y devuelve un *ValidationError con
// cada regla incumplida, o nil.
func ValidateInvoice(d InvoiceDraft, ic InvoiceContext) error {
	var vs violations
	selected := validateInvoice(d, ic, &vs)
	computeAmounts(d, selected, decimal.Zero, &vs)
	return vs.err()
}

// InvoiceVATPercent IVA aplicable al borrador. Con orden seleccionada usa su IVA; sin orden,
// el de la orden dueña de los GRNs elegidos. Si los GRNs vienen de órdenes con IVA distinto
// devuelve un *ValidationError. En los demás casos usa defaultPercent.
func InvoiceVATPercent(d InvoiceDraft, ic InvoiceContext, defaultPercent decimal.Decimal) (decimal.Decimal, error) {
	if ic.PurchaseOrder != nil {
		return ResolveVATPercent(ic.PurchaseOrder.VATPercent, defaultPercent), nil
	}

	pos := make(map[string]entity.PurchaseOrder, len(ic.PurchaseOrders))
	for _, po := range ic.PurchaseOrders {
		pos[po.ID] = po
	}
	grnPO := make(map[string]string, len(ic.GRNs))
	for _, g := range ic.GRNs {
		grnPO[g.ID] = g.PurchaseOrderID
	}

	var first *entity.PurchaseOrder
	rate := defaultPercent
	for _, id := range d.GRNIDs {
		po, ok := pos[grnPO[id]]
		if !ok {
			continue
		}
		r := ResolveVATPercent(po.VATPercent, defaultPercent)
		if first == nil {
			first = &po
			rate = r
			continue
		}
		if !r.Equal(rate) {
			return decimal.Zero, NewValidationError(ReasonMixedVATRates, "grn_ids",
				"los GRNs seleccionados pertenecen a órdenes con IVA distinto (%s: %s%%, %s: %s%%)",
				first.LPONumber, rate.String(), po.LPONumber, r.String())
		}
	}
	return rate, nil
}

// ValidateInvoiceTotal rechaza una factura editada cuyo total queda por debajo de lo ya pagado.
func ValidateInvoiceTotal(inv entity.Invoice, lines []entity.PaymentInvoice) error {
	paid := TotalPaid(lines)
	if paid.GreaterThan(inv.TotalAmount.Add(Tolerance)) {
		return NewValidationError(ReasonTotalBelowPaid, "total_amount",
			"el total de la factura %s (%s) queda por debajo de lo ya pagado (%s)",
			inv.InvoiceNumber, inv.TotalAmount.StringFixed(moneyPlaces), paid.StringFixed(moneyPlaces))
	}
	return nil
}

// BuildInvoice valida el borrador y devuelve la factura con los montos calculados.
// El estado queda en unpaid: el llamador debe recalcularlo tras persistir.
func BuildInvoice(d InvoiceDraft, ic InvoiceContext, vatPercent decimal.Decimal) (entity.Invoice, error) {
	var vs violations
	selected := validateInvoice(d, ic, &vs)
	amounts := computeAmounts(d, selected, vatPercent, &vs)
	if err := vs.err(); err != nil {
		return entity.Invoice{}, err
	}

	inv := entity.Invoice{
		ID:                       d.ID,
		ProjectID:                d.ProjectID,
		SupplierID:               d.SupplierID,
		PartyKind:                d.PartyKind,
		InvoiceNumber:            strings.TrimSpace(d.InvoiceNumber),
		InvoiceDate:              d.InvoiceDate,
		PaymentType:              d.PaymentType,
		PurchaseOrderID:          d.PurchaseOrderID,
		InvoiceAmount:            amounts.InvoiceAmount,
		DownPaymentRecovery:      amounts.Deductions.DownPaymentRecovery,
		AdvanceRecovery:          amounts.Deductions.AdvanceRecovery,
		Retention:                amounts.Deductions.Retention,
		ContraChargesAmount:      amounts.Deductions.ContraCharges,
		ContraChargesDescription: strings.TrimSpace(d.ContraChargesDescription),
		NetAmount:                amounts.NetAmount,
		VATAmount:                amounts.VATAmount,
		TotalAmount:              amounts.TotalAmount,
		DueDate:                  d.DueDate,
		Status:                   entity.InvoiceStatusUnpaid,
	}
	if len(d.GRNIDs) > 0 {
		inv.GRNIDs = append([]string(nil), d.GRNIDs...)
	}
	if len(d.ChangeOrderIDs) > 0 {
		inv.ChangeOrderIDs = append([]string(nil), d.ChangeOrderIDs...)
	}
	return inv, nil
}

// validateInvoice reglas de cabecera, referencias y unicidad. Devuelve los GRNs seleccionados
// que sí se pudieron resolver, para el cálculo de montos.
func validateInvoice(d InvoiceDraft, ic InvoiceContext, vs *violations) []entity.GRN {
	if d.ProjectID == "" {
		vs.add(ReasonMissingField, "project_id", "la obra es obligatoria")
	}
	if d.SupplierID == "" {
		vs.add(ReasonMissingField, "supplier_id", "el proveedor es obligatorio")
	}
	if !d.PartyKind.Valid() {
		vs.add(ReasonMissingField, "party_kind", "el tipo de contraparte debe ser supplier o subcontractor")
	}
	if strings.TrimSpace(d.InvoiceNumber) == "" {
		vs.add(ReasonMissingField, "invoice_number", "el número de factura es obligatorio")
	}
	if d.InvoiceDate.IsZero() {
		vs.add(ReasonMissingField, "invoice_date", "la fecha de factura es obligatoria")
	}

	validatePurchaseOrder(d, ic, vs)
	selected := validateGRNSelection(d, ic, vs)
	validateChangeOrderSelection(d, ic, vs)
	validateUniqueness(d, ic, vs)
	return selected
}

func requiresPurchaseOrder(d InvoiceDraft) bool {
	switch d.PaymentType {
	case entity.PaymentTypeDownPayment, entity.PaymentTypeRetentionRelease:
		return true
	case entity.PaymentTypeProgress:
		return d.PartyKind == entity.PartySubcontractor
	}
	return false
}

func validatePurchaseOrder(d InvoiceDraft, ic InvoiceContext, vs *violations) {
	if d.PurchaseOrderID == "" {
		if requiresPurchaseOrder(d) {
			vs.add(ReasonMissingField, "purchase_order_id", "la orden de compra es obligatoria para %s", d.PaymentType)
		}
		return
	}
	po := ic.PurchaseOrder
	if po == nil || po.ID != d.PurchaseOrderID {
		vs.add(ReasonForeignReference, "purchase_order_id", "orden de compra %s no encontrada", d.PurchaseOrderID)
		return
	}
	if po.ProjectID != d.ProjectID || po.SupplierID != d.SupplierID {
		vs.add(ReasonForeignReference, "purchase_order_id",
			"la orden de compra %s no pertenece a esta obra y proveedor", po.LPONumber)
	}
}

func validateGRNSelection(d InvoiceDraft, ic InvoiceContext, vs *violations) []entity.GRN {
	supplierProgress := d.PaymentType == entity.PaymentTypeProgress && d.PartyKind == entity.PartySupplier
	if !supplierProgress {
		if len(d.GRNIDs) > 0 {
			vs.add(ReasonForeignReference, "grn_ids", "solo se pueden seleccionar GRNs en avances de proveedor")
		}
		return nil
	}

	byID := make(map[string]entity.GRN, len(ic.GRNs))
	for _, g := range ic.GRNs {
		byID[g.ID] = g
	}
	invoicedBy := make(map[string]string)
	for _, inv := range ic.ProjectInvoices {
		if d.ID != "" && inv.ID == d.ID {
			continue
		}
		for _, id := range inv.GRNIDs {
			invoicedBy[id] = inv.InvoiceNumber
		}
	}

	seen := make(map[string]bool, len(d.GRNIDs))
	selected := make([]entity.GRN, 0, len(d.GRNIDs))
	for _, id := range d.GRNIDs {
		if seen[id] {
			vs.add(ReasonDuplicateSelection, "grn_ids", "el GRN %s está seleccionado más de una vez", id)
			continue
		}
		seen[id] = true
		g, ok := byID[id]
		if !ok {
			vs.add(ReasonForeignReference, "grn_ids", "el GRN %s no pertenece a esta obra y proveedor", id)
			continue
		}
		if d.PurchaseOrderID != "" && g.PurchaseOrderID != d.PurchaseOrderID {
			vs.add(ReasonForeignReference, "grn_ids", "el GRN %s no pertenece a la orden de compra seleccionada", g.GRNRefNo)
			continue
		}
		if number, taken := invoicedBy[id]; taken {
			vs.add(ReasonGRNAlreadyInvoiced, "grn_ids", "el GRN %s ya está facturado en la factura %s", g.GRNRefNo, number)
			continue
		}
		selected = append(selected, g)
	}
	return selected
}

func validateChangeOrderSelection(d InvoiceDraft, ic InvoiceContext, vs *violations) {
	if len(d.ChangeOrderIDs) == 0 {
		return
	}
	if d.PartyKind != entity.PartySubcontractor || d.PaymentType == entity.PaymentTypeRetentionRelease {
		vs.add(ReasonForeignReference, "change_order_ids", "solo se pueden seleccionar change orders en anticipos o avances de subcontratista")
		return
	}
	known := make(map[string]entity.ChangeOrder, len(ic.ChangeOrders))
	for _, co := range ic.ChangeOrders {
		known[co.ID] = co
	}
	seen := make(map[string]bool, len(d.ChangeOrderIDs))
	for _, id := range d.ChangeOrderIDs {
		if seen[id] {
			vs.add(ReasonDuplicateSelection, "change_order_ids", "el change order %s está seleccionado más de una vez", id)
			continue
		}
		seen[id] = true
		co, ok := known[id]
		if !ok || co.PurchaseOrderID != d.PurchaseOrderID {
			vs.add(ReasonForeignReference, "change_order_ids", "el change order %s no pertenece a la orden de compra seleccionada", id)
		}
	}
}

func validateUniqueness(d InvoiceDraft, ic InvoiceContext, vs *violations) {
	number := strings.TrimSpace(d.InvoiceNumber)
	if number != "" {
		for _, inv := range ic.SupplierInvoices {
			if inv.ID == d.ID || inv.SupplierID != d.SupplierID {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(inv.InvoiceNumber), number) {
				vs.add(ReasonDuplicateInvoiceNumber, "invoice_number", "la factura %s ya existe para este proveedor", number)
				break
			}
		}
	}

	if d.PaymentType != entity.PaymentTypeDownPayment {
		return
	}
	switch d.PartyKind {
	case entity.PartySupplier:
		// Un solo anticipo de proveedor por obra, sin importar el proveedor.
		for _, inv := range ic.ProjectInvoices {
			if inv.ID == d.ID || inv.ProjectID != d.ProjectID {
				continue
			}
			if inv.PartyKind == entity.PartySupplier && inv.PaymentType == entity.PaymentTypeDownPayment {
				vs.add(ReasonDownPaymentExists, "payment_type", "ya existe un pago inicial para esta obra (factura %s)", inv.InvoiceNumber)
				return
			}
		}
	case entity.PartySubcontractor:
		validateAdvanceUniqueness(d, ic, vs)
	}
}

// validateAdvanceUniqueness: un anticipo por la base de la orden y uno por cada change order.
func validateAdvanceUniqueness(d InvoiceDraft, ic InvoiceContext, vs *violations) {
	if d.PurchaseOrderID == "" {
		return
	}
	if len(d.ChangeOrderIDs) > 1 {
		vs.add(ReasonDuplicateSelection, "change_order_ids", "un anticipo puede referenciar como máximo un change order")
		return
	}
	for _, inv := range ic.ProjectInvoices {
		if inv.ID == d.ID || inv.PaymentType != entity.PaymentTypeDownPayment ||
			inv.PartyKind != entity.PartySubcontractor || inv.PurchaseOrderID != d.PurchaseOrderID {
			continue
		}
		if len(d.ChangeOrderIDs) == 0 {
			if len(inv.ChangeOrderIDs) == 0 {
				vs.add(ReasonAdvanceExists, "purchase_order_id", "ya existe un anticipo para esta orden de compra (factura %s)", inv.InvoiceNumber)
				return
			}
			continue
		}
		if inv.HasChangeOrder(d.ChangeOrderIDs[0]) {
			vs.add(ReasonAdvanceExists, "change_order_ids", "ya existe un anticipo para el change order %s (factura %s)", d.ChangeOrderIDs[0], inv.InvoiceNumber)
			return
		}
	}
}
