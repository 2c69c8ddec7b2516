package dto

import "github.com/shopspring/decimal"

// InvoiceRequest body para POST /api/invoices, PUT /api/invoices/:id y POST /api/invoices/preview.
// Fechas en formato YYYY-MM-DD. payment_type acepta "Advance" como alias de "DownPayment".
type InvoiceRequest struct {
	ProjectID                string           `json:"project_id"`
	SupplierID               string           `json:"supplier_id"`
	PartyKind                string           `json:"party_kind"` // supplier | subcontractor
	InvoiceNumber            string           `json:"invoice_number"`
	InvoiceDate              string           `json:"invoice_date"`
	DueDate                  string           `json:"due_date,omitempty"`
	PaymentType              string           `json:"payment_type"`
	PurchaseOrderID          string           `json:"purchase_order_id,omitempty"`
	GRNIDs                   []string         `json:"grn_ids,omitempty"`
	ChangeOrderIDs           []string         `json:"change_order_ids,omitempty"`
	AdvanceAmount            decimal.Decimal  `json:"advance_amount"`
	BaseAmount               decimal.Decimal  `json:"base_amount"`
	DownPaymentRecovery      decimal.Decimal  `json:"down_payment_recovery"`
	AdvanceRecovery          *decimal.Decimal `json:"advance_recovery,omitempty"` // omitido = 10% de la base
	Retention                *decimal.Decimal `json:"retention,omitempty"`        // omitido = 10% de la base
	ContraChargesAmount      decimal.Decimal  `json:"contra_charges_amount"`
	ContraChargesDescription string           `json:"contra_charges_description,omitempty"`
	VATAmount                *decimal.Decimal `json:"vat_amount,omitempty"` // IVA digitado; omitido = calculado
}

// DeductionsDTO deducciones previas al IVA.
type DeductionsDTO struct {
	DownPaymentRecovery decimal.Decimal `json:"down_payment_recovery"`
	AdvanceRecovery     decimal.Decimal `json:"advance_recovery"`
	Retention           decimal.Decimal `json:"retention"`
	ContraCharges       decimal.Decimal `json:"contra_charges"`
	Total               decimal.Decimal `json:"total"`
}

// InvoicePreviewResponse montos calculados sin persistir.
type InvoicePreviewResponse struct {
	InvoiceAmount decimal.Decimal `json:"invoice_amount"`
	Deductions    DeductionsDTO   `json:"deductions"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	VATPercent    decimal.Decimal `json:"vat_percent"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// InvoiceResponse factura con estado, saldo y días al vencimiento.
// due_days es null cuando la factura no tiene fecha de vencimiento.
type InvoiceResponse struct {
	ID                       string          `json:"id"`
	ProjectID                string          `json:"project_id"`
	SupplierID               string          `json:"supplier_id"`
	PartyKind                string          `json:"party_kind"`
	InvoiceNumber            string          `json:"invoice_number"`
	InvoiceDate              string          `json:"invoice_date"`
	DueDate                  string          `json:"due_date,omitempty"`
	PaymentType              string          `json:"payment_type"`
	PurchaseOrderID          string          `json:"purchase_order_id,omitempty"`
	GRNIDs                   []string        `json:"grn_ids,omitempty"`
	ChangeOrderIDs           []string        `json:"change_order_ids,omitempty"`
	InvoiceAmount            decimal.Decimal `json:"invoice_amount"`
	Deductions               DeductionsDTO   `json:"deductions"`
	ContraChargesDescription string          `json:"contra_charges_description,omitempty"`
	NetAmount                decimal.Decimal `json:"net_amount"`
	VATAmount                decimal.Decimal `json:"vat_amount"`
	TotalAmount              decimal.Decimal `json:"total_amount"`
	TotalPaid                decimal.Decimal `json:"total_paid"`
	Balance                  decimal.Decimal `json:"balance"`
	Status                   string          `json:"status"`
	DueDays                  *int            `json:"due_days"`
}

// InvoiceListResponse listado paginado de facturas de una obra.
type InvoiceListResponse struct {
	Items  []InvoiceResponse `json:"items"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Total  int               `json:"total"`
}

// PaymentLineRequest monto aplicado a una factura.
type PaymentLineRequest struct {
	InvoiceID     string          `json:"invoice_id"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
}

// PaymentRequest body para POST /api/payments y PUT /api/payments/:id.
type PaymentRequest struct {
	ProjectID      string               `json:"project_id"`
	SupplierID     string               `json:"supplier_id"`
	PaymentMethod  string               `json:"payment_method"`            // CurrentDated | PostDated
	InstrumentType string               `json:"instrument_type,omitempty"` // PDC | LC | TrustReceipt
	PaymentDate    string               `json:"payment_date"`
	DueDate        string               `json:"due_date,omitempty"`
	Liquidated     bool                 `json:"liquidated"`
	Lines          []PaymentLineRequest `json:"lines"`
}

// PaymentLineResponse línea de pago.
type PaymentLineResponse struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoice_id"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
}

// PaymentResponse pago con sus líneas y las facturas cuyo estado se recalculó.
type PaymentResponse struct {
	ID                 string                `json:"id"`
	ProjectID          string                `json:"project_id"`
	SupplierID         string                `json:"supplier_id"`
	PaymentMethod      string                `json:"payment_method"`
	InstrumentType     string                `json:"instrument_type,omitempty"`
	PaymentDate        string                `json:"payment_date"`
	DueDate            string                `json:"due_date,omitempty"`
	Liquidated         bool                  `json:"liquidated"`
	TotalPaymentAmount decimal.Decimal       `json:"total_payment_amount"`
	TotalVATAmount     decimal.Decimal       `json:"total_vat_amount"`
	Lines              []PaymentLineResponse `json:"lines"`
	InvoiceStatuses    map[string]string     `json:"invoice_statuses,omitempty"`
}

// SetLiquidatedRequest body para PATCH /api/payments/:id/liquidated.
type SetLiquidatedRequest struct {
	Liquidated bool `json:"liquidated"`
}

// PaymentSuggestionResponse línea propuesta por el saldo pendiente de una factura.
type PaymentSuggestionResponse struct {
	InvoiceID     string          `json:"invoice_id"`
	Remaining     decimal.Decimal `json:"remaining"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
}

// POAggregateResponse cifras de una orden de compra frente a sus GRNs.
type POAggregateResponse struct {
	PurchaseOrderID   string          `json:"purchase_order_id"`
	LPONumber         string          `json:"lpo_number"`
	VATPercent        decimal.Decimal `json:"vat_percent"`
	LPOValue          decimal.Decimal `json:"lpo_value"`
	LPOValueWithVAT   decimal.Decimal `json:"lpo_value_with_vat"`
	DeliveredBase     decimal.Decimal `json:"delivered_base"`
	DeliveredWithVAT  decimal.Decimal `json:"delivered_with_vat"`
	LPOBalanceWithVAT decimal.Decimal `json:"lpo_balance_with_vat"`
}

// GRNResponse nota de recepción seleccionable.
type GRNResponse struct {
	ID              string          `json:"id"`
	PurchaseOrderID string          `json:"purchase_order_id"`
	GRNRefNo        string          `json:"grn_ref_no"`
	GRNDate         string          `json:"grn_date"`
	DeliveredAmount decimal.Decimal `json:"delivered_amount"`
}

// SummaryResponse tarjeta de resumen de proveedor u obra.
type SummaryResponse struct {
	TotalPOAmounts    decimal.Decimal `json:"total_po_amounts"`
	TotalPOBase       decimal.Decimal `json:"total_po_base"`
	TotalDelivered    decimal.Decimal `json:"total_delivered"`
	LPOBalance        decimal.Decimal `json:"lpo_balance"`
	TotalInvoiced     decimal.Decimal `json:"total_invoiced"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	CommittedPayments decimal.Decimal `json:"committed_payments"`
	BalanceToBePaid   decimal.Decimal `json:"balance_to_be_paid"`
	DueAmount         decimal.Decimal `json:"due_amount"`
}

// SupplierSummaryResponse resumen de un proveedor en una obra.
type SupplierSummaryResponse struct {
	ProjectID    string          `json:"project_id"`
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name,omitempty"`
	PartyKind    string          `json:"party_kind,omitempty"`
	Summary      SummaryResponse `json:"summary"`
}

// ProjectSummaryResponse resumen de la obra y de cada proveedor con movimiento en ella.
type ProjectSummaryResponse struct {
	ProjectID   string                    `json:"project_id"`
	ProjectName string                    `json:"project_name,omitempty"`
	Summary     SummaryResponse           `json:"summary"`
	Suppliers   []SupplierSummaryResponse `json:"suppliers"`
}

// RecomputeRequest body para POST /api/invoices/recompute.
type RecomputeRequest struct {
	InvoiceIDs []string `json:"invoice_ids"`
}

// RecomputeResponse estados persistidos por factura.
type RecomputeResponse struct {
	Statuses map[string]string `json:"statuses"`
}
