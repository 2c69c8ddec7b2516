package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
	ledgercore "github.com/jhoicas/Obras-api/internal/domain/ledger"
)

const dateLayout = "2006-01-02"

// Date fecha de calendario serializada como "YYYY-MM-DD".
type Date struct{ time.Time }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("fecha %q: %w", s, err)
	}
	d.Time = t
	return nil
}

func datePtr(d *Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func fromTimePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{*t}
}

// Snapshot contenido completo de un libro serializado en JSON (entrada de ledgerctl).
type Snapshot struct {
	DefaultVATPercent *decimal.Decimal      `json:"default_vat_percent,omitempty"`
	Projects          []snapshotProject     `json:"projects"`
	Suppliers         []snapshotSupplier    `json:"suppliers"`
	PurchaseOrders    []snapshotPO          `json:"purchase_orders"`
	GRNs              []snapshotGRN         `json:"grns"`
	ChangeOrders      []snapshotChangeOrder `json:"change_orders"`
	Invoices          []snapshotInvoice     `json:"invoices"`
	Payments          []snapshotPayment     `json:"payments"`
}

type snapshotProject struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type snapshotSupplier struct {
	ID   string           `json:"id"`
	Name string           `json:"name"`
	Kind entity.PartyKind `json:"kind"`
	TRN  string           `json:"trn,omitempty"`
}

type snapshotPO struct {
	ID         string           `json:"id"`
	ProjectID  string           `json:"project_id"`
	SupplierID string           `json:"supplier_id"`
	LPONumber  string           `json:"lpo_number"`
	LPODate    Date             `json:"lpo_date"`
	LPOValue   decimal.Decimal  `json:"lpo_value"`
	VATPercent *decimal.Decimal `json:"vat_percent,omitempty"`
}

type snapshotGRN struct {
	ID              string          `json:"id"`
	PurchaseOrderID string          `json:"purchase_order_id"`
	GRNRefNo        string          `json:"grn_ref_no"`
	GRNDate         Date            `json:"grn_date"`
	DeliveredAmount decimal.Decimal `json:"delivered_amount"`
}

type snapshotChangeOrder struct {
	ID              string          `json:"id"`
	PurchaseOrderID string          `json:"purchase_order_id"`
	CONumber        string          `json:"co_number"`
	CODate          Date            `json:"co_date"`
	Amount          decimal.Decimal `json:"amount"`
}

type snapshotInvoice struct {
	ID                       string             `json:"id"`
	ProjectID                string             `json:"project_id"`
	SupplierID               string             `json:"supplier_id"`
	PartyKind                entity.PartyKind   `json:"party_kind"`
	InvoiceNumber            string             `json:"invoice_number"`
	InvoiceDate              Date               `json:"invoice_date"`
	PaymentType              entity.PaymentType `json:"payment_type"`
	PurchaseOrderID          string             `json:"purchase_order_id,omitempty"`
	GRNIDs                   []string           `json:"grn_ids,omitempty"`
	ChangeOrderIDs           []string           `json:"change_order_ids,omitempty"`
	InvoiceAmount            decimal.Decimal    `json:"invoice_amount"`
	DownPaymentRecovery      decimal.Decimal    `json:"down_payment_recovery"`
	AdvanceRecovery          decimal.Decimal    `json:"advance_recovery"`
	Retention                decimal.Decimal    `json:"retention"`
	ContraChargesAmount      decimal.Decimal    `json:"contra_charges_amount"`
	ContraChargesDescription string             `json:"contra_charges_description,omitempty"`
	NetAmount                decimal.Decimal    `json:"net_amount"`
	VATAmount                decimal.Decimal    `json:"vat_amount"`
	TotalAmount              decimal.Decimal    `json:"total_amount"`
	DueDate                  *Date              `json:"due_date,omitempty"`
	Status                   string             `json:"status,omitempty"`
}

type snapshotPayment struct {
	ID             string                `json:"id"`
	ProjectID      string                `json:"project_id"`
	SupplierID     string                `json:"supplier_id"`
	PaymentMethod  entity.PaymentMethod  `json:"payment_method"`
	InstrumentType entity.InstrumentType `json:"instrument_type,omitempty"`
	PaymentDate    Date                  `json:"payment_date"`
	DueDate        *Date                 `json:"due_date,omitempty"`
	Liquidated     bool                  `json:"liquidated,omitempty"`
	Lines          []snapshotPaymentLine `json:"lines"`
}

type snapshotPaymentLine struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoice_id"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
}

// LoadFile abre y carga un snapshot desde disco.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir snapshot: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodifica un snapshot y construye el store. Los totales de los pagos salen de sus
// líneas y el estado de cada factura se recalcula; el estado del archivo se ignora.
func Load(r io.Reader) (*Store, error) {
	var snap Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("decodificar snapshot: %w", err)
	}

	t := newTables()
	t.vat = snap.DefaultVATPercent
	for _, p := range snap.Projects {
		t.projects[p.ID] = entity.Project{ID: p.ID, Code: p.Code, Name: p.Name}
	}
	for _, sp := range snap.Suppliers {
		t.suppliers[sp.ID] = entity.Supplier{ID: sp.ID, Name: sp.Name, Kind: sp.Kind, TRN: sp.TRN}
	}
	for _, po := range snap.PurchaseOrders {
		t.pos[po.ID] = entity.PurchaseOrder{
			ID: po.ID, ProjectID: po.ProjectID, SupplierID: po.SupplierID,
			LPONumber: po.LPONumber, LPODate: po.LPODate.Time, LPOValue: po.LPOValue, VATPercent: po.VATPercent,
		}
	}
	for _, g := range snap.GRNs {
		if _, ok := t.pos[g.PurchaseOrderID]; !ok {
			return nil, fmt.Errorf("GRN %s: orden %s inexistente", g.ID, g.PurchaseOrderID)
		}
		t.grns[g.ID] = entity.GRN{
			ID: g.ID, PurchaseOrderID: g.PurchaseOrderID, GRNRefNo: g.GRNRefNo,
			GRNDate: g.GRNDate.Time, DeliveredAmount: g.DeliveredAmount,
		}
	}
	for _, co := range snap.ChangeOrders {
		t.cos[co.ID] = entity.ChangeOrder{
			ID: co.ID, PurchaseOrderID: co.PurchaseOrderID, CONumber: co.CONumber,
			CODate: co.CODate.Time, Amount: co.Amount,
		}
	}

	invoices := make([]entity.Invoice, 0, len(snap.Invoices))
	for _, in := range snap.Invoices {
		inv := entity.Invoice{
			ID: in.ID, ProjectID: in.ProjectID, SupplierID: in.SupplierID, PartyKind: in.PartyKind,
			InvoiceNumber: in.InvoiceNumber, InvoiceDate: in.InvoiceDate.Time, PaymentType: in.PaymentType,
			PurchaseOrderID: in.PurchaseOrderID, GRNIDs: in.GRNIDs, ChangeOrderIDs: in.ChangeOrderIDs,
			InvoiceAmount: in.InvoiceAmount, DownPaymentRecovery: in.DownPaymentRecovery,
			AdvanceRecovery: in.AdvanceRecovery, Retention: in.Retention,
			ContraChargesAmount: in.ContraChargesAmount, ContraChargesDescription: in.ContraChargesDescription,
			NetAmount: in.NetAmount, VATAmount: in.VATAmount, TotalAmount: in.TotalAmount,
			DueDate: datePtr(in.DueDate),
		}
		if inv.PartyKind == "" {
			inv.PartyKind = t.suppliers[inv.SupplierID].Kind
		}
		invoices = append(invoices, inv)
	}

	var lines []entity.PaymentInvoice
	for _, sp := range snap.Payments {
		p := entity.Payment{
			ID: sp.ID, ProjectID: sp.ProjectID, SupplierID: sp.SupplierID,
			PaymentMethod: sp.PaymentMethod, InstrumentType: sp.InstrumentType,
			PaymentDate: sp.PaymentDate.Time, DueDate: datePtr(sp.DueDate), Liquidated: sp.Liquidated,
		}
		for i, l := range sp.Lines {
			id := l.ID
			if id == "" {
				id = fmt.Sprintf("%s-%d", sp.ID, i+1)
			}
			p.Lines = append(p.Lines, entity.PaymentInvoice{
				ID: id, InvoiceID: l.InvoiceID, PaymentAmount: l.PaymentAmount, VATAmount: l.VATAmount,
			})
			p.TotalPaymentAmount = p.TotalPaymentAmount.Add(l.PaymentAmount)
			p.TotalVATAmount = p.TotalVATAmount.Add(l.VATAmount)
		}
		p = copyPayment(p)
		t.payments[p.ID] = p
		lines = append(lines, p.Lines...)
	}

	statuses, err := ledgercore.RecomputeStatuses(invoices, lines)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	for _, inv := range invoices {
		inv.Status = statuses[inv.ID]
		t.invoices[inv.ID] = copyInvoice(inv)
	}

	return &Store{t: t}, nil
}

// Save escribe el contenido del store como snapshot JSON indentado.
func (s *Store) Save(w io.Writer) error {
	s.mu.RLock()
	snap := s.snapshot()
	s.mu.RUnlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("codificar snapshot: %w", err)
	}
	return nil
}

func (s *Store) snapshot() Snapshot {
	t := &s.t
	snap := Snapshot{DefaultVATPercent: t.vat}

	for _, p := range sortedValues(t.projects, func(p entity.Project) string { return p.ID }) {
		snap.Projects = append(snap.Projects, snapshotProject{ID: p.ID, Code: p.Code, Name: p.Name})
	}
	for _, sp := range sortedValues(t.suppliers, func(sp entity.Supplier) string { return sp.ID }) {
		snap.Suppliers = append(snap.Suppliers, snapshotSupplier{ID: sp.ID, Name: sp.Name, Kind: sp.Kind, TRN: sp.TRN})
	}
	for _, po := range sortedValues(t.pos, func(po entity.PurchaseOrder) string { return po.ID }) {
		snap.PurchaseOrders = append(snap.PurchaseOrders, snapshotPO{
			ID: po.ID, ProjectID: po.ProjectID, SupplierID: po.SupplierID, LPONumber: po.LPONumber,
			LPODate: Date{po.LPODate}, LPOValue: po.LPOValue, VATPercent: po.VATPercent,
		})
	}
	for _, g := range sortedValues(t.grns, func(g entity.GRN) string { return g.ID }) {
		snap.GRNs = append(snap.GRNs, snapshotGRN{
			ID: g.ID, PurchaseOrderID: g.PurchaseOrderID, GRNRefNo: g.GRNRefNo,
			GRNDate: Date{g.GRNDate}, DeliveredAmount: g.DeliveredAmount,
		})
	}
	for _, co := range sortedValues(t.cos, func(co entity.ChangeOrder) string { return co.ID }) {
		snap.ChangeOrders = append(snap.ChangeOrders, snapshotChangeOrder{
			ID: co.ID, PurchaseOrderID: co.PurchaseOrderID, CONumber: co.CONumber,
			CODate: Date{co.CODate}, Amount: co.Amount,
		})
	}
	for _, inv := range sortedValues(t.invoices, func(inv entity.Invoice) string { return inv.ID }) {
		snap.Invoices = append(snap.Invoices, snapshotInvoice{
			ID: inv.ID, ProjectID: inv.ProjectID, SupplierID: inv.SupplierID, PartyKind: inv.PartyKind,
			InvoiceNumber: inv.InvoiceNumber, InvoiceDate: Date{inv.InvoiceDate}, PaymentType: inv.PaymentType,
			PurchaseOrderID: inv.PurchaseOrderID, GRNIDs: inv.GRNIDs, ChangeOrderIDs: inv.ChangeOrderIDs,
			InvoiceAmount: inv.InvoiceAmount, DownPaymentRecovery: inv.DownPaymentRecovery,
			AdvanceRecovery: inv.AdvanceRecovery, Retention: inv.Retention,
			ContraChargesAmount: inv.ContraChargesAmount, ContraChargesDescription: inv.ContraChargesDescription,
			NetAmount: inv.NetAmount, VATAmount: inv.VATAmount, TotalAmount: inv.TotalAmount,
			DueDate: fromTimePtr(inv.DueDate), Status: string(inv.Status),
		})
	}
	for _, p := range sortedValues(t.payments, func(p entity.Payment) string { return p.ID }) {
		sp := snapshotPayment{
			ID: p.ID, ProjectID: p.ProjectID, SupplierID: p.SupplierID, PaymentMethod: p.PaymentMethod,
			InstrumentType: p.InstrumentType, PaymentDate: Date{p.PaymentDate},
			DueDate: fromTimePtr(p.DueDate), Liquidated: p.Liquidated,
		}
		for _, l := range p.Lines {
			sp.Lines = append(sp.Lines, snapshotPaymentLine{
				ID: l.ID, InvoiceID: l.InvoiceID, PaymentAmount: l.PaymentAmount, VATAmount: l.VATAmount,
			})
		}
		snap.Payments = append(snap.Payments, sp)
	}
	return snap
}

func sortedValues[T any](m map[string]T, key func(T) string) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sortByKey(out, key)
	return out
}
