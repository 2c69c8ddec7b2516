package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Obras-api/internal/domain"
	"github.com/jhoicas/Obras-api/internal/domain/entity"
	"github.com/jhoicas/Obras-api/internal/domain/repository"
)

var (
	_ repository.ProjectRepository       = (*ProjectRepo)(nil)
	_ repository.SupplierRepository      = (*SupplierRepo)(nil)
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
	_ repository.GRNRepository           = (*GRNRepo)(nil)
	_ repository.ChangeOrderRepository   = (*ChangeOrderRepo)(nil)
	_ repository.InvoiceRepository       = (*InvoiceRepo)(nil)
	_ repository.PaymentRepository       = (*PaymentRepo)(nil)
	_ repository.SettingsRepository      = (*SettingsRepo)(nil)
)

// ── obras ─────────────────────────────────────────────────────────────────────

type ProjectRepo struct{ s *Store }

func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.projects[p.ID]; ok {
			return fmt.Errorf("obra %s: %w", p.ID, domain.ErrDuplicate)
		}
		t.projects[p.ID] = *p
		return nil
	})
}

func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	var out *entity.Project
	err := r.s.read(ctx, func(t *tables) {
		if p, ok := t.projects[id]; ok {
			out = &p
		}
	})
	return out, err
}

func (r *ProjectRepo) List(ctx context.Context) ([]*entity.Project, error) {
	var out []*entity.Project
	err := r.s.read(ctx, func(t *tables) {
		for _, p := range t.projects {
			p := p
			out = append(out, &p)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, err
}

// ── proveedores ───────────────────────────────────────────────────────────────

type SupplierRepo struct{ s *Store }

func (r *SupplierRepo) Create(ctx context.Context, sp *entity.Supplier) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.suppliers[sp.ID]; ok {
			return fmt.Errorf("proveedor %s: %w", sp.ID, domain.ErrDuplicate)
		}
		t.suppliers[sp.ID] = *sp
		return nil
	})
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.s.read(ctx, func(t *tables) {
		if sp, ok := t.suppliers[id]; ok {
			out = &sp
		}
	})
	return out, err
}

func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.s.read(ctx, func(t *tables) {
		for _, sp := range t.suppliers {
			sp := sp
			out = append(out, &sp)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// ── órdenes, GRNs y change orders ─────────────────────────────────────────────

type PurchaseOrderRepo struct{ s *Store }

func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.pos[po.ID]; ok {
			return fmt.Errorf("orden %s: %w", po.ID, domain.ErrDuplicate)
		}
		t.pos[po.ID] = *po
		return nil
	})
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.s.read(ctx, func(t *tables) {
		if po, ok := t.pos[id]; ok {
			out = &po
		}
	})
	return out, err
}

func (r *PurchaseOrderRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.PurchaseOrder, error) {
	return r.list(ctx, func(po entity.PurchaseOrder) bool { return po.ProjectID == projectID })
}

func (r *PurchaseOrderRepo) ListByProjectSupplier(ctx context.Context, projectID, supplierID string) ([]*entity.PurchaseOrder, error) {
	return r.list(ctx, func(po entity.PurchaseOrder) bool {
		return po.ProjectID == projectID && po.SupplierID == supplierID
	})
}

func (r *PurchaseOrderRepo) list(ctx context.Context, keep func(entity.PurchaseOrder) bool) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	err := r.s.read(ctx, func(t *tables) {
		for _, po := range t.pos {
			if keep(po) {
				po := po
				out = append(out, &po)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].LPONumber < out[j].LPONumber })
	return out, err
}

type GRNRepo struct{ s *Store }

func (r *GRNRepo) Create(ctx context.Context, g *entity.GRN) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.grns[g.ID]; ok {
			return fmt.Errorf("GRN %s: %w", g.ID, domain.ErrDuplicate)
		}
		if _, ok := t.pos[g.PurchaseOrderID]; !ok {
			return fmt.Errorf("GRN %s: orden %s: %w", g.ID, g.PurchaseOrderID, domain.ErrNotFound)
		}
		t.grns[g.ID] = *g
		return nil
	})
}

func (r *GRNRepo) ListByPurchaseOrders(ctx context.Context, poIDs []string) ([]*entity.GRN, error) {
	var out []*entity.GRN
	err := r.s.read(ctx, func(t *tables) {
		for _, g := range t.grns {
			if containsString(poIDs, g.PurchaseOrderID) {
				g := g
				out = append(out, &g)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].GRNDate.Equal(out[j].GRNDate) {
			return out[i].GRNDate.Before(out[j].GRNDate)
		}
		return out[i].GRNRefNo < out[j].GRNRefNo
	})
	return out, err
}

type ChangeOrderRepo struct{ s *Store }

func (r *ChangeOrderRepo) Create(ctx context.Context, co *entity.ChangeOrder) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.cos[co.ID]; ok {
			return fmt.Errorf("change order %s: %w", co.ID, domain.ErrDuplicate)
		}
		t.cos[co.ID] = *co
		return nil
	})
}

func (r *ChangeOrderRepo) ListByPurchaseOrder(ctx context.Context, poID string) ([]*entity.ChangeOrder, error) {
	var out []*entity.ChangeOrder
	err := r.s.read(ctx, func(t *tables) {
		for _, co := range t.cos {
			if co.PurchaseOrderID == poID {
				co := co
				out = append(out, &co)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CONumber < out[j].CONumber })
	return out, err
}

// ── facturas ──────────────────────────────────────────────────────────────────

type InvoiceRepo struct{ s *Store }

func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.invoices[inv.ID]; ok {
			return fmt.Errorf("factura %s: %w", inv.ID, domain.ErrDuplicate)
		}
		t.invoices[inv.ID] = copyInvoice(*inv)
		return nil
	})
}

func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.invoices[inv.ID]; !ok {
			return domain.ErrNotFound
		}
		t.invoices[inv.ID] = copyInvoice(*inv)
		return nil
	})
}

func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.invoices[id]; !ok {
			return domain.ErrNotFound
		}
		delete(t.invoices, id)
		return nil
	})
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.s.read(ctx, func(t *tables) {
		if inv, ok := t.invoices[id]; ok {
			c := copyInvoice(inv)
			out = &c
		}
	})
	return out, err
}

func (r *InvoiceRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Invoice, error) {
	return r.list(ctx, func(inv entity.Invoice) bool { return containsString(ids, inv.ID) })
}

func (r *InvoiceRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Invoice, error) {
	return r.list(ctx, func(inv entity.Invoice) bool { return inv.ProjectID == projectID })
}

func (r *InvoiceRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Invoice, error) {
	return r.list(ctx, func(inv entity.Invoice) bool { return inv.SupplierID == supplierID })
}

func (r *InvoiceRepo) ListByProjectSupplier(ctx context.Context, projectID, supplierID string) ([]*entity.Invoice, error) {
	return r.list(ctx, func(inv entity.Invoice) bool {
		return inv.ProjectID == projectID && inv.SupplierID == supplierID
	})
}

func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus) error {
	return r.s.write(ctx, func(t *tables) error {
		inv, ok := t.invoices[id]
		if !ok {
			return domain.ErrNotFound
		}
		inv.Status = status
		t.invoices[id] = inv
		return nil
	})
}

func (r *InvoiceRepo) list(ctx context.Context, keep func(entity.Invoice) bool) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	err := r.s.read(ctx, func(t *tables) {
		for _, inv := range t.invoices {
			if keep(inv) {
				c := copyInvoice(inv)
				out = append(out, &c)
			}
		}
	})
	sortInvoices(out)
	return out, err
}

// ── pagos ─────────────────────────────────────────────────────────────────────

type PaymentRepo struct{ s *Store }

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.payments[p.ID]; ok {
			return fmt.Errorf("pago %s: %w", p.ID, domain.ErrDuplicate)
		}
		if err := checkLines(t, p); err != nil {
			return err
		}
		t.payments[p.ID] = copyPayment(*p)
		return nil
	})
}

func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.payments[p.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := checkLines(t, p); err != nil {
			return err
		}
		t.payments[p.ID] = copyPayment(*p)
		return nil
	})
}

// checkLines equivalente de la llave foránea payment_invoices.invoice_id.
func checkLines(t *tables, p *entity.Payment) error {
	for _, l := range p.Lines {
		if _, ok := t.invoices[l.InvoiceID]; !ok {
			return fmt.Errorf("pago %s: factura %s: %w", p.ID, l.InvoiceID, domain.ErrNotFound)
		}
	}
	return nil
}

func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.payments[id]; !ok {
			return domain.ErrNotFound
		}
		delete(t.payments, id)
		return nil
	})
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	var out *entity.Payment
	err := r.s.read(ctx, func(t *tables) {
		if p, ok := t.payments[id]; ok {
			c := copyPayment(p)
			out = &c
		}
	})
	return out, err
}

func (r *PaymentRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Payment, error) {
	return r.list(ctx, func(p entity.Payment) bool { return p.ProjectID == projectID })
}

func (r *PaymentRepo) ListByProjectSupplier(ctx context.Context, projectID, supplierID string) ([]*entity.Payment, error) {
	return r.list(ctx, func(p entity.Payment) bool {
		return p.ProjectID == projectID && p.SupplierID == supplierID
	})
}

func (r *PaymentRepo) ListLinesByInvoiceIDs(ctx context.Context, invoiceIDs []string) ([]entity.PaymentInvoice, error) {
	payments, err := r.list(ctx, func(entity.Payment) bool { return true })
	if err != nil {
		return nil, err
	}
	var out []entity.PaymentInvoice
	for _, p := range payments {
		for _, l := range p.Lines {
			if containsString(invoiceIDs, l.InvoiceID) {
				out = append(out, l)
			}
		}
	}
	return out, nil
}

func (r *PaymentRepo) SetLiquidated(ctx context.Context, id string, liquidated bool) error {
	return r.s.write(ctx, func(t *tables) error {
		p, ok := t.payments[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Liquidated = liquidated
		t.payments[id] = p
		return nil
	})
}

func (r *PaymentRepo) list(ctx context.Context, keep func(entity.Payment) bool) ([]*entity.Payment, error) {
	var out []*entity.Payment
	err := r.s.read(ctx, func(t *tables) {
		for _, p := range t.payments {
			if keep(p) {
				c := copyPayment(p)
				out = append(out, &c)
			}
		}
	})
	sortPayments(out)
	return out, err
}

// ── configuración ─────────────────────────────────────────────────────────────

type SettingsRepo struct{ s *Store }

func (r *SettingsRepo) GetDefaultVATPercent(ctx context.Context) (*decimal.Decimal, error) {
	var out *decimal.Decimal
	err := r.s.read(ctx, func(t *tables) {
		if t.vat != nil {
			v := *t.vat
			out = &v
		}
	})
	return out, err
}

// SetDefaultVATPercent fija el IVA del sitio (nil lo borra).
func (r *SettingsRepo) SetDefaultVATPercent(ctx context.Context, v *decimal.Decimal) error {
	return r.s.write(ctx, func(t *tables) error {
		t.vat = v
		return nil
	})
}
