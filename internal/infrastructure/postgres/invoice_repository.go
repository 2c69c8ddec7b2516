package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Obras-api/internal/domain"
	"github.com/jhoicas/Obras-api/internal/domain/entity"
	"github.com/jhoicas/Obras-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Las tablas puente invoice_grns e invoice_change_orders se escriben junto con la cabecera;
// para que sea atómico debe usarse con la tx de RunLedger.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, project_id, supplier_id, party_kind, invoice_number, invoice_date, payment_type, purchase_order_id,
	invoice_amount, down_payment_recovery, advance_recovery, retention, contra_charges_amount,
	contra_charges_description, net_amount, vat_amount, total_amount, due_date, status, created_at, updated_at`

// Create persiste la cabecera y sus GRNs / change orders.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO supplier_invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.ProjectID, inv.SupplierID, string(inv.PartyKind), inv.InvoiceNumber, dateOnly(inv.InvoiceDate),
		string(inv.PaymentType), nullIfEmpty(inv.PurchaseOrderID),
		inv.InvoiceAmount, inv.DownPaymentRecovery, inv.AdvanceRecovery, inv.Retention, inv.ContraChargesAmount,
		nullIfEmpty(inv.ContraChargesDescription), inv.NetAmount, inv.VATAmount, inv.TotalAmount,
		optionalDate(inv.DueDate), string(inv.Status), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("factura %s: %w", inv.InvoiceNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return r.insertRefs(ctx, inv)
}

// Update reemplaza la cabecera y las referencias a GRNs / change orders.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE supplier_invoices
		SET project_id = $2, supplier_id = $3, party_kind = $4, invoice_number = $5, invoice_date = $6,
		    payment_type = $7, purchase_order_id = $8, invoice_amount = $9, down_payment_recovery = $10,
		    advance_recovery = $11, retention = $12, contra_charges_amount = $13,
		    contra_charges_description = $14, net_amount = $15, vat_amount = $16, total_amount = $17,
		    due_date = $18, status = $19, updated_at = $20
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.ProjectID, inv.SupplierID, string(inv.PartyKind), inv.InvoiceNumber, dateOnly(inv.InvoiceDate),
		string(inv.PaymentType), nullIfEmpty(inv.PurchaseOrderID), inv.InvoiceAmount, inv.DownPaymentRecovery,
		inv.AdvanceRecovery, inv.Retention, inv.ContraChargesAmount,
		nullIfEmpty(inv.ContraChargesDescription), inv.NetAmount, inv.VATAmount, inv.TotalAmount,
		optionalDate(inv.DueDate), string(inv.Status), inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("factura %s: %w", inv.InvoiceNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_grns WHERE invoice_id = $1`, inv.ID); err != nil {
		return fmt.Errorf("delete invoice grns: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_change_orders WHERE invoice_id = $1`, inv.ID); err != nil {
		return fmt.Errorf("delete invoice change orders: %w", err)
	}
	return r.insertRefs(ctx, inv)
}

func (r *InvoiceRepo) insertRefs(ctx context.Context, inv *entity.Invoice) error {
	for i, grnID := range inv.GRNIDs {
		_, err := r.q.Exec(ctx, `INSERT INTO invoice_grns (invoice_id, grn_id, position) VALUES ($1, $2, $3)`, inv.ID, grnID, i)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("GRN %s ya facturado: %w", grnID, domain.ErrConflict)
			}
			return fmt.Errorf("insert invoice grn: %w", err)
		}
	}
	for i, coID := range inv.ChangeOrderIDs {
		_, err := r.q.Exec(ctx, `INSERT INTO invoice_change_orders (invoice_id, change_order_id, position) VALUES ($1, $2, $3)`, inv.ID, coID, i)
		if err != nil {
			return fmt.Errorf("insert invoice change order: %w", err)
		}
	}
	return nil
}

// Delete elimina la factura; las tablas puente se borran en cascada.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM supplier_invoices WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("factura %s con pagos: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	list, err := r.list(ctx, `SELECT `+invoiceColumns+` FROM supplier_invoices WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *InvoiceRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Invoice, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM supplier_invoices WHERE id = ANY($1) ORDER BY invoice_date, id`, ids)
}

func (r *InvoiceRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM supplier_invoices WHERE project_id = $1 ORDER BY invoice_date, id`, projectID)
}

func (r *InvoiceRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM supplier_invoices WHERE supplier_id = $1 ORDER BY invoice_date, id`, supplierID)
}

func (r *InvoiceRepo) ListByProjectSupplier(ctx context.Context, projectID, supplierID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM supplier_invoices WHERE project_id = $1 AND supplier_id = $2 ORDER BY invoice_date, id`
	return r.list(ctx, query, projectID, supplierID)
}

func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE supplier_invoices SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	if err := r.loadRefs(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadRefs completa GRNIDs y ChangeOrderIDs de las facturas (dos consultas para todo el lote).
func (r *InvoiceRepo) loadRefs(ctx context.Context, list []*entity.Invoice) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Invoice, len(list))
	ids := make([]string, 0, len(list))
	for _, inv := range list {
		byID[inv.ID] = inv
		ids = append(ids, inv.ID)
	}

	refs := []struct {
		query  string
		assign func(inv *entity.Invoice, id string)
	}{
		{
			query:  `SELECT invoice_id, grn_id FROM invoice_grns WHERE invoice_id = ANY($1) ORDER BY invoice_id, position`,
			assign: func(inv *entity.Invoice, id string) { inv.GRNIDs = append(inv.GRNIDs, id) },
		},
		{
			query:  `SELECT invoice_id, change_order_id FROM invoice_change_orders WHERE invoice_id = ANY($1) ORDER BY invoice_id, position`,
			assign: func(inv *entity.Invoice, id string) { inv.ChangeOrderIDs = append(inv.ChangeOrderIDs, id) },
		},
	}
	for _, ref := range refs {
		rows, err := r.q.Query(ctx, ref.query, ids)
		if err != nil {
			return fmt.Errorf("load invoice refs: %w", err)
		}
		for rows.Next() {
			var invoiceID, refID string
			if err := rows.Scan(&invoiceID, &refID); err != nil {
				rows.Close()
				return fmt.Errorf("scan invoice ref: %w", err)
			}
			if inv, ok := byID[invoiceID]; ok {
				ref.assign(inv, refID)
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("load invoice refs: %w", err)
		}
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var partyKind, paymentType, status string
	var poID, contraDesc *string
	err := row.Scan(
		&inv.ID, &inv.ProjectID, &inv.SupplierID, &partyKind, &inv.InvoiceNumber, &inv.InvoiceDate, &paymentType, &poID,
		&inv.InvoiceAmount, &inv.DownPaymentRecovery, &inv.AdvanceRecovery, &inv.Retention, &inv.ContraChargesAmount,
		&contraDesc, &inv.NetAmount, &inv.VATAmount, &inv.TotalAmount, &inv.DueDate, &status, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.PartyKind = entity.PartyKind(partyKind)
	inv.PaymentType = entity.PaymentType(paymentType)
	inv.Status = entity.InvoiceStatus(status)
	inv.PurchaseOrderID = derefStr(poID)
	inv.ContraChargesDescription = derefStr(contraDesc)
	return &inv, nil
}
