package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Obras-api/internal/domain"
	"github.com/jhoicas/Obras-api/internal/domain/entity"
	"github.com/jhoicas/Obras-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `
	id, project_id, supplier_id, payment_method, instrument_type, payment_date, due_date, liquidated,
	total_payment_amount, total_vat_amount, created_at, updated_at`

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO supplier_payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ProjectID, p.SupplierID, string(p.PaymentMethod), nullIfEmpty(string(p.InstrumentType)),
		dateOnly(p.PaymentDate), optionalDate(p.DueDate), p.Liquidated,
		p.TotalPaymentAmount, p.TotalVATAmount, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("pago %s: %w", p.ID, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return r.insertLines(ctx, p)
}

// Update reemplaza la cabecera y todas las líneas.
func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	query := `
		UPDATE supplier_payments
		SET project_id = $2, supplier_id = $3, payment_method = $4, instrument_type = $5, payment_date = $6,
		    due_date = $7, liquidated = $8, total_payment_amount = $9, total_vat_amount = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.ProjectID, p.SupplierID, string(p.PaymentMethod), nullIfEmpty(string(p.InstrumentType)),
		dateOnly(p.PaymentDate), optionalDate(p.DueDate), p.Liquidated,
		p.TotalPaymentAmount, p.TotalVATAmount, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM payment_invoices WHERE payment_id = $1`, p.ID); err != nil {
		return fmt.Errorf("delete payment lines: %w", err)
	}
	return r.insertLines(ctx, p)
}

func (r *PaymentRepo) insertLines(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payment_invoices (id, payment_id, invoice_id, payment_amount, vat_amount)
		VALUES ($1, $2, $3, $4, $5)`
	for _, l := range p.Lines {
		if _, err := r.q.Exec(ctx, query, l.ID, p.ID, l.InvoiceID, l.PaymentAmount, l.VATAmount); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("pago %s: factura %s: %w", p.ID, l.InvoiceID, domain.ErrNotFound)
			}
			return fmt.Errorf("insert payment line: %w", err)
		}
	}
	return nil
}

// Delete elimina el pago; sus líneas se borran en cascada.
func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM supplier_payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	list, err := r.list(ctx, `SELECT `+paymentColumns+` FROM supplier_payments WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *PaymentRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM supplier_payments WHERE project_id = $1 ORDER BY payment_date, id`, projectID)
}

func (r *PaymentRepo) ListByProjectSupplier(ctx context.Context, projectID, supplierID string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM supplier_payments WHERE project_id = $1 AND supplier_id = $2 ORDER BY payment_date, id`
	return r.list(ctx, query, projectID, supplierID)
}

// ListLinesByInvoiceIDs líneas de las facturas con la fecha de su pago.
func (r *PaymentRepo) ListLinesByInvoiceIDs(ctx context.Context, invoiceIDs []string) ([]entity.PaymentInvoice, error) {
	if len(invoiceIDs) == 0 {
		return nil, nil
	}
	return r.lines(ctx, `
		SELECT pi.id, pi.payment_id, pi.invoice_id, pi.payment_amount, pi.vat_amount, p.payment_date
		FROM payment_invoices pi
		JOIN supplier_payments p ON p.id = pi.payment_id
		WHERE pi.invoice_id = ANY($1)
		ORDER BY p.payment_date, pi.id`, invoiceIDs)
}

func (r *PaymentRepo) SetLiquidated(ctx context.Context, id string, liquidated bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE supplier_payments SET liquidated = $2, updated_at = now() WHERE id = $1`, id, liquidated)
	if err != nil {
		return fmt.Errorf("set payment liquidated: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PaymentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	byID := make(map[string]*entity.Payment, len(list))
	ids := make([]string, 0, len(list))
	for _, p := range list {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	lines, err := r.lines(ctx, `
		SELECT pi.id, pi.payment_id, pi.invoice_id, pi.payment_amount, pi.vat_amount, p.payment_date
		FROM payment_invoices pi
		JOIN supplier_payments p ON p.id = pi.payment_id
		WHERE pi.payment_id = ANY($1)
		ORDER BY pi.payment_id, pi.id`, ids)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		if p, ok := byID[l.PaymentID]; ok {
			p.Lines = append(p.Lines, l)
		}
	}
	return list, nil
}

func (r *PaymentRepo) lines(ctx context.Context, query string, args ...any) ([]entity.PaymentInvoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payment lines: %w", err)
	}
	defer rows.Close()
	var out []entity.PaymentInvoice
	for rows.Next() {
		var l entity.PaymentInvoice
		if err := rows.Scan(&l.ID, &l.PaymentID, &l.InvoiceID, &l.PaymentAmount, &l.VATAmount, &l.PaymentDate); err != nil {
			return nil, fmt.Errorf("scan payment line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	var method string
	var instrument *string
	err := row.Scan(&p.ID, &p.ProjectID, &p.SupplierID, &method, &instrument, &p.PaymentDate, &p.DueDate,
		&p.Liquidated, &p.TotalPaymentAmount, &p.TotalVATAmount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.PaymentMethod = entity.PaymentMethod(method)
	p.InstrumentType = entity.InstrumentType(derefStr(instrument))
	return &p, nil
}
