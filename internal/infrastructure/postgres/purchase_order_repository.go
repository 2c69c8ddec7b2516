package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Obras-api/internal/domain"
	"github.com/jhoicas/Obras-api/internal/domain/entity"
	"github.com/jhoicas/Obras-api/internal/domain/repository"
)

var (
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
	_ repository.GRNRepository           = (*GRNRepo)(nil)
	_ repository.ChangeOrderRepository   = (*ChangeOrderRepo)(nil)
)

// PurchaseOrderRepo implementación de PurchaseOrderRepository (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, project_id, supplier_id, lpo_number, lpo_date, lpo_value, vat_percent, created_at, updated_at`

func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + poColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, po.ID, po.ProjectID, po.SupplierID, po.LPONumber, dateOnly(po.LPODate),
		po.LPOValue, po.VATPercent, po.CreatedAt, po.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("orden %s: %w", po.LPONumber, domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("orden %s: obra o proveedor: %w", po.LPONumber, domain.ErrNotFound)
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1`
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return po, nil
}

func (r *PurchaseOrderRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE project_id = $1 ORDER BY lpo_number`
	return r.list(ctx, query, projectID)
}

func (r *PurchaseOrderRepo) ListByProjectSupplier(ctx context.Context, projectID, supplierID string) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE project_id = $1 AND supplier_id = $2 ORDER BY lpo_number`
	return r.list(ctx, query, projectID, supplierID)
}

func (r *PurchaseOrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	return list, rows.Err()
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(&po.ID, &po.ProjectID, &po.SupplierID, &po.LPONumber, &po.LPODate,
		&po.LPOValue, &po.VATPercent, &po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// GRNRepo implementación de GRNRepository (usable con pool o tx).
type GRNRepo struct {
	q Querier
}

// NewGRNRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGRNRepository(q Querier) *GRNRepo {
	return &GRNRepo{q: q}
}

func (r *GRNRepo) Create(ctx context.Context, g *entity.GRN) error {
	query := `
		INSERT INTO grns (id, purchase_order_id, grn_ref_no, grn_date, delivered_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, g.ID, g.PurchaseOrderID, g.GRNRefNo, dateOnly(g.GRNDate), g.DeliveredAmount, g.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("GRN %s: orden %s: %w", g.GRNRefNo, g.PurchaseOrderID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert grn: %w", err)
	}
	return nil
}

func (r *GRNRepo) ListByPurchaseOrders(ctx context.Context, poIDs []string) ([]*entity.GRN, error) {
	if len(poIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, purchase_order_id, grn_ref_no, grn_date, delivered_amount, created_at
		FROM grns WHERE purchase_order_id = ANY($1)
		ORDER BY grn_date, grn_ref_no`
	rows, err := r.q.Query(ctx, query, poIDs)
	if err != nil {
		return nil, fmt.Errorf("list grns: %w", err)
	}
	defer rows.Close()
	var list []*entity.GRN
	for rows.Next() {
		var g entity.GRN
		if err := rows.Scan(&g.ID, &g.PurchaseOrderID, &g.GRNRefNo, &g.GRNDate, &g.DeliveredAmount, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan grn: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// ChangeOrderRepo implementación de ChangeOrderRepository (usable con pool o tx).
type ChangeOrderRepo struct {
	q Querier
}

// NewChangeOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewChangeOrderRepository(q Querier) *ChangeOrderRepo {
	return &ChangeOrderRepo{q: q}
}

func (r *ChangeOrderRepo) Create(ctx context.Context, co *entity.ChangeOrder) error {
	query := `
		INSERT INTO change_orders (id, purchase_order_id, co_number, co_date, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, co.ID, co.PurchaseOrderID, co.CONumber, dateOnly(co.CODate), co.Amount, co.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("change order %s: orden %s: %w", co.CONumber, co.PurchaseOrderID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert change order: %w", err)
	}
	return nil
}

func (r *ChangeOrderRepo) ListByPurchaseOrder(ctx context.Context, poID string) ([]*entity.ChangeOrder, error) {
	query := `
		SELECT id, purchase_order_id, co_number, co_date, amount, created_at
		FROM change_orders WHERE purchase_order_id = $1 ORDER BY co_number`
	rows, err := r.q.Query(ctx, query, poID)
	if err != nil {
		return nil, fmt.Errorf("list change orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ChangeOrder
	for rows.Next() {
		var co entity.ChangeOrder
		if err := rows.Scan(&co.ID, &co.PurchaseOrderID, &co.CONumber, &co.CODate, &co.Amount, &co.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan change order: %w", err)
		}
		list = append(list, &co)
	}
	return list, rows.Err()
}
