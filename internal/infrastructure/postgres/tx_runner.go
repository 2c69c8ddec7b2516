package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appledger "github.com/jhoicas/Obras-api/internal/application/ledger"
)

var _ appledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// NewRepos repositorios del libro atados a q (pool para lecturas, tx dentro de RunLedger).
func NewRepos(q Querier) appledger.Repos {
	return appledger.Repos{
		Projects:       NewProjectRepository(q),
		Suppliers:      NewSupplierRepository(q),
		PurchaseOrders: NewPurchaseOrderRepository(q),
		GRNs:           NewGRNRepository(q),
		ChangeOrders:   NewChangeOrderRepository(q),
		Invoices:       NewInvoiceRepository(q),
		Payments:       NewPaymentRepository(q),
	}
}

// RunLedger inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// La factura o el pago, sus tablas puente y los estados recalculados se confirman juntos.
func (r *TxRunner) RunLedger(ctx context.Context, fn func(repos appledger.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
