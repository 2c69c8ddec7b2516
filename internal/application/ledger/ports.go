package ledger

import (
	"context"

	"github.com/jhoicas/Obras-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción (o al pool, fuera de ella).
type Repos struct {
	Projects       repository.ProjectRepository
	Suppliers      repository.SupplierRepository
	PurchaseOrders repository.PurchaseOrderRepository
	GRNs           repository.GRNRepository
	ChangeOrders   repository.ChangeOrderRepository
	Invoices       repository.InvoiceRepository
	Payments       repository.PaymentRepository
}

// TxRunner ejecuta fn dentro de una transacción: la fila, sus tablas puente y los estados
// recalculados se confirman juntos o se revierten juntos.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(repos Repos) error) error
}

// StatementPDFGenerator genera el estado de cuenta de un proveedor.
type StatementPDFGenerator interface {
	GenerateStatement(ctx context.Context, st *Statement) ([]byte, error)
}
