package repository

import (
	"context"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas de proveedor.
// Create y Update escriben también las tablas puente invoice_grns e invoice_change_orders.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	Update(ctx context.Context, inv *entity.Invoice) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Invoice, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.Invoice, error)
	// ListBySupplier facturas del proveedor en todas las obras (unicidad del número).
	ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Invoice, error)
	ListByProjectSupplier(ctx context.Context, projectID, supplierID string) ([]*entity.Invoice, error)

	// UpdateStatus persiste el estado desnormalizado recalculado por el núcleo.
	UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus) error
}
