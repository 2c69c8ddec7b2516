package repository

import (
	"context"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para pagos y sus líneas (payment_invoices).
// Los pagos devueltos traen Lines cargadas.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	// Update reemplaza la cabecera y todas las líneas del pago.
	Update(ctx context.Context, p *entity.Payment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.Payment, error)
	ListByProjectSupplier(ctx context.Context, projectID, supplierID string) ([]*entity.Payment, error)

	// ListLinesByInvoiceIDs líneas de todas las facturas indicadas, con la fecha del pago.
	ListLinesByInvoiceIDs(ctx context.Context, invoiceIDs []string) ([]entity.PaymentInvoice, error)

	SetLiquidated(ctx context.Context, id string, liquidated bool) error
}
