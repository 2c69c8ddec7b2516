package repository

import (
	"context"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra (LPO).
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.PurchaseOrder, error)
	ListByProjectSupplier(ctx context.Context, projectID, supplierID string) ([]*entity.PurchaseOrder, error)
}

// GRNRepository define el puerto de persistencia para notas de recepción.
type GRNRepository interface {
	Create(ctx context.Context, g *entity.GRN) error
	// ListByPurchaseOrders devuelve los GRNs de todas las órdenes indicadas.
	ListByPurchaseOrders(ctx context.Context, poIDs []string) ([]*entity.GRN, error)
}

// ChangeOrderRepository define el puerto de persistencia para change orders de subcontrato.
type ChangeOrderRepository interface {
	Create(ctx context.Context, co *entity.ChangeOrder) error
	ListByPurchaseOrder(ctx context.Context, poID string) ([]*entity.ChangeOrder, error)
}
