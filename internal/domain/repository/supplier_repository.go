package repository

import (
	"context"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para proveedores y subcontratistas.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	List(ctx context.Context) ([]*entity.Supplier, error)
}
