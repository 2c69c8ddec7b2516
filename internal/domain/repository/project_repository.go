package repository

import (
	"context"

	"github.com/jhoicas/Obras-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para obras.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	List(ctx context.Context) ([]*entity.Project, error)
}
