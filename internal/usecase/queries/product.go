package queries

import (
	"context"

	"github.com/google/uuid"
)

const defaultListLimit = 50

type ProductQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	List(ctx context.Context, filter ProductFilter) ([]*ProductListItem, error)
}

type ProductViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]*ProductListItem, error)
}

type productQueriesImpl struct {
	repo ProductViewRepo
}

func NewProductQueries(repo ProductViewRepo) ProductQueries {
	return &productQueriesImpl{repo: repo}
}

func (q *productQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *productQueriesImpl) List(ctx context.Context, filter ProductFilter) ([]*ProductListItem, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return q.repo.FindAll(ctx, filter)
}
