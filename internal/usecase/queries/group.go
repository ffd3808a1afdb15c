package queries

import (
	"context"

	"github.com/google/uuid"
)

type GroupQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*GroupView, error)
	ActiveForProduct(ctx context.Context, productID uuid.UUID) (*GroupView, error)
}

type GroupViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*GroupView, error)
	FindActiveByProductID(ctx context.Context, productID uuid.UUID) (*GroupView, error)
}

type groupQueriesImpl struct {
	repo GroupViewRepo
}

func NewGroupQueries(repo GroupViewRepo) GroupQueries {
	return &groupQueriesImpl{repo: repo}
}

func (q *groupQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*GroupView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *groupQueriesImpl) ActiveForProduct(ctx context.Context, productID uuid.UUID) (*GroupView, error) {
	return q.repo.FindActiveByProductID(ctx, productID)
}
