package queries

import (
	"context"

	"github.com/google/uuid"
)

type OrderQueries interface {
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit int) ([]*OrderView, error)
}

type OrderViewRepo interface {
	FindByBuyerID(ctx context.Context, buyerID uuid.UUID, limit int) ([]*OrderView, error)
}

type orderQueriesImpl struct {
	repo OrderViewRepo
}

func NewOrderQueries(repo OrderViewRepo) OrderQueries {
	return &orderQueriesImpl{repo: repo}
}

func (q *orderQueriesImpl) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit int) ([]*OrderView, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return q.repo.FindByBuyerID(ctx, buyerID, limit)
}
