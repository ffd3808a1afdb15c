package repository

import (
	"context"

	"kyren/internal/infra"
	"kyren/internal/infra/db"
	"kyren/internal/usecase/shared"
)

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: dbtx}
}

func (r *PaymentRepository) Create(ctx context.Context, p shared.PaymentRecord) error {
	const insert = `
		INSERT INTO payment_transactions (id, order_id, amount_cents, is_deposit, transaction_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, insert, p.ID, p.OrderID, p.AmountCents, p.IsDeposit, p.TransactionID, p.Status)
	if err != nil {
		return infra.WrapRepoErr("failed to record payment transaction", err)
	}
	return nil
}
