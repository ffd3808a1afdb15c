package commands

import (
	"context"
	"fmt"
	"time"

	"kyren/internal/pkg/errs"
	"kyren/internal/usecase/shared"

	"github.com/google/uuid"
)

// SweepExpired cancels groups stale beyond the TTL, refunds their deposits,
// and then rearranges whatever incomplete groups remain. An advisory lock
// makes concurrent sweeps mutually exclusive; cancelling an already-cancelled
// order is a no-op, so a repeated sweep is harmless either way.
func (uc *groupUseCaseImpl) SweepExpired(ctx context.Context, now time.Time) (*SweepResult, error) {
	var (
		expiredGroups   int
		cancelledOrders int
		notes           []shared.Notification
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expiredGroups, cancelledOrders = 0, 0
		notes = notes[:0]

		acquired, err := tx.TrySweepLock(ctx)
		if err != nil {
			return err
		}
		if !acquired {
			return errs.ErrSweepInProgress
		}

		cutoff := now.Add(-uc.groupTTL)
		stale, err := tx.Groups().FindExpiredForUpdate(ctx, cutoff)
		if err != nil {
			return err
		}

		for _, grp := range stale {
			prod, err := tx.Products().FindWithTiers(ctx, grp.ProductID())
			if err != nil {
				return err
			}

			members, err := tx.Orders().ListActiveByGroups(ctx, []uuid.UUID{grp.ID()})
			if err != nil {
				return err
			}
			for _, m := range members {
				m.Order.Cancel()
				if err := tx.Orders().Update(ctx, m.Order); err != nil {
					return err
				}
				cancelledOrders++
				notes = append(notes, shared.Notification{
					ChatID: m.BuyerChatID,
					Text:   groupExpiredText(prod.Name()),
				})
			}

			grp.Close()
			if err := tx.Groups().Update(ctx, grp); err != nil {
				return err
			}
			expiredGroups++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.sendAll(ctx, notes)

	outcomes, err := uc.Rearrange(ctx)
	if err != nil {
		return nil, err
	}

	return &SweepResult{
		ExpiredGroups:   expiredGroups,
		CancelledOrders: cancelledOrders,
		Rearranged:      outcomes,
	}, nil
}

func groupExpiredText(productName string) string {
	return fmt.Sprintf(
		"The group buy for *%s* didn't reach the minimum number of buyers within the timeframe.\n\nYour deposit will be refunded. You can join another group buy for this product if you're still interested.",
		productName,
	)
}
