package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kyren/internal/domain/groupbuy"
	"kyren/internal/domain/order"
	"kyren/internal/domain/product"
	"kyren/internal/infra"
	"kyren/internal/pkg/errs"
	"kyren/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	GroupStatusPending   = "pending"
	GroupStatusCompleted = "completed"

	// Lost get-or-create races are retried this many times before the
	// conflict is surfaced to the caller as retryable.
	maxJoinAttempts = 3
)

type JoinResult struct {
	OrderID            uuid.UUID
	GroupID            uuid.UUID
	Status             string
	CurrentCount       int
	TargetCount        int
	DiscountPercent    *float64
	DiscountPriceCents *int64
}

type RearrangeOutcome struct {
	ProductID       uuid.UUID
	NewGroupID      uuid.UUID
	OrderCount      int
	DiscountPercent float64
	Completed       bool
}

type SweepResult struct {
	ExpiredGroups   int
	CancelledOrders int
	Rearranged      []RearrangeOutcome
}

type GroupCommands interface {
	JoinGroup(ctx context.Context, productID, buyerID uuid.UUID) (*JoinResult, error)
	Rearrange(ctx context.Context) ([]RearrangeOutcome, error)
	SweepExpired(ctx context.Context, now time.Time) (*SweepResult, error)
}

type groupUseCaseImpl struct {
	uow      shared.UnitOfWork
	notifier shared.Notifier
	groupTTL time.Duration
}

func NewGroupCommands(uow shared.UnitOfWork, notifier shared.Notifier, groupTTL time.Duration) GroupCommands {
	return &groupUseCaseImpl{
		uow:      uow,
		notifier: notifier,
		groupTTL: groupTTL,
	}
}

// JoinGroup runs the whole join workflow as one atomic unit: get-or-create
// the product's active group, record the order and deposit, bump the count,
// and complete the group when it fills. Notifications go out after commit.
func (uc *groupUseCaseImpl) JoinGroup(ctx context.Context, productID, buyerID uuid.UUID) (*JoinResult, error) {
	var lastErr error
	for attempt := 0; attempt < maxJoinAttempts; attempt++ {
		result, notes, err := uc.tryJoin(ctx, productID, buyerID)
		if err == nil {
			uc.sendAll(ctx, notes)
			return result, nil
		}
		if !infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, err
		}
		// Another joiner created the active group first; re-read and retry.
		lastErr = err
	}
	return nil, errs.Mark(lastErr, errs.ErrConcurrencyConflict)
}

func (uc *groupUseCaseImpl) tryJoin(ctx context.Context, productID, buyerID uuid.UUID) (*JoinResult, []shared.Notification, error) {
	var (
		result *JoinResult
		notes  []shared.Notification
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		notes = notes[:0]

		prod, err := tx.Products().FindWithTiers(ctx, productID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrProductNotFound
			}
			return err
		}

		buyer, err := tx.Users().FindByID(ctx, buyerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrUserNotFound
			}
			return err
		}

		grp, err := uc.activeGroup(ctx, tx, prod)
		if err != nil {
			return err
		}

		completed, err := grp.Join()
		if err != nil {
			return errs.Mark(err, errs.ErrConcurrencyConflict)
		}

		ord, err := order.NewOrder(buyerID, grp.ID(), 1, prod.PriceCents())
		if err != nil {
			return err
		}
		if err := tx.Orders().Create(ctx, ord); err != nil {
			return err
		}
		if err := uc.recordDeposit(ctx, tx, ord); err != nil {
			return err
		}
		if err := tx.Groups().Update(ctx, grp); err != nil {
			return err
		}

		if !completed {
			notes = append(notes, shared.Notification{
				ChatID: buyer.BaleID,
				Text:   joinProgressText(prod.Name(), grp.CurrentCount(), grp.TargetCount()),
			})
			result = &JoinResult{
				OrderID:      ord.ID(),
				GroupID:      grp.ID(),
				Status:       GroupStatusPending,
				CurrentCount: grp.CurrentCount(),
				TargetCount:  grp.TargetCount(),
			}
			return nil
		}

		percent, finalized, err := uc.finalizeGroup(ctx, tx, prod, grp, &notes)
		if err != nil {
			return err
		}

		var discountPrice *int64
		for _, m := range finalized {
			if m.Order.ID() == ord.ID() {
				discountPrice = m.Order.DiscountPriceCents()
			}
		}
		result = &JoinResult{
			OrderID:            ord.ID(),
			GroupID:            grp.ID(),
			Status:             GroupStatusCompleted,
			CurrentCount:       grp.CurrentCount(),
			TargetCount:        grp.TargetCount(),
			DiscountPercent:    &percent,
			DiscountPriceCents: discountPrice,
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, notes, nil
}

// activeGroup is the ledger's get-or-create: the partial unique index on
// (product_id) WHERE is_active makes the losing creator fail with a
// duplicate key, which JoinGroup retries.
func (uc *groupUseCaseImpl) activeGroup(ctx context.Context, tx shared.Tx, prod *product.Product) (*groupbuy.GroupBuy, error) {
	grp, err := tx.Groups().FindActiveForUpdate(ctx, prod.ID())
	if err == nil {
		return grp, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}

	grp, err = groupbuy.NewGroupBuy(prod.ID(), prod.MinGroupSize())
	if err != nil {
		return nil, err
	}
	if err := tx.Groups().Create(ctx, grp); err != nil {
		return nil, err
	}
	return grp, nil
}

// finalizeGroup sets the discount price on every member order exactly once
// and queues their completion notifications.
func (uc *groupUseCaseImpl) finalizeGroup(
	ctx context.Context,
	tx shared.Tx,
	prod *product.Product,
	grp *groupbuy.GroupBuy,
	notes *[]shared.Notification,
) (float64, []shared.OrderWithBuyer, error) {
	percent := prod.ResolveDiscount(grp.CurrentCount())

	members, err := tx.Orders().ListActiveByGroups(ctx, []uuid.UUID{grp.ID()})
	if err != nil {
		return 0, nil, err
	}

	for _, m := range members {
		if err := m.Order.Finalize(percent); err != nil {
			return 0, nil, err
		}
		if err := tx.Orders().Update(ctx, m.Order); err != nil {
			return 0, nil, err
		}
		*notes = append(*notes, shared.Notification{
			ChatID: m.BuyerChatID,
			Text:   groupCompletedText(prod.Name(), grp.CurrentCount(), percent, *m.Order.DiscountPriceCents()),
		})
	}
	return percent, members, nil
}

func (uc *groupUseCaseImpl) recordDeposit(ctx context.Context, tx shared.Tx, ord *order.Order) error {
	return tx.Payments().Create(ctx, shared.PaymentRecord{
		ID:          uuid.New(),
		OrderID:     ord.ID(),
		AmountCents: ord.DepositCents(),
		IsDeposit:   true,
		Status:      "pending",
	})
}

// sendAll flushes queued notifications after commit. Failures are isolated
// per buyer: logged and dropped, never retried.
func (uc *groupUseCaseImpl) sendAll(ctx context.Context, notes []shared.Notification) {
	for _, n := range notes {
		if err := uc.notifier.Notify(ctx, n.ChatID, n.Text); err != nil {
			slog.Warn("failed to notify buyer", "chat_id", n.ChatID, "error", err.Error())
		}
	}
}

func dollars(cents int64) float64 {
	return float64(cents) / 100.0
}

func joinProgressText(productName string, current, target int) string {
	return fmt.Sprintf(
		"You've joined the group buy for *%s*!\n\nCurrent group size: %d/%d\nWe'll notify you when the group is complete.",
		productName, current, target,
	)
}

func groupCompletedText(productName string, total int, percent float64, priceCents int64) string {
	return fmt.Sprintf(
		"Good news! Your group buy for *%s* is now complete!\n\nTotal buyers: %d\nDiscount: %.0f%%\nYour discounted price: $%.2f\n\nPlease complete your payment to finalize your order.",
		productName, total, percent, dollars(priceCents),
	)
}
