package commands

import (
	"context"
	"fmt"

	"kyren/internal/domain/groupbuy"
	"kyren/internal/domain/product"
	"kyren/internal/usecase/shared"

	"github.com/google/uuid"
)

// Rearrange consolidates buyers from a product's incomplete groups into new
// complete ones, earliest joiners first, leaving at most one active remainder
// group per product. A group counts as incomplete while it still holds
// pending orders, even if it was closed without cancelling its buyers.
// Each product is one atomic unit of work.
func (uc *groupUseCaseImpl) Rearrange(ctx context.Context) ([]RearrangeOutcome, error) {
	var productIDs []uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ids, err := tx.Groups().ProductIDsWithIncompleteGroups(ctx)
		if err != nil {
			return err
		}
		productIDs = ids
		return nil
	})
	if err != nil {
		return nil, err
	}

	outcomes := []RearrangeOutcome{}
	for _, productID := range productIDs {
		productOutcomes, notes, err := uc.rearrangeProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		uc.sendAll(ctx, notes)
		outcomes = append(outcomes, productOutcomes...)
	}
	return outcomes, nil
}

func (uc *groupUseCaseImpl) rearrangeProduct(ctx context.Context, productID uuid.UUID) ([]RearrangeOutcome, []shared.Notification, error) {
	var (
		outcomes []RearrangeOutcome
		notes    []shared.Notification
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		outcomes = outcomes[:0]
		notes = notes[:0]

		groups, err := tx.Groups().FindIncompleteForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		// A lone incomplete group would only be consolidated into itself.
		if len(groups) <= 1 {
			return nil
		}

		prod, err := tx.Products().FindWithTiers(ctx, productID)
		if err != nil {
			return err
		}

		groupIDs := make([]uuid.UUID, len(groups))
		for i, g := range groups {
			groupIDs[i] = g.ID()
		}
		members, err := tx.Orders().ListActiveByGroups(ctx, groupIDs)
		if err != nil {
			return err
		}

		// Contributing groups must be closed first: the remainder group is
		// created active and would otherwise collide with them on the
		// one-active-group-per-product index.
		for _, g := range groups {
			g.Close()
			if err := tx.Groups().Update(ctx, g); err != nil {
				return err
			}
		}

		n := prod.MinGroupSize()
		full := len(members) / n
		remainder := len(members) % n

		for i := 0; i < full; i++ {
			batch := members[i*n : (i+1)*n]
			outcome, err := uc.formCompleteGroup(ctx, tx, prod, batch, &notes)
			if err != nil {
				return err
			}
			outcomes = append(outcomes, outcome)
		}

		if remainder > 0 {
			batch := members[full*n:]
			outcome, err := uc.formRemainderGroup(ctx, tx, prod, batch, &notes)
			if err != nil {
				return err
			}
			outcomes = append(outcomes, outcome)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return outcomes, notes, nil
}

func (uc *groupUseCaseImpl) formCompleteGroup(
	ctx context.Context,
	tx shared.Tx,
	prod *product.Product,
	batch []shared.OrderWithBuyer,
	notes *[]shared.Notification,
) (RearrangeOutcome, error) {
	grp, err := groupbuy.NewPrefilledGroup(prod.ID(), prod.MinGroupSize(), len(batch))
	if err != nil {
		return RearrangeOutcome{}, err
	}
	if err := tx.Groups().Create(ctx, grp); err != nil {
		return RearrangeOutcome{}, err
	}

	percent := prod.ResolveDiscount(prod.MinGroupSize())
	for _, m := range batch {
		m.Order.ReassignGroup(grp.ID())
		if err := m.Order.Finalize(percent); err != nil {
			return RearrangeOutcome{}, err
		}
		if err := tx.Orders().Update(ctx, m.Order); err != nil {
			return RearrangeOutcome{}, err
		}
		*notes = append(*notes, shared.Notification{
			ChatID: m.BuyerChatID,
			Text:   rearrangedCompleteText(prod.Name(), percent, *m.Order.DiscountPriceCents()),
		})
	}

	return RearrangeOutcome{
		ProductID:       prod.ID(),
		NewGroupID:      grp.ID(),
		OrderCount:      len(batch),
		DiscountPercent: percent,
		Completed:       true,
	}, nil
}

func (uc *groupUseCaseImpl) formRemainderGroup(
	ctx context.Context,
	tx shared.Tx,
	prod *product.Product,
	batch []shared.OrderWithBuyer,
	notes *[]shared.Notification,
) (RearrangeOutcome, error) {
	grp, err := groupbuy.NewPrefilledGroup(prod.ID(), prod.MinGroupSize(), len(batch))
	if err != nil {
		return RearrangeOutcome{}, err
	}
	if err := tx.Groups().Create(ctx, grp); err != nil {
		return RearrangeOutcome{}, err
	}

	// No finalization: the group is still filling.
	for _, m := range batch {
		m.Order.ReassignGroup(grp.ID())
		if err := tx.Orders().Update(ctx, m.Order); err != nil {
			return RearrangeOutcome{}, err
		}
		*notes = append(*notes, shared.Notification{
			ChatID: m.BuyerChatID,
			Text:   rearrangedPendingText(prod.Name(), len(batch), prod.MinGroupSize()),
		})
	}

	return RearrangeOutcome{
		ProductID:  prod.ID(),
		NewGroupID: grp.ID(),
		OrderCount: len(batch),
	}, nil
}

func rearrangedCompleteText(productName string, percent float64, priceCents int64) string {
	return fmt.Sprintf(
		"Good news! We've rearranged groups and your order for *%s* is now part of a complete group!\n\nDiscount: %.0f%%\nYour discounted price: $%.2f\n\nPlease complete your payment to finalize your order.",
		productName, percent, dollars(priceCents),
	)
}

func rearrangedPendingText(productName string, current, target int) string {
	return fmt.Sprintf(
		"We've rearranged groups for *%s*. You're now in a new group with %d/%d buyers.\n\nWe'll notify you when the group is complete.",
		productName, current, target,
	)
}
