package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrInvalidUnitPrice = errors.New("unit price must be positive")
	ErrAlreadyFinalized = errors.New("discount price already set")
	ErrOrderCancelled   = errors.New("order is cancelled")
)

type Status string

const (
	StatusPending   Status = "pending"   // group not formed yet
	StatusConfirmed Status = "confirmed" // group formed, awaiting full payment
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// DepositCents is the upfront payment collected at join time: 10% of the
// unit price.
func DepositCents(unitPriceCents int64) int64 {
	return unitPriceCents / 10
}

// DiscountedCents applies a percentage discount to a unit price.
func DiscountedCents(unitPriceCents int64, discountPercent float64) int64 {
	return int64(float64(unitPriceCents) * (100.0 - discountPercent) / 100.0)
}

type Order struct {
	id                 uuid.UUID
	buyerID            uuid.UUID
	groupBuyID         uuid.UUID
	quantity           int
	unitPriceCents     int64
	discountPriceCents *int64
	depositCents       int64
	status             Status
	createdAt          time.Time
	updatedAt          time.Time
}

// NewOrder snapshots the product price at join time and collects the deposit.
func NewOrder(buyerID, groupBuyID uuid.UUID, quantity int, unitPriceCents int64) (*Order, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if unitPriceCents <= 0 {
		return nil, ErrInvalidUnitPrice
	}
	return &Order{
		id:             uuid.New(),
		buyerID:        buyerID,
		groupBuyID:     groupBuyID,
		quantity:       quantity,
		unitPriceCents: unitPriceCents,
		depositCents:   DepositCents(unitPriceCents),
		status:         StatusPending,
	}, nil
}

func ReconstructOrder(
	id, buyerID, groupBuyID uuid.UUID,
	quantity int,
	unitPriceCents int64,
	discountPriceCents *int64,
	depositCents int64,
	status Status,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:                 id,
		buyerID:            buyerID,
		groupBuyID:         groupBuyID,
		quantity:           quantity,
		unitPriceCents:     unitPriceCents,
		discountPriceCents: discountPriceCents,
		depositCents:       depositCents,
		status:             status,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// Finalize fixes the discounted price when the order's group completes. The
// discount price is set exactly once and never recomputed.
func (o *Order) Finalize(discountPercent float64) error {
	if o.status == StatusCancelled {
		return ErrOrderCancelled
	}
	if o.discountPriceCents != nil {
		return ErrAlreadyFinalized
	}
	price := DiscountedCents(o.unitPriceCents, discountPercent)
	o.discountPriceCents = &price
	o.status = StatusConfirmed
	return nil
}

// Cancel terminates the order. Cancelling twice is a no-op.
func (o *Order) Cancel() {
	o.status = StatusCancelled
}

// ReassignGroup moves the order into a new group during rearrangement.
func (o *Order) ReassignGroup(groupBuyID uuid.UUID) {
	o.groupBuyID = groupBuyID
}

func (o *Order) ID() uuid.UUID              { return o.id }
func (o *Order) BuyerID() uuid.UUID         { return o.buyerID }
func (o *Order) GroupBuyID() uuid.UUID      { return o.groupBuyID }
func (o *Order) Quantity() int              { return o.quantity }
func (o *Order) UnitPriceCents() int64      { return o.unitPriceCents }
func (o *Order) DiscountPriceCents() *int64 { return o.discountPriceCents }
func (o *Order) DepositCents() int64        { return o.depositCents }
func (o *Order) Status() Status             { return o.status }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) UpdatedAt() time.Time       { return o.updatedAt }
func (o *Order) IsCancelled() bool          { return o.status == StatusCancelled }
