package shared

import (
	"context"
	"time"

	"kyren/internal/domain/groupbuy"
	"kyren/internal/domain/order"
	"kyren/internal/domain/product"

	"github.com/google/uuid"
)

// UnitOfWork scopes one atomic unit of the group-buy workflow: everything
// inside Within either fully commits or fully rolls back. Notifications must
// be sent only after Within returns.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Products() ProductRepository
	Groups() GroupRepository
	Orders() OrderRepository
	Users() UserRepository
	Payments() PaymentRepository
	// TrySweepLock guards the expiration sweep against concurrent runs.
	// The lock is released with the transaction.
	TrySweepLock(ctx context.Context) (bool, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *product.Product) error
	// FindWithTiers loads a product together with its discount tiers.
	FindWithTiers(ctx context.Context, id uuid.UUID) (*product.Product, error)
}

// GroupRepository is the membership ledger: it owns the at-most-one-active-
// group-per-product invariant together with the schema's partial unique index.
type GroupRepository interface {
	Create(ctx context.Context, g *groupbuy.GroupBuy) error
	// FindActiveForUpdate locks the product's single active group row so
	// concurrent joins and rearrangement serialize per product.
	FindActiveForUpdate(ctx context.Context, productID uuid.UUID) (*groupbuy.GroupBuy, error)
	Update(ctx context.Context, g *groupbuy.GroupBuy) error
	ProductIDsWithIncompleteGroups(ctx context.Context) ([]uuid.UUID, error)
	// FindIncompleteForUpdate returns unfilled groups that still hold
	// pending orders, including closed groups whose buyers were never
	// cancelled. Those buyers are what rearrangement rescues.
	FindIncompleteForUpdate(ctx context.Context, productID uuid.UUID) ([]*groupbuy.GroupBuy, error)
	FindExpiredForUpdate(ctx context.Context, cutoff time.Time) ([]*groupbuy.GroupBuy, error)
}

// OrderWithBuyer carries the buyer's messenger address alongside the order so
// workflows can queue notifications without extra lookups.
type OrderWithBuyer struct {
	Order       *order.Order
	BuyerChatID string
	BuyerName   string
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	Update(ctx context.Context, o *order.Order) error
	// ListActiveByGroups returns non-cancelled orders of the given groups
	// ordered by created_at ascending (earliest joiners first).
	ListActiveByGroups(ctx context.Context, groupIDs []uuid.UUID) ([]OrderWithBuyer, error)
}

type UserSnapshot struct {
	ID       uuid.UUID
	BaleID   string
	Username string
	Name     string
	Role     string
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	// UpsertByBaleID registers a messenger user on first contact.
	UpsertByBaleID(ctx context.Context, baleID, username, name string) (*UserSnapshot, error)
}

type PaymentRecord struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	AmountCents   int64
	IsDeposit     bool
	TransactionID *string
	Status        string
}

type PaymentRepository interface {
	Create(ctx context.Context, p PaymentRecord) error
}
