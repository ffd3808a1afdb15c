//go:build unit

package commands_test

import (
	"context"
	"sort"
	"time"

	"kyren/internal/domain/groupbuy"
	"kyren/internal/domain/order"
	"kyren/internal/domain/product"
	"kyren/internal/infra"
	"kyren/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeState is an in-memory stand-in for the database. The fake unit of work
// snapshots it before each transaction and restores it on error, so rollback
// semantics match the real thing closely enough for workflow tests.
type fakeState struct {
	products map[uuid.UUID]*product.Product
	groups   map[uuid.UUID]*groupbuy.GroupBuy
	orders   map[uuid.UUID]*order.Order
	orderSeq map[uuid.UUID]int
	users    map[uuid.UUID]*shared.UserSnapshot
	payments []shared.PaymentRecord

	nextSeq       int
	sweepLockHeld bool
	// Remaining group creations to fail with a unique violation, simulating
	// a lost get-or-create race.
	dupCreateFails int
}

func newFakeState() *fakeState {
	return &fakeState{
		products: make(map[uuid.UUID]*product.Product),
		groups:   make(map[uuid.UUID]*groupbuy.GroupBuy),
		orders:   make(map[uuid.UUID]*order.Order),
		orderSeq: make(map[uuid.UUID]int),
		users:    make(map[uuid.UUID]*shared.UserSnapshot),
	}
}

func (s *fakeState) clone() *fakeState {
	c := newFakeState()
	for id, p := range s.products {
		c.products[id] = p
	}
	for id, g := range s.groups {
		c.groups[id] = groupbuy.ReconstructGroupBuy(
			g.ID(), g.ProductID(), g.CurrentCount(), g.TargetCount(),
			g.IsActive(), g.CreatedAt(), g.UpdatedAt(),
		)
	}
	for id, o := range s.orders {
		var discount *int64
		if o.DiscountPriceCents() != nil {
			v := *o.DiscountPriceCents()
			discount = &v
		}
		c.orders[id] = order.ReconstructOrder(
			o.ID(), o.BuyerID(), o.GroupBuyID(), o.Quantity(), o.UnitPriceCents(),
			discount, o.DepositCents(), o.Status(), o.CreatedAt(), o.UpdatedAt(),
		)
	}
	for id, seq := range s.orderSeq {
		c.orderSeq[id] = seq
	}
	for id, u := range s.users {
		c.users[id] = u
	}
	c.payments = append(c.payments, s.payments...)
	c.nextSeq = s.nextSeq
	c.sweepLockHeld = s.sweepLockHeld
	return c
}

type fakeUoW struct {
	state *fakeState
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	snapshot := u.state.clone()
	if err := fn(ctx, &fakeTx{state: u.state}); err != nil {
		// Rollback restores the data but not the injected faults: a fault
		// consumed during the attempt stays consumed, as it would in a real
		// race where the competing transaction has already committed.
		snapshot.dupCreateFails = u.state.dupCreateFails
		*u.state = *snapshot
		return err
	}
	return nil
}

type fakeTx struct {
	state *fakeState
}

func (t *fakeTx) Products() shared.ProductRepository { return &fakeProductRepo{t.state} }
func (t *fakeTx) Groups() shared.GroupRepository     { return &fakeGroupRepo{t.state} }
func (t *fakeTx) Orders() shared.OrderRepository     { return &fakeOrderRepo{t.state} }
func (t *fakeTx) Users() shared.UserRepository       { return &fakeUserRepo{t.state} }
func (t *fakeTx) Payments() shared.PaymentRepository { return &fakePaymentRepo{t.state} }

func (t *fakeTx) TrySweepLock(_ context.Context) (bool, error) {
	return !t.state.sweepLockHeld, nil
}

func duplicateKeyErr() error {
	return infra.WrapRepoErr("duplicate active group", &pgconn.PgError{Code: "23505"})
}

type fakeProductRepo struct{ s *fakeState }

func (r *fakeProductRepo) Create(_ context.Context, p *product.Product) error {
	r.s.products[p.ID()] = p
	return nil
}

func (r *fakeProductRepo) FindWithTiers(_ context.Context, id uuid.UUID) (*product.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, infra.NotFoundErr("product not found")
	}
	return p, nil
}

type fakeGroupRepo struct{ s *fakeState }

func (r *fakeGroupRepo) Create(_ context.Context, g *groupbuy.GroupBuy) error {
	if r.s.dupCreateFails > 0 {
		r.s.dupCreateFails--
		return duplicateKeyErr()
	}
	if g.IsActive() {
		for _, existing := range r.s.groups {
			if existing.ProductID() == g.ProductID() && existing.IsActive() {
				return duplicateKeyErr()
			}
		}
	}
	r.s.groups[g.ID()] = g
	return nil
}

func (r *fakeGroupRepo) FindActiveForUpdate(_ context.Context, productID uuid.UUID) (*groupbuy.GroupBuy, error) {
	for _, g := range r.s.groups {
		if g.ProductID() == productID && g.IsActive() {
			return g, nil
		}
	}
	return nil, infra.NotFoundErr("active group not found")
}

func (r *fakeGroupRepo) Update(_ context.Context, g *groupbuy.GroupBuy) error {
	if _, ok := r.s.groups[g.ID()]; !ok {
		return infra.NotFoundErr("group not found for update")
	}
	r.s.groups[g.ID()] = g
	return nil
}

func (s *fakeState) hasPendingOrder(groupID uuid.UUID) bool {
	for _, o := range s.orders {
		if o.GroupBuyID() == groupID && o.Status() == order.StatusPending {
			return true
		}
	}
	return false
}

func (r *fakeGroupRepo) ProductIDsWithIncompleteGroups(_ context.Context) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, g := range r.s.groups {
		if !g.IsComplete() && r.s.hasPendingOrder(g.ID()) && !seen[g.ProductID()] {
			seen[g.ProductID()] = true
			ids = append(ids, g.ProductID())
		}
	}
	return ids, nil
}

func (r *fakeGroupRepo) FindIncompleteForUpdate(_ context.Context, productID uuid.UUID) ([]*groupbuy.GroupBuy, error) {
	var groups []*groupbuy.GroupBuy
	for _, g := range r.s.groups {
		if g.ProductID() == productID && !g.IsComplete() && r.s.hasPendingOrder(g.ID()) {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].ID().String() < groups[j].ID().String()
	})
	return groups, nil
}

func (r *fakeGroupRepo) FindExpiredForUpdate(_ context.Context, cutoff time.Time) ([]*groupbuy.GroupBuy, error) {
	var groups []*groupbuy.GroupBuy
	for _, g := range r.s.groups {
		if g.IsActive() && !g.IsComplete() && g.UpdatedAt().Before(cutoff) {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].ID().String() < groups[j].ID().String()
	})
	return groups, nil
}

type fakeOrderRepo struct{ s *fakeState }

func (r *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	r.s.orders[o.ID()] = o
	r.s.orderSeq[o.ID()] = r.s.nextSeq
	r.s.nextSeq++
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	if _, ok := r.s.orders[o.ID()]; !ok {
		return infra.NotFoundErr("order not found for update")
	}
	r.s.orders[o.ID()] = o
	return nil
}

func (r *fakeOrderRepo) ListActiveByGroups(_ context.Context, groupIDs []uuid.UUID) ([]shared.OrderWithBuyer, error) {
	wanted := make(map[uuid.UUID]bool, len(groupIDs))
	for _, id := range groupIDs {
		wanted[id] = true
	}

	var result []shared.OrderWithBuyer
	for _, o := range r.s.orders {
		if !wanted[o.GroupBuyID()] || o.IsCancelled() {
			continue
		}
		buyer := r.s.users[o.BuyerID()]
		result = append(result, shared.OrderWithBuyer{
			Order:       o,
			BuyerChatID: buyer.BaleID,
			BuyerName:   buyer.Name,
		})
	}
	// Earliest joiners first, as the real query orders by created_at.
	sort.Slice(result, func(i, j int) bool {
		return r.s.orderSeq[result[i].Order.ID()] < r.s.orderSeq[result[j].Order.ID()]
	})
	return result, nil
}

type fakeUserRepo struct{ s *fakeState }

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, infra.NotFoundErr("user not found")
	}
	return u, nil
}

func (r *fakeUserRepo) UpsertByBaleID(_ context.Context, baleID, username, name string) (*shared.UserSnapshot, error) {
	for _, u := range r.s.users {
		if u.BaleID == baleID {
			u.Username = username
			u.Name = name
			return u, nil
		}
	}
	u := &shared.UserSnapshot{
		ID:       uuid.New(),
		BaleID:   baleID,
		Username: username,
		Name:     name,
		Role:     "buyer",
	}
	r.s.users[u.ID] = u
	return u, nil
}

type fakePaymentRepo struct{ s *fakeState }

func (r *fakePaymentRepo) Create(_ context.Context, p shared.PaymentRecord) error {
	r.s.payments = append(r.s.payments, p)
	return nil
}

// Seeding helpers shared by the workflow tests.

func seedProduct(s *fakeState, priceCents int64, minGroupSize int, defaultPct float64, tiers []product.DiscountTier) *product.Product {
	p, err := product.NewProduct(uuid.New(), "Test Product", "", priceCents, nil, 100, minGroupSize, defaultPct, tiers)
	if err != nil {
		panic(err)
	}
	s.products[p.ID()] = p
	return p
}

func seedUser(s *fakeState, baleID string) *shared.UserSnapshot {
	u := &shared.UserSnapshot{
		ID:     uuid.New(),
		BaleID: baleID,
		Name:   "Buyer " + baleID,
		Role:   "buyer",
	}
	s.users[u.ID] = u
	return u
}

func seedGroup(s *fakeState, productID uuid.UUID, current, target int, active bool, updatedAt time.Time) *groupbuy.GroupBuy {
	g := groupbuy.ReconstructGroupBuy(uuid.New(), productID, current, target, active, updatedAt, updatedAt)
	s.groups[g.ID()] = g
	return g
}

func seedOrder(s *fakeState, buyerID, groupID uuid.UUID, priceCents int64) *order.Order {
	o, err := order.NewOrder(buyerID, groupID, 1, priceCents)
	if err != nil {
		panic(err)
	}
	s.orders[o.ID()] = o
	s.orderSeq[o.ID()] = s.nextSeq
	s.nextSeq++
	return o
}
