package product

import (
	"errors"
	"sort"

	"github.com/google/uuid"
)

var (
	ErrInvalidPrice     = errors.New("price must be positive")
	ErrInvalidGroupSize = errors.New("minimum group size must be at least 1")
	ErrInvalidDiscount  = errors.New("discount percent must be between 0 and 100")
	ErrEmptyName        = errors.New("product name is required")
)

// DiscountTier grants DiscountPercent once a group reaches GroupSize buyers.
// Tiers carry no ordering guarantee in storage.
type DiscountTier struct {
	GroupSize       int
	DiscountPercent float64
}

type Product struct {
	id              uuid.UUID
	sellerID        uuid.UUID
	name            string
	description     string
	priceCents      int64
	imageURL        *string
	availableQty    int
	minGroupSize    int
	discountPercent float64
	tiers           []DiscountTier
}

func NewProduct(
	sellerID uuid.UUID,
	name, description string,
	priceCents int64,
	imageURL *string,
	availableQty, minGroupSize int,
	discountPercent float64,
	tiers []DiscountTier,
) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if priceCents <= 0 {
		return nil, ErrInvalidPrice
	}
	if minGroupSize < 1 {
		return nil, ErrInvalidGroupSize
	}
	if discountPercent < 0 || discountPercent > 100 {
		return nil, ErrInvalidDiscount
	}
	for _, t := range tiers {
		if t.GroupSize < 1 {
			return nil, ErrInvalidGroupSize
		}
		if t.DiscountPercent < 0 || t.DiscountPercent > 100 {
			return nil, ErrInvalidDiscount
		}
	}

	return &Product{
		id:              uuid.New(),
		sellerID:        sellerID,
		name:            name,
		description:     description,
		priceCents:      priceCents,
		imageURL:        imageURL,
		availableQty:    availableQty,
		minGroupSize:    minGroupSize,
		discountPercent: discountPercent,
		tiers:           tiers,
	}, nil
}

func ReconstructProduct(
	id, sellerID uuid.UUID,
	name, description string,
	priceCents int64,
	imageURL *string,
	availableQty, minGroupSize int,
	discountPercent float64,
	tiers []DiscountTier,
) *Product {
	return &Product{
		id:              id,
		sellerID:        sellerID,
		name:            name,
		description:     description,
		priceCents:      priceCents,
		imageURL:        imageURL,
		availableQty:    availableQty,
		minGroupSize:    minGroupSize,
		discountPercent: discountPercent,
		tiers:           tiers,
	}
}

// ResolveDiscount returns the discount percent a group of groupSize buyers
// earns. Among tiers whose threshold is met, the highest percent wins (not
// the highest threshold). Without a qualifying tier the product default
// applies once the minimum group size is reached, otherwise zero.
func (p *Product) ResolveDiscount(groupSize int) float64 {
	qualifying := make([]DiscountTier, 0, len(p.tiers))
	for _, t := range p.tiers {
		if t.GroupSize <= groupSize {
			qualifying = append(qualifying, t)
		}
	}
	if len(qualifying) > 0 {
		sort.Slice(qualifying, func(i, j int) bool {
			return qualifying[i].DiscountPercent > qualifying[j].DiscountPercent
		})
		return qualifying[0].DiscountPercent
	}

	if groupSize >= p.minGroupSize {
		return p.discountPercent
	}
	return 0
}

func (p *Product) ID() uuid.UUID            { return p.id }
func (p *Product) SellerID() uuid.UUID      { return p.sellerID }
func (p *Product) Name() string             { return p.name }
func (p *Product) Description() string      { return p.description }
func (p *Product) PriceCents() int64        { return p.priceCents }
func (p *Product) ImageURL() *string        { return p.imageURL }
func (p *Product) AvailableQty() int        { return p.availableQty }
func (p *Product) MinGroupSize() int        { return p.minGroupSize }
func (p *Product) DiscountPercent() float64 { return p.discountPercent }
func (p *Product) Tiers() []DiscountTier    { return p.tiers }
