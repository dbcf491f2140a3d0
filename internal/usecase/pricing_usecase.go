package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase/interfaces"
)

//go:generate mockgen -source=pricing_usecase.go -destination=../adapter/http/handlers/mocks/pricing_usecase.go -package=mocks

var (
	ErrInvalidOwnerID = errors.New("invalid owner id")
)

// IPricingUseCase quotes the cost of publishing a new listing.
//
// Rules:
//   - first listing (no active+approved cars) has no base fee
//   - every later listing pays ListingFee
//   - the featured add-on always pays FeatureFee

type IPricingUseCase interface {
	Calculate(ctx context.Context, ownerID string, featureAddon bool) (entities.PricingQuote, error)
}

// PricingPolicy holds fees in whole currency units.
type PricingPolicy struct {
	ListingFee      int64
	FeatureFee      int64
	AdFee           int64
	MembershipPrice map[entities.MembershipPlan]int64
}

func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		ListingFee: 100,
		FeatureFee: 200,
		AdFee:      200,
		MembershipPrice: map[entities.MembershipPlan]int64{
			entities.MembershipPlanBasic:   1000,
			entities.MembershipPlanPremium: 10000,
		},
	}
}

// MembershipPriceInPaise returns the plan price and whether the plan is sold.
func (p PricingPolicy) MembershipPriceInPaise(plan entities.MembershipPlan) (int64, bool) {
	price, ok := p.MembershipPrice[plan]
	if !ok || !plan.Valid() {
		return 0, false
	}
	return entities.ToPaise(price), true
}

type PricingUseCase struct {
	cars   interfaces.ICarRepository
	policy PricingPolicy
}

var _ IPricingUseCase = (*PricingUseCase)(nil)

func NewPricingUseCase(cars interfaces.ICarRepository, policy PricingPolicy) *PricingUseCase {
	return &PricingUseCase{cars: cars, policy: policy}
}

func (u *PricingUseCase) Calculate(ctx context.Context, ownerID string, featureAddon bool) (entities.PricingQuote, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return entities.PricingQuote{}, ErrInvalidOwnerID
	}

	count, err := u.cars.CountActiveApprovedByOwner(ctx, ownerID)
	if err != nil {
		log.Printf("[pricing][usecase] count listings failed owner_id=%s err=%v", ownerID, err)
		return entities.PricingQuote{}, err
	}

	q := entities.PricingQuote{IsFirstListing: count == 0}
	if !q.IsFirstListing {
		q.BaseCost = u.policy.ListingFee
	}
	if featureAddon {
		q.FeatureCost = u.policy.FeatureFee
	}
	q.TotalCost = q.BaseCost + q.FeatureCost
	q.TotalInPaise = entities.ToPaise(q.TotalCost)
	return q, nil
}
