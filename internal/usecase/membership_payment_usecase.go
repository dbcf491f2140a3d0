package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"car_marketplace/internal/domain/entities"
)

func (u *PaymentCheckoutUseCase) CreateMembershipPayment(ctx context.Context, userID string, plan entities.MembershipPlan) (CheckoutResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CheckoutResult{}, ErrUnauthenticated
	}
	plan = entities.MembershipPlan(strings.ToLower(strings.TrimSpace(string(plan))))
	amount, ok := u.policy.MembershipPriceInPaise(plan)
	if !ok {
		log.Printf("[payment][usecase] unknown membership plan user_id=%s plan=%q", userID, plan)
		return CheckoutResult{}, ErrInvalidMembershipPlan
	}

	now := u.now()
	payment, err := u.payments.Create(ctx, entities.Payment{
		ID:                     u.newID(),
		PayerID:                userID,
		Type:                   entities.PaymentTypeMembership,
		RequestedAmountInPaise: amount,
		Currency:               u.currency,
		Status:                 entities.PaymentStatusPending,
		Provider:               u.gateway.Name(),
		OrderID:                u.newOrderID(orderPrefixMembership),
		Plan:                   plan,
		CreatedAt:              now,
		UpdatedAt:              now,
	})
	if err != nil {
		log.Printf("[payment][usecase] create membership payment failed user_id=%s err=%v", userID, err)
		return CheckoutResult{}, err
	}

	return u.openCheckout(ctx, payment, entities.CheckoutRequest{
		ItemName: fmt.Sprintf("Membership: %s", plan),
	})
}

func (u *PaymentCheckoutUseCase) CreateAdPayment(ctx context.Context, userID, carID string) (CheckoutResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CheckoutResult{}, ErrUnauthenticated
	}
	carID = strings.TrimSpace(carID)
	if carID == "" {
		return CheckoutResult{}, ErrInvalidCarID
	}

	car, err := u.cars.GetByID(ctx, carID)
	if err != nil {
		log.Printf("[payment][usecase] load car failed car_id=%s err=%v", carID, err)
		return CheckoutResult{}, err
	}
	if car.ID == "" {
		return CheckoutResult{}, ErrCarNotFound
	}
	if car.OwnerID != userID {
		log.Printf("[payment][usecase] ad payment for foreign car user_id=%s car_id=%s", userID, carID)
		return CheckoutResult{}, ErrCarForbidden
	}

	now := u.now()
	payment, err := u.payments.Create(ctx, entities.Payment{
		ID:                     u.newID(),
		PayerID:                userID,
		Type:                   entities.PaymentTypeAd,
		RequestedAmountInPaise: entities.ToPaise(u.policy.AdFee),
		Currency:               u.currency,
		Status:                 entities.PaymentStatusPending,
		Provider:               u.gateway.Name(),
		OrderID:                u.newOrderID(orderPrefixAd),
		CarID:                  car.ID,
		CreatedAt:              now,
		UpdatedAt:              now,
	})
	if err != nil {
		log.Printf("[payment][usecase] create ad payment failed car_id=%s err=%v", carID, err)
		return CheckoutResult{}, err
	}

	return u.openCheckout(ctx, payment, entities.CheckoutRequest{
		ItemName: fmt.Sprintf("Featured ad: %s %s", car.Listing.Brand, car.Listing.Model),
	})
}
