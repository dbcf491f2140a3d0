package interfaces

import (
	"context"

	"car_marketplace/internal/domain/entities"
)

//go:generate mockgen -source=user_repository_interface.go -destination=mocks/user_repository_interface.go -package=mock_interfaces

// IUserRepository reads payer contact data and updates membership fields.
//
// ActivateMembership is skipped (false, nil) when the stored membership was
// already activated by membership.PaymentID, and fails with ErrUserNotFound
// when there is no such user.
type IUserRepository interface {
	GetByID(ctx context.Context, id string) (entities.User, error)
	ActivateMembership(ctx context.Context, userID string, membership entities.Membership) (bool, error)
}
