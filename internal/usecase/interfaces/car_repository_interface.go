package interfaces

import (
	"context"

	"car_marketplace/internal/domain/entities"
)

//go:generate mockgen -source=car_repository_interface.go -destination=mocks/car_repository_interface.go -package=mock_interfaces

// ICarRepository is the slice of the car store the payment flows need.
type ICarRepository interface {
	Create(ctx context.Context, car entities.Car) (entities.Car, error)
	GetByID(ctx context.Context, id string) (entities.Car, error)
	CountActiveApprovedByOwner(ctx context.Context, ownerID string) (int, error)
	MarkAdPaid(ctx context.Context, id string) (entities.Car, error)
}
