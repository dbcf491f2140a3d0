package interfaces

import (
	"context"
	"time"

	"car_marketplace/internal/domain/entities"
)

//go:generate mockgen -source=listing_draft_repository_interface.go -destination=mocks/listing_draft_repository_interface.go -package=mock_interfaces

// IListingDraftRepository abstracts persistence for ListingDraft.
//
// Publish creates the car and marks the draft published as one unit: either
// both writes land or neither does. It returns ErrDraftAlreadyPublished when
// the draft already carries a published listing id.
type IListingDraftRepository interface {
	Create(ctx context.Context, d entities.ListingDraft) (entities.ListingDraft, error)
	GetByID(ctx context.Context, id string) (entities.ListingDraft, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entities.ListingDraft, error)
	ListByStatus(ctx context.Context, status entities.ListingDraftStatus) ([]entities.ListingDraft, error)
	TransitionStatus(ctx context.Context, id string, from []entities.ListingDraftStatus, to entities.ListingDraftStatus) (bool, error)
	Publish(ctx context.Context, draftID string, car entities.Car, publishedAt time.Time) (entities.Car, error)
}
