package interfaces

import "errors"

// Store-level outcomes shared by every persistence backend.
var (
	// ErrDuplicateIdempotencyKey is returned by IPaymentRepository.Create when a
	// payment with the same idempotency key already exists. Callers treat it as
	// "found existing", not as a failure.
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")

	// ErrDraftAlreadyPublished is returned by IListingDraftRepository.Publish when
	// the conditional publish lost against an earlier delivery.
	ErrDraftAlreadyPublished = errors.New("listing draft already published")

	// ErrUserNotFound is returned by IUserRepository.ActivateMembership when the
	// payer has no user record.
	ErrUserNotFound = errors.New("user not found")
)
