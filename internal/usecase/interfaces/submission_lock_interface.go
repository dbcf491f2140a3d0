package interfaces

import (
	"context"
	"time"
)

//go:generate mockgen -source=submission_lock_interface.go -destination=mocks/submission_lock_interface.go -package=mock_interfaces

// ISubmissionLock serializes concurrent submissions that share an idempotency key.
type ISubmissionLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
