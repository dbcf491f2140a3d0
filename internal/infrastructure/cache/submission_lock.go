package cache

import (
	"context"
	"sync"
	"time"

	"car_marketplace/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const submissionLockPrefix = "lock:"

// releaseScript deletes the key only while it still holds our token, so a
// lock that expired and was re-acquired elsewhere is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SubmissionLock is a SETNX lock keyed by the submission fingerprint.
type SubmissionLock struct {
	redis *redis.Client

	mu     sync.Mutex
	tokens map[string]string
}

var _ interfaces.ISubmissionLock = (*SubmissionLock)(nil)

func NewSubmissionLock(client *redis.Client) *SubmissionLock {
	return &SubmissionLock{redis: client, tokens: make(map[string]string)}
}

func (l *SubmissionLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	token := uuid.NewString()
	ok, err := l.redis.SetNX(ctx, submissionLockPrefix+key, token, ttl).Result()
	if err != nil || !ok {
		return false, err
	}
	l.mu.Lock()
	l.tokens[key] = token
	l.mu.Unlock()
	return true, nil
}

func (l *SubmissionLock) Release(ctx context.Context, key string) error {
	l.mu.Lock()
	token, ok := l.tokens[key]
	delete(l.tokens, key)
	l.mu.Unlock()
	if !ok {
		return nil
	}
	return releaseScript.Run(ctx, l.redis, []string{submissionLockPrefix + key}, token).Err()
}
