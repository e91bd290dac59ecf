package lock

import (
	"context"
	"fmt"
	"time"
)

// Locker grants short-lived exclusive leases on keys.
type Locker interface {
	// Acquire takes key for ttl. ok is false when another holder has it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (lease *Lease, ok bool, err error)
}

// Lease is a held lock. Release is safe to call more than once.
type Lease struct {
	key     string
	token   string
	release func(ctx context.Context, key, token string) error
}

// Release gives the key back if this lease still owns it
func (l *Lease) Release(ctx context.Context) error {
	if l == nil || l.release == nil {
		return nil
	}
	release := l.release
	l.release = nil
	return release(ctx, l.key, l.token)
}

// FeedbackKey builds the in-progress key for one user's answer to one question
func FeedbackKey(userID, questionID int64) string {
	return fmt.Sprintf("feedback:%d:%d", userID, questionID)
}
