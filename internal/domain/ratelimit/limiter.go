package ratelimit

import "time"

// Decision is the outcome of a single Check. Tracked is the number of clients
// inside the window after the check, taken under the same lock.
type Decision struct {
	Limited    bool
	RetryAfter time.Duration
	Tracked    int
}

// Gate decides whether a client identity has exhausted its request budget.
type Gate interface {
	IsLimited(key string) bool
	Check(key string) Decision
	Tracked() int
}
