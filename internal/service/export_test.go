package service

import "time"

// SetClock replaces the limiter's time source in tests.
func (tb *TokenBucket) SetClock(now func() time.Time) {
	tb.now = now
}

// SetClock replaces the issuer's time source in tests.
func (t *TokenIssuer) SetClock(now func() time.Time) {
	t.now = now
}
