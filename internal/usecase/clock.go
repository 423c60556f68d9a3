package usecase

import "time"

// Clock supplies "now" so services can be tested against a fixed time.
// Callers convert to the tenant's location before any calendar comparison.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
