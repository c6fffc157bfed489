package shelf

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so operation timestamps are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// NewSessionID returns a random identifier for a staging session.
func NewSessionID() string { return uuid.New().String() }
