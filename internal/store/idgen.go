package store

import (
	"strconv"
	"sync/atomic"
	"time"
)

// IDGenerator produces note identifiers. Uniqueness is a property of the
// generation strategy, not enforced by the store.
type IDGenerator interface {
	NewID() string
}

// TimestampID generates millisecond-epoch identifiers. Safe across multiple
// server instances in practice, since two creates for the same owner within
// the same millisecond are not an expected workload.
type TimestampID struct{}

func (TimestampID) NewID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// CounterID generates monotonically increasing identifiers from an atomic
// counter. Suitable for single-instance deployments only; the counter resets
// on restart.
type CounterID struct {
	n atomic.Int64
}

func (c *CounterID) NewID() string {
	return strconv.FormatInt(c.n.Add(1), 10)
}
