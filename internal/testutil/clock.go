package testutil

import (
	"sync"
	"time"
)

// epoch is the instant a Clock at sequence 0 reports.
var epoch = time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)

// Clock hands out strictly increasing timestamps one second apart, so fake
// server resources get stable creationTime and updateTime values.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Clock struct {
	mu  sync.Mutex
	seq int64
}

// NewClock creates a clock at sequence 0.
//
// The first call to Next() returns epoch plus one second.
func NewClock() *Clock {
	return &Clock{}
}

// Next advances the clock and returns the new instant.
func (c *Clock) Next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return At(c.seq)
}

// Seq returns the current sequence number without advancing.
func (c *Clock) Seq() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset rewinds the clock to sequence 0.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}

// At returns the instant of sequence n.
func At(n int64) time.Time {
	return epoch.Add(time.Duration(n) * time.Second)
}

// Stamp formats t the way the API does.
func Stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
