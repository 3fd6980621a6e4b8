package model

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TimeKeys generates keys from the wall clock in unix nanoseconds. Keys are
// strictly increasing even when the clock stalls or steps backwards.
type TimeKeys struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewTimeKeys returns a clock-based generator. A nil now uses time.Now.
func NewTimeKeys(now func() time.Time) *TimeKeys {
	if now == nil {
		now = time.Now
	}
	return &TimeKeys{now: now}
}

// NextKey implements graph.KeyGenerator.
func (k *TimeKeys) NextKey() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	now := k.now
	if now == nil {
		now = time.Now
	}
	t := now().UnixNano()
	if t <= k.last {
		t = k.last + 1
	}
	k.last = t
	return strconv.FormatInt(t, 10)
}

// UUIDKeys generates random UUIDv4 keys.
type UUIDKeys struct{}

// NextKey implements graph.KeyGenerator.
func (UUIDKeys) NextKey() string { return uuid.NewString() }
