package clock

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tempochain/tempo/keyvaluedb"
	"github.com/tempochain/tempo/types"
)

// ErrNonMonotonic is returned by Advance when the new timestamp is smaller
// than current ledger time. The block carrying such a timestamp must be
// rejected, the stored value is left unchanged.
var ErrNonMonotonic = errors.New("ledger time must not decrease")

var keyLedgerTime = []byte("ledgerTime")

/*
LedgerClock holds current ledger time: the block timestamp agreed by block
production, microseconds since epoch. It is the single source of "current
time" for all time-sensitive validation, distinct from any node's wall clock.

The value is advanced once per block and never decreases. Advance calls are
serialized by block production; Current may be called concurrently from any
number of transaction admission checks.
*/
type LedgerClock struct {
	db  keyvaluedb.KeyValueDB
	log *slog.Logger

	mu      sync.RWMutex
	current uint64
}

/*
New creates a ledger clock backed by the given store. The stored value is
loaded on startup, a fresh store starts at types.GenesisTime. The db may be
nil in which case the clock is volatile (used in tests).
*/
func New(db keyvaluedb.KeyValueDB, log *slog.Logger) (*LedgerClock, error) {
	c := &LedgerClock{db: db, log: log, current: types.GenesisTime}
	if db == nil {
		return c, nil
	}
	var stored uint64
	found, err := db.Read(keyLedgerTime, &stored)
	if err != nil {
		return nil, fmt.Errorf("reading stored ledger time: %w", err)
	}
	if found {
		c.current = stored
	}
	return c, nil
}

/*
Advance sets ledger time to newTime (microseconds since epoch). The new value
must not be smaller than the stored one, otherwise ErrNonMonotonic is
returned. The value is persisted before it becomes visible to readers so a
reader never observes a time the store does not have.
*/
func (c *LedgerClock) Advance(newTime uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if newTime < c.current {
		return fmt.Errorf("advancing ledger time from %d to %d: %w", c.current, newTime, ErrNonMonotonic)
	}
	if c.db != nil {
		if err := c.db.Write(keyLedgerTime, newTime); err != nil {
			return fmt.Errorf("persisting ledger time: %w", err)
		}
	}
	c.current = newTime
	c.log.Debug(fmt.Sprintf("ledger time advanced to %d", newTime))
	return nil
}

// Current returns current ledger time, microseconds since epoch. Never fails
// and is safe for concurrent use.
func (c *LedgerClock) Current() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}
