package clock

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	testlogger "github.com/tempochain/tempo/internal/testutils/logger"
	"github.com/tempochain/tempo/keyvaluedb/boltdb"
	"github.com/tempochain/tempo/types"
)

func TestLedgerClock_New(t *testing.T) {
	t.Run("nil db starts at genesis time", func(t *testing.T) {
		c, err := New(nil, testlogger.NOP())
		require.NoError(t, err)
		require.EqualValues(t, types.GenesisTime, c.Current())
	})

	t.Run("fresh store starts at genesis time", func(t *testing.T) {
		db, err := boltdb.New(filepath.Join(t.TempDir(), "clock.db"))
		require.NoError(t, err)
		t.Cleanup(func() { require.NoError(t, db.Close()) })

		c, err := New(db, testlogger.NOP())
		require.NoError(t, err)
		require.EqualValues(t, types.GenesisTime, c.Current())
	})
}

func TestLedgerClock_Advance(t *testing.T) {
	newClock := func(t *testing.T) *LedgerClock {
		c, err := New(nil, testlogger.New(t))
		require.NoError(t, err)
		return c
	}

	t.Run("strictly increasing sequence always succeeds", func(t *testing.T) {
		c := newClock(t)
		for _, v := range []uint64{1, 2, 1000, 100_000_000, 101_000_000} {
			require.NoError(t, c.Advance(v))
			require.Equal(t, v, c.Current())
		}
	})

	t.Run("equal timestamp is allowed", func(t *testing.T) {
		c := newClock(t)
		require.NoError(t, c.Advance(100_000_000))
		require.NoError(t, c.Advance(100_000_000))
		require.EqualValues(t, 100_000_000, c.Current())
	})

	t.Run("regression fails and leaves the value unchanged", func(t *testing.T) {
		c := newClock(t)
		require.NoError(t, c.Advance(100_000_000))
		err := c.Advance(99_999_999)
		require.ErrorIs(t, err, ErrNonMonotonic)
		require.EqualValues(t, 100_000_000, c.Current())
	})
}

func TestLedgerClock_Persistence(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "clock.db")

	db, err := boltdb.New(dbFile)
	require.NoError(t, err)
	c, err := New(db, testlogger.New(t))
	require.NoError(t, err)
	require.NoError(t, c.Advance(100_000_000))
	require.NoError(t, db.Close())

	db, err = boltdb.New(dbFile)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	c, err = New(db, testlogger.New(t))
	require.NoError(t, err)
	require.EqualValues(t, 100_000_000, c.Current())

	// the restored value is still the monotonic floor
	require.ErrorIs(t, c.Advance(99_999_999), ErrNonMonotonic)
}

func TestLedgerClock_ConcurrentReaders(t *testing.T) {
	c, err := New(nil, testlogger.NOP())
	require.NoError(t, err)

	const rounds = 1000
	const start = 100_000_000
	require.NoError(t, c.Advance(start))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prev := uint64(0)
			for j := 0; j < rounds; j++ {
				cur := c.Current()
				// the value is always one of the written timestamps and
				// never goes backwards within a single reader
				if cur < start || cur > start+rounds {
					t.Errorf("torn read: %d", cur)
					return
				}
				if cur < prev {
					t.Errorf("time went backwards: %d -> %d", prev, cur)
					return
				}
				prev = cur
			}
		}()
	}
	for j := uint64(1); j <= rounds; j++ {
		require.NoError(t, c.Advance(start+j))
	}
	wg.Wait()
}
