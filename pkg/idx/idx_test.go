package idx

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewProducesValidIDs(t *testing.T) {
	id := New()
	require.False(t, id.IsZero())

	parsed, err := Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestNewAtEmbedsTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	id := NewAt(ts)

	require.WithinDuration(t, ts, id.Time(), time.Millisecond)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "  ", "not-a-ulid", "0000"} {
		_, err := Parse(s)
		require.ErrorIs(t, err, ErrInvalid, s)
	}
}

func TestIDsAreMonotonicWithinMillisecond(t *testing.T) {
	ts := time.Now().UTC()
	a := NewAt(ts)
	b := NewAt(ts)
	require.Less(t, a.String(), b.String())
}

func TestConcurrentGeneration(t *testing.T) {
	const goroutines = 32
	const perGoroutine = 100

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[ID]struct{}, goroutines*perGoroutine)
	)

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perGoroutine {
				id := New()
				mu.Lock()
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, ids, goroutines*perGoroutine, "all generated ids must be unique")
}
