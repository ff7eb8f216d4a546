package ownedbuf

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/require"
)

// TestConcurrentExportInvariant hammers one owner from a worker pool and
// checks that at no point an exclusive export coexists with shared ones,
// or with a second exclusive export. Contention failures are expected and
// simply retried by the workers.
func TestConcurrentExportInvariant(t *testing.T) {
	owner, err := New(DefaultSize)
	require.NoError(t, err)

	pool, err := ants.NewPool(16)
	require.NoError(t, err)
	defer pool.Release()

	var (
		wg             sync.WaitGroup
		sharedHolders  int32
		exclHolders    int32
		violations     int32
		grantedShared  int32
		grantedExcl    int32
		releasedTotal  int32
		attemptsPerJob = 200
	)

	note := func(bad bool) {
		if bad {
			atomic.AddInt32(&violations, 1)
		}
	}

	for i := 0; i < 16; i++ {
		wg.Add(1)
		wantExclusive := i%4 == 0
		require.NoError(t, pool.Submit(func() {
			defer wg.Done()
			for n := 0; n < attemptsPerJob; n++ {
				if wantExclusive {
					w, err := NewMutableView(owner)
					if err != nil {
						note(!IsContention(err))
						continue
					}
					e := atomic.AddInt32(&exclHolders, 1)
					note(e != 1)
					note(atomic.LoadInt32(&sharedHolders) != 0)
					_ = w.SetByte(n%DefaultSize, byte(n))
					atomic.AddInt32(&grantedExcl, 1)
					atomic.AddInt32(&exclHolders, -1)
					w.Close()
					atomic.AddInt32(&releasedTotal, 1)
				} else {
					r, err := NewImmutableView(owner)
					if err != nil {
						note(!IsContention(err))
						continue
					}
					atomic.AddInt32(&sharedHolders, 1)
					note(atomic.LoadInt32(&exclHolders) != 0)
					_ = r.Snapshot()
					atomic.AddInt32(&grantedShared, 1)
					atomic.AddInt32(&sharedHolders, -1)
					r.Close()
					atomic.AddInt32(&releasedTotal, 1)
				}
			}
		}))
	}
	wg.Wait()

	require.Zero(t, atomic.LoadInt32(&violations))
	require.Equal(t, grantedShared+grantedExcl, releasedTotal)

	// Every grant was matched by a release, so the owner is idle again.
	stats := owner.ExportStats()
	require.Equal(t, 0, stats.SharedExports)
	require.False(t, stats.ExclusiveExport)
	require.NoError(t, owner.Close())
}
