package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/moodnft/pkg/nft/core"
	nfterrors "github.com/provide-io/moodnft/pkg/nft/errors"
)

var testImages = Images{Happy: "ipfs://happy", Sad: "ipfs://sad"}

func newTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "registry_test",
		Level: hclog.Trace,
	})
	return New(testImages, append([]Option{WithLogger(logger)}, opts...)...)
}

func TestNewStartsEmpty(t *testing.T) {
	r := newTestRegistry(t)

	assert.Equal(t, core.TokenID(0), r.NextID())
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, testImages, r.Images())
	assert.False(t, r.LegacyMoodIndex())
}

func TestAllocateSequentialIDs(t *testing.T) {
	for _, legacy := range []bool{false, true} {
		name := "fixed"
		var opts []Option
		if legacy {
			name = "legacy"
			opts = append(opts, WithLegacyMoodIndex())
		}
		t.Run(name, func(t *testing.T) {
			r := newTestRegistry(t, opts...)
			const n = 25
			for want := 0; want < n; want++ {
				got := r.Allocate()
				require.Equal(t, core.TokenID(want), got)
			}
			assert.Equal(t, core.TokenID(n), r.NextID())
		})
	}
}

func TestAllocateRecordsUnderIssuedID(t *testing.T) {
	r := newTestRegistry(t)
	for i := 0; i < 3; i++ {
		r.Allocate()
	}

	assert.Equal(t, core.TokenID(3), r.NextID())
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, map[core.TokenID]core.Mood{
		0: core.MoodHappy,
		1: core.MoodHappy,
		2: core.MoodHappy,
	}, r.Snapshot())

	for id := core.TokenID(0); id < 3; id++ {
		mood, recorded, err := r.Lookup(id)
		require.NoError(t, err)
		assert.True(t, recorded, "id %d", id)
		assert.Equal(t, core.MoodHappy, mood)
	}
}

func TestLegacyMoodIndexShiftsRecord(t *testing.T) {
	r := newTestRegistry(t, WithLegacyMoodIndex())
	for i := 0; i < 3; i++ {
		r.Allocate()
	}

	assert.True(t, r.LegacyMoodIndex())
	assert.Equal(t, core.TokenID(3), r.NextID())
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, map[core.TokenID]core.Mood{
		1: core.MoodHappy,
		2: core.MoodHappy,
		3: core.MoodHappy,
	}, r.Snapshot())

	// id 0 was issued but never had a mood recorded.
	mood, recorded, err := r.Lookup(0)
	require.NoError(t, err)
	assert.False(t, recorded)
	assert.Equal(t, core.DefaultMood, mood)

	// id 3 has an entry but is not allocated yet.
	_, err = r.MoodOf(3)
	assert.ErrorIs(t, err, nfterrors.ErrUnknownIdentifier)
}

func TestMoodOfUnknownIdentifier(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.MoodOf(0)
	require.ErrorIs(t, err, nfterrors.ErrUnknownIdentifier)

	r.Allocate()
	_, err = r.MoodOf(0)
	require.NoError(t, err)

	_, _, err = r.Lookup(1)
	assert.ErrorIs(t, err, nfterrors.ErrUnknownIdentifier)
}

func TestAllocateWithCallsIssueOnce(t *testing.T) {
	r := newTestRegistry(t)

	var issued []core.TokenID
	for i := 0; i < 3; i++ {
		id, err := r.AllocateWith(func(id core.TokenID) error {
			issued = append(issued, id)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, core.TokenID(i), id)
	}
	assert.Equal(t, []core.TokenID{0, 1, 2}, issued)
}

func TestAllocateWithFailureLeavesStateUntouched(t *testing.T) {
	r := newTestRegistry(t)
	r.Allocate()

	boom := errors.New("receiver rejected")
	_, err := r.AllocateWith(func(core.TokenID) error { return boom })
	require.ErrorIs(t, err, boom)

	assert.Equal(t, core.TokenID(1), r.NextID())
	assert.Equal(t, 1, r.Len())

	id, err := r.AllocateWith(nil)
	require.NoError(t, err)
	assert.Equal(t, core.TokenID(1), id)
}

func TestConcurrentAllocateUnique(t *testing.T) {
	r := newTestRegistry(t)

	const workers = 8
	const perWorker = 200

	var mu sync.Mutex
	seen := make(map[core.TokenID]bool)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := r.Allocate()
				// Every id visible through NextID must already have its mood.
				_, recorded, err := r.Lookup(id)
				if err != nil || !recorded {
					t.Errorf("id %d not fully allocated: recorded=%v err=%v", id, recorded, err)
				}
				mu.Lock()
				if seen[id] {
					t.Errorf("id %d allocated twice", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
	assert.Equal(t, core.TokenID(workers*perWorker), r.NextID())
	assert.Equal(t, workers*perWorker, r.Len())
}

func TestSnapshotIsCopy(t *testing.T) {
	r := newTestRegistry(t)
	r.Allocate()

	snap := r.Snapshot()
	snap[0] = core.MoodSad
	snap[42] = core.MoodSad

	mood, err := r.MoodOf(0)
	require.NoError(t, err)
	assert.Equal(t, core.MoodHappy, mood)
	assert.Equal(t, 1, r.Len())
}
