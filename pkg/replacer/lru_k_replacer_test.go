package replacer_test

import (
	"testing"

	"github.com/buildbarn/bb-replacer/pkg/replacer"
	"github.com/buildbarn/bb-replacer/pkg/testutil"
	"github.com/buildbarn/bb-replacer/pkg/util"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// recordAccesses records one access for each of the provided frames.
func recordAccesses(t *testing.T, r replacer.Replacer, frameIDs ...replacer.FrameID) {
	t.Helper()
	for _, frameID := range frameIDs {
		require.NoError(t, r.RecordAccess(frameID))
	}
}

func setEvictable(t *testing.T, r replacer.Replacer, evictable bool, frameIDs ...replacer.FrameID) {
	t.Helper()
	for _, frameID := range frameIDs {
		require.NoError(t, r.SetEvictable(frameID, evictable))
	}
}

func requireEvict(t *testing.T, r replacer.Replacer, want replacer.FrameID) {
	t.Helper()
	got, ok := r.Evict()
	require.True(t, ok, "Expected frame %d to be evicted, but no victim was found", want)
	require.Equal(t, want, got)
}

func requireNoVictim(t *testing.T, r replacer.Replacer) {
	t.Helper()
	size := r.Size()
	_, ok := r.Evict()
	require.False(t, ok)
	require.Equal(t, size, r.Size())
}

func TestNewLRUKReplacer(t *testing.T) {
	t.Run("InvalidCapacity", func(t *testing.T) {
		for _, capacity := range []int{-1, 0} {
			_, err := replacer.NewLRUKReplacer(capacity, 2)
			testutil.RequirePrefixedStatus(t, status.Error(codes.InvalidArgument, "Capacity must be positive"), err)
		}
	})

	t.Run("InvalidK", func(t *testing.T) {
		_, err := replacer.NewLRUKReplacer(4, 0)
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "K must be positive, while 0 was provided"), err)
	})

	t.Run("Empty", func(t *testing.T) {
		r := util.Must(replacer.NewLRUKReplacer(4, 2))
		require.Equal(t, 0, r.Size())
		requireNoVictim(t, r)
	})
}

func TestLRUKReplacerScenario(t *testing.T) {
	// Frame IDs are bounded by the capacity, so use a capacity of
	// four to be able to track frames 1, 2 and 3.
	r := util.Must(replacer.NewLRUKReplacer(4, 2))

	// All frames start out cold, in order of first access.
	recordAccesses(t, r, 1, 2, 3)
	setEvictable(t, r, true, 1, 2, 3)
	require.Equal(t, 3, r.Size())
	requireEvict(t, r, 1)
	require.Equal(t, 2, r.Size())

	// Frame 2 gets promoted to the hot queue, making frame 3 the
	// only cold frame left.
	recordAccesses(t, r, 2, 2)
	requireEvict(t, r, 3)
	requireEvict(t, r, 2)
	requireNoVictim(t, r)
	require.Equal(t, 0, r.Size())
}

func TestLRUKReplacerNewFramesAreNotEvictable(t *testing.T) {
	r := util.Must(replacer.NewLRUKReplacer(4, 2))
	recordAccesses(t, r, 0, 1, 2, 3)
	require.Equal(t, 0, r.Size())
	requireNoVictim(t, r)

	setEvictable(t, r, true, 2)
	require.Equal(t, 1, r.Size())
	requireEvict(t, r, 2)
}

func TestLRUKReplacerColdBeforeHot(t *testing.T) {
	r := util.Must(replacer.NewLRUKReplacer(4, 3))

	// Frame 0 has a complete access history, while frame 1 was
	// accessed k-1 times afterwards. Frame 1 should still be evicted
	// first, as its backward k-distance is infinite.
	recordAccesses(t, r, 0, 0, 0, 1, 1)
	setEvictable(t, r, true, 0, 1)
	requireEvict(t, r, 1)
	requireEvict(t, r, 0)
}

func TestLRUKReplacerPromotion(t *testing.T) {
	r := util.Must(replacer.NewLRUKReplacer(4, 3))

	// Frame 2 is accessed first, but only reaches k accesses after
	// frame 3 has been accessed once. Frame 3 should be evicted first.
	recordAccesses(t, r, 2, 2, 3, 2)
	setEvictable(t, r, true, 2, 3)
	requireEvict(t, r, 3)
	requireEvict(t, r, 2)

	// Frames that have been accessed fewer than k times remain
	// cold, even when accessed after a hot frame.
	recordAccesses(t, r, 0, 0, 0, 1, 1)
	setEvictable(t, r, true, 0, 1)
	recordAccesses(t, r, 0)
	requireEvict(t, r, 1)
}

func TestLRUKReplacerColdOrder(t *testing.T) {
	r := util.Must(replacer.NewLRUKReplacer(8, 4))
	recordAccesses(t, r, 5, 3, 7, 1)
	setEvictable(t, r, true, 5, 3, 7, 1)

	// Accessing a cold frame below k moves it to the back of the
	// cold queue.
	recordAccesses(t, r, 5, 7, 5)
	for _, frameID := range []replacer.FrameID{3, 1, 7, 5} {
		requireEvict(t, r, frameID)
	}
}

func TestLRUKReplacerHotOrder(t *testing.T) {
	r := util.Must(replacer.NewLRUKReplacer(4, 2))
	recordAccesses(t, r, 0, 0, 1, 1, 2, 2)
	setEvictable(t, r, true, 0, 1, 2)

	// Frame 0 was promoted first, but was touched most recently.
	// The hot queue should behave like a plain LRU.
	recordAccesses(t, r, 0, 2)
	requireEvict(t, r, 1)
	requireEvict(t, r, 0)
	requireEvict(t, r, 2)
}

func TestLRUKReplacerSkipsPinnedFrames(t *testing.T) {
	r := util.Must(replacer.NewLRUKReplacer(5, 2))
	recordAccesses(t, r, 0, 1, 2, 2, 3, 3)
	setEvictable(t, r, true, 0, 1, 2, 3)

	// Pinning frames should not affect their position within the
	// queues, only whether they can be selected.
	setEvictable(t, r, false, 0, 2)
	require.Equal(t, 2, r.Size())
	requireEvict(t, r, 1)
	requireEvict(t, r, 3)
	requireNoVictim(t, r)

	setEvictable(t, r, true, 2, 0)
	requireEvict(t, r, 0)
	requireEvict(t, r, 2)
}

func TestLRUKReplacerK1(t *testing.T) {
	// With k = 1 every frame is hot right away, meaning the
	// replacer behaves like plain LRU.
	r := util.Must(replacer.NewLRUKReplacer(3, 1))
	recordAccesses(t, r, 0, 1, 2, 0)
	setEvictable(t, r, true, 0, 1, 2)
	requireEvict(t, r, 1)
	requireEvict(t, r, 2)
	requireEvict(t, r, 0)
}

func TestLRUKReplacerSetEvictable(t *testing.T) {
	r := util.Must(replacer.NewLRUKReplacer(4, 2))

	t.Run("OutOfRange", func(t *testing.T) {
		testutil.RequireEqualStatus(
			t,
			status.Error(codes.InvalidArgument, "Frame 4 is not within range [0, 4)"),
			r.SetEvictable(4, true))
		testutil.RequireEqualStatus(
			t,
			status.Error(codes.InvalidArgument, "Frame -1 is not within range [0, 4)"),
			r.SetEvictable(-1, true))
	})

	t.Run("NotTracked", func(t *testing.T) {
		testutil.RequireEqualStatus(
			t,
			status.Error(codes.InvalidArgument, "Frame 2 is not tracked"),
			r.SetEvictable(2, true))
	})

	t.Run("Idempotent", func(t *testing.T) {
		recordAccesses(t, r, 3)
		setEvictable(t, r, true, 3, 3, 3)
		require.Equal(t, 1, r.Size())
		setEvictable(t, r, false, 3, 3)
		require.Equal(t, 0, r.Size())
		setEvictable(t, r, false, 3)
		require.Equal(t, 0, r.Size())
	})
}

func TestLRUKReplacerRecordAccess(t *testing.T) {
	r := util.Must(replacer.NewLRUKReplacer(2, 2))

	t.Run("OutOfRange", func(t *testing.T) {
		testutil.RequireEqualStatus(
			t,
			status.Error(codes.InvalidArgument, "Frame 2 is not within range [0, 2)"),
			r.RecordAccess(2))
		require.Equal(t, 0, r.Size())
	})

	t.Run("FreshAfterEviction", func(t *testing.T) {
		// Once evicted, a frame loses its access history. When
		// accessed again, it must be treated as cold.
		recordAccesses(t, r, 0, 0, 1, 1)
		setEvictable(t, r, true, 0, 1)
		requireEvict(t, r, 0)
		recordAccesses(t, r, 0)
		setEvictable(t, r, true, 0)
		requireEvict(t, r, 0)
		requireEvict(t, r, 1)
	})
}

func TestLRUKReplacerRemove(t *testing.T) {
	r := util.Must(replacer.NewLRUKReplacer(4, 2))

	t.Run("NotTracked", func(t *testing.T) {
		require.NoError(t, r.Remove(1))
		require.Equal(t, 0, r.Size())
	})

	t.Run("OutOfRange", func(t *testing.T) {
		testutil.RequireEqualStatus(
			t,
			status.Error(codes.InvalidArgument, "Frame 7 is not within range [0, 4)"),
			r.Remove(7))
	})

	t.Run("NotEvictable", func(t *testing.T) {
		recordAccesses(t, r, 1, 2)
		setEvictable(t, r, true, 2)
		testutil.RequireEqualStatus(
			t,
			status.Error(codes.FailedPrecondition, "Frame 1 is not evictable"),
			r.Remove(1))

		// The frame must still be tracked.
		require.Equal(t, 1, r.Size())
		setEvictable(t, r, true, 1)
		requireEvict(t, r, 1)
		requireEvict(t, r, 2)
	})

	t.Run("Evictable", func(t *testing.T) {
		recordAccesses(t, r, 0, 0, 3)
		setEvictable(t, r, true, 0, 3)
		require.NoError(t, r.Remove(3))
		require.Equal(t, 1, r.Size())
		require.NoError(t, r.Remove(3))
		testutil.RequireEqualStatus(
			t,
			status.Error(codes.InvalidArgument, "Frame 3 is not tracked"),
			r.SetEvictable(3, true))

		requireEvict(t, r, 0)
		requireNoVictim(t, r)
	})
}
