package replacer_test

import (
	"testing"

	"github.com/buildbarn/bb-replacer/pkg/configuration"
	"github.com/buildbarn/bb-replacer/pkg/replacer"
	"github.com/buildbarn/bb-replacer/pkg/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewReplacerFromConfiguration(t *testing.T) {
	t.Run("LRUK", func(t *testing.T) {
		r, err := replacer.NewReplacerFromConfiguration(3, &configuration.ReplacerConfiguration{
			Policy: configuration.CacheReplacementPolicyLRUK,
			K:      2,
		})
		require.NoError(t, err)
		recordAccesses(t, r, 0, 0, 1)
		setEvictable(t, r, true, 0, 1)
		requireEvict(t, r, 1)
	})

	t.Run("InvalidK", func(t *testing.T) {
		_, err := replacer.NewReplacerFromConfiguration(3, &configuration.ReplacerConfiguration{
			Policy: configuration.CacheReplacementPolicyLRUK,
		})
		testutil.RequireEqualStatus(
			t,
			status.Error(codes.InvalidArgument, "Failed to create replacer with policy \"LRU_K\": K must be positive, while 0 was provided"),
			err)
	})

	t.Run("InvalidCapacity", func(t *testing.T) {
		_, err := replacer.NewReplacerFromConfiguration(0, &configuration.ReplacerConfiguration{
			Policy: configuration.CacheReplacementPolicyFirstInFirstOut,
		})
		testutil.RequireEqualStatus(
			t,
			status.Error(codes.InvalidArgument, "Failed to create replacer with policy \"FIRST_IN_FIRST_OUT\": Capacity must be positive, while 0 was provided"),
			err)
	})

	t.Run("UnknownPolicy", func(t *testing.T) {
		_, err := replacer.NewReplacerFromConfiguration(3, &configuration.ReplacerConfiguration{
			Policy: "CLOCK",
		})
		testutil.RequireEqualStatus(
			t,
			status.Error(codes.InvalidArgument, "Unknown cache replacement policy: \"CLOCK\""),
			err)
	})

	t.Run("LRUWithMetrics", func(t *testing.T) {
		r, err := replacer.NewReplacerFromConfiguration(3, &configuration.ReplacerConfiguration{
			Policy:      configuration.CacheReplacementPolicyLeastRecentlyUsed,
			MetricsName: "TestNewReplacerFromConfiguration",
		})
		require.NoError(t, err)
		recordAccesses(t, r, 0, 1)
		setEvictable(t, r, true, 0, 1)
		recordAccesses(t, r, 0)
		requireEvict(t, r, 1)

		// Both the replacer and the underlying eviction set
		// should report their operations.
		count, err := gatherCounter(prometheus.DefaultGatherer, "buildbarn_replacer_operations_total", map[string]string{
			"name":      "TestNewReplacerFromConfiguration",
			"operation": "RecordAccess",
		})
		require.NoError(t, err)
		require.Equal(t, 3.0, count)
		count, err = gatherCounter(prometheus.DefaultGatherer, "buildbarn_eviction_set_operations_total", map[string]string{
			"name":      "TestNewReplacerFromConfiguration",
			"operation": "Insert",
		})
		require.NoError(t, err)
		require.Equal(t, 2.0, count)
	})
}
