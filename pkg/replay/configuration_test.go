package replay_test

import (
	"testing"

	"github.com/buildbarn/bb-replacer/pkg/configuration"
	"github.com/buildbarn/bb-replacer/pkg/replay"
	"github.com/buildbarn/bb-replacer/pkg/testutil"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewWorkloadFromConfiguration(t *testing.T) {
	t.Run("Sequential", func(t *testing.T) {
		source, err := replay.NewWorkloadFromConfiguration(&configuration.WorkloadConfiguration{
			Pattern:    configuration.WorkloadPatternSequential,
			Pages:      2,
			Operations: 3,
		})
		require.NoError(t, err)
		require.Equal(t, []replay.PageID{0, 1, 0}, collectPages(t, source))
	})

	t.Run("Reproducible", func(t *testing.T) {
		config := &configuration.WorkloadConfiguration{
			Pattern:    configuration.WorkloadPatternZipf,
			Pages:      100,
			Operations: 500,
			Seed:       12345,
			Skew:       0.8,
		}
		first, err := replay.NewWorkloadFromConfiguration(config)
		require.NoError(t, err)
		second, err := replay.NewWorkloadFromConfiguration(config)
		require.NoError(t, err)
		require.Equal(t, collectPages(t, first), collectPages(t, second))
	})

	for name, testCase := range map[string]struct {
		config configuration.WorkloadConfiguration
		err    error
	}{
		"NoPages": {
			config: configuration.WorkloadConfiguration{Pattern: configuration.WorkloadPatternUniform},
			err:    status.Error(codes.InvalidArgument, "Number of pages must be positive, while 0 was provided"),
		},
		"NegativeOperations": {
			config: configuration.WorkloadConfiguration{Pattern: configuration.WorkloadPatternUniform, Pages: 1, Operations: -1},
			err:    status.Error(codes.InvalidArgument, "Number of operations cannot be negative, while -1 was provided"),
		},
		"TooManyHotPages": {
			config: configuration.WorkloadConfiguration{Pattern: configuration.WorkloadPatternLooping, Pages: 4, HotPages: 5, HotRatio: 0.5},
			err:    status.Error(codes.InvalidArgument, "Number of hot pages must be within range [1, 4], while 5 was provided"),
		},
		"InvalidHotRatio": {
			config: configuration.WorkloadConfiguration{Pattern: configuration.WorkloadPatternLooping, Pages: 4, HotPages: 2, HotRatio: 1.5},
			err:    status.Error(codes.InvalidArgument, "Hot ratio must be within range [0, 1], while 1.5 was provided"),
		},
		"InvalidSkew": {
			config: configuration.WorkloadConfiguration{Pattern: configuration.WorkloadPatternZipf, Pages: 4},
			err:    status.Error(codes.InvalidArgument, "Skew must be positive, while 0 was provided"),
		},
		"UnknownPattern": {
			config: configuration.WorkloadConfiguration{Pattern: "BURSTY", Pages: 4},
			err:    status.Error(codes.InvalidArgument, "Unknown workload pattern: \"BURSTY\""),
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := replay.NewWorkloadFromConfiguration(&testCase.config)
			testutil.RequireEqualStatus(t, testCase.err, err)
		})
	}
}
