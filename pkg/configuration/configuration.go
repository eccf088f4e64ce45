// Package configuration contains the configuration schema of
// bb_replay, together with the logic for loading it from Jsonnet files
// and filling in defaults.
package configuration

import (
	"github.com/buildbarn/bb-replacer/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CacheReplacementPolicy selects the algorithm used by a replacer to
// pick victims.
type CacheReplacementPolicy string

const (
	// CacheReplacementPolicyLRUK evicts frames with fewer than k
	// recorded accesses first (in order of their last access),
	// followed by the least recently accessed frame among the others.
	CacheReplacementPolicyLRUK CacheReplacementPolicy = "LRU_K"
	// CacheReplacementPolicyFirstInFirstOut evicts frames in the order
	// in which they became evictable.
	CacheReplacementPolicyFirstInFirstOut CacheReplacementPolicy = "FIRST_IN_FIRST_OUT"
	// CacheReplacementPolicyLeastRecentlyUsed evicts the frame that
	// was accessed least recently.
	CacheReplacementPolicyLeastRecentlyUsed CacheReplacementPolicy = "LEAST_RECENTLY_USED"
	// CacheReplacementPolicyRandomReplacement evicts a random frame.
	CacheReplacementPolicyRandomReplacement CacheReplacementPolicy = "RANDOM_REPLACEMENT"
)

// WorkloadPattern selects the shape of a synthetic workload.
type WorkloadPattern string

const (
	// WorkloadPatternSequential scans all pages in order, repeatedly.
	WorkloadPatternSequential WorkloadPattern = "SEQUENTIAL"
	// WorkloadPatternLooping sends a fixed fraction of accesses to a
	// small hot set of pages and the remainder to the other pages.
	WorkloadPatternLooping WorkloadPattern = "LOOPING"
	// WorkloadPatternUniform picks every page with equal probability.
	WorkloadPatternUniform WorkloadPattern = "UNIFORM"
	// WorkloadPatternZipf picks pages following a Zipf distribution.
	WorkloadPatternZipf WorkloadPattern = "ZIPF"
)

// ReplacerConfiguration describes how a replacer is constructed.
type ReplacerConfiguration struct {
	// Policy used to select victims.
	Policy CacheReplacementPolicy `json:"policy"`

	// Number of accesses after which a frame is no longer considered
	// to have an incomplete access history. Only used by LRU_K.
	K int `json:"k"`

	// When set, the replacer is wrapped in a decorator that exposes
	// operation counters through Prometheus under this name.
	MetricsName string `json:"metricsName"`
}

// WorkloadConfiguration describes a synthetic stream of page accesses.
type WorkloadConfiguration struct {
	Pattern    WorkloadPattern `json:"pattern"`
	Pages      int             `json:"pages"`
	Operations int             `json:"operations"`
	Seed       uint64          `json:"seed"`

	// Parameters of LOOPING.
	HotPages int     `json:"hotPages"`
	HotRatio float64 `json:"hotRatio"`

	// Parameter of ZIPF.
	Skew float64 `json:"skew"`
}

// ApplicationConfiguration is the top-level configuration of bb_replay.
type ApplicationConfiguration struct {
	// Number of frames in the simulated page cache.
	Frames int `json:"frames"`

	// Number of subsequent operations during which an accessed frame
	// remains pinned.
	PinWindow int `json:"pinWindow"`

	Replacer *ReplacerConfiguration `json:"replacer"`

	// Exactly one of Workload and TraceFile must be provided.
	Workload  *WorkloadConfiguration `json:"workload"`
	TraceFile string                 `json:"traceFile"`

	// Write all Prometheus metrics to stdout after replaying.
	DumpMetrics bool `json:"dumpMetrics"`

	// When set, only metrics whose name matches this regular
	// expression are dumped.
	MetricsNamePattern string `json:"metricsNamePattern"`
}

// GetApplicationConfiguration reads the configuration of bb_replay from
// a Jsonnet file and fills in default values.
func GetApplicationConfiguration(path string) (*ApplicationConfiguration, error) {
	var configuration ApplicationConfiguration
	if err := util.UnmarshalConfigurationFromFile(path, &configuration); err != nil {
		return nil, util.StatusWrapf(err, "Failed to read configuration from %#v", path)
	}
	if err := SetDefaultApplicationValues(&configuration); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// SetDefaultApplicationValues fills in fields that were left empty and
// rejects combinations of options that cannot be honored.
func SetDefaultApplicationValues(configuration *ApplicationConfiguration) error {
	if configuration.Frames <= 0 {
		return status.Errorf(codes.InvalidArgument, "Number of frames must be positive, while %d was provided", configuration.Frames)
	}
	if configuration.PinWindow < 0 {
		return status.Errorf(codes.InvalidArgument, "Pin window cannot be negative, while %d was provided", configuration.PinWindow)
	}
	if configuration.Replacer == nil {
		configuration.Replacer = &ReplacerConfiguration{}
	}
	SetDefaultReplacerValues(configuration.Replacer)

	switch {
	case configuration.Workload != nil && configuration.TraceFile != "":
		return status.Error(codes.InvalidArgument, "A workload and a trace file cannot be provided at the same time")
	case configuration.Workload != nil:
		setDefaultWorkloadValues(configuration.Workload, configuration.Frames)
	case configuration.TraceFile == "":
		return status.Error(codes.InvalidArgument, "Either a workload or a trace file must be provided")
	}
	return nil
}

// SetDefaultReplacerValues makes LRU-K with k = 2 the default policy.
func SetDefaultReplacerValues(configuration *ReplacerConfiguration) {
	if configuration.Policy == "" {
		configuration.Policy = CacheReplacementPolicyLRUK
	}
	if configuration.Policy == CacheReplacementPolicyLRUK && configuration.K == 0 {
		configuration.K = 2
	}
}

func setDefaultWorkloadValues(configuration *WorkloadConfiguration, frames int) {
	if configuration.Pattern == "" {
		configuration.Pattern = WorkloadPatternZipf
	}
	if configuration.Pages == 0 {
		configuration.Pages = 4 * frames
	}
	if configuration.Operations == 0 {
		configuration.Operations = 1 << 16
	}
	if configuration.HotPages == 0 {
		configuration.HotPages = max(frames/2, 1)
	}
	if configuration.HotRatio == 0 {
		configuration.HotRatio = 0.9
	}
	if configuration.Skew == 0 {
		configuration.Skew = 1.2
	}
}
