package replay

import (
	"github.com/buildbarn/bb-replacer/pkg/configuration"
	"github.com/buildbarn/bb-replacer/pkg/random"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewWorkloadFromConfiguration creates a synthetic workload. Workloads
// with the same configuration yield the same sequence of operations.
func NewWorkloadFromConfiguration(config *configuration.WorkloadConfiguration) (OperationSource, error) {
	if config.Pages <= 0 {
		return nil, status.Errorf(codes.InvalidArgument, "Number of pages must be positive, while %d was provided", config.Pages)
	}
	if config.Operations < 0 {
		return nil, status.Errorf(codes.InvalidArgument, "Number of operations cannot be negative, while %d was provided", config.Operations)
	}
	generator := random.NewSeededSingleThreadedGenerator(config.Seed)

	switch config.Pattern {
	case configuration.WorkloadPatternSequential:
		return NewSequentialWorkload(config.Pages, config.Operations), nil
	case configuration.WorkloadPatternLooping:
		if config.HotPages <= 0 || config.HotPages > config.Pages {
			return nil, status.Errorf(codes.InvalidArgument, "Number of hot pages must be within range [1, %d], while %d was provided", config.Pages, config.HotPages)
		}
		if config.HotRatio < 0 || config.HotRatio > 1 {
			return nil, status.Errorf(codes.InvalidArgument, "Hot ratio must be within range [0, 1], while %g was provided", config.HotRatio)
		}
		return NewLoopingWorkload(config.Pages, config.HotPages, config.HotRatio, config.Operations, generator), nil
	case configuration.WorkloadPatternUniform:
		return NewUniformWorkload(config.Pages, config.Operations, generator), nil
	case configuration.WorkloadPatternZipf:
		if config.Skew <= 0 {
			return nil, status.Errorf(codes.InvalidArgument, "Skew must be positive, while %g was provided", config.Skew)
		}
		return NewZipfWorkload(config.Pages, config.Skew, config.Operations, generator), nil
	default:
		return nil, status.Errorf(codes.InvalidArgument, "Unknown workload pattern: %#v", string(config.Pattern))
	}
}
