package eviction

import (
	"github.com/buildbarn/bb-replacer/pkg/configuration"
	"github.com/buildbarn/bb-replacer/pkg/random"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewSetFromConfiguration creates a new cache replacement set using an
// algorithm specified in a configuration enumeration value.
func NewSetFromConfiguration[T comparable](cacheReplacementPolicy configuration.CacheReplacementPolicy) (Set[T], error) {
	switch cacheReplacementPolicy {
	case configuration.CacheReplacementPolicyFirstInFirstOut:
		return NewFIFOSet[T](), nil
	case configuration.CacheReplacementPolicyLeastRecentlyUsed:
		return NewLRUSet[T](), nil
	case configuration.CacheReplacementPolicyRandomReplacement:
		return NewRRSet[T](random.NewFastSingleThreadedGenerator()), nil
	default:
		return nil, status.Errorf(codes.InvalidArgument, "Unknown cache replacement policy: %#v", string(cacheReplacementPolicy))
	}
}
