package replacer

import (
	"github.com/buildbarn/bb-replacer/pkg/configuration"
	"github.com/buildbarn/bb-replacer/pkg/eviction"
	"github.com/buildbarn/bb-replacer/pkg/util"
)

// NewReplacerFromConfiguration creates a Replacer for a page cache
// with a given number of frames, using the policy specified in the
// configuration.
func NewReplacerFromConfiguration(capacity int, config *configuration.ReplacerConfiguration) (Replacer, error) {
	var r Replacer
	var err error
	if config.Policy == configuration.CacheReplacementPolicyLRUK {
		r, err = NewLRUKReplacer(capacity, config.K)
	} else {
		var set eviction.Set[FrameID]
		set, err = eviction.NewSetFromConfiguration[FrameID](config.Policy)
		if err != nil {
			return nil, err
		}
		if config.MetricsName != "" {
			set = eviction.NewMetricsSet(set, config.MetricsName)
		}
		r, err = NewSetReplacer(capacity, set)
	}
	if err != nil {
		return nil, util.StatusWrapf(err, "Failed to create replacer with policy %#v", string(config.Policy))
	}

	if config.MetricsName != "" {
		r = NewMetricsReplacer(r, config.MetricsName)
	}
	return r, nil
}
