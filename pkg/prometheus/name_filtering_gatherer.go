package prometheus

import (
	"regexp"

	"github.com/prometheus/client_golang/prometheus"

	dto "github.com/prometheus/client_model/go"
)

type nameFilteringGatherer struct {
	base        prometheus.Gatherer
	namePattern *regexp.Regexp
}

// NewNameFilteringGatherer creates a decorator for Gatherer that only
// returns metric families whose name matches a regular expression.
// This can be used to limit a dump of metrics to those of replacers,
// omitting the ones of the Go runtime.
func NewNameFilteringGatherer(base prometheus.Gatherer, namePattern *regexp.Regexp) prometheus.Gatherer {
	return &nameFilteringGatherer{
		base:        base,
		namePattern: namePattern,
	}
}

func (g *nameFilteringGatherer) Gather() ([]*dto.MetricFamily, error) {
	families, err := g.base.Gather()
	var filteredFamilies []*dto.MetricFamily
	for _, family := range families {
		if g.namePattern.MatchString(family.GetName()) {
			filteredFamilies = append(filteredFamilies, family)
		}
	}
	// Gatherers may return partial results alongside an error.
	return filteredFamilies, err
}
