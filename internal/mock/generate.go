package mock

//go:generate mockgen -package mock -destination prometheus.go -mock_names Gatherer=MockPrometheusGatherer github.com/prometheus/client_golang/prometheus Gatherer
//go:generate mockgen -package mock -destination replacer.go github.com/buildbarn/bb-replacer/pkg/replacer Replacer
