package main

import (
	"context"
	"log"
	"os"
	"regexp"

	"github.com/buildbarn/bb-replacer/pkg/configuration"
	"github.com/buildbarn/bb-replacer/pkg/program"
	bb_prometheus "github.com/buildbarn/bb-replacer/pkg/prometheus"
	"github.com/buildbarn/bb-replacer/pkg/replacer"
	"github.com/buildbarn/bb-replacer/pkg/replay"
	"github.com/buildbarn/bb-replacer/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	dto "github.com/prometheus/client_model/go"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// A utility for evaluating cache replacement policies. It replays a
// synthetic workload or a trace of page accesses against a simulated
// page cache, and reports how many of the accesses could be served
// without loading the page.
//
// Pages remain pinned for a configurable number of operations after
// being accessed, making it possible to observe how policies behave
// when only a subset of the frames can be evicted.

func main() {
	program.RunMain(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
		if len(os.Args) != 2 {
			return status.Error(codes.InvalidArgument, "Usage: bb_replay bb_replay.jsonnet")
		}
		applicationConfiguration, err := configuration.GetApplicationConfiguration(os.Args[1])
		if err != nil {
			return err
		}

		r, err := replacer.NewReplacerFromConfiguration(applicationConfiguration.Frames, applicationConfiguration.Replacer)
		if err != nil {
			return err
		}
		simulator, err := replay.NewSimulator(applicationConfiguration.Frames, r, applicationConfiguration.PinWindow)
		if err != nil {
			return util.StatusWrap(err, "Failed to create simulator")
		}

		var source replay.OperationSource
		if workload := applicationConfiguration.Workload; workload != nil {
			source, err = replay.NewWorkloadFromConfiguration(workload)
			if err != nil {
				return util.StatusWrap(err, "Failed to create workload")
			}
		} else {
			traceFile, err := replay.OpenTraceFile(applicationConfiguration.TraceFile)
			if err != nil {
				return err
			}
			defer traceFile.Close()
			source = traceFile
		}

		if applicationConfiguration.DumpMetrics {
			gatherer := prometheus.DefaultGatherer
			if pattern := applicationConfiguration.MetricsNamePattern; pattern != "" {
				namePattern, err := regexp.Compile(pattern)
				if err != nil {
					return status.Errorf(codes.InvalidArgument, "Invalid metrics name pattern %#v: %s", pattern, err)
				}
				gatherer = bb_prometheus.NewNameFilteringGatherer(gatherer, namePattern)
			}

			// Only dump metrics once the replay has completed
			// or has been interrupted.
			dependenciesGroup.Go(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
				<-ctx.Done()
				families, err := gatherer.Gather()
				if err != nil {
					return util.StatusWrap(err, "Failed to gather metrics")
				}
				return dumpMetrics(families)
			})
		}

		log.Printf("Replaying against %d frames using policy %s", applicationConfiguration.Frames, applicationConfiguration.Replacer.Policy)
		err = simulator.Run(ctx, source)
		statistics := simulator.Statistics()
		log.Printf(
			"Accesses: %d, hits: %d, misses: %d, evictions: %d, rejected: %d, deletes: %d, hit ratio: %.4f",
			statistics.Accesses,
			statistics.Hits,
			statistics.Misses,
			statistics.Evictions,
			statistics.Rejected,
			statistics.Deletes,
			statistics.HitRatio())
		if err != nil {
			return util.StatusWrap(err, "Failed to replay operations")
		}
		return nil
	})
}

func dumpMetrics(families []*dto.MetricFamily) error {
	encoder := expfmt.NewEncoder(os.Stdout, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return util.StatusWrapWithCode(err, codes.Internal, "Failed to write metrics")
		}
	}
	return nil
}
