package replay

import (
	"io"
	"math"
	"sort"

	"github.com/buildbarn/bb-replacer/pkg/random"
)

// workload is an OperationSource that yields a fixed number of
// accesses to pages chosen by a function.
type workload struct {
	remaining int
	nextPage  func() PageID
}

func (w *workload) Next() (Operation, error) {
	if w.remaining <= 0 {
		return Operation{}, io.EOF
	}
	w.remaining--
	return Operation{Kind: OperationAccess, Page: w.nextPage()}, nil
}

// NewSequentialWorkload creates an OperationSource that accesses pages
// [0, pages) in order, starting over once the last page is reached.
// Scans like these are the worst case for plain LRU whenever the
// number of pages exceeds the number of frames.
func NewSequentialWorkload(pages, operations int) OperationSource {
	next := 0
	return &workload{
		remaining: operations,
		nextPage: func() PageID {
			page := PageID(next)
			next = (next + 1) % pages
			return page
		},
	}
}

// NewLoopingWorkload creates an OperationSource that loops over a hot
// set of pages [0, hotPages) for a fraction hotRatio of all accesses.
// The remaining accesses go to random pages outside of the hot set.
func NewLoopingWorkload(pages, hotPages int, hotRatio float64, operations int, generator random.SingleThreadedGenerator) OperationSource {
	next := 0
	return &workload{
		remaining: operations,
		nextPage: func() PageID {
			if hotPages >= pages || generator.Float64() < hotRatio {
				page := PageID(next)
				next = (next + 1) % hotPages
				return page
			}
			return PageID(hotPages + generator.IntN(pages-hotPages))
		},
	}
}

// NewUniformWorkload creates an OperationSource that accesses pages in
// range [0, pages) with equal probability.
func NewUniformWorkload(pages, operations int, generator random.SingleThreadedGenerator) OperationSource {
	return &workload{
		remaining: operations,
		nextPage: func() PageID {
			return PageID(generator.IntN(pages))
		},
	}
}

// NewZipfWorkload creates an OperationSource that accesses pages in
// range [0, pages), where the probability of accessing page i is
// proportional to 1/(i+1)^skew.
func NewZipfWorkload(pages int, skew float64, operations int, generator random.SingleThreadedGenerator) OperationSource {
	cumulative := make([]float64, pages)
	sum := 0.0
	for i := range cumulative {
		sum += 1 / math.Pow(float64(i+1), skew)
		cumulative[i] = sum
	}
	for i := range cumulative {
		cumulative[i] /= sum
	}
	return &workload{
		remaining: operations,
		nextPage: func() PageID {
			// Guard against rounding errors in the last element.
			return PageID(min(sort.SearchFloat64s(cumulative, generator.Float64()), pages-1))
		},
	}
}
