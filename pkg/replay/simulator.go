// Package replay contains a simulated page cache that can be used to
// replay synthetic workloads and traces against a replacer, measuring
// how effective its replacement policy is.
package replay

import (
	"context"
	"io"

	"github.com/buildbarn/bb-replacer/pkg/replacer"
	"github.com/buildbarn/bb-replacer/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Statistics of operations processed by a Simulator. Every access is
// either a hit or a miss. Misses for which no frame could be obtained,
// because all frames were pinned, are also counted as rejected.
type Statistics struct {
	Accesses  int
	Hits      int
	Misses    int
	Evictions int
	Rejected  int
	Deletes   int
}

// HitRatio returns the fraction of accesses that were hits.
func (s Statistics) HitRatio() float64 {
	if s.Accesses == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Accesses)
}

type simulatedFrame struct {
	page     PageID
	pinCount int
}

// Simulator of a page cache. It keeps track of which page is stored in
// which frame, but does not store any page contents. Frames are taken
// from a free list first. Once exhausted, the replacer is asked to
// provide a victim.
//
// Every access pins the page's frame for the subsequent pinWindow
// operations, preventing it from being evicted or deleted. This mimics
// a workload where pages are in use for some time after being fetched.
//
// Simulator is not safe for concurrent use.
type Simulator struct {
	replacer replacer.Replacer

	frames     []simulatedFrame
	freeFrames []replacer.FrameID
	pageTable  map[PageID]replacer.FrameID

	// Frames to unpin, indexed by operation number modulo the
	// length of the slice.
	unpinSchedule [][]replacer.FrameID
	operation     int

	statistics Statistics
}

// NewSimulator creates a Simulator of a page cache that has a given
// number of frames. The replacer must have a capacity of at least that
// number of frames, and may not track any frames.
func NewSimulator(frames int, r replacer.Replacer, pinWindow int) (*Simulator, error) {
	if frames <= 0 {
		return nil, status.Errorf(codes.InvalidArgument, "Number of frames must be positive, while %d was provided", frames)
	}
	if pinWindow < 0 {
		return nil, status.Errorf(codes.InvalidArgument, "Pin window cannot be negative, while %d was provided", pinWindow)
	}
	s := &Simulator{
		replacer:      r,
		frames:        make([]simulatedFrame, frames),
		freeFrames:    make([]replacer.FrameID, 0, frames),
		pageTable:     make(map[PageID]replacer.FrameID, frames),
		unpinSchedule: make([][]replacer.FrameID, pinWindow+1),
	}
	// Hand out frames in ascending order.
	for i := frames - 1; i >= 0; i-- {
		s.freeFrames = append(s.freeFrames, replacer.FrameID(i))
	}
	return s, nil
}

// Statistics returns the statistics of all operations processed so far.
func (s *Simulator) Statistics() Statistics {
	return s.statistics
}

// Lookup returns the frame in which a page is stored.
func (s *Simulator) Lookup(page PageID) (replacer.FrameID, bool) {
	frameID, ok := s.pageTable[page]
	return frameID, ok
}

func (s *Simulator) pin(frameID replacer.FrameID) error {
	f := &s.frames[frameID]
	if f.pinCount == 0 {
		if err := s.replacer.SetEvictable(frameID, false); err != nil {
			return util.StatusWrapf(err, "Failed to pin frame %d", frameID)
		}
	}
	f.pinCount++
	slot := (s.operation + len(s.unpinSchedule) - 1) % len(s.unpinSchedule)
	s.unpinSchedule[slot] = append(s.unpinSchedule[slot], frameID)
	return nil
}

// completeOperation releases all pins that expire at the end of the
// current operation.
func (s *Simulator) completeOperation() error {
	slot := s.operation % len(s.unpinSchedule)
	frameIDs := s.unpinSchedule[slot]
	s.unpinSchedule[slot] = frameIDs[:0]
	s.operation++
	for _, frameID := range frameIDs {
		f := &s.frames[frameID]
		f.pinCount--
		if f.pinCount == 0 {
			if err := s.replacer.SetEvictable(frameID, true); err != nil {
				return util.StatusWrapf(err, "Failed to unpin frame %d", frameID)
			}
		}
	}
	return nil
}

// obtainFrame returns a frame in which a page may be loaded. The
// boolean is false if no frame is available.
func (s *Simulator) obtainFrame() (replacer.FrameID, bool) {
	if n := len(s.freeFrames); n > 0 {
		frameID := s.freeFrames[n-1]
		s.freeFrames = s.freeFrames[:n-1]
		return frameID, true
	}
	frameID, ok := s.replacer.Evict()
	if !ok {
		return 0, false
	}
	delete(s.pageTable, s.frames[frameID].page)
	s.statistics.Evictions++
	return frameID, true
}

// Access a page, loading it into a frame if it isn't present.
func (s *Simulator) Access(page PageID) error {
	s.statistics.Accesses++
	if frameID, ok := s.pageTable[page]; ok {
		s.statistics.Hits++
		if err := s.replacer.RecordAccess(frameID); err != nil {
			return util.StatusWrapf(err, "Failed to record access to page %d", page)
		}
		if err := s.pin(frameID); err != nil {
			return err
		}
		return s.completeOperation()
	}

	s.statistics.Misses++
	frameID, ok := s.obtainFrame()
	if !ok {
		s.statistics.Rejected++
		return s.completeOperation()
	}
	s.pageTable[page] = frameID
	s.frames[frameID] = simulatedFrame{page: page}
	if err := s.replacer.RecordAccess(frameID); err != nil {
		return util.StatusWrapf(err, "Failed to record access to page %d", page)
	}
	// Newly tracked frames are not evictable, so pinning doesn't
	// require calling into the replacer.
	s.frames[frameID].pinCount = 1
	slot := (s.operation + len(s.unpinSchedule) - 1) % len(s.unpinSchedule)
	s.unpinSchedule[slot] = append(s.unpinSchedule[slot], frameID)
	return s.completeOperation()
}

// Delete a page from the page cache, returning its frame to the free
// list. Deleting a page that is not present is a no-op. Pages that are
// pinned cannot be deleted.
func (s *Simulator) Delete(page PageID) error {
	frameID, ok := s.pageTable[page]
	if ok {
		if err := s.replacer.Remove(frameID); err != nil {
			// Keep the operation count consistent, so that
			// pins still expire.
			if errComplete := s.completeOperation(); errComplete != nil {
				return errComplete
			}
			return util.StatusWrapf(err, "Failed to delete page %d", page)
		}
		delete(s.pageTable, page)
		s.frames[frameID] = simulatedFrame{}
		s.freeFrames = append(s.freeFrames, frameID)
		s.statistics.Deletes++
	}
	return s.completeOperation()
}

// Apply a single operation.
func (s *Simulator) Apply(operation Operation) error {
	switch operation.Kind {
	case OperationAccess:
		return s.Access(operation.Page)
	case OperationDelete:
		return s.Delete(operation.Page)
	default:
		return status.Errorf(codes.InvalidArgument, "Unknown operation kind %d", operation.Kind)
	}
}

// Run all operations yielded by an OperationSource, until the source
// is exhausted or the context is canceled.
func (s *Simulator) Run(ctx context.Context, source OperationSource) error {
	for i := 0; ; i++ {
		if i%1024 == 0 {
			if err := util.StatusFromContext(ctx); err != nil {
				return err
			}
		}
		operation, err := source.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if err := s.Apply(operation); err != nil {
			return util.StatusWrapf(err, "Operation %d", i)
		}
	}
}
