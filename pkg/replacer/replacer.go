package replacer

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FrameID identifies a fixed-size slot of a page cache. Frame IDs of a
// replacer with capacity n are in range [0, n).
type FrameID int

// Replacer decides which frame of a page cache should be reused when
// the cache is full. The page cache calls RecordAccess() whenever a
// frame is accessed, SetEvictable() whenever a frame's pin count drops
// to zero or becomes non-zero, Evict() when it needs a free frame and
// Remove() when the contents of a frame are discarded explicitly.
//
// Errors returned by these methods indicate that the caller violated
// the contract of the replacer. They carry the following codes:
//
//   - INVALID_ARGUMENT: the frame ID is out of range, or the frame is
//     not tracked by the replacer.
//   - RESOURCE_EXHAUSTED: the replacer already tracks its maximum
//     number of frames.
//   - FAILED_PRECONDITION: the frame cannot be removed, as it is not
//     evictable.
//
// Implementations are safe for concurrent use.
type Replacer interface {
	// RecordAccess records that a frame has been accessed. Frames
	// that are not tracked yet start being tracked. Newly tracked
	// frames are not evictable.
	RecordAccess(frameID FrameID) error

	// SetEvictable marks whether a tracked frame may be chosen as a
	// victim. This has no effect on the frame's access history.
	SetEvictable(frameID FrameID, evictable bool) error

	// Evict selects a victim among the evictable frames and stops
	// tracking it. The boolean is false if none of the tracked frames
	// is evictable. This is not an error, but a sign of backpressure
	// that the caller needs to propagate.
	Evict() (FrameID, bool)

	// Remove stops tracking an evictable frame, discarding its
	// access history. Removing a frame that is not tracked is a
	// no-op.
	Remove(frameID FrameID) error

	// Size returns the number of evictable frames.
	Size() int
}

func checkFrameID(frameID FrameID, capacity int) error {
	if frameID < 0 || int(frameID) >= capacity {
		return status.Errorf(codes.InvalidArgument, "Frame %d is not within range [0, %d)", frameID, capacity)
	}
	return nil
}

func checkCapacity(capacity int) error {
	if capacity < 1 {
		return status.Errorf(codes.InvalidArgument, "Capacity must be positive, while %d was provided", capacity)
	}
	return nil
}

func frameNotTrackedError(frameID FrameID) error {
	return status.Errorf(codes.InvalidArgument, "Frame %d is not tracked", frameID)
}

func frameNotEvictableError(frameID FrameID) error {
	return status.Errorf(codes.FailedPrecondition, "Frame %d is not evictable", frameID)
}

func capacityExceededError(capacity int) error {
	return status.Errorf(codes.ResourceExhausted, "Replacer already tracks the maximum number of %d frames", capacity)
}
