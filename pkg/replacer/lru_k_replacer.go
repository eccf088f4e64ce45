package replacer

import (
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type lruKFrame struct {
	// Neighbours within the frame's queue, stored as indices into
	// lruKReplacer.frames.
	older int
	newer int

	// Number of accesses, saturating at k.
	accessCount int
	tracked     bool
	evictable   bool
}

type lruKReplacer struct {
	capacity int
	k        int

	lock sync.Mutex
	// Frame records, indexed by frame ID. The two trailing elements
	// are the heads of the cold and hot queues. Queues are circular,
	// with the head's newer neighbour being the oldest element.
	frames         []lruKFrame
	trackedCount   int
	evictableCount int
}

// NewLRUKReplacer creates a Replacer that implements the LRU-K
// replacement policy, tracking up to capacity frames.
//
// Frames with fewer than k recorded accesses have an infinite backward
// k-distance. They are kept in a cold queue, ordered by their last
// access, and are always evicted first. Frames with k or more accesses
// are kept in a hot queue, where the least recently accessed frame is
// evicted first. For k = 1 this is identical to plain LRU.
//
// https://en.wikipedia.org/wiki/Page_replacement_algorithm#Variants_on_LRU
func NewLRUKReplacer(capacity, k int) (Replacer, error) {
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	if k < 1 {
		return nil, status.Errorf(codes.InvalidArgument, "K must be positive, while %d was provided", k)
	}
	r := &lruKReplacer{
		capacity: capacity,
		k:        k,
		frames:   make([]lruKFrame, capacity+2),
	}
	for _, head := range []int{r.coldHead(), r.hotHead()} {
		r.frames[head].older = head
		r.frames[head].newer = head
	}
	return r, nil
}

func (r *lruKReplacer) coldHead() int {
	return r.capacity
}

func (r *lruKReplacer) hotHead() int {
	return r.capacity + 1
}

// headFor returns the queue in which a frame with a given number of
// accesses belongs.
func (r *lruKReplacer) headFor(accessCount int) int {
	if accessCount < r.k {
		return r.coldHead()
	}
	return r.hotHead()
}

func (r *lruKReplacer) insertIntoQueue(index, head int) {
	f := &r.frames[index]
	f.older = r.frames[head].older
	f.newer = head
	r.frames[f.older].newer = index
	r.frames[head].older = index
}

func (r *lruKReplacer) removeFromQueue(index int) {
	f := &r.frames[index]
	r.frames[f.older].newer = f.newer
	r.frames[f.newer].older = f.older
}

func (r *lruKReplacer) untrack(index int) {
	r.removeFromQueue(index)
	if r.frames[index].evictable {
		r.evictableCount--
	}
	r.trackedCount--
	r.frames[index] = lruKFrame{}
}

func (r *lruKReplacer) RecordAccess(frameID FrameID) error {
	if err := checkFrameID(frameID, r.capacity); err != nil {
		return err
	}
	index := int(frameID)

	r.lock.Lock()
	defer r.lock.Unlock()

	f := &r.frames[index]
	if !f.tracked {
		if r.trackedCount >= r.capacity {
			return capacityExceededError(r.capacity)
		}
		*f = lruKFrame{
			accessCount: 1,
			tracked:     true,
		}
		r.trackedCount++
		r.insertIntoQueue(index, r.headFor(1))
		return nil
	}

	// Move the frame to the back of its queue. Once the frame
	// reaches k accesses, this moves it from the cold queue to the
	// hot queue. It never moves back.
	if f.accessCount < r.k {
		f.accessCount++
	}
	r.removeFromQueue(index)
	r.insertIntoQueue(index, r.headFor(f.accessCount))
	return nil
}

func (r *lruKReplacer) SetEvictable(frameID FrameID, evictable bool) error {
	if err := checkFrameID(frameID, r.capacity); err != nil {
		return err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	f := &r.frames[frameID]
	if !f.tracked {
		return frameNotTrackedError(frameID)
	}
	if f.evictable != evictable {
		f.evictable = evictable
		if evictable {
			r.evictableCount++
		} else {
			r.evictableCount--
		}
	}
	return nil
}

func (r *lruKReplacer) Evict() (FrameID, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.evictableCount == 0 {
		return 0, false
	}
	for _, head := range []int{r.coldHead(), r.hotHead()} {
		for index := r.frames[head].newer; index != head; index = r.frames[index].newer {
			if r.frames[index].evictable {
				r.untrack(index)
				return FrameID(index), true
			}
		}
	}
	panic("Evictable frame count is positive, but no evictable frames were found")
}

func (r *lruKReplacer) Remove(frameID FrameID) error {
	if err := checkFrameID(frameID, r.capacity); err != nil {
		return err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	f := &r.frames[frameID]
	if !f.tracked {
		return nil
	}
	if !f.evictable {
		return frameNotEvictableError(frameID)
	}
	r.untrack(int(frameID))
	return nil
}

func (r *lruKReplacer) Size() int {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.evictableCount
}
