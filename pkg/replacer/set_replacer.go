package replacer

import (
	"sync"

	"github.com/buildbarn/bb-replacer/pkg/eviction"
)

type setReplacerFrame struct {
	tracked   bool
	evictable bool
}

type setReplacer struct {
	capacity int

	lock         sync.Mutex
	frames       []setReplacerFrame
	trackedCount int
	// Contains exactly the frames that are tracked and evictable.
	set eviction.Set[FrameID]
}

// NewSetReplacer creates a Replacer that selects victims through a
// single eviction.Set, making it possible to use policies such as
// FIFO, LRU and RR. Only evictable frames are part of the set, meaning
// that for FIFO the eviction order corresponds to the order in which
// frames became evictable.
//
// The set must be empty and may not be used by anything else.
func NewSetReplacer(capacity int, set eviction.Set[FrameID]) (Replacer, error) {
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	return &setReplacer{
		capacity: capacity,
		frames:   make([]setReplacerFrame, capacity),
		set:      set,
	}, nil
}

func (r *setReplacer) RecordAccess(frameID FrameID) error {
	if err := checkFrameID(frameID, r.capacity); err != nil {
		return err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	f := &r.frames[frameID]
	if !f.tracked {
		if r.trackedCount >= r.capacity {
			return capacityExceededError(r.capacity)
		}
		f.tracked = true
		r.trackedCount++
	} else if f.evictable {
		r.set.Touch(frameID)
	}
	return nil
}

func (r *setReplacer) SetEvictable(frameID FrameID, evictable bool) error {
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
			r.set.Insert(frameID)
		} else {
			r.set.Delete(frameID)
		}
	}
	return nil
}

func (r *setReplacer) Evict() (FrameID, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.set.Len() == 0 {
		return 0, false
	}
	frameID := r.set.Peek()
	r.set.Remove()
	r.frames[frameID] = setReplacerFrame{}
	r.trackedCount--
	return frameID, true
}

func (r *setReplacer) Remove(frameID FrameID) error {
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
	r.set.Delete(frameID)
	*f = setReplacerFrame{}
	r.trackedCount--
	return nil
}

func (r *setReplacer) Size() int {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.set.Len()
}
