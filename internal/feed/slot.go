package feed

import "golang.org/x/sync/semaphore"

// slot admits at most one operation of a kind at a time. Callers that find
// it taken are turned away rather than queued.
type slot struct {
	sem *semaphore.Weighted
}

func newSlot() slot {
	return slot{sem: semaphore.NewWeighted(1)}
}

func (s slot) tryAcquire() bool {
	return s.sem.TryAcquire(1)
}

func (s slot) release() {
	s.sem.Release(1)
}
