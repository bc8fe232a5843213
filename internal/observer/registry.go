// Package observer implements a small publish/subscribe registry used to tell
// views that a collection changed. Publish carries no payload; listeners
// re-read whatever state they render.
//
// The registry only holds its subscriptions weakly. A caller keeps receiving
// notifications for as long as it keeps the *Subscription returned by
// Subscribe; once that value is unreachable the entry disappears on the next
// garbage collection without any explicit Unsubscribe.
package observer

import (
	"runtime"
	"sync"
	"weak"
)

// Subscription is the handle returned by Subscribe. Keep it to stay
// subscribed.
type Subscription struct {
	id     uint64
	notify func()
}

// Registry fans a notification out to every live subscriber. The zero value
// is ready to use.
type Registry struct {
	mu   sync.Mutex
	next uint64
	subs map[uint64]weak.Pointer[Subscription]
}

// Subscribe registers fn. It is called once per Publish until the returned
// Subscription is passed to Unsubscribe or dropped by the caller.
func (r *Registry) Subscribe(fn func()) *Subscription {
	if fn == nil {
		fn = func() {}
	}
	sub := &Subscription{notify: fn}

	r.mu.Lock()
	if r.subs == nil {
		r.subs = make(map[uint64]weak.Pointer[Subscription])
	}
	r.next++
	sub.id = r.next
	r.subs[sub.id] = weak.Make(sub)
	r.mu.Unlock()

	runtime.AddCleanup(sub, r.forget, sub.id)
	return sub
}

// Unsubscribe removes sub. Unknown or nil subscriptions are ignored.
func (r *Registry) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	r.forget(sub.id)
}

// Publish invokes every live listener exactly once on the caller's goroutine.
// Listeners may call back into the registry.
func (r *Registry) Publish() {
	r.mu.Lock()
	live := make([]*Subscription, 0, len(r.subs))
	for id, wp := range r.subs {
		sub := wp.Value()
		if sub == nil {
			delete(r.subs, id)
			continue
		}
		live = append(live, sub)
	}
	r.mu.Unlock()

	for _, sub := range live {
		sub.notify()
	}
}

// Len reports the number of subscriptions still reachable.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, wp := range r.subs {
		if wp.Value() != nil {
			n++
		}
	}
	return n
}

func (r *Registry) forget(id uint64) {
	r.mu.Lock()
	delete(r.subs, id)
	r.mu.Unlock()
}
