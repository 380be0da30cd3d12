package lock

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-pass-guard/models"
)

// broadcaster fans state values out to subscribers. Each subscriber channel
// holds at most one value: a slow reader sees the latest state, not every
// intermediate one.
type broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan models.LockState
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[int]chan models.LockState)}
}

// subscribe registers a channel primed with current. The channel is closed
// once ctx is done. No goroutine waits on ctx, so a subscription on a
// context that is never done costs only its map entry.
func (b *broadcaster) subscribe(ctx context.Context, current models.LockState) <-chan models.LockState {
	ch := make(chan models.LockState, 1)
	ch <- current

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	context.AfterFunc(ctx, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	})

	return ch
}

// publish replaces whatever value is pending on every subscriber with s.
// Sends never block: publish is the only writer and runs under b.mu.
func (b *broadcaster) publish(s models.LockState) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

func (b *broadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
