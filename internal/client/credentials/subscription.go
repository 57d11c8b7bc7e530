package credentials

import (
	"context"
	"sync"

	"github.com/embario/jukeclient/internal/client/models"
)

// Subscription delivers credential changes on Updates. A nil value means
// signed out. The channel is closed once the subscription ends.
type Subscription struct {
	store *Store
	out   chan *models.Snapshot

	mu    sync.Mutex
	queue []*models.Snapshot
	wake  chan struct{}

	done chan struct{}
	once sync.Once
}

func newSubscription(store *Store) *Subscription {
	return &Subscription{
		store: store,
		out:   make(chan *models.Snapshot),
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

func (s *Subscription) Updates() <-chan *models.Snapshot {
	return s.out
}

// Close ends the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		close(s.done)
		s.store.remove(s)
	})
}

// push never blocks.
func (s *Subscription) push(v *models.Snapshot) {
	s.mu.Lock()
	s.queue = append(s.queue, v)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Subscription) pop() (*models.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil, false
	}
	v := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	return v, true
}

func (s *Subscription) pump(ctx context.Context) {
	defer close(s.out)

	for {
		v, ok := s.pop()
		if !ok {
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			case <-ctx.Done():
				s.Close()
				return
			}
		}

		select {
		case s.out <- v:
		case <-s.done:
			return
		case <-ctx.Done():
			s.Close()
			return
		}
	}
}
