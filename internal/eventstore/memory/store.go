package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/eventstore"
)

// Store is an in-process event store used by tests and local runs.
// Appends are serialized by a single mutex, which gives the same
// per-stream isolation guarantee the SQL store gets from its
// primary key.
type Store struct {
	mu      sync.RWMutex
	streams map[string][]eventstore.Envelope
	feed    chan eventstore.Envelope
	closed  bool

	now func() time.Time
}

var _ eventstore.Store = (*Store)(nil)

// NewStore creates a store whose committed-event feed buffers up to
// buffer envelopes. Envelopes beyond the buffer are dropped from the
// feed (never from the log).
func NewStore(buffer int) *Store {
	return &Store{
		streams: make(map[string][]eventstore.Envelope),
		feed:    make(chan eventstore.Envelope, buffer),
		now:     time.Now,
	}
}

func (s *Store) ReadStream(ctx context.Context, streamID string) ([]eventstore.Envelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stream := s.streams[streamID]
	out := make([]eventstore.Envelope, len(stream))
	copy(out, stream)
	return out, nil
}

func (s *Store) AppendToStream(ctx context.Context, streamID string, expectedVersion int64, events []domain.Event) (int64, error) {
	if len(events) == 0 {
		return expectedVersion, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A cancellation that arrives before the append completes must
	// leave the stream unmodified.
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	current := int64(len(s.streams[streamID]))
	if current != expectedVersion {
		return 0, &eventstore.ConflictError{StreamID: streamID, Expected: expectedVersion, Actual: current}
	}

	occurredAt := s.now()
	for i, ev := range events {
		env := eventstore.Envelope{
			StreamID:   streamID,
			Sequence:   expectedVersion + int64(i) + 1,
			EventID:    uuid.New(),
			Event:      ev,
			OccurredAt: occurredAt,
		}
		s.streams[streamID] = append(s.streams[streamID], env)

		if !s.closed {
			select {
			case s.feed <- env:
			default:
				// Feed consumers that fall behind miss envelopes; the
				// log itself stays complete.
			}
		}
	}

	return int64(len(s.streams[streamID])), nil
}

// Feed exposes committed envelopes for in-process subscribers.
func (s *Store) Feed() <-chan eventstore.Envelope {
	return s.feed
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.feed)
	}
	return nil
}
