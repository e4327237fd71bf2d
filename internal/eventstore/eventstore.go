package eventstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
)

// NoStream is the expected version asserting that a stream must not
// exist yet. Sequence numbers start at 1, so a stream's current
// version equals the sequence number of its last event.
const NoStream int64 = 0

// Envelope wraps a domain event with the stream position and metadata
// assigned at append time. Once persisted, envelopes are immutable
// history.
type Envelope struct {
	StreamID   string
	Sequence   int64
	EventID    uuid.UUID
	Event      domain.Event
	OccurredAt time.Time
}

// Store is an append-only per-stream event log with optimistic
// concurrency control.
//
// Implementations must guarantee that appends to one stream are
// atomic and isolated: two concurrent appends at the same expected
// version cannot both succeed.
type Store interface {
	// ReadStream returns the stream's envelopes in sequence order.
	// An absent stream yields an empty slice, not an error.
	ReadStream(ctx context.Context, streamID string) ([]Envelope, error)

	// AppendToStream appends events atomically and returns the new
	// current version. expectedVersion is either NoStream (the stream
	// must not exist) or the exact last-seen version. A mismatch at
	// write time fails with a ConflictError; the stream is left
	// unmodified.
	AppendToStream(ctx context.Context, streamID string, expectedVersion int64, events []domain.Event) (int64, error)

	Close() error
}

// StreamID builds the stream name for one aggregate instance.
func StreamID(aggregateType string, id uuid.UUID) string {
	return aggregateType + "-" + id.String()
}

// ErrConflict matches any optimistic-concurrency failure via errors.Is.
var ErrConflict = errors.New("stream revision conflict")

// ConflictError reports an expected-version mismatch at append time.
// Actual is -1 when the store detected the conflict without reading
// the winning version.
type ConflictError struct {
	StreamID string
	Expected int64
	Actual   int64
}

func (e *ConflictError) Error() string {
	if e.Actual < 0 {
		return fmt.Sprintf("stream %q: revision conflict at expected version %d", e.StreamID, e.Expected)
	}
	return fmt.Sprintf("stream %q: expected version %d, actual %d", e.StreamID, e.Expected, e.Actual)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
