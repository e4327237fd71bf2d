package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/eventstore"
)

// TxPublisher publishes freshly committed envelopes inside the append
// transaction, so fan-out (outbox) is atomic with the append itself.
type TxPublisher interface {
	PublishTx(ctx context.Context, tx *sqlx.Tx, envelopes []eventstore.Envelope) error
}

// Store persists streams in a single events table. The primary key
// (stream_id, sequence_number) is the concurrency control: of two
// writers appending at the same expected version, the second one
// violates the key and fails with a ConflictError.
type Store struct {
	db        *sqlx.DB
	publisher TxPublisher
	logger    zerolog.Logger

	now func() time.Time
}

var _ eventstore.Store = (*Store)(nil)

type Option func(*Store)

// WithTxPublisher registers the outbox hook invoked inside every
// append transaction.
func WithTxPublisher(p TxPublisher) Option {
	return func(s *Store) { s.publisher = p }
}

func NewStore(db *sqlx.DB, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		db:     db,
		logger: logger.With().Str("component", "eventstore").Logger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type eventRow struct {
	StreamID       string    `db:"stream_id"`
	SequenceNumber int64     `db:"sequence_number"`
	EventID        uuid.UUID `db:"event_id"`
	EventName      string    `db:"event_name"`
	Payload        []byte    `db:"payload"`
	OccurredAt     time.Time `db:"occurred_at"`
}

func (s *Store) ReadStream(ctx context.Context, streamID string) ([]eventstore.Envelope, error) {
	var rows []eventRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT stream_id, sequence_number, event_id, event_name, payload, occurred_at
		FROM events
		WHERE stream_id = $1
		ORDER BY sequence_number`,
		streamID,
	)
	if err != nil {
		return nil, fmt.Errorf("read stream %q: %w", streamID, err)
	}

	envelopes := make([]eventstore.Envelope, 0, len(rows))
	for _, row := range rows {
		ev, err := eventstore.UnmarshalEvent(row.EventName, row.Payload)
		if err != nil {
			return nil, fmt.Errorf("read stream %q at %d: %w", streamID, row.SequenceNumber, err)
		}
		envelopes = append(envelopes, eventstore.Envelope{
			StreamID:   row.StreamID,
			Sequence:   row.SequenceNumber,
			EventID:    row.EventID,
			Event:      ev,
			OccurredAt: row.OccurredAt,
		})
	}
	return envelopes, nil
}

func (s *Store) AppendToStream(ctx context.Context, streamID string, expectedVersion int64, events []domain.Event) (int64, error) {
	if len(events) == 0 {
		return expectedVersion, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("append to stream %q: begin: %w", streamID, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var current int64
	err = tx.GetContext(ctx, &current, `
		SELECT COALESCE(MAX(sequence_number), 0) FROM events WHERE stream_id = $1`,
		streamID,
	)
	if err != nil {
		return 0, fmt.Errorf("append to stream %q: current version: %w", streamID, err)
	}
	if current != expectedVersion {
		return 0, &eventstore.ConflictError{StreamID: streamID, Expected: expectedVersion, Actual: current}
	}

	occurredAt := s.now().UTC()
	envelopes := make([]eventstore.Envelope, 0, len(events))
	for i, ev := range events {
		payload, err := eventstore.MarshalEvent(ev)
		if err != nil {
			return 0, err
		}
		env := eventstore.Envelope{
			StreamID:   streamID,
			Sequence:   expectedVersion + int64(i) + 1,
			EventID:    uuid.New(),
			Event:      ev,
			OccurredAt: occurredAt,
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO events (stream_id, sequence_number, event_id, event_name, payload, occurred_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			env.StreamID, env.Sequence, env.EventID, ev.EventName(), payload, env.OccurredAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				// A concurrent writer won the race after our version check.
				return 0, &eventstore.ConflictError{StreamID: streamID, Expected: expectedVersion, Actual: -1}
			}
			return 0, fmt.Errorf("append to stream %q: insert: %w", streamID, err)
		}
		envelopes = append(envelopes, env)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishTx(ctx, tx, envelopes); err != nil {
			return 0, fmt.Errorf("append to stream %q: outbox publish: %w", streamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return 0, &eventstore.ConflictError{StreamID: streamID, Expected: expectedVersion, Actual: -1}
		}
		return 0, fmt.Errorf("append to stream %q: commit: %w", streamID, err)
	}

	newVersion := expectedVersion + int64(len(events))
	s.logger.Debug().
		Str("stream_id", streamID).
		Int64("version", newVersion).
		Int("events", len(events)).
		Msg("appended events")
	return newVersion, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
