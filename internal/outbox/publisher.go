package outbox

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	watermillSQL "github.com/ThreeDotsLabs/watermill-sql/v2/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/jmoiron/sqlx"

	"github.com/smartsolutionslab/orange-car-rental/internal/eventstore"
	"github.com/smartsolutionslab/orange-car-rental/internal/interfaces/events"
	"github.com/smartsolutionslab/orange-car-rental/internal/observability"
)

// Topic is the postgres outbox topic the forwarder drains.
const Topic = "events_to_forward"

// Publisher writes committed domain events into the outbox table
// within the same transaction as the event-store append. The
// forwarder ships them to redis afterwards, so downstream fan-out is
// at-least-once but never fires for an append that rolled back.
type Publisher struct {
	logger watermill.LoggerAdapter
}

func NewPublisher(logger watermill.LoggerAdapter) *Publisher {
	return &Publisher{logger: logger}
}

func (p *Publisher) PublishTx(ctx context.Context, tx *sqlx.Tx, envelopes []eventstore.Envelope) error {
	sqlPublisher, err := watermillSQL.NewPublisher(
		tx,
		watermillSQL.PublisherConfig{
			SchemaAdapter: watermillSQL.DefaultPostgreSQLSchema{},
		},
		p.logger,
	)
	if err != nil {
		return fmt.Errorf("create outbox publisher: %w", err)
	}

	forwarded := forwarder.NewPublisher(
		observability.PublisherWithTracing{Publisher: sqlPublisher},
		forwarder.PublisherConfig{ForwarderTopic: Topic},
	)

	bus, err := events.NewEventBus(forwarded, p.logger)
	if err != nil {
		return fmt.Errorf("create event bus: %w", err)
	}

	for _, env := range envelopes {
		if err := bus.Publish(ctx, env.Event); err != nil {
			return fmt.Errorf("publish %s: %w", env.Event.EventName(), err)
		}
	}
	return nil
}
