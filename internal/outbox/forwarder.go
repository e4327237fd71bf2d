package outbox

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	watermillSQL "github.com/ThreeDotsLabs/watermill-sql/v2/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Forwarder drains the postgres outbox topic and republishes to redis
// streams, where the projector subscribes.
type Forwarder struct {
	logger watermill.LoggerAdapter
	fwd    *forwarder.Forwarder
}

func NewForwarder(
	db *sqlx.DB,
	rdb *redis.Client,
	logger watermill.LoggerAdapter,
) (*Forwarder, error) {
	subscriber, err := watermillSQL.NewSubscriber(
		db,
		watermillSQL.SubscriberConfig{
			SchemaAdapter:  watermillSQL.DefaultPostgreSQLSchema{},
			OffsetsAdapter: watermillSQL.DefaultPostgreSQLOffsetsAdapter{},
			PollInterval:   100 * time.Millisecond,
			ResendInterval: 100 * time.Millisecond,
			RetryInterval:  100 * time.Millisecond,
		},
		logger,
	)
	if err != nil {
		return nil, err
	}

	if err := subscriber.SubscribeInitialize(Topic); err != nil {
		return nil, err
	}

	redisPublisher, err := NewRedisPublisher(logger, rdb)
	if err != nil {
		return nil, err
	}

	fwd, err := forwarder.NewForwarder(subscriber, redisPublisher,
		logger,
		forwarder.Config{
			ForwarderTopic: Topic,
		},
	)
	if err != nil {
		return nil, err
	}

	return &Forwarder{
		fwd:    fwd,
		logger: logger,
	}, nil
}

// Run blocks until the forwarder stops or ctx is cancelled.
func (f *Forwarder) Run(ctx context.Context) error {
	return f.fwd.Run(ctx)
}

func (f *Forwarder) Running() <-chan struct{} {
	return f.fwd.Running()
}

func NewRedisPublisher(
	logger watermill.LoggerAdapter,
	redisClient *redis.Client,
) (message.Publisher, error) {
	return redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: redisClient,
	}, logger)
}
