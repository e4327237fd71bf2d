package events

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func CorrelationIDMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		correlationID := msg.Metadata.Get("correlation_id")
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		logger := zerolog.Ctx(msg.Context()).With().
			Str("correlation_id", correlationID).
			Str("message_uuid", msg.UUID).
			Logger()
		msg.SetContext(logger.WithContext(msg.Context()))

		return next(msg)
	}
}

func LoggingMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		logger := zerolog.Ctx(msg.Context())
		logger.Debug().
			RawJSON("payload", msg.Payload).
			Msg("handling a message")

		messages, err := next(msg)
		if err != nil {
			logger.Error().
				Err(err).
				RawJSON("payload", msg.Payload).
				Msg("message handling failed")
		}

		return messages, err
	}
}
