package eventstore

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/smartsolutionslab/orange-car-rental/internal/domain"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/customer"
	"github.com/smartsolutionslab/orange-car-rental/internal/domain/reservation"
)

// The codec maps stable event names to JSON payloads. Persisted
// payloads outlive code, so every event type must be registered here;
// decoding an unregistered name fails loudly instead of dropping the
// event.

type decodeFunc func(data []byte) (domain.Event, error)

var (
	codecMu  sync.RWMutex
	decoders = map[string]decodeFunc{}
)

func init() {
	registerEvent[reservation.Created]()
	registerEvent[reservation.Confirmed]()
	registerEvent[reservation.Cancelled]()
	registerEvent[reservation.Activated]()
	registerEvent[reservation.Completed]()
	registerEvent[reservation.MarkedNoShow]()

	registerEvent[customer.Registered]()
	registerEvent[customer.ProfileUpdated]()
	registerEvent[customer.LicenseUpdated]()
	registerEvent[customer.EmailChanged]()
	registerEvent[customer.StatusChanged]()
}

func registerEvent[E domain.Event]() {
	var zero E
	name := zero.EventName()

	codecMu.Lock()
	defer codecMu.Unlock()

	if _, exists := decoders[name]; exists {
		panic(fmt.Sprintf("eventstore: event already registered: %s", name))
	}
	decoders[name] = func(data []byte) (domain.Event, error) {
		var ev E
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("decode event %s: %w", name, err)
		}
		return ev, nil
	}
}

// MarshalEvent serializes an event payload for storage.
func MarshalEvent(ev domain.Event) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", ev.EventName(), err)
	}
	return data, nil
}

// UnmarshalEvent decodes a stored payload by its registered name.
func UnmarshalEvent(name string, data []byte) (domain.Event, error) {
	codecMu.RLock()
	decode, ok := decoders[name]
	codecMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown event name %q", name)
	}
	return decode(data)
}
