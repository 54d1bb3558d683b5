package realtime

import (
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EventType tags a change notification.
type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
	EventAll    EventType = "*"

	// EventSignedOut is published on the auth topic when a session ends.
	EventSignedOut EventType = "signed_out"
)

// TopicAuth carries identity events. Every other topic is a table name.
const TopicAuth = "auth"

// Event is delivered to subscribers of a topic.
type Event struct {
	Topic     string    `json:"topic"`
	Type      EventType `json:"type"`
	RecordID  string    `json:"record_id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher accepts change notifications.
type Publisher interface {
	Publish(evt Event)
}

// Subscriber registers handlers for a topic. The returned function cancels the subscription.
type Subscriber interface {
	Subscribe(topic string, eventType EventType, fn func(Event)) (func(), error)
}

// NopPublisher drops every event. Used when changes already arrive from the database listener.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}

type listener struct {
	eventType EventType
	fn        func(Event)
}

// Hub fans change notifications out to in-process subscribers.
// EventBus routes per topic and runs each topic's dispatcher asynchronously,
// one event at a time, so publishers never block on slow subscribers and a
// topic's subscribers see its events in publish order. The hub keeps its own
// listener registry so that subscriptions created from the same closure can be
// cancelled individually. Subscribers must not publish to their own topic.
type Hub struct {
	bus    EventBus.Bus
	logger zerolog.Logger

	// topicMu serializes bus registration and is never held with mu.
	topicMu   sync.Mutex
	mu        sync.RWMutex
	listeners map[string]map[uuid.UUID]listener
}

func NewHub() *Hub {
	return &Hub{
		bus:       EventBus.New(),
		logger:    log.With().Str("component", "realtimeHub").Logger(),
		listeners: make(map[string]map[uuid.UUID]listener),
	}
}

// Subscribe registers fn for events on topic. EventAll matches every event type.
func (h *Hub) Subscribe(topic string, eventType EventType, fn func(Event)) (func(), error) {
	if err := h.ensureTopic(topic); err != nil {
		return nil, err
	}

	id := uuid.New()
	h.mu.Lock()
	h.listeners[topic][id] = listener{eventType: eventType, fn: fn}
	h.mu.Unlock()
	h.logger.Debug().Str("topic", topic).Str("event", string(eventType)).Msg("Subscribed")

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners[topic], id)
			h.mu.Unlock()
		})
	}, nil
}

func (h *Hub) ensureTopic(topic string) error {
	h.topicMu.Lock()
	defer h.topicMu.Unlock()

	h.mu.RLock()
	_, ok := h.listeners[topic]
	h.mu.RUnlock()
	if ok {
		return nil
	}

	if err := h.bus.SubscribeAsync(topic, h.dispatch, true); err != nil {
		return err
	}

	h.mu.Lock()
	h.listeners[topic] = make(map[uuid.UUID]listener)
	h.mu.Unlock()
	return nil
}

// Publish queues evt for every matching subscriber of evt.Topic.
func (h *Hub) Publish(evt Event) {
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	h.mu.RLock()
	_, subscribed := h.listeners[evt.Topic]
	h.mu.RUnlock()
	if !subscribed {
		return
	}
	h.bus.Publish(evt.Topic, evt)
}

// Wait blocks until every published event has been delivered.
func (h *Hub) Wait() {
	h.bus.WaitAsync()
}

func (h *Hub) dispatch(evt Event) {
	h.mu.RLock()
	matched := make([]func(Event), 0, len(h.listeners[evt.Topic]))
	for _, l := range h.listeners[evt.Topic] {
		if l.eventType == EventAll || l.eventType == evt.Type {
			matched = append(matched, l.fn)
		}
	}
	h.mu.RUnlock()

	for _, fn := range matched {
		fn(evt)
	}
}
