package realtime

import (
	"sync"

	"github.com/rs/zerolog"
)

// EventNewRiskArea is emitted when a high-severity risk area is declared
const EventNewRiskArea = "new_risk_area"

// Event is a message pushed to every connected client
type Event struct {
	Name string      `json:"event"`
	Data interface{} `json:"data"`
}

// RiskAreaEvent is the payload of a new_risk_area event
type RiskAreaEvent struct {
	ID        int64   `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Severity  string  `json:"severity"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
}

// Hub is an in-memory registry of connected clients. Delivery is
// best-effort: events sent while a subscriber's buffer is full are dropped,
// and nothing is replayed after reconnect.
type Hub struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	closed bool
	log    zerolog.Logger
}

// NewHub creates an empty hub
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		subs: make(map[chan Event]struct{}),
		log:  log.With().Str("component", "realtime").Logger(),
	}
}

// Subscribe registers a new client and returns its event channel
func (h *Hub) Subscribe(buffer int) chan Event {
	ch := make(chan Event, buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	h.subs[ch] = struct{}{}
	h.log.Debug().Int("clients", len(h.subs)).Msg("Client subscribed")
	return ch
}

// Unsubscribe removes a client and closes its channel
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; !ok {
		return
	}
	delete(h.subs, ch)
	close(ch)
	h.log.Debug().Int("clients", len(h.subs)).Msg("Client unsubscribed")
}

// Broadcast delivers an event to every connected client without blocking.
// Slow clients miss the event.
func (h *Hub) Broadcast(evt Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	dropped := 0
	for ch := range h.subs {
		select {
		case ch <- evt:
		default:
			dropped++
		}
	}

	h.log.Info().
		Str("event", evt.Name).
		Int("clients", len(h.subs)).
		Int("dropped", dropped).
		Msg("Event broadcast")
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close drops all clients; subsequent subscriptions get a closed channel
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}
