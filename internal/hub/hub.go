// Package hub implements the in-process fan-out for live websocket traffic.
// Every connection registers a session keyed by user ID, so an event sent to a
// user reaches all of their devices. Sessions may additionally subscribe to
// typed topics, e.g. a provider's live location.
package hub

import (
	"encoding/json"
	"log/slog"
	"sync"

	"bazaar/internal/domain/service"

	"github.com/google/uuid"
)

// TopicKind names a class of broadcast topics.
type TopicKind string

// TopicProviderLocation carries a provider's live location updates.
const TopicProviderLocation TopicKind = "provider_location"

// Topic identifies one broadcast channel. The zero value is not a valid topic.
type Topic struct {
	Kind TopicKind
	ID   uuid.UUID
}

// ProviderLocationTopic returns the topic carrying a provider's live location.
func ProviderLocationTopic(providerID uuid.UUID) Topic {
	return Topic{Kind: TopicProviderLocation, ID: providerID}
}

// Session is one live connection's view of the hub. The transport layer reads
// Outbound and writes frames to the socket; the hub never touches the socket.
type Session struct {
	id     uuid.UUID
	userID uuid.UUID
	send   chan []byte
}

// ID returns the session's unique ID.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// UserID returns the user this session authenticated as.
func (s *Session) UserID() uuid.UUID {
	return s.userID
}

// Outbound returns the channel of frames to write to the socket.
// The channel is closed when the session is unregistered.
func (s *Session) Outbound() <-chan []byte {
	return s.send
}

// Hub routes events to live sessions. All methods are safe for concurrent use.
// Delivery is best effort: a session whose outbound buffer is full has the
// event dropped rather than blocking the publisher.
type Hub struct {
	logger  *slog.Logger
	bufSize int

	mu            sync.RWMutex
	rooms         map[uuid.UUID]map[*Session]struct{} // by user ID
	topics        map[Topic]map[*Session]struct{}
	subscriptions map[*Session]map[Topic]struct{}
}

// New creates a Hub. sendBufferSize is the per-session outbound queue length.
func New(sendBufferSize int, logger *slog.Logger) *Hub {
	if sendBufferSize <= 0 {
		sendBufferSize = 32
	}

	return &Hub{
		logger:        logger,
		bufSize:       sendBufferSize,
		rooms:         make(map[uuid.UUID]map[*Session]struct{}),
		topics:        make(map[Topic]map[*Session]struct{}),
		subscriptions: make(map[*Session]map[Topic]struct{}),
	}
}

// Register creates a session for the user and joins their personal room.
func (h *Hub) Register(userID uuid.UUID) *Session {
	s := &Session{
		id:     uuid.New(),
		userID: userID,
		send:   make(chan []byte, h.bufSize),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[userID]
	if !ok {
		room = make(map[*Session]struct{})
		h.rooms[userID] = room
	}
	room[s] = struct{}{}

	return s
}

// Unregister removes the session from its room and every topic, then closes
// its outbound channel. Safe to call more than once.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[s.userID]
	if !ok {
		return
	}
	if _, member := room[s]; !member {
		return
	}

	delete(room, s)
	if len(room) == 0 {
		delete(h.rooms, s.userID)
	}

	for topic := range h.subscriptions[s] {
		h.dropFromTopic(s, topic)
	}
	delete(h.subscriptions, s)

	close(s.send)
}

// Subscribe adds the session to a topic. Subscribing twice is a no-op.
func (h *Hub) Subscribe(s *Session, topic Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.topics[topic]
	if !ok {
		members = make(map[*Session]struct{})
		h.topics[topic] = members
	}
	members[s] = struct{}{}

	subs, ok := h.subscriptions[s]
	if !ok {
		subs = make(map[Topic]struct{})
		h.subscriptions[s] = subs
	}
	subs[topic] = struct{}{}
}

// Unsubscribe removes the session from a topic.
func (h *Hub) Unsubscribe(s *Session, topic Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropFromTopic(s, topic)
	if subs, ok := h.subscriptions[s]; ok {
		delete(subs, topic)
		if len(subs) == 0 {
			delete(h.subscriptions, s)
		}
	}
}

// NotifyUser sends an event to every live session of the user.
// It implements service.RealtimeNotifier.
func (h *Hub) NotifyUser(userID uuid.UUID, event service.RealtimeEvent) {
	frame, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("marshal realtime event", slog.String("type", event.Type), slog.Any("error", err))

		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.rooms[userID] {
		h.enqueue(s, frame, event.Type)
	}
}

// PublishTopic sends an event to every session subscribed to the topic.
func (h *Hub) PublishTopic(topic Topic, event service.RealtimeEvent) {
	frame, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("marshal realtime event", slog.String("type", event.Type), slog.Any("error", err))

		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.topics[topic] {
		h.enqueue(s, frame, event.Type)
	}
}

// ConnectionCount returns the number of live sessions for a user.
func (h *Hub) ConnectionCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[userID])
}

// enqueue delivers a frame without blocking. Callers hold at least a read lock.
func (h *Hub) enqueue(s *Session, frame []byte, eventType string) {
	select {
	case s.send <- frame:
	default:
		h.logger.Warn("dropping realtime event, session buffer full",
			slog.String("type", eventType),
			slog.String("user_id", s.userID.String()),
			slog.String("session_id", s.id.String()),
		)
	}
}

// dropFromTopic removes the session from the topic member set. Callers hold the write lock.
func (h *Hub) dropFromTopic(s *Session, topic Topic) {
	members, ok := h.topics[topic]
	if !ok {
		return
	}
	delete(members, s)
	if len(members) == 0 {
		delete(h.topics, topic)
	}
}
