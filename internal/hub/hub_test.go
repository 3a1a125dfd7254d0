package hub

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"bazaar/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(bufSize int) *Hub {
	return New(bufSize, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// recv reads one frame from the session or fails the test after a timeout.
func recv(t *testing.T, s *Session) service.RealtimeEvent {
	t.Helper()

	select {
	case frame, ok := <-s.Outbound():
		require.True(t, ok, "outbound channel closed unexpectedly")

		var event service.RealtimeEvent
		require.NoError(t, json.Unmarshal(frame, &event))

		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")

		return service.RealtimeEvent{}
	}
}

func TestNotifyUserReachesAllSessionsOfUser(t *testing.T) {
	h := newTestHub(8)
	userID := uuid.New()

	phone := h.Register(userID)
	laptop := h.Register(userID)
	stranger := h.Register(uuid.New())

	h.NotifyUser(userID, service.RealtimeEvent{Type: "booking_update", Payload: map[string]any{"status": "accepted"}})

	for _, s := range []*Session{phone, laptop} {
		event := recv(t, s)
		assert.Equal(t, "booking_update", event.Type)
	}

	select {
	case frame := <-stranger.Outbound():
		t.Fatalf("unrelated user received frame: %s", frame)
	default:
	}
}

func TestNotifyUserWithNoSessionsIsNoop(t *testing.T) {
	h := newTestHub(8)

	// Must not panic or block.
	h.NotifyUser(uuid.New(), service.RealtimeEvent{Type: "booking_update"})
}

func TestTopicDeliveryFollowsSubscription(t *testing.T) {
	h := newTestHub(8)
	providerID := uuid.New()
	topic := ProviderLocationTopic(providerID)

	watcher := h.Register(uuid.New())
	bystander := h.Register(uuid.New())

	h.Subscribe(watcher, topic)
	h.PublishTopic(topic, service.RealtimeEvent{Type: "location_update"})

	event := recv(t, watcher)
	assert.Equal(t, "location_update", event.Type)

	select {
	case frame := <-bystander.Outbound():
		t.Fatalf("non-subscriber received frame: %s", frame)
	default:
	}

	h.Unsubscribe(watcher, topic)
	h.PublishTopic(topic, service.RealtimeEvent{Type: "location_update"})

	select {
	case frame := <-watcher.Outbound():
		t.Fatalf("received frame after unsubscribe: %s", frame)
	default:
	}
}

func TestTopicsAreScopedByID(t *testing.T) {
	h := newTestHub(8)

	watcher := h.Register(uuid.New())
	h.Subscribe(watcher, ProviderLocationTopic(uuid.New()))

	h.PublishTopic(ProviderLocationTopic(uuid.New()), service.RealtimeEvent{Type: "location_update"})

	select {
	case frame := <-watcher.Outbound():
		t.Fatalf("received frame for a different provider: %s", frame)
	default:
	}
}

func TestUnregisterClosesOutboundAndStopsDelivery(t *testing.T) {
	h := newTestHub(8)
	userID := uuid.New()

	s := h.Register(userID)
	h.Subscribe(s, ProviderLocationTopic(uuid.New()))
	require.Equal(t, 1, h.ConnectionCount(userID))

	h.Unregister(s)
	assert.Equal(t, 0, h.ConnectionCount(userID))

	_, ok := <-s.Outbound()
	assert.False(t, ok, "outbound channel should be closed")

	// Further sends and a second unregister must be harmless.
	h.NotifyUser(userID, service.RealtimeEvent{Type: "booking_update"})
	h.Unregister(s)
}

func TestFullBufferDropsInsteadOfBlocking(t *testing.T) {
	h := newTestHub(2)
	userID := uuid.New()
	s := h.Register(userID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			h.NotifyUser(userID, service.RealtimeEvent{Type: "booking_update"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a full session buffer")
	}

	assert.Len(t, s.Outbound(), 2)
}

func TestDeliveryOrderIsPreservedPerSession(t *testing.T) {
	h := newTestHub(16)
	userID := uuid.New()
	s := h.Register(userID)

	for i := 0; i < 5; i++ {
		h.NotifyUser(userID, service.RealtimeEvent{Type: "seq", Payload: float64(i)})
	}

	for i := 0; i < 5; i++ {
		event := recv(t, s)
		assert.Equal(t, float64(i), event.Payload)
	}
}
