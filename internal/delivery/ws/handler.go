// Package ws bridges websocket connections to the realtime hub. The handler
// authenticates the upgrade request, registers a hub session for the user, and
// runs one goroutine per direction until the socket or the session closes.
package ws

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bazaar/config"
	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/service"
	"bazaar/internal/hub"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	defaultPingInterval   = 30 * time.Second
	defaultMaxMessageSize = 4096
	writeWait             = 10 * time.Second
)

// Inbound actions a client may send on the socket.
const (
	actionSubscribeLocation   = "subscribe_location"
	actionUnsubscribeLocation = "unsubscribe_location"
	actionUpdateLocation      = "update_location"
	actionSendMessage         = "send_message"
)

// inboundMessage is the envelope for client-to-server frames.
type inboundMessage struct {
	Action     string  `json:"action"`
	ProviderID string  `json:"provider_id,omitempty"`
	ReceiverID string  `json:"receiver_id,omitempty"`
	Text       string  `json:"text,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
}

// chatMessage is the payload delivered to the receiver's room.
type chatMessage struct {
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"sent_at"`
}

// locationUpdate is the payload broadcast on a provider's location topic.
type locationUpdate struct {
	ProviderID string    `json:"provider_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HandlerParams holds dependencies for Handler, injected by Fx.
type HandlerParams struct {
	fx.In

	Hub      *hub.Hub
	TokenSvc service.TokenService
	Config   *config.Config
	Logger   *slog.Logger
}

// Handler upgrades authenticated HTTP requests to websocket sessions.
type Handler struct {
	hub            *hub.Hub
	tokenSvc       service.TokenService
	logger         *slog.Logger
	upgrader       websocket.Upgrader
	pingInterval   time.Duration
	maxMessageSize int64
}

// NewHandler is the constructor for Handler.
func NewHandler(params HandlerParams) *Handler {
	pingInterval := defaultPingInterval
	var maxMessageSize int64 = defaultMaxMessageSize
	if params.Config.Hub != nil {
		if params.Config.Hub.PingInterval > 0 {
			pingInterval = params.Config.Hub.PingInterval
		}
		if params.Config.Hub.MaxMessageSize > 0 {
			maxMessageSize = params.Config.Hub.MaxMessageSize
		}
	}

	return &Handler{
		hub:      params.Hub,
		tokenSvc: params.TokenSvc,
		logger:   params.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Token auth replaces origin checks; mobile clients send no Origin header.
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		pingInterval:   pingInterval,
		maxMessageSize: maxMessageSize,
	}
}

// Serve authenticates the request and upgrades it to a websocket connection.
// The token is read from the "token" query parameter or the Authorization
// header, browser websocket clients cannot set custom headers.
func (h *Handler) Serve(c echo.Context) error {
	tokenString := c.QueryParam("token")
	if tokenString == "" {
		authHeader := c.Request().Header.Get("Authorization")
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	}
	if tokenString == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	claims, err := h.tokenSvc.ValidateToken(tokenString)
	if err != nil || claims.Type != "access" {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return nil
	}

	session := h.hub.Register(claims.UserID)
	isProvider := entity.RolesFromStrings(claims.Roles).Contains(entity.RoleProvider)

	logger := h.logger.With(
		slog.String("user_id", claims.UserID.String()),
		slog.String("session_id", session.ID().String()),
	)
	logger.Debug("websocket session opened")

	go h.writePump(conn, session, logger)
	go h.readPump(conn, session, isProvider, logger)

	return nil
}

// readPump consumes inbound frames until the socket closes, then unregisters
// the session, which in turn stops the write pump.
func (h *Handler) readPump(conn *websocket.Conn, session *hub.Session, isProvider bool, logger *slog.Logger) {
	defer func() {
		h.hub.Unregister(session)
		_ = conn.Close()
		logger.Debug("websocket session closed")
	}()

	conn.SetReadLimit(h.maxMessageSize)

	readWait := h.pingInterval * 2
	_ = conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readWait))
	})

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read failed", slog.Any("error", err))
			}

			return
		}

		h.handleInbound(session, isProvider, &msg, logger)
	}
}

// handleInbound dispatches one client frame. Unknown actions are ignored.
func (h *Handler) handleInbound(session *hub.Session, isProvider bool, msg *inboundMessage, logger *slog.Logger) {
	switch msg.Action {
	case actionSubscribeLocation:
		providerID, err := uuid.Parse(msg.ProviderID)
		if err != nil {
			logger.Debug("subscribe with invalid provider id", slog.String("provider_id", msg.ProviderID))

			return
		}
		h.hub.Subscribe(session, hub.ProviderLocationTopic(providerID))

	case actionUnsubscribeLocation:
		providerID, err := uuid.Parse(msg.ProviderID)
		if err != nil {
			return
		}
		h.hub.Unsubscribe(session, hub.ProviderLocationTopic(providerID))

	case actionUpdateLocation:
		// Only providers broadcast location, and only on their own topic.
		if !isProvider {
			logger.Debug("location update from non-provider session")

			return
		}
		if msg.Latitude < -90 || msg.Latitude > 90 || msg.Longitude < -180 || msg.Longitude > 180 {
			return
		}
		h.hub.PublishTopic(hub.ProviderLocationTopic(session.UserID()), service.RealtimeEvent{
			Type: "provider_location",
			Payload: locationUpdate{
				ProviderID: session.UserID().String(),
				Latitude:   msg.Latitude,
				Longitude:  msg.Longitude,
				UpdatedAt:  time.Now().UTC(),
			},
		})

	case actionSendMessage:
		receiverID, err := uuid.Parse(msg.ReceiverID)
		if err != nil || msg.Text == "" {
			logger.Debug("chat message with invalid receiver or empty text")

			return
		}
		h.hub.NotifyUser(receiverID, service.RealtimeEvent{
			Type: "chat_message",
			Payload: chatMessage{
				SenderID:   session.UserID().String(),
				ReceiverID: receiverID.String(),
				Text:       msg.Text,
				SentAt:     time.Now().UTC(),
			},
		})

	default:
		logger.Debug("unknown websocket action", slog.String("action", msg.Action))
	}
}

// writePump copies hub frames to the socket and keeps the connection alive
// with periodic pings. It exits when the session's outbound channel closes.
func (h *Handler) writePump(conn *websocket.Conn, session *hub.Session, logger *slog.Logger) {
	ticker := time.NewTicker(h.pingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case frame, ok := <-session.Outbound():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})

				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				logger.Warn("websocket write failed", slog.Any("error", err))

				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
