package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"bazaar/config"
	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/infra/pubsub"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

const envDevelop = "develop"

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// newRetryableError wraps an error as retryable
func newRetryableError(err error) error {
	return &retryableError{err: err}
}

// isRetryableError checks if an error is retryable
func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// PushHandler handles Pub/Sub push messages carrying booking lifecycle events
type PushHandler struct {
	verifyPushAuth  bool
	logger          *slog.Logger
	notificationSvc service.NotificationService
	deviceRepo      repository.DeviceRepository
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config          *config.Config
	Logger          *slog.Logger
	NotificationSvc service.NotificationService
	DeviceRepo      repository.DeviceRepository
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Determine if we need to verify push auth based on config
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == pubsub.ProviderGoogle &&
		params.Config.Env.Env != envDevelop

	return &PushHandler{
		verifyPushAuth:  verifyPushAuth,
		logger:          params.Logger,
		notificationSvc: params.NotificationSvc,
		deviceRepo:      params.DeviceRepo,
	}
}

// HandlePush handles incoming Pub/Sub push messages
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	// Verify Pub/Sub token in production for Google provider
	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	// Parse Pub/Sub message
	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Decode base64 message data
	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Parse booking event
	var event service.BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse booking event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Extract request_id for distributed tracing
	// Priority: message attributes > event field > existing context
	requestID := h.extractRequestID(ctx, &pushMsg, &event)

	// Create request-scoped logger with request_id
	reqLogger := h.logger.With(slog.String("request_id", requestID))

	// Update context with request_id and logger
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing booking event",
		slog.String("booking_id", event.BookingID),
		slog.String("status", event.Status),
	)

	// Process the booking event
	if err := h.processBookingEvent(ctx, &event); err != nil {
		reqLogger.Error("[Worker] Failed to process booking event",
			slog.String("booking_id", event.BookingID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		// Return 503 for retryable errors to trigger Pub/Sub retry
		// Return 200 for non-retryable errors to prevent infinite retries
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Booking event processed successfully",
		slog.String("booking_id", event.BookingID),
	)

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.BookingEvent) string {
	// 1. Try message attributes (from Pub/Sub)
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	// 2. Try event field (from JSON payload)
	if event.RequestID != "" {
		return event.RequestID
	}

	// 3. Try existing context (from RequestIDMiddleware via X-Request-Id header)
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	// 4. Generate new UUID as fallback
	return uuid.New().String()
}

// processBookingEvent pushes the event to the counterparty's active devices.
// The actor already knows about the change, so only the other party is notified.
func (h *PushHandler) processBookingEvent(ctx context.Context, event *service.BookingEvent) error {
	recipientID, err := h.resolveRecipient(event)
	if err != nil {
		return err
	}

	devices, err := h.deviceRepo.FindActiveDevicesByUser(ctx, recipientID)
	if err != nil {
		return newRetryableError(errors.WithStack(err))
	}

	if len(devices) == 0 {
		h.logger.Info("[Worker] No active devices for recipient",
			slog.String("booking_id", event.BookingID),
			slog.String("recipient_id", recipientID.String()),
		)

		return nil
	}

	title, body, data := h.prepareNotificationContent(event)
	tokens := collectTokens(devices)

	totalSent, totalFailed, invalidTokens := h.sendBatchedNotifications(ctx, tokens, title, body, data)

	// Cleanup invalid tokens
	h.cleanupInvalidTokens(ctx, invalidTokens)

	h.logger.Info("[Worker] Booking push completed",
		slog.String("booking_id", event.BookingID),
		slog.Int("total_sent", totalSent),
		slog.Int("total_failed", totalFailed),
		slog.Int("invalid_tokens", len(invalidTokens)),
	)

	return nil
}

// resolveRecipient picks the booking party that did not trigger the change.
func (h *PushHandler) resolveRecipient(event *service.BookingEvent) (uuid.UUID, error) {
	customerID, err := uuid.Parse(event.CustomerID)
	if err != nil {
		return uuid.Nil, errors.WithStack(err)
	}

	providerID, err := uuid.Parse(event.ProviderID)
	if err != nil {
		return uuid.Nil, errors.WithStack(err)
	}

	actorID, err := uuid.Parse(event.ActorID)
	if err != nil {
		return uuid.Nil, errors.WithStack(err)
	}

	if actorID == customerID {
		return providerID, nil
	}

	return customerID, nil
}

// collectTokens extracts FCM tokens from devices
func collectTokens(devices []*entity.UserDevice) []string {
	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.FCMToken)
	}

	return tokens
}

// prepareNotificationContent creates the notification title, body, and data
func (h *PushHandler) prepareNotificationContent(event *service.BookingEvent) (title, body string, data map[string]string) {
	title = "Booking update"
	if event.ServiceTitle != "" {
		body = fmt.Sprintf("Your booking for %s is now %s", event.ServiceTitle, event.Status)
	} else {
		body = fmt.Sprintf("Your booking is now %s", event.Status)
	}

	data = map[string]string{
		"booking_id":  event.BookingID,
		"customer_id": event.CustomerID,
		"provider_id": event.ProviderID,
		"status":      event.Status,
	}

	return title, body, data
}

// sendBatchedNotifications sends notifications in batches and collects results
func (h *PushHandler) sendBatchedNotifications(ctx context.Context, tokens []string, title, body string, data map[string]string) (sent, failed int, invalidTokens []string) {
	const batchSize = 500

	totalSent := 0
	totalFailed := 0
	var allInvalidTokens []string

	for idx := 0; idx < len(tokens); idx += batchSize {
		end := min(idx+batchSize, len(tokens))
		batch := tokens[idx:end]

		successCount, failureCount, batchInvalidTokens, sendErr := h.notificationSvc.SendBatchNotification(
			ctx, batch, title, body, data,
		)
		if sendErr != nil {
			h.logger.Error("[Worker] Failed to send batch",
				slog.Int("batch_start", idx),
				slog.Int("batch_size", len(batch)),
				slog.Any("error", sendErr),
			)
			totalFailed += len(batch)

			continue
		}

		totalSent += successCount
		totalFailed += failureCount
		allInvalidTokens = append(allInvalidTokens, batchInvalidTokens...)
	}

	return totalSent, totalFailed, allInvalidTokens
}

// cleanupInvalidTokens deactivates devices whose FCM tokens are no longer registered
func (h *PushHandler) cleanupInvalidTokens(ctx context.Context, invalidTokens []string) {
	for _, token := range invalidTokens {
		if err := h.deviceRepo.DeactivateDevicesByToken(ctx, token); err != nil {
			h.logger.Warn("[Worker] Failed to deactivate invalid device token",
				slog.String("token_prefix", token[:min(10, len(token))]),
				slog.Any("error", err),
			)
		}
	}
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	// Get the Authorization header
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	// Extract Bearer token
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// Construct the expected audience (the push endpoint URL)
	// The audience should be the URL of this endpoint
	scheme := "https"
	if req.TLS == nil {
		scheme = "http" // For local development
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	// Validate the token using Google's ID token validator
	ctx := req.Context()
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	// Verify the token is from Google Pub/Sub
	// The issuer should be accounts.google.com
	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	// Verify email is verified (if email claim exists)
	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
