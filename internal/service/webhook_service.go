package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"nft-royalty-vault/internal/core/domain"
	"nft-royalty-vault/internal/core/ports"
	"nft-royalty-vault/internal/metrics"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// webhookRetryIntervals is the wait before each redelivery attempt.
var webhookRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// WebhookSignatureHeader carries the hex HMAC-SHA256 of the request body.
const WebhookSignatureHeader = "X-Webhook-Signature"

// WebhookPayload is the JSON structure POSTed to the settlement webhook.
type WebhookPayload struct {
	EventType string             `json:"event_type"`
	Data      WebhookPayloadData `json:"data"`
	Signature string             `json:"signature"`
}

// WebhookPayloadData holds the settlement details in the webhook.
type WebhookPayloadData struct {
	EventID      string `json:"event_id"`
	Collection   string `json:"collection"`
	Actor        string `json:"actor"`
	Subject      string `json:"subject"`
	Amount       uint64 `json:"amount"`
	ArtistAmount uint64 `json:"artist_amount"`
	LabelAmount  uint64 `json:"label_amount"`
	Retained     uint64 `json:"retained"`
	ReferenceID  string `json:"reference_id,omitempty"`
	Hash         string `json:"hash"`
	Timestamp    int64  `json:"timestamp"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// webhookService implements ports.WebhookService.
type webhookService struct {
	url        string
	secret     string
	signer     ports.PayloadSigner
	repo       ports.WebhookRepository
	httpClient HTTPClient
	clock      clockwork.Clock
	log        zerolog.Logger
}

// NewWebhookService creates a new webhook service. An empty url disables
// delivery; a nil repo skips delivery logging.
func NewWebhookService(
	url string,
	secret string,
	signer ports.PayloadSigner,
	repo ports.WebhookRepository,
	httpClient HTTPClient,
	clock clockwork.Clock,
	log zerolog.Logger,
) ports.WebhookService {
	return &webhookService{
		url:        url,
		secret:     secret,
		signer:     signer,
		repo:       repo,
		httpClient: httpClient,
		clock:      clock,
		log:        log,
	}
}

// EnqueueEvent posts a settlement event to the webhook asynchronously with retries.
func (s *webhookService) EnqueueEvent(ctx context.Context, event *domain.RoyaltyEvent) error {
	if s.url == "" {
		s.log.Debug().Str("event_id", event.ID.String()).Msg("webhook: no webhook URL configured, skipping")
		return nil
	}
	if !event.Kind.IsDeposit() && !event.Kind.IsWithdrawal() {
		return nil
	}

	data := WebhookPayloadData{
		EventID:      event.ID.String(),
		Collection:   event.ProgramID.String(),
		Actor:        event.Actor.String(),
		Subject:      event.Subject.String(),
		Amount:       event.Amount,
		ArtistAmount: event.ArtistAmount,
		LabelAmount:  event.LabelAmount,
		Retained:     event.Retained,
		ReferenceID:  event.ReferenceID,
		Hash:         event.Hash,
		Timestamp:    event.CreatedAt.Unix(),
	}
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal webhook data: %w", err)
	}

	payloadBytes, err := json.Marshal(WebhookPayload{
		EventType: string(event.Kind),
		Data:      data,
		Signature: s.signer.Sign(s.secret, string(dataBytes)),
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	now := s.clock.Now().UTC()
	delivery := &domain.WebhookDeliveryLog{
		ID:         uuid.New(),
		EventID:    event.ID,
		WebhookURL: s.url,
		Payload:    string(payloadBytes),
		Status:     domain.WebhookStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if s.repo != nil {
		if err := s.repo.Create(ctx, delivery); err != nil {
			s.log.Warn().Err(err).Str("event_id", event.ID.String()).Msg("webhook: failed to record delivery")
		}
	}

	// Fire async with retries
	go s.deliverWithRetries(delivery, payloadBytes)

	return nil
}

// deliverWithRetries attempts delivery, waiting webhookRetryIntervals between attempts.
func (s *webhookService) deliverWithRetries(delivery *domain.WebhookDeliveryLog, payload []byte) {
	eventID := delivery.EventID.String()
	signature := s.signer.Sign(s.secret, string(payload))

	for attempt := 0; attempt <= len(webhookRetryIntervals); attempt++ {
		if attempt > 0 {
			s.clock.Sleep(webhookRetryIntervals[attempt-1])
		}
		delivery.Attempt = attempt + 1

		status, err := s.post(payload, signature)
		if err == nil && status >= 200 && status < 300 {
			delivery.Status = domain.WebhookStatusDelivered
			delivery.HTTPStatus = &status
			delivery.NextRetryAt = nil
			delivery.LastError = nil
			s.record(delivery)
			metrics.WebhookDeliveriesTotal.WithLabelValues("delivered").Inc()
			s.log.Info().Str("event_id", eventID).Int("attempt", delivery.Attempt).Int("status", status).Msg("webhook: delivered successfully")
			return
		}

		msg := fmt.Sprintf("non-2xx response: %d", status)
		if err != nil {
			msg = err.Error()
			delivery.HTTPStatus = nil
		} else {
			delivery.HTTPStatus = &status
		}
		delivery.LastError = &msg
		if attempt < len(webhookRetryIntervals) {
			next := s.clock.Now().Add(webhookRetryIntervals[attempt]).UTC()
			delivery.NextRetryAt = &next
		} else {
			delivery.NextRetryAt = nil
			delivery.Status = domain.WebhookStatusFailed
		}
		s.record(delivery)
		metrics.WebhookDeliveriesTotal.WithLabelValues("failed").Inc()
		s.log.Warn().Str("event_id", eventID).Int("attempt", delivery.Attempt).Str("error", msg).Msg("webhook: delivery failed")
	}

	s.log.Error().Str("event_id", eventID).Msg("webhook: all retry attempts exhausted")
}

func (s *webhookService) post(payload []byte, signature string) (int, error) {
	req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(WebhookSignatureHeader, signature)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

func (s *webhookService) record(delivery *domain.WebhookDeliveryLog) {
	if s.repo == nil {
		return
	}
	delivery.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(context.Background(), delivery); err != nil {
		s.log.Warn().Err(err).Str("event_id", delivery.EventID.String()).Msg("webhook: failed to update delivery log")
	}
}
