package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/valueobject"
)

type WebhookInput struct {
	Signature string
	Payload   []byte
}

// webhookEnvelope is the slice of the delivery this service acts on.
// Providers attach much more; the rest stays in the raw payload map.
type webhookEnvelope struct {
	Event     string
	Reference string
	Channel   string
	PaidAt    time.Time
}

func parseWebhookEnvelope(payload []byte) (webhookEnvelope, error) {
	var body valueobject.JSONMap
	if err := json.Unmarshal(payload, &body); err != nil {
		return webhookEnvelope{}, err
	}

	env := webhookEnvelope{Event: body.GetString("event")}

	data, _ := body.Get("data").(map[string]any)
	dm := valueobject.JSONMap(data)
	env.Reference = dm.GetString("reference")
	env.Channel = dm.GetString("channel")
	if raw := dm.GetString("paid_at"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			env.PaidAt = ts
		}
	}

	return env, nil
}

// Webhook grades a gateway delivery. The signature is checked against
// the raw body before anything is parsed; unknown events are
// acknowledged so the provider stops retrying them.
func (s *Usecase) Webhook(ctx context.Context, in WebhookInput) error {
	ctx, span := s.startSpan(ctx, "Webhook")
	defer span.End()

	if !s.gateway.VerifyWebhookSignature(in.Signature, in.Payload) {
		return goerror.NewBusiness("Invalid webhook signature", goerror.CodeUnauthorized)
	}

	env, err := parseWebhookEnvelope(in.Payload)
	if err != nil {
		return goerror.NewInvalidFormat("Malformed webhook payload")
	}

	if env.Reference == "" {
		return goerror.NewInvalidFormat("Webhook payload missing reference")
	}

	switch env.Event {
	case "charge.success":
		paidAt := env.PaidAt
		if paidAt.IsZero() {
			paidAt = s.clock.Now()
		}
		if err := s.settle(ctx, env.Reference, env.Channel, paidAt); err != nil {
			slog.ErrorContext(ctx, "failed to settle webhook payment", "reference", env.Reference, "error", err)
			return goerror.NewServer(err)
		}
	case "charge.failed":
		if err := s.repoDB.MarkPaymentFailed(ctx, env.Reference); err != nil && !errors.Is(err, goerror.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to mark payment failed", "reference", env.Reference, "error", err)
			return goerror.NewServer(err)
		}
	default:
		slog.InfoContext(ctx, "ignoring webhook event", "event", env.Event)
	}

	return nil
}
