package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/learnbite/internal/notification/usecase"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/messaging"
	"github.com/shandysiswandi/learnbite/internal/pkg/uid"
	"github.com/shandysiswandi/learnbite/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) UserRegisteredNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "UserRegisteredNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: user registered notification", "msg_body", string(body))

	var payload event.UserRegisteredMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse user registered message", "msg_body", string(body), "error", err)
		return nil
	}

	return h.uc.ConsumeUserRegistered(ctx, usecase.ConsumeUserRegisteredInput{
		UserID:   payload.UserID,
		Email:    payload.Email,
		FullName: payload.FullName,
	})
}

func (h *MQHandler) PasswordResetRequestedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "PasswordResetRequestedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: password reset requested notification", "msg_body", string(body))

	var payload event.PasswordResetRequestedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse password reset requested message", "msg_body", string(body), "error", err)
		return nil
	}

	return h.uc.ConsumePasswordResetRequested(ctx, usecase.ConsumePasswordResetRequestedInput{
		UserID: payload.UserID,
		Email:  payload.Email,
	})
}

func (h *MQHandler) PaymentSucceededNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "PaymentSucceededNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: payment succeeded notification", "msg_body", string(body))

	var payload event.PaymentSucceededMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse payment succeeded message", "msg_body", string(body), "error", err)
		return nil
	}

	return h.uc.ConsumePaymentSucceeded(ctx, usecase.ConsumePaymentSucceededInput{
		UserID:      payload.UserID,
		Email:       payload.Email,
		Reference:   payload.Reference,
		CourseTitle: payload.CourseTitle,
		AmountMinor: payload.AmountMinor,
		Currency:    payload.Currency,
	})
}

func (h *MQHandler) CourseEnrolledNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "CourseEnrolledNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: course enrolled notification", "msg_body", string(body))

	var payload event.CourseEnrolledMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse course enrolled message", "msg_body", string(body), "error", err)
		return nil
	}

	return h.uc.ConsumeCourseEnrolled(ctx, usecase.ConsumeCourseEnrolledInput{
		UserID:      payload.UserID,
		Email:       payload.Email,
		CourseID:    payload.CourseID,
		CourseTitle: payload.CourseTitle,
	})
}
