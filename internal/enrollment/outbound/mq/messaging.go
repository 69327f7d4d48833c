package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/learnbite/internal/enrollment/usecase"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/messaging"
	"github.com/shandysiswandi/learnbite/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishCourseEnrolled(ctx context.Context, msg usecase.CourseEnrolledEvent) error {
	ctx, span := m.ins.Tracer("enrollment.outbound.mq").Start(ctx, "PublishCourseEnrolled")
	defer span.End()

	body, err := json.Marshal(event.CourseEnrolledMessage{
		UserID:      msg.UserID,
		Email:       msg.Email,
		CourseID:    msg.CourseID,
		CourseTitle: msg.CourseTitle,
	})
	if err != nil {
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	_, err = m.client.Publish(ctx, event.CourseEnrolledDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}
