package email

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
)

// Mail sends OTP codes. Callers treat a send failure as a failed
// issuance, so errors propagate instead of being swallowed.
type Mail struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

func NewMail(client mail.Mail, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, ins: ins}
}

func (m *Mail) SendRegistrationCode(ctx context.Context, to, name, code string) error {
	ctx, span := m.ins.Tracer("identity.outbound.email").Start(ctx, "SendRegistrationCode")
	defer span.End()

	msg := mail.Message{
		To:      []string{to},
		Subject: "Verify your email address",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nYour verification code is %s. It expires in 5 minutes.\n\nIf you did not sign up, you can ignore this email.",
			name, code),
		HTMLBody: fmt.Sprintf(
			`<p>Hi %s,</p><p>Your verification code is <strong>%s</strong>. It expires in 5 minutes.</p><p>If you did not sign up, you can ignore this email.</p>`,
			name, code),
	}

	if err := m.client.Send(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Mail) SendPasswordResetCode(ctx context.Context, to, name, code string) error {
	ctx, span := m.ins.Tracer("identity.outbound.email").Start(ctx, "SendPasswordResetCode")
	defer span.End()

	msg := mail.Message{
		To:      []string{to},
		Subject: "Reset your password",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nYour password reset code is %s. It expires in 15 minutes.\n\nIf you did not request this, you can ignore this email.",
			name, code),
		HTMLBody: fmt.Sprintf(
			`<p>Hi %s,</p><p>Your password reset code is <strong>%s</strong>. It expires in 15 minutes.</p><p>If you did not request this, you can ignore this email.</p>`,
			name, code),
	}

	if err := m.client.Send(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
