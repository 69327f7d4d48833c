package usecase

import (
	"context"
	"log/slog"
)

const passwordResetNoticeTemplate = `
<p>Hi,</p>
<p>A password reset was just requested for your {{.app_name}} account. The
verification code was sent in a separate email and expires shortly.</p>
<p>If this wasn't you, ignore this message or contact {{.support_email}}.</p>
<p>&copy; {{.year}} {{.app_name}}</p>`

type ConsumePasswordResetRequestedInput struct {
	UserID int64  `validate:"required,gt=0"`
	Email  string `validate:"required,email"`
}

// ConsumePasswordResetRequested sends the security notice that a reset
// was requested. The reset code itself goes out synchronously from the
// identity flow.
func (s *Usecase) ConsumePasswordResetRequested(ctx context.Context, in ConsumePasswordResetRequestedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumePasswordResetRequested")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid password reset payload", "error", err)
		return nil
	}

	s.sendEmail(ctx, in.Email, "Password reset requested", "password_reset_notice",
		passwordResetNoticeTemplate, s.baseEmailTemplateData())

	return nil
}
