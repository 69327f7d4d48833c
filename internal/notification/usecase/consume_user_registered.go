package usecase

import (
	"context"
	"log/slog"
)

const welcomeEmailTemplate = `
<p>Hi {{.full_name}},</p>
<p>Your {{.app_name}} account is verified and ready. Browse the catalog and
start learning at <a href="{{.web_url}}">{{.web_url}}</a>.</p>
<p>Questions? Reach us at {{.support_email}}.</p>
<p>&copy; {{.year}} {{.app_name}}</p>`

type ConsumeUserRegisteredInput struct {
	UserID   int64  `validate:"required,gt=0"`
	Email    string `validate:"required,email"`
	FullName string `validate:"required"`
}

// ConsumeUserRegistered sends the welcome email after a verified
// registration. Invalid payloads are dropped, not retried.
func (s *Usecase) ConsumeUserRegistered(ctx context.Context, in ConsumeUserRegisteredInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeUserRegistered")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid user registered payload", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["full_name"] = in.FullName

	s.sendEmail(ctx, in.Email, "Welcome aboard", "welcome", welcomeEmailTemplate, data)

	return nil
}
