package usecase

import (
	"context"
	"fmt"
	"log/slog"
)

const paymentReceiptTemplate = `
<p>Hi,</p>
<p>Your payment for <strong>{{.course_title}}</strong> went through.</p>
<p>Amount: {{.amount}}<br>Reference: {{.reference}}</p>
<p>The course is unlocked and waiting in your library at
<a href="{{.web_url}}">{{.web_url}}</a>.</p>
<p>&copy; {{.year}} {{.app_name}}</p>`

type ConsumePaymentSucceededInput struct {
	UserID      int64  `validate:"required,gt=0"`
	Email       string `validate:"required,email"`
	Reference   string `validate:"required"`
	CourseTitle string `validate:"required"`
	AmountMinor int64  `validate:"required,gt=0"`
	Currency    string `validate:"required"`
}

// ConsumePaymentSucceeded sends the purchase receipt.
func (s *Usecase) ConsumePaymentSucceeded(ctx context.Context, in ConsumePaymentSucceededInput) error {
	ctx, span := s.startSpan(ctx, "ConsumePaymentSucceeded")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid payment succeeded payload", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["course_title"] = in.CourseTitle
	data["reference"] = in.Reference
	data["amount"] = fmt.Sprintf("%s %.2f", in.Currency, float64(in.AmountMinor)/100)

	s.sendEmail(ctx, in.Email, "Payment receipt", "payment_receipt", paymentReceiptTemplate, data)

	return nil
}
