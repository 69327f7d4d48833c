package usecase

import (
	"context"
	"log/slog"
)

const enrollmentConfirmedTemplate = `
<p>Hi,</p>
<p>You're enrolled in <strong>{{.course_title}}</strong>. Jump back in any
time from <a href="{{.web_url}}">{{.web_url}}</a>; your progress is saved
chapter by chapter.</p>
<p>&copy; {{.year}} {{.app_name}}</p>`

type ConsumeCourseEnrolledInput struct {
	UserID      int64  `validate:"required,gt=0"`
	Email       string `validate:"required,email"`
	CourseID    int64  `validate:"required,gt=0"`
	CourseTitle string `validate:"required"`
}

// ConsumeCourseEnrolled confirms a free enrollment by email.
func (s *Usecase) ConsumeCourseEnrolled(ctx context.Context, in ConsumeCourseEnrolledInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeCourseEnrolled")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid course enrolled payload", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["course_title"] = in.CourseTitle

	s.sendEmail(ctx, in.Email, "Enrollment confirmed", "enrollment_confirmed", enrollmentConfirmedTemplate, data)

	return nil
}
