package usecase

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"

	"github.com/shandysiswandi/learnbite/internal/pkg/clock"
	"github.com/shandysiswandi/learnbite/internal/pkg/config"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/mail"
	"github.com/shandysiswandi/learnbite/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Usecase struct {
	repoMail  repoMail
	cfg       config.Config
	clock     clock.Clocker
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoMail   repoMail
	Config     config.Config
	Clock      clock.Clocker
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoMail:  dep.RepoMail,
		cfg:       dep.Config,
		clock:     dep.Clock,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

func (s *Usecase) renderTemplate(name, tpl string, data map[string]any) (string, error) {
	t, err := template.New(name).Option("missingkey=zero").Parse(tpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Usecase) baseEmailTemplateData() map[string]any {
	return map[string]any{
		"app_name":      s.cfg.GetString("app.name"),
		"support_email": s.cfg.GetString("modules.notification.support_email"),
		"web_url":       s.cfg.GetString("app.web"),
		"year":          s.clock.Now().Format("2006"),
	}
}

// sendEmail renders the template and dispatches the message. Delivery
// failures are logged, not returned, so a broken mailbox never blocks
// the consumer.
func (s *Usecase) sendEmail(ctx context.Context, to, subject, name, tpl string, data map[string]any) {
	body, err := s.renderTemplate(name, tpl, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render email template", "template", name, "error", err)
		return
	}

	if err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send email", "template", name, "error", err)
	}
}
