package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/learnbite/internal/pkg/config"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/mail"
	"github.com/shandysiswandi/learnbite/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memMail struct {
	sent []mail.Message
	err  error
}

func (m *memMail) Send(_ context.Context, msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixture struct {
	uc   *Usecase
	mail *memMail
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
app:
  name: LearnBite
  web: https://learnbite.example.com
modules:
  notification:
    support_email: support@learnbite.example.com
`))
	require.NoError(t, err)

	f := &fixture{mail: &memMail{}}
	f.uc = New(Dependency{
		RepoMail:   f.mail,
		Config:     cfg,
		Clock:      fixedClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})

	return f
}

func TestConsumeUserRegisteredSendsWelcome(t *testing.T) {
	f := newFixture(t)

	err := f.uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{
		UserID:   42,
		Email:    "jane@example.com",
		FullName: "Jane Learner",
	})

	require.NoError(t, err)
	require.Len(t, f.mail.sent, 1)
	msg := f.mail.sent[0]
	assert.Equal(t, []string{"jane@example.com"}, msg.To)
	assert.Equal(t, "Welcome aboard", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "Jane Learner")
	assert.Contains(t, msg.HTMLBody, "LearnBite")
	assert.Contains(t, msg.HTMLBody, "https://learnbite.example.com")
	assert.Contains(t, msg.HTMLBody, "2026")
}

func TestConsumeUserRegisteredDropsInvalidPayload(t *testing.T) {
	f := newFixture(t)

	err := f.uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{
		UserID: 42,
		Email:  "not-an-email",
	})

	// Invalid payloads are acknowledged, never redelivered.
	require.NoError(t, err)
	assert.Empty(t, f.mail.sent)
}

func TestConsumePaymentSucceededFormatsAmount(t *testing.T) {
	f := newFixture(t)

	err := f.uc.ConsumePaymentSucceeded(context.Background(), ConsumePaymentSucceededInput{
		UserID:      42,
		Email:       "jane@example.com",
		Reference:   "COURSE-1-123456",
		CourseTitle: "Pro Baking",
		AmountMinor: 499900,
		Currency:    "NGN",
	})

	require.NoError(t, err)
	require.Len(t, f.mail.sent, 1)
	msg := f.mail.sent[0]
	assert.Equal(t, "Payment receipt", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "Pro Baking")
	assert.Contains(t, msg.HTMLBody, "NGN 4999.00")
	assert.Contains(t, msg.HTMLBody, "COURSE-1-123456")
}

func TestConsumeDeliveryFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	f.mail.err = assert.AnError

	err := f.uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{
		UserID:   42,
		Email:    "jane@example.com",
		FullName: "Jane Learner",
	})

	require.NoError(t, err)
}
