package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/learnbite/internal/payment/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/config"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/hash"
	"github.com/shandysiswandi/learnbite/internal/pkg/idempotency"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/jwt"
	"github.com/shandysiswandi/learnbite/internal/pkg/paygate"
	"github.com/shandysiswandi/learnbite/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

type memDB struct {
	courses       map[int64]*CourseInfo
	emails        map[int64]string
	payments      map[string]*entity.Payment
	enrolled      map[[2]int64]bool
	succeededRefs []string
	failedRefs    []string
	enrollments   int
}

func newMemDB() *memDB {
	return &memDB{
		courses:  map[int64]*CourseInfo{},
		emails:   map[int64]string{},
		payments: map[string]*entity.Payment{},
		enrolled: map[[2]int64]bool{},
	}
}

func (d *memDB) GetCourseInfo(_ context.Context, courseID int64) (*CourseInfo, error) {
	c, ok := d.courses[courseID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return c, nil
}

func (d *memDB) GetUserEmail(_ context.Context, userID int64) (string, error) {
	email, ok := d.emails[userID]
	if !ok {
		return "", goerror.ErrNotFound
	}
	return email, nil
}

func (d *memDB) CreatePayment(_ context.Context, payment entity.Payment) error {
	d.payments[payment.Reference] = &payment
	return nil
}

func (d *memDB) GetPaymentByReference(_ context.Context, reference string) (*entity.Payment, error) {
	p, ok := d.payments[reference]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (d *memDB) MarkPaymentSucceeded(_ context.Context, reference string, fee, share int64, channel string, paidAt time.Time) error {
	p, ok := d.payments[reference]
	if !ok || p.Status != entity.PaymentStatusPending {
		return goerror.ErrNotFound
	}
	p.Status = entity.PaymentStatusSuccess
	p.PlatformFeeMinor = fee
	p.EducatorShareMinor = share
	p.Channel = channel
	p.PaidAt = &paidAt
	d.succeededRefs = append(d.succeededRefs, reference)
	return nil
}

func (d *memDB) MarkPaymentFailed(_ context.Context, reference string) error {
	p, ok := d.payments[reference]
	if !ok || p.Status != entity.PaymentStatusPending {
		return goerror.ErrNotFound
	}
	p.Status = entity.PaymentStatusFailed
	d.failedRefs = append(d.failedRefs, reference)
	return nil
}

func (d *memDB) IsEnrolled(_ context.Context, userID, courseID int64) (bool, error) {
	return d.enrolled[[2]int64{userID, courseID}], nil
}

func (d *memDB) EnrollWithProgress(_ context.Context, _, userID, courseID int64, _ func() int64) error {
	key := [2]int64{userID, courseID}
	if d.enrolled[key] {
		return goerror.ErrConflict
	}
	d.enrolled[key] = true
	d.enrollments++
	return nil
}

type memMessaging struct {
	succeeded []PaymentSucceededEvent
}

func (m *memMessaging) PublishPaymentSucceeded(_ context.Context, msg PaymentSucceededEvent) error {
	m.succeeded = append(m.succeeded, msg)
	return nil
}

// memIdempotency mirrors the redis-backed tracker: a key that already
// completed short-circuits, a failed run may retry.
type memIdempotency struct {
	done  map[string]bool
	execs map[string]int
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{done: map[string]bool{}, execs: map[string]int{}}
}

func (m *memIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	m.execs[key]++
	if m.done[key] {
		return nil
	}
	if err := fn(ctx); err != nil {
		return err
	}
	m.done[key] = true
	return nil
}

// fakeGateway signs webhooks with the real HMAC-SHA512 signer so
// signature tests exercise the production verification path.
type fakeGateway struct {
	signer       *hash.HMACSHA512
	initResult   *paygate.InitializeResult
	verifyResult *paygate.VerifyResult
	verifyErr    error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		signer: hash.NewHMACSHA512("whsec-test"),
		initResult: &paygate.InitializeResult{
			AuthorizationURL: "https://checkout.example.com/abc123",
			AccessCode:       "abc123",
		},
	}
}

func (g *fakeGateway) Initialize(_ context.Context, in paygate.InitializeInput) (*paygate.InitializeResult, error) {
	r := *g.initResult
	r.Reference = in.Reference
	return &r, nil
}

func (g *fakeGateway) Verify(_ context.Context, _ string) (*paygate.VerifyResult, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.verifyResult, nil
}

func (g *fakeGateway) VerifyWebhookSignature(signature string, payload []byte) bool {
	return g.signer.Verify(signature, payload)
}

type seqNumberID struct{ next int64 }

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

type staticCode struct{ code string }

func (s *staticCode) Generate() (string, error) { return s.code, nil }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixture struct {
	uc        *Usecase
	db        *memDB
	messaging *memMessaging
	gateway   *fakeGateway
	idemp     *memIdempotency
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  payment:
    currency: NGN
    callback_url: https://app.example.com/payments/callback
`))
	require.NoError(t, err)

	f := &fixture{
		db:        newMemDB(),
		messaging: &memMessaging{},
		gateway:   newFakeGateway(),
		idemp:     newMemIdempotency(),
		now:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	f.uc = New(Dependency{
		RepoDB:        f.db,
		RepoMessaging: f.messaging,
		Gateway:       f.gateway,
		Idempotency:   f.idemp,
		Validator:     v,
		Config:        cfg,
		UID:           &seqNumberID{next: 9000},
		RefCode:       &staticCode{code: "123456"},
		Clock:         fixedClock{now: f.now},
		Instrument:    instrument.NewNoop(),
	})

	return f
}

func authCtx(userID int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{
		UserID:    userID,
		UserEmail: "payer@example.com",
		UserRole:  "LEARNER",
	})
}

func assertBusiness(t *testing.T, err error, msg string, code goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	require.Equal(t, msg, ge.Msg())
	require.Equal(t, code, ge.Code())
}

// seedPendingPayment stores a pending payment row directly.
func seedPendingPayment(f *fixture, reference string, userID, courseID, amount int64) {
	f.db.payments[reference] = &entity.Payment{
		ID:          1,
		Reference:   reference,
		UserID:      userID,
		CourseID:    courseID,
		AmountMinor: amount,
		Currency:    "NGN",
		Status:      entity.PaymentStatusPending,
		CreatedAt:   f.now,
	}
}
