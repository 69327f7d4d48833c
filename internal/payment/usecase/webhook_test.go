package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/learnbite/internal/payment/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/paygate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	paygateVerifySuccess = paygate.VerifyResult{
		Status:      "success",
		AmountMinor: 10000,
		Currency:    "NGN",
		PaidAt:      time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC),
		Channel:     "card",
	}

	paygateVerifyAbandoned = paygate.VerifyResult{
		Status:      "abandoned",
		AmountMinor: 10000,
		Currency:    "NGN",
	}
)

func chargePayload(event, reference string) []byte {
	return []byte(fmt.Sprintf(
		`{"event":%q,"data":{"reference":%q,"channel":"card","paid_at":"2026-03-01T10:05:00Z"}}`,
		event, reference))
}

func signedWebhook(f *fixture, payload []byte) WebhookInput {
	return WebhookInput{Signature: f.gateway.signer.Sign(payload), Payload: payload}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	f := newFixture(t)
	seedPendingPayment(f, "COURSE-1-123456", 42, 20, 10000)
	payload := chargePayload("charge.success", "COURSE-1-123456")

	err := f.uc.Webhook(context.Background(), WebhookInput{
		Signature: "deadbeef",
		Payload:   payload,
	})

	assertBusiness(t, err, "Invalid webhook signature", goerror.CodeUnauthorized)
	assert.Empty(t, f.db.succeededRefs)
}

func TestWebhookChargeSuccessSettles(t *testing.T) {
	f := newFixture(t)
	seedPendingPayment(f, "COURSE-1-123456", 42, 20, 10000)
	f.db.courses[20] = &CourseInfo{ID: 20, Title: "Pro Baking", PriceMinor: 10000, Published: true}
	f.db.emails[42] = "payer@example.com"

	err := f.uc.Webhook(context.Background(), signedWebhook(f, chargePayload("charge.success", "COURSE-1-123456")))
	require.NoError(t, err)

	payment := f.db.payments["COURSE-1-123456"]
	assert.Equal(t, entity.PaymentStatusSuccess, payment.Status)
	assert.EqualValues(t, 500, payment.PlatformFeeMinor)
	assert.EqualValues(t, 9500, payment.EducatorShareMinor)
	assert.Equal(t, "card", payment.Channel)

	assert.True(t, f.db.enrolled[[2]int64{42, 20}])

	require.Len(t, f.messaging.succeeded, 1)
	event := f.messaging.succeeded[0]
	assert.Equal(t, "COURSE-1-123456", event.Reference)
	assert.Equal(t, "payer@example.com", event.Email)
	assert.Equal(t, "Pro Baking", event.CourseTitle)
	assert.EqualValues(t, 10000, event.AmountMinor)
}

func TestWebhookDoubleDeliverySettlesOnce(t *testing.T) {
	f := newFixture(t)
	seedPendingPayment(f, "COURSE-1-123456", 42, 20, 10000)
	f.db.courses[20] = &CourseInfo{ID: 20, Title: "Pro Baking", PriceMinor: 10000, Published: true}
	f.db.emails[42] = "payer@example.com"

	in := signedWebhook(f, chargePayload("charge.success", "COURSE-1-123456"))

	require.NoError(t, f.uc.Webhook(context.Background(), in))
	require.NoError(t, f.uc.Webhook(context.Background(), in))

	assert.Len(t, f.db.succeededRefs, 1)
	assert.Equal(t, 1, f.db.enrollments)
	assert.Len(t, f.messaging.succeeded, 1)
	assert.Equal(t, 2, f.idemp.execs["payment_settle:COURSE-1-123456"])
}

func TestWebhookChargeSuccessUnknownReference(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Webhook(context.Background(), signedWebhook(f, chargePayload("charge.success", "COURSE-9-000000")))

	require.NoError(t, err)
	assert.Zero(t, f.db.enrollments)
}

func TestWebhookChargeFailed(t *testing.T) {
	f := newFixture(t)
	seedPendingPayment(f, "COURSE-1-123456", 42, 20, 10000)

	err := f.uc.Webhook(context.Background(), signedWebhook(f, chargePayload("charge.failed", "COURSE-1-123456")))
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusFailed, f.db.payments["COURSE-1-123456"].Status)

	// A retry after the row already left pending is acknowledged.
	err = f.uc.Webhook(context.Background(), signedWebhook(f, chargePayload("charge.failed", "COURSE-1-123456")))
	require.NoError(t, err)
}

func TestWebhookMalformedPayload(t *testing.T) {
	f := newFixture(t)
	payload := []byte(`{"event":`)

	err := f.uc.Webhook(context.Background(), signedWebhook(f, payload))

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, goerror.CodeInvalidFormat, ge.Code())
}

func TestWebhookMissingReference(t *testing.T) {
	f := newFixture(t)
	payload := []byte(`{"event":"charge.success","data":{"reference":""}}`)

	err := f.uc.Webhook(context.Background(), signedWebhook(f, payload))

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, goerror.CodeInvalidFormat, ge.Code())
}

func TestWebhookIgnoresUnknownEvent(t *testing.T) {
	f := newFixture(t)
	payload := chargePayload("transfer.success", "COURSE-1-123456")

	err := f.uc.Webhook(context.Background(), signedWebhook(f, payload))

	require.NoError(t, err)
	assert.Empty(t, f.db.succeededRefs)
	assert.Empty(t, f.db.failedRefs)
}

func TestSettleFeeSplitRounding(t *testing.T) {
	f := newFixture(t)
	// 4999 * 5% truncates to 249, the educator keeps the remainder.
	seedPendingPayment(f, "COURSE-2-123456", 42, 20, 4999)
	f.db.courses[20] = &CourseInfo{ID: 20, Title: "Pro Baking", PriceMinor: 4999, Published: true}
	f.db.emails[42] = "payer@example.com"

	err := f.uc.Webhook(context.Background(), signedWebhook(f, chargePayload("charge.success", "COURSE-2-123456")))
	require.NoError(t, err)

	payment := f.db.payments["COURSE-2-123456"]
	assert.EqualValues(t, 249, payment.PlatformFeeMinor)
	assert.EqualValues(t, 4750, payment.EducatorShareMinor)
	assert.EqualValues(t, payment.AmountMinor, payment.PlatformFeeMinor+payment.EducatorShareMinor)
}

func TestSettleToleratesExistingEnrollment(t *testing.T) {
	f := newFixture(t)
	seedPendingPayment(f, "COURSE-3-123456", 42, 20, 10000)
	f.db.courses[20] = &CourseInfo{ID: 20, Title: "Pro Baking", PriceMinor: 10000, Published: true}
	f.db.emails[42] = "payer@example.com"
	f.db.enrolled[[2]int64{42, 20}] = true

	err := f.uc.Webhook(context.Background(), signedWebhook(f, chargePayload("charge.success", "COURSE-3-123456")))
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusSuccess, f.db.payments["COURSE-3-123456"].Status)
	assert.Zero(t, f.db.enrollments)
	assert.Len(t, f.messaging.succeeded, 1)
}

func TestInitializeCreatesPendingPayment(t *testing.T) {
	f := newFixture(t)
	f.db.courses[20] = &CourseInfo{ID: 20, EducatorID: 7, Title: "Pro Baking", PriceMinor: 10000, Published: true}

	out, err := f.uc.Initialize(authCtx(42), InitializeInput{CourseID: 20})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.Reference, "COURSE-"))
	assert.True(t, strings.HasSuffix(out.Reference, "-123456"))
	assert.Equal(t, "https://checkout.example.com/abc123", out.AuthorizationURL)
	assert.EqualValues(t, 10000, out.AmountMinor)
	assert.Equal(t, "NGN", out.Currency)

	payment := f.db.payments[out.Reference]
	require.NotNil(t, payment)
	assert.Equal(t, entity.PaymentStatusPending, payment.Status)
	assert.EqualValues(t, 42, payment.UserID)
}

func TestInitializeFreeCourse(t *testing.T) {
	f := newFixture(t)
	f.db.courses[20] = &CourseInfo{ID: 20, Title: "Intro", PriceMinor: 0, Published: true}

	_, err := f.uc.Initialize(authCtx(42), InitializeInput{CourseID: 20})

	assertBusiness(t, err, "This course is free, enroll directly", goerror.CodeInvalidInput)
}

func TestInitializeAlreadyEnrolled(t *testing.T) {
	f := newFixture(t)
	f.db.courses[20] = &CourseInfo{ID: 20, Title: "Pro Baking", PriceMinor: 10000, Published: true}
	f.db.enrolled[[2]int64{42, 20}] = true

	_, err := f.uc.Initialize(authCtx(42), InitializeInput{CourseID: 20})

	assertBusiness(t, err, "You are already enrolled in this course", goerror.CodeConflict)
}

func TestVerifyForeignPaymentLooksMissing(t *testing.T) {
	f := newFixture(t)
	seedPendingPayment(f, "COURSE-4-123456", 7, 20, 10000)

	_, err := f.uc.Verify(authCtx(42), VerifyInput{Reference: "COURSE-4-123456"})

	assertBusiness(t, err, "Payment not found", goerror.CodeNotFound)
}

func TestVerifySuccessSettles(t *testing.T) {
	f := newFixture(t)
	seedPendingPayment(f, "COURSE-5-123456", 42, 20, 10000)
	f.db.courses[20] = &CourseInfo{ID: 20, Title: "Pro Baking", PriceMinor: 10000, Published: true}
	f.db.emails[42] = "payer@example.com"
	f.gateway.verifyResult = &paygateVerifySuccess

	out, err := f.uc.Verify(authCtx(42), VerifyInput{Reference: "COURSE-5-123456"})
	require.NoError(t, err)

	assert.Equal(t, "success", out.Status)
	assert.Equal(t, entity.PaymentStatusSuccess, f.db.payments["COURSE-5-123456"].Status)
	assert.True(t, f.db.enrolled[[2]int64{42, 20}])
}

func TestVerifyAbandonedMarksFailed(t *testing.T) {
	f := newFixture(t)
	seedPendingPayment(f, "COURSE-6-123456", 42, 20, 10000)
	f.gateway.verifyResult = &paygateVerifyAbandoned

	out, err := f.uc.Verify(authCtx(42), VerifyInput{Reference: "COURSE-6-123456"})
	require.NoError(t, err)

	assert.Equal(t, "abandoned", out.Status)
	assert.Equal(t, entity.PaymentStatusFailed, f.db.payments["COURSE-6-123456"].Status)
}
