package inbound

import (
	"io"

	"github.com/shandysiswandi/learnbite/internal/payment/usecase"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/router"
)

const signatureHeader = "X-Paystack-Signature"

// HTTPEndpoint exposes HTTP handlers for course checkout.
type HTTPEndpoint struct {
	uc uc
}

// Initialize opens a checkout session for a paid course.
// @Summary Initialize payment
// @Description Creates a pending payment and returns the gateway authorization URL.
// @Tags Payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body InitializeRequest true "Checkout payload"
// @Success 200 {object} router.successResponse{data=InitializeResponse} "Checkout session"
// @Failure 400 {object} router.errorResponse "Course is free or invalid request"
// @Failure 404 {object} router.errorResponse "Course not found"
// @Failure 409 {object} router.errorResponse "Already enrolled"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/payments/initialize [post]
func (h *HTTPEndpoint) Initialize(r *router.Request) (any, error) {
	var req InitializeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Initialize(r.Context(), usecase.InitializeInput{CourseID: req.CourseID})
	if err != nil {
		return nil, err
	}

	return InitializeResponse{
		Reference:        resp.Reference,
		AuthorizationURL: resp.AuthorizationURL,
		AmountMinor:      resp.AmountMinor,
		Currency:         resp.Currency,
	}, nil
}

// Verify re-checks a transaction with the gateway and settles it on success.
// @Summary Verify payment
// @Description Confirms a transaction by reference with the gateway. Settles the payment when the charge succeeded.
// @Tags Payment
// @Security BearerAuth
// @Produce json
// @Param reference path string true "Payment reference"
// @Success 200 {object} router.successResponse{data=VerifyResponse} "Transaction state"
// @Failure 404 {object} router.errorResponse "Payment not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/payments/verify/{reference} [get]
func (h *HTTPEndpoint) Verify(r *router.Request) (any, error) {
	resp, err := h.uc.Verify(r.Context(), usecase.VerifyInput{Reference: r.GetParam("reference")})
	if err != nil {
		return nil, err
	}

	return VerifyResponse{
		Reference:   resp.Reference,
		Status:      resp.Status,
		AmountMinor: resp.AmountMinor,
		Currency:    resp.Currency,
	}, nil
}

// Webhook receives gateway delivery callbacks.
// @Summary Payment webhook
// @Description Endpoint the payment gateway calls on charge events. The raw body is graded against the signature header.
// @Tags Payment
// @Accept json
// @Success 204 "Acknowledged"
// @Failure 401 {object} router.errorResponse "Invalid signature"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/payments/webhook [post]
func (h *HTTPEndpoint) Webhook(r *router.Request) (any, error) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, goerror.NewInvalidFormat("Unable to read webhook payload")
	}

	in := usecase.WebhookInput{
		Signature: r.Header.Get(signatureHeader),
		Payload:   payload,
	}
	if err := h.uc.Webhook(r.Context(), in); err != nil {
		return nil, err
	}

	return nil, nil
}
