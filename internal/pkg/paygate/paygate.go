package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/learnbite/internal/pkg/hash"
)

// Gateway is the contract for the card-payment provider.
type Gateway interface {
	// Initialize opens a checkout session and returns the authorization
	// URL the payer is redirected to.
	Initialize(ctx context.Context, in InitializeInput) (*InitializeResult, error)
	// Verify fetches the final state of a transaction by reference.
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
	// VerifyWebhookSignature checks the signature header of a webhook
	// delivery against the raw request body.
	VerifyWebhookSignature(signature string, payload []byte) bool
}

type InitializeInput struct {
	Reference string
	Email     string
	// AmountMinor is the charge amount in the currency's minor unit
	// (e.g. kobo, cents). Callers pass major units times 100.
	AmountMinor int64
	Currency    string
	CallbackURL string
}

type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type VerifyResult struct {
	Reference   string
	Status      string // "success", "failed", "abandoned"
	AmountMinor int64
	Currency    string
	PaidAt      time.Time
	Channel     string
}

// Client talks to a Paystack-style REST API.
type Client struct {
	baseURL    string
	secretKey  string
	signer     *hash.HMACSHA512
	httpClient *http.Client
	maxRetries uint64
}

// NewClient builds a gateway client. The webhook signer uses the same
// secret key the provider signs deliveries with.
func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		secretKey:  secretKey,
		signer:     hash.NewHMACSHA512(secretKey),
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: 3,
	}
}

func (c *Client) Initialize(ctx context.Context, in InitializeInput) (*InitializeResult, error) {
	body, err := json.Marshal(map[string]any{
		"reference":    in.Reference,
		"email":        in.Email,
		"amount":       in.AmountMinor,
		"currency":     in.Currency,
		"callback_url": in.CallbackURL,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			AuthorizationURL string `json:"authorization_url"`
			AccessCode       string `json:"access_code"`
			Reference        string `json:"reference"`
		} `json:"data"`
		Message string `json:"message"`
	}

	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("paygate: initialize rejected: %s", resp.Message)
	}

	return &InitializeResult{
		AuthorizationURL: resp.Data.AuthorizationURL,
		AccessCode:       resp.Data.AccessCode,
		Reference:        resp.Data.Reference,
	}, nil
}

func (c *Client) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			Reference string    `json:"reference"`
			Status    string    `json:"status"`
			Amount    int64     `json:"amount"`
			Currency  string    `json:"currency"`
			PaidAt    time.Time `json:"paid_at"`
			Channel   string    `json:"channel"`
		} `json:"data"`
		Message string `json:"message"`
	}

	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("paygate: verify rejected: %s", resp.Message)
	}

	return &VerifyResult{
		Reference:   resp.Data.Reference,
		Status:      resp.Data.Status,
		AmountMinor: resp.Data.Amount,
		Currency:    resp.Data.Currency,
		PaidAt:      resp.Data.PaidAt,
		Channel:     resp.Data.Channel,
	}, nil
}

func (c *Client) VerifyWebhookSignature(signature string, payload []byte) bool {
	return c.signer.Verify(signature, payload)
}

// do performs one API call with exponential backoff on transient
// failures. 4xx responses are terminal; 5xx and transport errors retry.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(200*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.secretKey)
		req.Header.Set("Content-Type", "application/json")

		res, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer res.Body.Close()

		raw, err := io.ReadAll(res.Body)
		if err != nil {
			return retry.RetryableError(err)
		}

		if res.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("paygate: %s %s: status %d", method, path, res.StatusCode))
		}
		if res.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("paygate: %s %s: status %d: %s", method, path, res.StatusCode, raw)
		}

		return json.Unmarshal(raw, out)
	})
}
