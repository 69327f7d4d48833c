package paygate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shandysiswandi/learnbite/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":true,"data":{"authorization_url":"https://pay.example/abc","access_code":"abc","reference":"COURSE-1-000001"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test", time.Second)

	res, err := c.Initialize(context.Background(), InitializeInput{
		Reference:   "COURSE-1-000001",
		Email:       "a@x.com",
		AmountMinor: 500000,
		Currency:    "NGN",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/abc", res.AuthorizationURL)
	assert.Equal(t, "COURSE-1-000001", res.Reference)
}

func TestVerifyRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"status":true,"data":{"reference":"ref-1","status":"success","amount":500000,"currency":"NGN"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test", time.Second)

	res, err := c.Verify(context.Background(), "ref-1")
	require.NoError(t, err)
	assert.Equal(t, "success", res.Status)
	assert.EqualValues(t, 2, calls.Load())
}

func TestVerifyBadRequestIsTerminal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test", time.Second)

	_, err := c.Verify(context.Background(), "missing")
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestVerifyWebhookSignature(t *testing.T) {
	c := NewClient("http://unused", "whsec", time.Second)

	body := []byte(`{"event":"charge.success","data":{"reference":"ref-1"}}`)
	sig := hash.NewHMACSHA512("whsec").Sign(body)

	assert.True(t, c.VerifyWebhookSignature(sig, body))
	assert.False(t, c.VerifyWebhookSignature(sig, []byte(`{}`)))
}
