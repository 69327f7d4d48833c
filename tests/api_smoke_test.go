package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

func TestHealth(t *testing.T) {
	status, _ := doJSON(t, http.MethodGet, "/health", nil, "")
	if status != http.StatusOK {
		t.Fatalf("health check failed: status=%d", status)
	}
}

func TestCourseListPublic(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/api/v1/courses", nil, "")
	if status != http.StatusOK {
		t.Fatalf("course list failed: status=%d", status)
	}

	var data struct {
		Courses []json.RawMessage `json:"courses"`
	}
	env := decodeSuccess(t, body, &data)
	if env.Meta == nil {
		t.Fatal("course list missing pagination meta")
	}
}

func TestRegisterRejectsInvalidBody(t *testing.T) {
	payload := map[string]string{
		"email":     "not-an-email",
		"password":  "short",
		"full_name": "",
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/register", payload, "")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid registration, got %d", status)
	}
	if env := decodeError(t, body); env.Message == "" {
		t.Fatal("expected error message")
	}
}

func TestRegisterStartsOTPFlow(t *testing.T) {
	payload := map[string]string{
		"email":     uniqueEmail("smoke"),
		"password":  "Secret123!",
		"full_name": "Smoke Tester",
		"role":      "LEARNER",
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/register", payload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("register failed: status=%d message=%q", status, errEnv.Message)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	payload := map[string]string{
		"email":    uniqueEmail("ghost"),
		"password": "Secret123!",
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/login", payload, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown email, got %d", status)
	}
	if env := decodeError(t, body); env.Message != "invalid email or password" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestProfileRequiresAuth(t *testing.T) {
	status, _ := doJSON(t, http.MethodGet, "/api/v1/auth/profile", nil, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
}

func TestAvatarUploadRequiresAuth(t *testing.T) {
	status, _ := doMultipart(t, "/api/v1/auth/profile/avatar", "avatar", "avatar.png", []byte("png-bytes"), "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
}

func TestPaymentWebhookRejectsBadSignature(t *testing.T) {
	payload := map[string]any{
		"event": "charge.success",
		"data":  map[string]string{"reference": "COURSE-0-000000"},
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/payments/webhook", payload, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unsigned webhook, got %d", status)
	}
	if env := decodeError(t, body); env.Message != "Invalid webhook signature" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestEnrollmentsRequireAuth(t *testing.T) {
	status, _ := doJSON(t, http.MethodGet, "/api/v1/enrollments", nil, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
}
