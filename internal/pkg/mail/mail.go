package mail

import (
	"context"
	"io"
)

// Message is a provider-agnostic email payload.
type Message struct {
	// From optionally overrides the configured sender.
	From string
	// To lists the required recipients.
	To []string
	// Cc lists carbon copy recipients.
	Cc []string
	// Bcc lists blind carbon copy recipients.
	Bcc []string
	// Subject is the subject line.
	Subject string
	// TextBody is the plain-text body, used when HTMLBody is empty.
	TextBody string
	// HTMLBody is the optional HTML body.
	HTMLBody string
}

// Mail delivers messages through some provider (SMTP, HTTP API).
type Mail interface {
	io.Closer
	// Send dispatches the message.
	Send(ctx context.Context, msg Message) error
}
