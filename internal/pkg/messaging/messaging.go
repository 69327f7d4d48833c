package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported reports a feature the selected broker cannot provide,
// such as delayed delivery.
var ErrUnsupported = errors.New("pkgmessage: unsupported operation")

// Messaging is a broker client that both publishes and consumes.
// Implementations wrap Google Pub/Sub, NSQ, Kafka, or NATS.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher sends messages to a destination (topic/subject/queue).
type Publisher interface {
	// Publish sends a message to the destination.
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer reads messages from a source (subscription/channel/subject).
type Consumer interface {
	// Consume starts consuming messages from the source.
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes one received message. A non-nil error carries no
// fixed broker meaning; each implementation decides whether to ack,
// requeue, or leave the message unacked.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a message to publish, with fields for each
// broker's addressing model; brokers ignore fields they do not use.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte

	// Key drives partitioning on Kafka.
	Key []byte

	// Headers carry binary values and allow duplicate keys.
	Headers []Header

	// Attributes map to string attributes on brokers that have them
	// (e.g. Pub/Sub).
	Attributes map[string]string

	// OrderingKey is used by Google Pub/Sub ordered delivery.
	OrderingKey string

	// Delay defers delivery where the broker supports it.
	Delay time.Duration

	// Metadata carries broker-specific publish settings (partition,
	// message group id).
	Metadata map[string]any
}

// Header is one message header entry.
type Header struct {
	// Key is the header name.
	Key string
	// Value is the header value.
	Value []byte
}

// PublishResult reports what the broker assigned to a published message.
type PublishResult struct {
	// MessageID is the broker-assigned message ID.
	MessageID string

	// Topic is the topic the message landed on (Kafka-like brokers).
	Topic string
	// Partition is the partition used (Kafka-like brokers).
	Partition int32
	// Offset is the publish offset (Kafka-like brokers).
	Offset int64

	// Sequence is reported by NATS/JetStream publish APIs.
	Sequence uint64

	// Timestamp is when the broker accepted the message.
	Timestamp time.Time

	// Raw is the underlying broker result, when the client exposes it.
	Raw any
}

// Message is a received message, abstracted over brokers.
type Message interface {
	// Body returns the payload.
	Body() []byte
	// Key returns the message key.
	Key() []byte
	// Headers returns the message headers.
	Headers() []Header
	// Attributes returns broker string attributes.
	Attributes() map[string]string

	// ID returns the broker message ID.
	ID() string
	// Topic returns the topic name when applicable.
	Topic() string
	// Subject returns the subject name when applicable.
	Subject() string
	// Timestamp returns the broker timestamp.
	Timestamp() time.Time

	// Ack marks the message successfully processed.
	Ack(ctx context.Context) error
}

// Nackable requests redelivery of a message.
type Nackable interface {
	// Nack asks the broker to redeliver.
	Nack(ctx context.Context) error
}

// Extendable extends an ack deadline or lease where supported.
type Extendable interface {
	// Extend pushes out the message deadline.
	Extend(ctx context.Context, d time.Duration) error
}

// MetadataCarrier exposes broker-specific delivery metadata such as
// delivery tags or receipt handles.
type MetadataCarrier interface {
	// Metadata returns the broker-specific metadata.
	Metadata() map[string]any
}

// RawCarrier exposes the underlying broker message value.
type RawCarrier interface {
	// Raw returns the underlying broker message.
	Raw() any
}
