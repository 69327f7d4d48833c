// Package messaging is a broker-agnostic publish/consume layer.
//
// Use cases publish and subscribe through the interfaces here, so the
// underlying broker (Kafka, NATS, NSQ, Google Pub/Sub) can be swapped
// by configuration without touching business code.
package messaging
