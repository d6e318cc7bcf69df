package kafka

import "time"

// Message is the producer-facing event envelope.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}
