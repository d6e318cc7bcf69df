package kafka

import (
	"context"
	"errors"
	"testing"
)

func TestNewProducer_RequiresBrokersAndTopic(t *testing.T) {
	if _, err := NewProducer(nil, "availability.anomalies"); err == nil {
		t.Error("expected error for empty broker list")
	}
	if _, err := NewProducer([]string{"localhost:9092"}, ""); err == nil {
		t.Error("expected error for empty topic")
	}

	producer, err := NewProducer([]string{"localhost:9092"}, "availability.anomalies")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer producer.Close()
}

func TestPublish_RejectsEmptyKeyAndValue(t *testing.T) {
	producer, err := NewProducer([]string{"localhost:9092"}, "availability.anomalies")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer producer.Close()

	err = producer.Publish(context.Background(), Message{Value: []byte("x")})
	if !errors.Is(err, ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}

	err = producer.Publish(context.Background(), Message{Key: "ev1"})
	if !errors.Is(err, ErrEmptyValue) {
		t.Errorf("expected ErrEmptyValue, got %v", err)
	}
}

func TestPublish_AfterClose(t *testing.T) {
	producer, err := NewProducer([]string{"localhost:9092"}, "availability.anomalies")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := producer.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := producer.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}

	err = producer.Publish(context.Background(), Message{Key: "ev1", Value: []byte("x")})
	if !errors.Is(err, ErrProducerClosed) {
		t.Errorf("expected ErrProducerClosed, got %v", err)
	}
}
