package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/samuelpalacioss/cue/pkg/kafka"
	"github.com/samuelpalacioss/cue/pkg/logger"
)

// RuleOverlapAnomaly records a slot dedup that discarded a window whose end
// differs from the kept one. Overlapping non-identical windows usually mean
// a misconfigured rule set; dedup keeps availability correct, but the
// discard is worth surfacing.
type RuleOverlapAnomaly struct {
	EventID      string `json:"event_id"`
	Date         string `json:"date"`
	SlotStart    string `json:"slot_start"`
	KeptEnd      string `json:"kept_end"`
	DiscardedEnd string `json:"discarded_end"`
}

type AnomalyReporter interface {
	ReportRuleOverlap(ctx context.Context, anomaly RuleOverlapAnomaly)
}

// logReporter only logs anomalies. Used when no Kafka brokers are configured.
type logReporter struct {
	log *logger.Logger
}

func NewLogReporter(log *logger.Logger) AnomalyReporter {
	return &logReporter{log: log}
}

func (r *logReporter) ReportRuleOverlap(ctx context.Context, anomaly RuleOverlapAnomaly) {
	r.log.Warn("Slot dedup discarded a non-identical window",
		"event_id", anomaly.EventID,
		"date", anomaly.Date,
		"slot_start", anomaly.SlotStart,
		"kept_end", anomaly.KeptEnd,
		"discarded_end", anomaly.DiscardedEnd,
	)
}

// kafkaReporter logs and additionally publishes anomalies so rule
// misconfiguration can be tracked outside request logs. Publish failures
// never fail the availability query.
type kafkaReporter struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaReporter(producer *kafka.Producer, log *logger.Logger) AnomalyReporter {
	return &kafkaReporter{producer: producer, log: log}
}

func (r *kafkaReporter) ReportRuleOverlap(ctx context.Context, anomaly RuleOverlapAnomaly) {
	r.log.Warn("Slot dedup discarded a non-identical window",
		"event_id", anomaly.EventID,
		"date", anomaly.Date,
		"slot_start", anomaly.SlotStart,
		"kept_end", anomaly.KeptEnd,
		"discarded_end", anomaly.DiscardedEnd,
	)

	payload, err := json.Marshal(anomaly)
	if err != nil {
		r.log.Error("Failed to encode rule overlap anomaly", "error", err)
		return
	}

	err = r.producer.Publish(ctx, kafka.Message{
		Key:       anomaly.EventID,
		Value:     payload,
		Headers:   map[string]string{"type": "rule_overlap"},
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		r.log.Error("Failed to publish rule overlap anomaly",
			"event_id", anomaly.EventID,
			"error", err,
		)
	}
}
