// Package kafka publishes audit events to a Kafka topic with franz-go.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "formbuilder/pkg/platform/audit"
)

const headerCategory = "category"

// Sink implements audit.Store by producing each event synchronously. Records
// are keyed by submission so one submission's events stay ordered.
type Sink struct {
	client *kgo.Client
	topic  string
}

// New connects a producer for topic. Extra client options are appended
// after the defaults.
func New(brokers []string, topic string, opts ...kgo.Opt) (*Sink, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka audit sink: no brokers configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka audit sink: no topic configured")
	}
	base := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.AllowAutoTopicCreation(),
	}
	client, err := kgo.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Sink{client: client, topic: topic}, nil
}

func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	record, err := newRecord(s.topic, event)
	if err != nil {
		return err
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Ping checks that at least one broker is reachable.
func (s *Sink) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *Sink) Close() {
	s.client.Close()
}

func newRecord(topic string, event audit.Event) (*kgo.Record, error) {
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal audit event: %w", err)
	}
	return &kgo.Record{
		Topic: topic,
		Key:   []byte(event.SubmissionID.String()),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: headerCategory, Value: []byte(event.Category)},
		},
	}, nil
}

// Decode parses a record produced by Sink.
func Decode(record *kgo.Record) (audit.Event, error) {
	var event audit.Event
	if err := json.Unmarshal(record.Value, &event); err != nil {
		return audit.Event{}, fmt.Errorf("unmarshal audit event: %w", err)
	}
	return event, nil
}
