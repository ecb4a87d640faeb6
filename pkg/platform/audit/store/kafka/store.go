package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "moncomptepro/pkg/platform/audit"
	"moncomptepro/pkg/platform/sentinel"
)

const DefaultTopic = "moncomptepro.audit"

// Producer is the subset of *kgo.Client the store uses.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Store publishes audit events as JSON records keyed by organization so
// every event for one organization lands on the same partition.
type Store struct {
	producer Producer
	topic    string
}

func New(producer Producer, topic string) *Store {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Store{producer: producer, topic: topic}
}

// NewClient builds a franz-go client suited to the store.
func NewClient(brokers []string, clientID string) (*kgo.Client, error) {
	return kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	return s.AppendBatch(ctx, []audit.Event{event})
}

// AppendBatch produces all events and waits for every acknowledgement.
func (s *Store) AppendBatch(ctx context.Context, events []audit.Event) error {
	records := make([]*kgo.Record, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal audit event: %w", err)
		}
		records = append(records, &kgo.Record{
			Topic: s.topic,
			Key:   []byte(strconv.FormatInt(event.OrganizationID, 10)),
			Value: value,
			Headers: []kgo.RecordHeader{
				{Key: "action", Value: []byte(event.Action)},
				{Key: "category", Value: []byte(event.Category)},
			},
		})
	}
	if err := s.producer.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("produce audit events: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}
