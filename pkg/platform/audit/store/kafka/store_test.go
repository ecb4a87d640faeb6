package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "moncomptepro/pkg/platform/audit"
	"moncomptepro/pkg/platform/sentinel"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (p *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	p.records = append(p.records, rs...)
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r, Err: p.err})
	}
	return results
}

func TestStore_Append(t *testing.T) {
	producer := &fakeProducer{}
	store := New(producer, "")

	event := audit.Event{
		ID:             "evt-1",
		Category:       audit.CategoryCompliance,
		Action:         audit.EventOrganizationJoined,
		Timestamp:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		UserID:         12,
		OrganizationID: 34,
		Siret:          "21340126800130",
		Rule:           "verified_domain",
	}
	require.NoError(t, store.Append(context.Background(), event))

	require.Len(t, producer.records, 1)
	rec := producer.records[0]
	assert.Equal(t, DefaultTopic, rec.Topic)
	assert.Equal(t, "34", string(rec.Key))
	assert.Equal(t, []kgo.RecordHeader{
		{Key: "action", Value: []byte("organization_joined")},
		{Key: "category", Value: []byte("compliance")},
	}, rec.Headers)

	var decoded audit.Event
	require.NoError(t, json.Unmarshal(rec.Value, &decoded))
	assert.Equal(t, event, decoded)
}

func TestStore_AppendProduceFailure(t *testing.T) {
	store := New(&fakeProducer{err: errors.New("not leader")}, "audit")

	err := store.Append(context.Background(), audit.Event{Action: audit.EventOrganizationJoined})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}
