package rename

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatapp/internal/app/message"
)

type memMessageStore struct {
	msgs       []*message.Message
	failSender bool
}

func (s *memMessageStore) RetagSender(_ context.Context, old, new string) (int64, error) {
	if s.failSender {
		return 0, errors.New("store unavailable")
	}
	var n int64
	for _, m := range s.msgs {
		if m.Sender == old {
			m.Sender = new
			n++
		}
	}
	return n, nil
}

func (s *memMessageStore) RetagReceiver(_ context.Context, old, new string) (int64, error) {
	var n int64
	for _, m := range s.msgs {
		if m.Receiver == old {
			m.Receiver = new
			n++
		}
	}
	return n, nil
}

func TestPropagateRewritesBothColumns(t *testing.T) {
	store := &memMessageStore{msgs: []*message.Message{
		{Sender: "old@example.com", Receiver: "b@example.com"},
		{Sender: "old@example.com", Receiver: "c@example.com"},
		{Sender: "b@example.com", Receiver: "old@example.com"},
		{Sender: "c@example.com", Receiver: "d@example.com"},
	}}
	p := NewPropagator(store)

	n, err := p.Propagate(context.Background(), "old@example.com", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// No message may still reference the old identifier afterwards.
	for _, m := range store.msgs {
		assert.NotEqual(t, "old@example.com", m.Sender)
		assert.NotEqual(t, "old@example.com", m.Receiver)
	}
	assert.Equal(t, "new@example.com", store.msgs[0].Sender)
	assert.Equal(t, "new@example.com", store.msgs[2].Receiver)
}

func TestPropagateNoReferences(t *testing.T) {
	store := &memMessageStore{msgs: []*message.Message{
		{Sender: "a@example.com", Receiver: "b@example.com"},
	}}
	p := NewPropagator(store)

	n, err := p.Propagate(context.Background(), "ghost@example.com", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestPropagateSenderPassFailureStopsEarly(t *testing.T) {
	store := &memMessageStore{
		failSender: true,
		msgs: []*message.Message{
			{Sender: "b@example.com", Receiver: "old@example.com"},
		},
	}
	p := NewPropagator(store)

	_, err := p.Propagate(context.Background(), "old@example.com", "new@example.com")
	require.Error(t, err)

	// The receiver pass never ran.
	assert.Equal(t, "old@example.com", store.msgs[0].Receiver)
}
