package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrivateRoomID(t *testing.T) {
	assert.Equal(t, "1E2", PrivateRoomID(1, 2))
	assert.Equal(t, "2E1", PrivateRoomID(2, 1))
	assert.Equal(t, "17E305", PrivateRoomID(17, 305))
}

func TestNewStampsEpochFromIssueDate(t *testing.T) {
	m := New("a@example.com", "hello", "b@example.com", "1E2")

	require.False(t, m.IssueDate.IsZero())
	// The epoch projection is fixed at creation and derived from the same
	// instant as the wall-clock stamp.
	assert.Equal(t, m.IssueDate.UTC().Unix(), m.IssueEpoch)
}

func TestNewBroadcast(t *testing.T) {
	m := NewBroadcast("a@example.com", "hello everyone")

	assert.Equal(t, MainRoomID, m.RoomID)
	assert.Equal(t, MainRoomReceiver, m.Receiver)
	assert.Equal(t, "a@example.com", m.Sender)
	assert.Equal(t, "hello everyone", m.Content)
}

func TestNewSeed(t *testing.T) {
	m := NewSeed("a@example.com", "b@example.com", 1, 2)

	assert.Equal(t, "1E2", m.RoomID)
	assert.Equal(t, FirstPrivateMessage, m.Content)
	assert.Equal(t, "a@example.com", m.Sender)
	assert.Equal(t, "b@example.com", m.Receiver)
}
