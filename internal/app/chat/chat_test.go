package chat

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatapp/internal/app/message"
	"chatapp/internal/app/user"
	"chatapp/internal/pkg/errs"
)

type memUserStore struct {
	mu    sync.Mutex
	users map[int64]*user.User
}

func newMemUserStore(users ...*user.User) *memUserStore {
	s := &memUserStore{users: make(map[int64]*user.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, errs.NewError(errs.ErrUserNotFound)
	}
	return u, nil
}

func (s *memUserStore) GetByNickname(_ context.Context, nickname string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Nickname == nickname {
			return u, nil
		}
	}
	return nil, errs.NewError(errs.ErrUserNotFound)
}

type memMessageStore struct {
	mu     sync.Mutex
	nextID int64
	msgs   []*message.Message
}

func newMemMessageStore() *memMessageStore {
	return &memMessageStore{}
}

func (s *memMessageStore) Save(_ context.Context, m *message.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	m.ID = s.nextID
	s.msgs = append(s.msgs, m)
	return nil
}

func (s *memMessageStore) ByRoom(_ context.Context, roomID string) ([]*message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*message.Message
	for _, m := range s.msgs {
		if m.RoomID == roomID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memMessageStore) ByRoomNewest(_ context.Context, roomID string, size int) ([]*message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*message.Message
	for i := len(s.msgs) - 1; i >= 0 && len(out) < size; i-- {
		if s.msgs[i].RoomID == roomID {
			out = append(out, s.msgs[i])
		}
	}
	return out, nil
}

func (s *memMessageStore) ByRoomAndEpochRange(_ context.Context, roomID string, from, to int64) ([]*message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*message.Message
	for _, m := range s.msgs {
		if m.RoomID == roomID && m.IssueEpoch >= from && m.IssueEpoch <= to {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memMessageStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []*message.Message
}

func (p *recordingPublisher) Publish(_ context.Context, m *message.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, m)
}

func twoUsers() *memUserStore {
	return newMemUserStore(
		&user.User{ID: 1, Email: "a@example.com", Nickname: "a@example.com", Type: user.TypeRegistered},
		&user.User{ID: 2, Email: "b@example.com", Nickname: "b@example.com", Type: user.TypeRegistered},
	)
}

func TestResolvePrivateRoomSeedsOnFirstContact(t *testing.T) {
	ctx := context.Background()
	msgs := newMemMessageStore()
	pub := &recordingPublisher{}
	svc := NewService(twoUsers(), msgs, pub)

	history, err := svc.ResolvePrivateRoom(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, history, 1)

	seed := history[0]
	assert.Equal(t, "1E2", seed.RoomID)
	assert.Equal(t, "New Private Chat Room", seed.Content)
	assert.Equal(t, "a@example.com", seed.Sender)
	assert.Equal(t, "b@example.com", seed.Receiver)

	// The seed message also reaches the fan-out transport.
	require.Len(t, pub.published, 1)
	assert.Equal(t, seed, pub.published[0])
}

func TestResolvePrivateRoomIsIdempotent(t *testing.T) {
	ctx := context.Background()
	msgs := newMemMessageStore()
	svc := NewService(twoUsers(), msgs, nil)

	first, err := svc.ResolvePrivateRoom(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.ResolvePrivateRoom(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, second, 1)

	assert.Equal(t, first[0].RoomID, second[0].RoomID)
	assert.Equal(t, 1, msgs.count())
}

func TestResolvePrivateRoomHonorsReverseOrientation(t *testing.T) {
	ctx := context.Background()
	msgs := newMemMessageStore()
	svc := NewService(twoUsers(), msgs, nil)

	created, err := svc.ResolvePrivateRoom(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, created, 1)

	_, err = svc.PostToRoom(ctx, created[0].RoomID, "a@example.com", "hello", "b@example.com")
	require.NoError(t, err)

	// Resolving from the other side finds the same room, not a second one.
	reversed, err := svc.ResolvePrivateRoom(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, reversed, 2)
	assert.Equal(t, "1E2", reversed[0].RoomID)
	assert.Equal(t, "1E2", reversed[1].RoomID)
	assert.Equal(t, "hello", reversed[1].Content)
}

func TestResolvePrivateRoomUnknownParticipant(t *testing.T) {
	ctx := context.Background()
	msgs := newMemMessageStore()
	svc := NewService(twoUsers(), msgs, nil)

	_, err := svc.ResolvePrivateRoom(ctx, 1, 99)
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrPrivateRoomFailed))
	assert.Equal(t, 0, msgs.count())
}

func TestResolvePrivateRoomConcurrentFirstContact(t *testing.T) {
	ctx := context.Background()
	msgs := newMemMessageStore()
	svc := NewService(twoUsers(), msgs, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(reverse bool) {
			defer wg.Done()
			a, b := int64(1), int64(2)
			if reverse {
				a, b = b, a
			}
			history, err := svc.ResolvePrivateRoom(ctx, a, b)
			assert.NoError(t, err)
			assert.NotEmpty(t, history)
		}(i%2 == 1)
	}
	wg.Wait()

	// Both orientations racing on first contact still create one seed.
	assert.Equal(t, 1, msgs.count())
}

func TestPostToRoomAppendsInCreationOrder(t *testing.T) {
	ctx := context.Background()
	msgs := newMemMessageStore()
	svc := NewService(twoUsers(), msgs, nil)

	_, err := svc.ResolvePrivateRoom(ctx, 1, 2)
	require.NoError(t, err)

	for _, content := range []string{"one", "two", "three"} {
		_, err := svc.PostToRoom(ctx, "1E2", "a@example.com", content, "b@example.com")
		require.NoError(t, err)
	}

	history, err := svc.RoomHistory(ctx, "1E2")
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "New Private Chat Room", history[0].Content)
	assert.Equal(t, "one", history[1].Content)
	assert.Equal(t, "two", history[2].Content)
	assert.Equal(t, "three", history[3].Content)
}

func TestPostToBroadcastStampsMainRoom(t *testing.T) {
	ctx := context.Background()
	msgs := newMemMessageStore()
	svc := NewService(twoUsers(), msgs, nil)

	m, err := svc.PostToBroadcast(ctx, "a@example.com", "hello everyone")
	require.NoError(t, err)
	assert.Equal(t, message.MainRoomID, m.RoomID)
	assert.Equal(t, message.MainRoomReceiver, m.Receiver)
	assert.Equal(t, "a@example.com", m.Sender)
}

func TestPostToBroadcastRejectsMutedSender(t *testing.T) {
	ctx := context.Background()
	users := newMemUserStore(
		&user.User{ID: 3, Nickname: "muted", IsMute: true, Type: user.TypeRegistered},
	)
	msgs := newMemMessageStore()
	svc := NewService(users, msgs, nil)

	_, err := svc.PostToBroadcast(ctx, "muted", "let me in")
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrSenderMuted))

	// The moderation gate runs before persistence.
	assert.Equal(t, 0, msgs.count())
}

func TestPostToBroadcastUnknownSender(t *testing.T) {
	ctx := context.Background()
	svc := NewService(twoUsers(), newMemMessageStore(), nil)

	_, err := svc.PostToBroadcast(ctx, "stranger", "hi")
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrUserNotFound))
}

func TestMainRoomSince(t *testing.T) {
	ctx := context.Background()
	msgs := newMemMessageStore()
	svc := NewService(twoUsers(), msgs, nil)

	early := message.NewBroadcast("a@example.com", "early")
	early.IssueEpoch = 100
	require.NoError(t, msgs.Save(ctx, early))

	late := message.NewBroadcast("a@example.com", "late")
	late.IssueEpoch = 200
	require.NoError(t, msgs.Save(ctx, late))

	window, err := svc.MainRoomSince(ctx, 150, 250)
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "late", window[0].Content)

	// A non-positive lower bound downloads the full history.
	all, err := svc.MainRoomSince(ctx, 0, 250)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
