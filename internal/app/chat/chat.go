/*
Package chat carries the room-addressing and posting logic of the server.

Its central piece is the private-room resolver: rooms are addressed by the
string concatenation of the two participant ids in the order the room was
first created, so resolution probes both orientations and lazily seeds the
room on first contact. Seeding is the one read-then-write sequence in the
system that needs mutual exclusion; it is serialized per unordered pair.
*/
package chat

import (
	"context"

	"chatapp/internal/app/message"
	"chatapp/internal/app/user"
	"chatapp/internal/pkg/errs"
	"chatapp/internal/pkg/logx"
)

// UserStore is the identity lookup surface the chat service needs.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByNickname(ctx context.Context, nickname string) (*user.User, error)
}

// MessageStore is the persistence surface the chat service needs.
type MessageStore interface {
	Save(ctx context.Context, m *message.Message) error
	ByRoom(ctx context.Context, roomID string) ([]*message.Message, error)
	ByRoomNewest(ctx context.Context, roomID string, size int) ([]*message.Message, error)
	ByRoomAndEpochRange(ctx context.Context, roomID string, from, to int64) ([]*message.Message, error)
}

// Publisher hands a freshly persisted message to the external fan-out
// transport. Delivery is best-effort and outside this package's guarantees.
type Publisher interface {
	Publish(ctx context.Context, m *message.Message)
}

// Service resolves rooms and posts messages.
type Service struct {
	users     UserStore
	messages  MessageStore
	publisher Publisher
	pairs     *pairLocks
}

// NewService builds the chat service. publisher may be nil when no fan-out
// transport is configured.
func NewService(users UserStore, messages MessageStore, publisher Publisher) *Service {
	return &Service{
		users:     users,
		messages:  messages,
		publisher: publisher,
		pairs:     newPairLocks(),
	}
}

// ResolvePrivateRoom returns the ordered history of the private room between
// the two identities, creating the room with a single seed message when no
// room exists in either orientation.
//
// The probe order fixes the canonical orientation: sender-first wins for
// rooms created through this call, and the reverse orientation is honored
// when the other party initiated first. The whole lookup-then-seed sequence
// holds the pair lock so two concurrent first contacts cannot create
// divergent rooms.
func (s *Service) ResolvePrivateRoom(ctx context.Context, senderID, receiverID int64) ([]*message.Message, error) {
	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		return nil, errs.NewError(errs.ErrPrivateRoomFailed)
	}
	receiver, err := s.users.GetByID(ctx, receiverID)
	if err != nil {
		return nil, errs.NewError(errs.ErrPrivateRoomFailed)
	}

	unlock := s.pairs.lock(senderID, receiverID)
	defer unlock()

	history, err := s.messages.ByRoom(ctx, message.PrivateRoomID(senderID, receiverID))
	if err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}
	if len(history) > 0 {
		return history, nil
	}

	history, err = s.messages.ByRoom(ctx, message.PrivateRoomID(receiverID, senderID))
	if err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}
	if len(history) > 0 {
		return history, nil
	}

	seed := message.NewSeed(sender.Nickname, receiver.Nickname, senderID, receiverID)
	if err := s.messages.Save(ctx, seed); err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	logx.Debug("Created private room", "room_id", seed.RoomID)
	s.publish(ctx, seed)

	return []*message.Message{seed}, nil
}

// PostToRoom appends a message to an already-known room. Resolution never
// re-runs here: the message is stamped and persisted unconditionally.
func (s *Service) PostToRoom(ctx context.Context, roomID, senderRef, content, receiverRef string) (*message.Message, error) {
	m := message.New(senderRef, content, receiverRef, roomID)
	if err := s.messages.Save(ctx, m); err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	s.publish(ctx, m)
	return m, nil
}

// PostToBroadcast appends a message to the shared broadcast room after the
// moderation gate: a muted sender is rejected before anything is persisted.
func (s *Service) PostToBroadcast(ctx context.Context, senderRef, content string) (*message.Message, error) {
	sender, err := s.users.GetByNickname(ctx, senderRef)
	if err != nil {
		return nil, errs.NewError(errs.ErrUserNotFound)
	}

	if sender.IsMute {
		return nil, errs.NewError(errs.ErrSenderMuted)
	}

	m := message.NewBroadcast(senderRef, content)
	if err := s.messages.Save(ctx, m); err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	s.publish(ctx, m)
	return m, nil
}

// RoomHistory returns the full ordered history of a room.
func (s *Service) RoomHistory(ctx context.Context, roomID string) ([]*message.Message, error) {
	history, err := s.messages.ByRoom(ctx, roomID)
	if err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}
	return history, nil
}

// MainRoomNewest returns the newest `size` broadcast messages, newest first.
func (s *Service) MainRoomNewest(ctx context.Context, size int) ([]*message.Message, error) {
	history, err := s.messages.ByRoomNewest(ctx, message.MainRoomID, size)
	if err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}
	return history, nil
}

// MainRoomSince returns broadcast messages from the given epoch second until
// now; a non-positive epoch returns the full history.
func (s *Service) MainRoomSince(ctx context.Context, sinceEpoch, nowEpoch int64) ([]*message.Message, error) {
	if sinceEpoch <= 0 {
		return s.RoomHistory(ctx, message.MainRoomID)
	}

	history, err := s.messages.ByRoomAndEpochRange(ctx, message.MainRoomID, sinceEpoch, nowEpoch)
	if err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}
	return history, nil
}

func (s *Service) publish(ctx context.Context, m *message.Message) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, m)
}
