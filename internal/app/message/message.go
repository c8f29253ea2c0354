/*
Package message defines the chat message model and its PostgreSQL store.

Messages reference their participants by display string (nickname or email),
not by foreign key. That denormalization is deliberate: downstream display
logic reads the strings as-is, and the rename propagator pays the consistency
cost when an identity changes its email or nickname.
*/
package message

import (
	"fmt"
	"time"
)

const (
	// MainRoomID is the room identifier of the shared broadcast room.
	MainRoomID = "0"

	// MainRoomReceiver is the receiver sentinel stamped on broadcast messages.
	MainRoomReceiver = "main"

	// RoomSeparator joins the two participant ids of a private room identifier.
	RoomSeparator = "E"

	// FirstPrivateMessage is the content of the seed message that establishes
	// a new private room.
	FirstPrivateMessage = "New Private Chat Room"
)

// Message is a persisted chat message.
type Message struct {
	ID       int64  `json:"id"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
	RoomID   string `json:"roomId"`

	// IssueDate is the wall-clock creation time. IssueEpoch is its fixed-UTC
	// epoch-seconds projection, computed once at creation and never
	// recomputed; range queries run against it.
	IssueDate  time.Time `json:"issueDate"`
	IssueEpoch int64     `json:"issueDateEpoch"`
}

// PrivateRoomID builds the identifier of a private room in the given
// orientation. Room identifiers keep the ordering under which the room was
// first created, so resolvers must probe both orientations.
func PrivateRoomID(firstID, secondID int64) string {
	return fmt.Sprintf("%d%s%d", firstID, RoomSeparator, secondID)
}

// New stamps a message for an already-known room.
func New(sender, content, receiver, roomID string) *Message {
	now := time.Now()
	return &Message{
		Sender:     sender,
		Receiver:   receiver,
		Content:    content,
		RoomID:     roomID,
		IssueDate:  now,
		IssueEpoch: now.UTC().Unix(),
	}
}

// NewBroadcast stamps a message for the shared broadcast room, forcing the
// receiver sentinel and the broadcast room identifier.
func NewBroadcast(sender, content string) *Message {
	return New(sender, content, MainRoomReceiver, MainRoomID)
}

// NewSeed builds the first message of a previously nonexistent private room,
// authored by the initiating party under the sender-first room identifier.
func NewSeed(senderRef, receiverRef string, senderID, receiverID int64) *Message {
	return New(senderRef, FirstPrivateMessage, receiverRef, PrivateRoomID(senderID, receiverID))
}
