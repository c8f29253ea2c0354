package message

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const messageColumns = `id, sender, receiver, content, room_id, issue_date, issue_epoch`

// Store is the PostgreSQL-backed message store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func collectMessages(rows pgx.Rows) ([]*Message, error) {
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Receiver, &m.Content, &m.RoomID, &m.IssueDate, &m.IssueEpoch); err != nil {
			return nil, err
		}
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

// Save inserts the message and fills in its generated id.
func (s *Store) Save(ctx context.Context, m *Message) error {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO messages (sender, receiver, content, room_id, issue_date, issue_epoch)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		m.Sender, m.Receiver, m.Content, m.RoomID, m.IssueDate, m.IssueEpoch,
	)
	return row.Scan(&m.ID)
}

// ByRoom returns all messages of a room in creation order.
func (s *Store) ByRoom(ctx context.Context, roomID string) ([]*Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE room_id = $1 ORDER BY id`, roomID)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

// ByRoomNewest returns the newest `size` messages of a room, newest first.
func (s *Store) ByRoomNewest(ctx context.Context, roomID string, size int) ([]*Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE room_id = $1 ORDER BY id DESC LIMIT $2`, roomID, size)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

// ByRoomAndEpochRange returns a room's messages whose epoch projection lies
// in [from, to], in creation order.
func (s *Store) ByRoomAndEpochRange(ctx context.Context, roomID string, from, to int64) ([]*Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE room_id = $1 AND issue_epoch BETWEEN $2 AND $3 ORDER BY id`, roomID, from, to)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

// BySender returns all messages carrying the given sender reference.
func (s *Store) BySender(ctx context.Context, sender string) ([]*Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE sender = $1 ORDER BY id`, sender)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

// ByReceiver returns all messages carrying the given receiver reference.
func (s *Store) ByReceiver(ctx context.Context, receiver string) ([]*Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE receiver = $1 ORDER BY id`, receiver)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

// RetagSender rewrites the sender reference on every message that carries
// old, returning the number of rows touched.
func (s *Store) RetagSender(ctx context.Context, old, new string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `UPDATE messages SET sender = $2 WHERE sender = $1`, old, new)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// RetagReceiver rewrites the receiver reference on every message that carries
// old, returning the number of rows touched.
func (s *Store) RetagReceiver(ctx context.Context, old, new string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `UPDATE messages SET receiver = $2 WHERE receiver = $1`, old, new)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
