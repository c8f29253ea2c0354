package user

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, email, nickname, password_hash, user_type, user_status,
	is_mute, enabled, verification_code, verify_issue_date, photo, description, date_of_birth, age`

// Store is the PostgreSQL-backed user store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var photo, description *string
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Nickname, &u.PasswordHash, &u.Type, &u.Status,
		&u.IsMute, &u.Enabled, &u.VerifyCode, &u.VerifyIssueDate, &photo, &description, &u.DateOfBirth, &u.Age,
	)
	if err != nil {
		return nil, err
	}
	if photo != nil {
		u.Photo = *photo
	}
	if description != nil {
		u.Description = *description
	}
	return &u, nil
}

// GetByEmail returns the user with the given email, or pgx.ErrNoRows.
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns), email)
	return scanUser(row)
}

// GetByID returns the user with the given id, or pgx.ErrNoRows.
func (s *Store) GetByID(ctx context.Context, id int64) (*User, error) {
	row := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns), id)
	return scanUser(row)
}

// GetByNickname returns the user with the given nickname, or pgx.ErrNoRows.
func (s *Store) GetByNickname(ctx context.Context, nickname string) (*User, error) {
	row := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE nickname = $1`, userColumns), nickname)
	return scanUser(row)
}

// Create inserts the user and fills in its generated id.
func (s *Store) Create(ctx context.Context, u *User) error {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, nickname, password_hash, user_type, user_status,
			is_mute, enabled, verification_code, verify_issue_date, photo, description, date_of_birth, age)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`,
		u.Name, u.Email, u.Nickname, u.PasswordHash, u.Type, u.Status,
		u.IsMute, u.Enabled, u.VerifyCode, u.VerifyIssueDate,
		nullIfEmpty(u.Photo), nullIfEmpty(u.Description), u.DateOfBirth, u.Age,
	)
	return row.Scan(&u.ID)
}

// Save writes the full user row back by primary key.
func (s *Store) Save(ctx context.Context, u *User) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE users SET name = $2, email = $3, nickname = $4, password_hash = $5,
			user_type = $6, user_status = $7, is_mute = $8, enabled = $9,
			verification_code = $10, verify_issue_date = $11, photo = $12,
			description = $13, date_of_birth = $14, age = $15
		WHERE id = $1`,
		u.ID, u.Name, u.Email, u.Nickname, u.PasswordHash, u.Type, u.Status,
		u.IsMute, u.Enabled, u.VerifyCode, u.VerifyIssueDate,
		nullIfEmpty(u.Photo), nullIfEmpty(u.Description), u.DateOfBirth, u.Age,
	)
	return err
}

// Delete removes the user row.
func (s *Store) Delete(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// All returns every user ordered by id.
func (s *Store) All(ctx context.Context) ([]*User, error) {
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM users ORDER BY id`, userColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
