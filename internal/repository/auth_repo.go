package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"ir_climate/internal/models"
)

// ErrUsernameTaken is returned by Create when the username already exists.
var ErrUsernameTaken = errors.New("username already taken")

// ErrRegistrationClosed is returned by CreateFirst once any user exists.
var ErrRegistrationClosed = errors.New("registration closed")

const (
	insertUserSQL           = `INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?) RETURNING id`
	insertFirstUserSQL      = `INSERT INTO users (username, password_hash, created_at) SELECT ?, ?, ? WHERE NOT EXISTS (SELECT 1 FROM users) RETURNING id`
	selectUserByUsernameSQL = `SELECT id, username, password_hash, created_at FROM users WHERE username = ?`
)

// UserRepository stores operator accounts for the administrative API.
type UserRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db, now: time.Now}
}

var _ Authorization = (*UserRepository)(nil)

// Create inserts a user and returns the new row id.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (int, error) {
	var id int
	created := r.now().UTC().Format(sqliteTimeLayout)
	err := r.db.QueryRowContext(ctx, insertUserSQL, username, passwordHash, created).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %q", ErrUsernameTaken, username)
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	return id, nil
}

// CreateFirst inserts a user only while the table is empty. The check and the
// insert are one statement, so two racing sign-ups cannot both succeed.
func (r *UserRepository) CreateFirst(ctx context.Context, username, passwordHash string) (int, error) {
	var id int
	created := r.now().UTC().Format(sqliteTimeLayout)
	err := r.db.QueryRowContext(ctx, insertFirstUserSQL, username, passwordHash, created).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, ErrRegistrationClosed
	case err != nil:
		return 0, fmt.Errorf("insert first user %q: %w", username, err)
	}
	return id, nil
}

// GetByUsername returns (nil, nil) if no such user exists.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
