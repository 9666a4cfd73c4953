package repository

import (
	"context"
	"database/sql"
	"time"

	"ir_climate/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	CreateFirst(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// EventQuery narrows an audit log listing. Zero fields do not constrain.
type EventQuery struct {
	From    time.Time // inclusive
	To      time.Time // inclusive
	Type    string
	Command string
	Limit   int
}

// EventRepo is the append-only audit log of /send_ir requests.
type EventRepo interface {
	Append(ctx context.Context, e models.TransmissionEvent) error
	List(ctx context.Context, q EventQuery) ([]models.TransmissionEvent, error)
}

// Repository groups the stores backed by the one SQLite handle.
type Repository struct {
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
