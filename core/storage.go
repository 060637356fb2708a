package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SessionStorage interface {
	CreateSession(ctx context.Context, session *Session) error

	// GetActiveSession returns the session with id whose expires_at is after now,
	// or ErrSessionNotFound.
	GetActiveSession(ctx context.Context, id uuid.UUID, now time.Time) (*Session, error)

	// UpdateSessionExpiry persists a new expiration timestamp.
	UpdateSessionExpiry(ctx context.Context, id uuid.UUID, expiresAt time.Time) error

	// Cleanup
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

// UserStorage lookups return ErrRecordNotFound on a miss.
type UserStorage interface {
	// CreateUser assigns u.ID; returns ErrUserExists on a duplicate email.
	CreateUser(ctx context.Context, u *User) error

	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// TaskStorage lookups return ErrRecordNotFound on a miss.
type TaskStorage interface {
	ListTasks(ctx context.Context, userID int64, order TaskOrder) ([]*Task, error)
	GetTaskByID(ctx context.Context, id int64) (*Task, error)
	CreateTask(ctx context.Context, t *Task) error
	UpdateTask(ctx context.Context, t *Task) error
	DeleteTask(ctx context.Context, id int64) error
}

type GoalStorage interface {
	ListGoals(ctx context.Context) ([]*Goal, error)
	GetGoalByID(ctx context.Context, id int64) (*Goal, error)
	CreateGoal(ctx context.Context, g *Goal) error
	UpdateGoal(ctx context.Context, g *Goal) error
	DeleteGoal(ctx context.Context, id int64) error

	ListGoalTasks(ctx context.Context, goalID int64) ([]*Task, error)

	// ReplaceGoalTasks makes taskIDs the complete task set of the goal in a
	// single transaction. An unknown task id aborts the whole replacement with
	// a *NotFoundError for that id.
	ReplaceGoalTasks(ctx context.Context, goalID int64, taskIDs []int64) error
}

type Storage interface {
	UserStorage
	SessionStorage
	TaskStorage
	GoalStorage
}
