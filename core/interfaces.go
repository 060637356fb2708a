package core

import (
	"context"
	"time"
)

// Ports define interfaces for external dependencies

// ============================================
// INPUTS (decoded request bodies)
// ============================================

// Pointer fields distinguish a missing key from an empty value.

type SignUpInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type SignInInput struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type TaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type GoalInput struct {
	Title *string `json:"title"`
}

type GoalTasksInput struct {
	TaskIDs *[]int64 `json:"task_ids"`
}

// ============================================
// DOMAIN HANDLERS (for HTTP adapters)
// ============================================

// AuthHandler provides authentication operations for HTTP adapters
type AuthHandler interface {
	SignUp(ctx context.Context, input SignUpInput) (*Identity, error)
	SignIn(ctx context.Context, input SignInInput) (*SessionData, error)
	SignOut(ctx context.Context, session *Session) error

	// Authenticate resolves a session token to its owner, extending the session.
	Authenticate(ctx context.Context, token string) (*SessionData, error)
}

// TaskHandler provides owner-scoped task operations
type TaskHandler interface {
	List(ctx context.Context, user *Identity, sort string) ([]*Task, error)
	Get(ctx context.Context, user *Identity, rawID string) (*Task, error)
	Create(ctx context.Context, user *Identity, input TaskInput) (*Task, error)
	Update(ctx context.Context, user *Identity, task *Task, input TaskInput) (*Task, error)
	Delete(ctx context.Context, user *Identity, task *Task) error
	MarkComplete(ctx context.Context, user *Identity, task *Task) (*Task, error)
	MarkIncomplete(ctx context.Context, user *Identity, task *Task) (*Task, error)
}

// GoalHandler provides goal operations. Goals are not user-scoped.
type GoalHandler interface {
	List(ctx context.Context) ([]*Goal, error)
	Get(ctx context.Context, rawID string) (*Goal, error)
	Create(ctx context.Context, input GoalInput) (*Goal, error)
	Update(ctx context.Context, goal *Goal, input GoalInput) (*Goal, error)
	Delete(ctx context.Context, goal *Goal) error
	SetTasks(ctx context.Context, goal *Goal, input GoalTasksInput) ([]int64, error)
	Tasks(ctx context.Context, goal *Goal) ([]*Task, error)
}

// ============================================
// NOTIFIER PORT
// ============================================

// Notifier announces task completion to an external channel
type Notifier interface {
	TaskCompleted(ctx context.Context, task *Task) error
}

// ============================================
// HTTP PORT
// ============================================

type HTTPAdapter interface {
	RegisterRoutes(app *Tasklist) error
}

// Clock returns the current time
type Clock func() time.Time
