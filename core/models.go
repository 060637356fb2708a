package core

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account
//
// This is the "identity" together with its credential
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the public view of a User handed to request handlers.
type Identity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Identity() *Identity {
	return &Identity{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Session represents one authenticated login
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Active reports whether the session is still usable at now.
func (s *Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// SessionData combines user and session info
type SessionData struct {
	User    *Identity `json:"user"`
	Session *Session  `json:"session"`
}

// Goal groups tasks under a title
type Goal struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Task is a unit of work owned by exactly one user
type Task struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"-"`
	GoalID      *int64     `json:"goal_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CompletedAt *time.Time `json:"-"`
}

func (t *Task) IsComplete() bool {
	return t.CompletedAt != nil
}

// MarshalJSON renders the task dict: goal_id only when set, completion as a flag.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		IsComplete  bool   `json:"is_complete"`
		GoalID      *int64 `json:"goal_id,omitempty"`
	}{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsComplete:  t.IsComplete(),
		GoalID:      t.GoalID,
	})
}

func (t *Task) OwnedBy(userID int64) bool {
	return t.UserID == userID
}

// Owned is implemented by records that belong to a single user.
type Owned interface {
	OwnedBy(userID int64) bool
}

// TaskOrder selects how task listings are sorted.
type TaskOrder int

const (
	OrderByID TaskOrder = iota
	OrderByTitleAsc
	OrderByTitleDesc
)

// ParseTaskOrder maps the "sort" query value to a TaskOrder.
// Anything other than "asc" or "desc" falls back to id order.
func ParseTaskOrder(sort string) TaskOrder {
	switch sort {
	case "asc":
		return OrderByTitleAsc
	case "desc":
		return OrderByTitleDesc
	default:
		return OrderByID
	}
}
