package gorm

import (
	"time"

	"github.com/google/uuid"
	"github.com/lborres/tasklist/core"
)

type userRecord struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toCore() *core.User {
	return &core.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// sessionRecord keeps expires_at as unix nanoseconds so comparisons in SQL
// are exact integer comparisons.
type sessionRecord struct {
	ID        string `gorm:"primaryKey;type:text"`
	UserID    int64  `gorm:"not null;index"`
	ExpiresAt int64  `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (sessionRecord) TableName() string { return "sessions" }

func (r *sessionRecord) toCore() (*core.Session, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	return &core.Session{
		ID:        id,
		UserID:    r.UserID,
		ExpiresAt: time.Unix(0, r.ExpiresAt).UTC(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

type goalRecord struct {
	ID    int64  `gorm:"primaryKey"`
	Title string `gorm:"not null"`
}

func (goalRecord) TableName() string { return "goals" }

type taskRecord struct {
	ID          int64  `gorm:"primaryKey"`
	UserID      int64  `gorm:"not null;index"`
	GoalID      *int64 `gorm:"index"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	CompletedAt *time.Time
}

func (taskRecord) TableName() string { return "tasks" }

func (r *taskRecord) toCore() *core.Task {
	return &core.Task{
		ID:          r.ID,
		UserID:      r.UserID,
		GoalID:      r.GoalID,
		Title:       r.Title,
		Description: r.Description,
		CompletedAt: r.CompletedAt,
	}
}

func tasksToCore(records []taskRecord) []*core.Task {
	tasks := make([]*core.Task, len(records))
	for i := range records {
		tasks[i] = records[i].toCore()
	}
	return tasks
}
