package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lborres/tasklist/core"
	"gorm.io/gorm"
)

func (a *Adapter) CreateSession(ctx context.Context, session *core.Session) error {
	rec := sessionRecord{
		ID:        session.ID.String(),
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt.UnixNano(),
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
	if err := a.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (a *Adapter) GetActiveSession(ctx context.Context, id uuid.UUID, now time.Time) (*core.Session, error) {
	var rec sessionRecord
	err := a.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id.String(), now.UnixNano()).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return rec.toCore()
}

func (a *Adapter) UpdateSessionExpiry(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	res := a.db.WithContext(ctx).
		Model(&sessionRecord{}).
		Where("id = ?", id.String()).
		Update("expires_at", expiresAt.UnixNano())
	if res.Error != nil {
		return fmt.Errorf("update session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return core.ErrSessionNotFound
	}
	return nil
}

func (a *Adapter) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	res := a.db.WithContext(ctx).Where("expires_at <= ?", now.UnixNano()).Delete(&sessionRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}
