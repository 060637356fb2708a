package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lborres/tasklist/core"
)

// SessionManager owns the session lifecycle: ACTIVE while now < ExpiresAt,
// EXPIRED afterwards. Rows are never deleted on the request path.
type SessionManager struct {
	config  core.SessionConfig
	storage core.SessionStorage
	now     core.Clock
}

func NewSessionManager(config core.SessionConfig, storage core.SessionStorage, now core.Clock) *SessionManager {
	if config.TTL <= 0 {
		config.TTL = core.DefaultSessionTTL
	}
	if now == nil {
		now = utcNow
	}
	return &SessionManager{config: config, storage: storage, now: now}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func (sm *SessionManager) TTL() time.Duration {
	return sm.config.TTL
}

func (sm *SessionManager) Create(ctx context.Context, userID int64) (*core.Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	now := sm.now()
	session := &core.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: now.Add(sm.config.TTL),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := sm.storage.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// GetActive looks up an unexpired session and slides its expiration to now + TTL.
// Malformed, unknown and expired tokens all return core.ErrInvalidSession.
func (sm *SessionManager) GetActive(ctx context.Context, token string) (*core.Session, error) {
	if token == "" {
		return nil, core.ErrInvalidSession
	}

	id, err := uuid.Parse(token)
	if err != nil {
		return nil, core.ErrInvalidSession
	}

	now := sm.now()
	session, err := sm.storage.GetActiveSession(ctx, id, now)
	if err != nil {
		if errors.Is(err, core.ErrSessionNotFound) {
			return nil, core.ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err := sm.setExpiry(ctx, session, now.Add(sm.config.TTL), now); err != nil {
		if errors.Is(err, core.ErrSessionNotFound) {
			return nil, core.ErrInvalidSession
		}
		return nil, err
	}

	return session, nil
}

// Expire moves the expiration into the past (now - TTL). Calling it on an
// already expired or purged session is harmless.
func (sm *SessionManager) Expire(ctx context.Context, session *core.Session) error {
	now := sm.now()
	err := sm.setExpiry(ctx, session, now.Add(-sm.config.TTL), now)
	if errors.Is(err, core.ErrSessionNotFound) {
		session.ExpiresAt = now.Add(-sm.config.TTL)
		return nil
	}
	return err
}

func (sm *SessionManager) PurgeExpired(ctx context.Context) (int, error) {
	n, err := sm.storage.DeleteExpiredSessions(ctx, sm.now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return n, nil
}

func (sm *SessionManager) setExpiry(ctx context.Context, session *core.Session, expiresAt, now time.Time) error {
	if err := sm.storage.UpdateSessionExpiry(ctx, session.ID, expiresAt); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	session.ExpiresAt = expiresAt
	session.UpdatedAt = now
	return nil
}
