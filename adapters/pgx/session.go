package pgx

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lborres/tasklist/core"
)

func (a *Adapter) CreateSession(ctx context.Context, session *core.Session) error {
	q := `INSERT INTO public.sessions (id, user_id, expires_at, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := a.pool.Exec(ctx, q, session.ID, session.UserID, session.ExpiresAt, session.CreatedAt, session.UpdatedAt)
	return err
}

func (a *Adapter) GetActiveSession(ctx context.Context, id uuid.UUID, now time.Time) (*core.Session, error) {
	q := `SELECT id, user_id, expires_at, created_at, updated_at FROM public.sessions WHERE id = $1 AND expires_at > $2`

	s := &core.Session{}
	err := a.pool.QueryRow(ctx, q, id, now).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

func (a *Adapter) UpdateSessionExpiry(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	tag, err := a.pool.Exec(ctx, `UPDATE public.sessions SET expires_at = $1, updated_at = now() WHERE id = $2`, expiresAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrSessionNotFound
	}
	return nil
}

func (a *Adapter) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	tag, err := a.pool.Exec(ctx, `DELETE FROM public.sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
