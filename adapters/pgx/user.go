package pgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/lborres/tasklist/core"
)

const userColumns = `id, name, email, password_hash, created_at, updated_at`

func (a *Adapter) CreateUser(ctx context.Context, user *core.User) error {
	query := `INSERT INTO public.users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`

	err := a.pool.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrUserExists
		}
		return err
	}
	return nil
}

func (a *Adapter) GetUserByID(ctx context.Context, id int64) (*core.User, error) {
	q := `SELECT ` + userColumns + ` FROM public.users WHERE id = $1`
	return scanUser(a.pool.QueryRow(ctx, q, id))
}

func (a *Adapter) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	q := `SELECT ` + userColumns + ` FROM public.users WHERE email = $1`
	return scanUser(a.pool.QueryRow(ctx, q, email))
}

func scanUser(row pgx.Row) (*core.User, error) {
	user := &core.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrRecordNotFound
		}
		return nil, err
	}
	return user, nil
}
