package pgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/lborres/tasklist/core"
)

const taskColumns = `id, user_id, goal_id, title, description, completed_at`

var taskOrderBy = map[core.TaskOrder]string{
	core.OrderByID:        `id`,
	core.OrderByTitleAsc:  `title ASC, id`,
	core.OrderByTitleDesc: `title DESC, id`,
}

func (a *Adapter) ListTasks(ctx context.Context, userID int64, order core.TaskOrder) ([]*core.Task, error) {
	orderBy, ok := taskOrderBy[order]
	if !ok {
		orderBy = taskOrderBy[core.OrderByID]
	}

	q := `SELECT ` + taskColumns + ` FROM public.tasks WHERE user_id = $1 ORDER BY ` + orderBy
	rows, err := a.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (a *Adapter) GetTaskByID(ctx context.Context, id int64) (*core.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM public.tasks WHERE id = $1`

	t := &core.Task{}
	err := a.pool.QueryRow(ctx, q, id).Scan(&t.ID, &t.UserID, &t.GoalID, &t.Title, &t.Description, &t.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrRecordNotFound
		}
		return nil, err
	}
	return t, nil
}

func (a *Adapter) CreateTask(ctx context.Context, t *core.Task) error {
	q := `INSERT INTO public.tasks (user_id, goal_id, title, description, completed_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return a.pool.QueryRow(ctx, q, t.UserID, t.GoalID, t.Title, t.Description, t.CompletedAt).Scan(&t.ID)
}

func (a *Adapter) UpdateTask(ctx context.Context, t *core.Task) error {
	q := `UPDATE public.tasks SET goal_id = $1, title = $2, description = $3, completed_at = $4 WHERE id = $5`
	tag, err := a.pool.Exec(ctx, q, t.GoalID, t.Title, t.Description, t.CompletedAt, t.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrRecordNotFound
	}
	return nil
}

func (a *Adapter) DeleteTask(ctx context.Context, id int64) error {
	tag, err := a.pool.Exec(ctx, `DELETE FROM public.tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrRecordNotFound
	}
	return nil
}

func collectTasks(rows pgx.Rows) ([]*core.Task, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*core.Task, error) {
		t := &core.Task{}
		err := row.Scan(&t.ID, &t.UserID, &t.GoalID, &t.Title, &t.Description, &t.CompletedAt)
		return t, err
	})
}
