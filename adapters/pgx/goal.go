package pgx

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/lborres/tasklist/core"
)

func (a *Adapter) ListGoals(ctx context.Context) ([]*core.Goal, error) {
	rows, err := a.pool.Query(ctx, `SELECT id, title FROM public.goals ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*core.Goal, error) {
		g := &core.Goal{}
		err := row.Scan(&g.ID, &g.Title)
		return g, err
	})
}

func (a *Adapter) GetGoalByID(ctx context.Context, id int64) (*core.Goal, error) {
	g := &core.Goal{}
	err := a.pool.QueryRow(ctx, `SELECT id, title FROM public.goals WHERE id = $1`, id).Scan(&g.ID, &g.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrRecordNotFound
		}
		return nil, err
	}
	return g, nil
}

func (a *Adapter) CreateGoal(ctx context.Context, g *core.Goal) error {
	return a.pool.QueryRow(ctx, `INSERT INTO public.goals (title) VALUES ($1) RETURNING id`, g.Title).Scan(&g.ID)
}

func (a *Adapter) UpdateGoal(ctx context.Context, g *core.Goal) error {
	tag, err := a.pool.Exec(ctx, `UPDATE public.goals SET title = $1 WHERE id = $2`, g.Title, g.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrRecordNotFound
	}
	return nil
}

// DeleteGoal relies on ON DELETE SET NULL to detach the goal's tasks.
func (a *Adapter) DeleteGoal(ctx context.Context, id int64) error {
	tag, err := a.pool.Exec(ctx, `DELETE FROM public.goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrRecordNotFound
	}
	return nil
}

func (a *Adapter) ListGoalTasks(ctx context.Context, goalID int64) ([]*core.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM public.tasks WHERE goal_id = $1 ORDER BY id`
	rows, err := a.pool.Query(ctx, q, goalID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (a *Adapter) ReplaceGoalTasks(ctx context.Context, goalID int64, taskIDs []int64) error {
	return pgx.BeginFunc(ctx, a.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT id FROM public.tasks WHERE id = ANY($1) FOR UPDATE`, taskIDs)
		if err != nil {
			return err
		}
		found, err := pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return err
		}
		if missing, ok := firstMissing(taskIDs, found); ok {
			return core.NotFound("Task", strconv.FormatInt(missing, 10))
		}

		if _, err := tx.Exec(ctx, `UPDATE public.tasks SET goal_id = NULL WHERE goal_id = $1`, goalID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE public.tasks SET goal_id = $1 WHERE id = ANY($2)`, goalID, taskIDs); err != nil {
			return err
		}
		return nil
	})
}

func firstMissing(want, found []int64) (int64, bool) {
	have := make(map[int64]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	for _, id := range want {
		if _, ok := have[id]; !ok {
			return id, true
		}
	}
	return 0, false
}
