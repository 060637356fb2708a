package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/lborres/tasklist/core"
)

const goalEntity = "Goal"

type GoalService struct {
	db core.GoalStorage
}

// Ensure GoalService implements GoalHandler
var _ core.GoalHandler = (*GoalService)(nil)

func NewGoalService(db core.GoalStorage) *GoalService {
	return &GoalService{db: db}
}

func (s *GoalService) List(ctx context.Context) ([]*core.Goal, error) {
	goals, err := s.db.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func (s *GoalService) Get(ctx context.Context, rawID string) (*core.Goal, error) {
	return Fetch(ctx, goalEntity, rawID, s.db.GetGoalByID, nil)
}

func (s *GoalService) Create(ctx context.Context, input core.GoalInput) (*core.Goal, error) {
	if input.Title == nil {
		return nil, core.ErrInvalidRequestData
	}

	goal := &core.Goal{Title: *input.Title}
	if err := s.db.CreateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return goal, nil
}

func (s *GoalService) Update(ctx context.Context, goal *core.Goal, input core.GoalInput) (*core.Goal, error) {
	if input.Title == nil {
		return nil, core.ErrInvalidRequestData
	}

	updated := *goal
	updated.Title = *input.Title
	if err := s.db.UpdateGoal(ctx, &updated); err != nil {
		return nil, s.storageErr(goal.ID, "update", err)
	}
	*goal = updated
	return goal, nil
}

// Delete removes the goal; its tasks stay and lose their goal reference.
func (s *GoalService) Delete(ctx context.Context, goal *core.Goal) error {
	if err := s.db.DeleteGoal(ctx, goal.ID); err != nil {
		return s.storageErr(goal.ID, "delete", err)
	}
	return nil
}

// SetTasks replaces the goal's whole task set. If any id is unknown nothing
// is written and the request is rejected as invalid.
func (s *GoalService) SetTasks(ctx context.Context, goal *core.Goal, input core.GoalTasksInput) ([]int64, error) {
	if input.TaskIDs == nil {
		return nil, core.ErrInvalidRequestData
	}

	ids := dedupe(*input.TaskIDs)
	if err := s.db.ReplaceGoalTasks(ctx, goal.ID, ids); err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			return nil, core.ErrInvalidRequestData
		}
		return nil, fmt.Errorf("failed to set goal tasks: %w", err)
	}
	return ids, nil
}

func (s *GoalService) Tasks(ctx context.Context, goal *core.Goal) ([]*core.Task, error) {
	tasks, err := s.db.ListGoalTasks(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goal tasks: %w", err)
	}
	return tasks, nil
}

func (s *GoalService) storageErr(id int64, op string, err error) error {
	if errors.Is(err, core.ErrRecordNotFound) {
		return core.NotFound(goalEntity, strconv.FormatInt(id, 10))
	}
	return fmt.Errorf("failed to %s goal: %w", op, err)
}

// dedupe keeps the first occurrence of every id, preserving order.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
