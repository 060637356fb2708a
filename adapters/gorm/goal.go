package gorm

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/lborres/tasklist/core"
	"gorm.io/gorm"
)

func (a *Adapter) ListGoals(ctx context.Context) ([]*core.Goal, error) {
	var records []goalRecord
	if err := a.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	goals := make([]*core.Goal, len(records))
	for i, rec := range records {
		goals[i] = &core.Goal{ID: rec.ID, Title: rec.Title}
	}
	return goals, nil
}

func (a *Adapter) GetGoalByID(ctx context.Context, id int64) (*core.Goal, error) {
	var rec goalRecord
	if err := a.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find goal: %w", err)
	}
	return &core.Goal{ID: rec.ID, Title: rec.Title}, nil
}

func (a *Adapter) CreateGoal(ctx context.Context, g *core.Goal) error {
	rec := goalRecord{Title: g.Title}
	if err := a.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	g.ID = rec.ID
	return nil
}

func (a *Adapter) UpdateGoal(ctx context.Context, g *core.Goal) error {
	res := a.db.WithContext(ctx).Model(&goalRecord{}).Where("id = ?", g.ID).Update("title", g.Title)
	if res.Error != nil {
		return fmt.Errorf("update goal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return core.ErrRecordNotFound
	}
	return nil
}

// DeleteGoal removes the goal and detaches its tasks in one transaction.
func (a *Adapter) DeleteGoal(ctx context.Context, id int64) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&taskRecord{}).Where("goal_id = ?", id).Update("goal_id", nil).Error; err != nil {
			return fmt.Errorf("detach goal tasks: %w", err)
		}
		res := tx.Delete(&goalRecord{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete goal: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return core.ErrRecordNotFound
		}
		return nil
	})
}

func (a *Adapter) ListGoalTasks(ctx context.Context, goalID int64) ([]*core.Task, error) {
	var records []taskRecord
	if err := a.db.WithContext(ctx).Where("goal_id = ?", goalID).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list goal tasks: %w", err)
	}
	return tasksToCore(records), nil
}

func (a *Adapter) ReplaceGoalTasks(ctx context.Context, goalID int64, taskIDs []int64) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(taskIDs) > 0 {
			var found []int64
			if err := tx.Model(&taskRecord{}).Where("id IN ?", taskIDs).Pluck("id", &found).Error; err != nil {
				return fmt.Errorf("find tasks: %w", err)
			}
			if missing, ok := missingID(taskIDs, found); ok {
				return core.NotFound("Task", strconv.FormatInt(missing, 10))
			}
		}

		if err := tx.Model(&taskRecord{}).Where("goal_id = ?", goalID).Update("goal_id", nil).Error; err != nil {
			return fmt.Errorf("clear goal tasks: %w", err)
		}
		if len(taskIDs) == 0 {
			return nil
		}
		if err := tx.Model(&taskRecord{}).Where("id IN ?", taskIDs).Update("goal_id", goalID).Error; err != nil {
			return fmt.Errorf("assign goal tasks: %w", err)
		}
		return nil
	})
}

func missingID(want, found []int64) (int64, bool) {
	have := make(map[int64]bool, len(found))
	for _, id := range found {
		have[id] = true
	}
	for _, id := range want {
		if !have[id] {
			return id, true
		}
	}
	return 0, false
}
