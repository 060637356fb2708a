package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/lborres/tasklist/core"
	"gorm.io/gorm"
)

var taskOrderBy = map[core.TaskOrder]string{
	core.OrderByID:        "id",
	core.OrderByTitleAsc:  "title ASC, id",
	core.OrderByTitleDesc: "title DESC, id",
}

func (a *Adapter) ListTasks(ctx context.Context, userID int64, order core.TaskOrder) ([]*core.Task, error) {
	orderBy, ok := taskOrderBy[order]
	if !ok {
		orderBy = taskOrderBy[core.OrderByID]
	}

	var records []taskRecord
	if err := a.db.WithContext(ctx).Where("user_id = ?", userID).Order(orderBy).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasksToCore(records), nil
}

func (a *Adapter) GetTaskByID(ctx context.Context, id int64) (*core.Task, error) {
	var rec taskRecord
	if err := a.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return rec.toCore(), nil
}

func (a *Adapter) CreateTask(ctx context.Context, t *core.Task) error {
	rec := taskRecord{
		UserID:      t.UserID,
		GoalID:      t.GoalID,
		Title:       t.Title,
		Description: t.Description,
		CompletedAt: t.CompletedAt,
	}
	if err := a.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	t.ID = rec.ID
	return nil
}

func (a *Adapter) UpdateTask(ctx context.Context, t *core.Task) error {
	res := a.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"goal_id":      t.GoalID,
			"title":        t.Title,
			"description":  t.Description,
			"completed_at": t.CompletedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return core.ErrRecordNotFound
	}
	return nil
}

func (a *Adapter) DeleteTask(ctx context.Context, id int64) error {
	res := a.db.WithContext(ctx).Delete(&taskRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return core.ErrRecordNotFound
	}
	return nil
}
