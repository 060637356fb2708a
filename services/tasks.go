package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/lborres/tasklist/core"
)

const (
	taskEntity = "Task"

	defaultNotifyTimeout = 5 * time.Second
)

type TaskService struct {
	db       core.TaskStorage
	notifier core.Notifier
	now      core.Clock

	notifyTimeout time.Duration
}

// Ensure TaskService implements TaskHandler
var _ core.TaskHandler = (*TaskService)(nil)

// NewTaskService builds the task operations. A nil notifier disables
// completion notifications.
func NewTaskService(db core.TaskStorage, notifier core.Notifier, now core.Clock) *TaskService {
	if now == nil {
		now = utcNow
	}
	return &TaskService{db: db, notifier: notifier, now: now, notifyTimeout: defaultNotifyTimeout}
}

// WithNotifyTimeout bounds how long a single completion notification may run.
func (s *TaskService) WithNotifyTimeout(d time.Duration) *TaskService {
	if d > 0 {
		s.notifyTimeout = d
	}
	return s
}

func (s *TaskService) List(ctx context.Context, user *core.Identity, sort string) ([]*core.Task, error) {
	tasks, err := s.db.ListTasks(ctx, user.ID, core.ParseTaskOrder(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, user *core.Identity, rawID string) (*core.Task, error) {
	return Fetch(ctx, taskEntity, rawID, s.db.GetTaskByID, user)
}

func (s *TaskService) Create(ctx context.Context, user *core.Identity, input core.TaskInput) (*core.Task, error) {
	if input.Title == nil || input.Description == nil {
		return nil, core.ErrInvalidRequestData
	}

	task := &core.Task{
		UserID:      user.ID,
		Title:       *input.Title,
		Description: *input.Description,
	}
	if err := s.db.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Update replaces title and description. Both keys are required.
func (s *TaskService) Update(ctx context.Context, user *core.Identity, task *core.Task, input core.TaskInput) (*core.Task, error) {
	if err := checkOwner(taskEntity, task.ID, task, user); err != nil {
		return nil, err
	}
	if input.Title == nil || input.Description == nil {
		return nil, core.ErrInvalidRequestData
	}

	updated := *task
	updated.Title = *input.Title
	updated.Description = *input.Description
	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	*task = updated
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, user *core.Identity, task *core.Task) error {
	if err := checkOwner(taskEntity, task.ID, task, user); err != nil {
		return err
	}
	if err := s.db.DeleteTask(ctx, task.ID); err != nil {
		return s.storageErr(task.ID, "delete", err)
	}
	return nil
}

// MarkComplete stamps CompletedAt and, once the write is committed, sends the
// completion notification in the background. Notification failures never
// reach the caller.
func (s *TaskService) MarkComplete(ctx context.Context, user *core.Identity, task *core.Task) (*core.Task, error) {
	if err := checkOwner(taskEntity, task.ID, task, user); err != nil {
		return nil, err
	}

	completedAt := s.now().UTC()
	updated := *task
	updated.CompletedAt = &completedAt
	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	*task = updated

	s.notifyCompleted(ctx, updated)
	return task, nil
}

func (s *TaskService) MarkIncomplete(ctx context.Context, user *core.Identity, task *core.Task) (*core.Task, error) {
	if err := checkOwner(taskEntity, task.ID, task, user); err != nil {
		return nil, err
	}

	updated := *task
	updated.CompletedAt = nil
	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	*task = updated
	return task, nil
}

func (s *TaskService) save(ctx context.Context, task *core.Task) error {
	if err := s.db.UpdateTask(ctx, task); err != nil {
		return s.storageErr(task.ID, "update", err)
	}
	return nil
}

// storageErr maps a row that vanished underneath us to the same not-found
// error the guard would have produced.
func (s *TaskService) storageErr(id int64, op string, err error) error {
	if errors.Is(err, core.ErrRecordNotFound) {
		return core.NotFound(taskEntity, strconv.FormatInt(id, 10))
	}
	return fmt.Errorf("failed to %s task: %w", op, err)
}

func (s *TaskService) notifyCompleted(ctx context.Context, task core.Task) {
	if s.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	go func() {
		defer cancel()
		if err := s.notifier.TaskCompleted(ctx, &task); err != nil {
			log.Printf("task %d: completion notification failed: %v", task.ID, err)
		}
	}()
}
