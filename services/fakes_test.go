package services

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lborres/tasklist/core"
)

// FakeStorage is a test-only fake implementing core.Storage.
// It keeps records in maps and exposes error fields for behavior injection.
type FakeStorage struct {
	mu sync.RWMutex

	users    map[int64]*core.User
	sessions map[uuid.UUID]*core.Session
	tasks    map[int64]*core.Task
	goals    map[int64]*core.Goal
	nextID   int64

	getSessionErr    error
	updateSessionErr error
	getUserErr       error
	updateTaskErr    error
	deleteTaskErr    error

	sessionUpdates int
}

var _ core.Storage = (*FakeStorage)(nil)

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{
		users:    make(map[int64]*core.User),
		sessions: make(map[uuid.UUID]*core.Session),
		tasks:    make(map[int64]*core.Task),
		goals:    make(map[int64]*core.Goal),
	}
}

func (f *FakeStorage) id() int64 {
	f.nextID++
	return f.nextID
}

// UserStorage implementation
func (f *FakeStorage) CreateUser(_ context.Context, u *core.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return core.ErrUserExists
		}
	}
	u.ID = f.id()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *FakeStorage) GetUserByID(_ context.Context, id int64) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *FakeStorage) GetUserByEmail(_ context.Context, email string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrRecordNotFound
}

func (f *FakeStorage) deleteUser(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

// SessionStorage implementation
func (f *FakeStorage) CreateSession(_ context.Context, s *core.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *FakeStorage) GetActiveSession(_ context.Context, id uuid.UUID, now time.Time) (*core.Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getSessionErr != nil {
		return nil, f.getSessionErr
	}
	s, ok := f.sessions[id]
	if !ok || !s.ExpiresAt.After(now) {
		return nil, core.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *FakeStorage) UpdateSessionExpiry(_ context.Context, id uuid.UUID, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateSessionErr != nil {
		return f.updateSessionErr
	}
	s, ok := f.sessions[id]
	if !ok {
		return core.ErrSessionNotFound
	}
	s.ExpiresAt = expiresAt
	f.sessionUpdates++
	return nil
}

func (f *FakeStorage) DeleteExpiredSessions(_ context.Context, now time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for id, s := range f.sessions {
		if !s.ExpiresAt.After(now) {
			delete(f.sessions, id)
			n++
		}
	}
	return n, nil
}

func (f *FakeStorage) storedSession(id uuid.UUID) (*core.Session, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, false
	}
	cp := *s
	return &cp, true
}

// TaskStorage implementation
func (f *FakeStorage) ListTasks(_ context.Context, userID int64, order core.TaskOrder) ([]*core.Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*core.Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sortTasks(out, order)
	return out, nil
}

func sortTasks(tasks []*core.Task, order core.TaskOrder) {
	sort.Slice(tasks, func(i, j int) bool {
		switch order {
		case core.OrderByTitleAsc:
			return tasks[i].Title < tasks[j].Title
		case core.OrderByTitleDesc:
			return tasks[i].Title > tasks[j].Title
		default:
			return tasks[i].ID < tasks[j].ID
		}
	})
}

func (f *FakeStorage) GetTaskByID(_ context.Context, id int64) (*core.Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	t, ok := f.tasks[id]
	if !ok {
		return nil, core.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *FakeStorage) CreateTask(_ context.Context, t *core.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.id()
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *FakeStorage) UpdateTask(_ context.Context, t *core.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateTaskErr != nil {
		return f.updateTaskErr
	}
	if _, ok := f.tasks[t.ID]; !ok {
		return core.ErrRecordNotFound
	}
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *FakeStorage) DeleteTask(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteTaskErr != nil {
		return f.deleteTaskErr
	}
	if _, ok := f.tasks[id]; !ok {
		return core.ErrRecordNotFound
	}
	delete(f.tasks, id)
	return nil
}

// GoalStorage implementation
func (f *FakeStorage) ListGoals(_ context.Context) ([]*core.Goal, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*core.Goal, 0, len(f.goals))
	for _, g := range f.goals {
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *FakeStorage) GetGoalByID(_ context.Context, id int64) (*core.Goal, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	g, ok := f.goals[id]
	if !ok {
		return nil, core.ErrRecordNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *FakeStorage) CreateGoal(_ context.Context, g *core.Goal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g.ID = f.id()
	cp := *g
	f.goals[g.ID] = &cp
	return nil
}

func (f *FakeStorage) UpdateGoal(_ context.Context, g *core.Goal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.goals[g.ID]; !ok {
		return core.ErrRecordNotFound
	}
	cp := *g
	f.goals[g.ID] = &cp
	return nil
}

func (f *FakeStorage) DeleteGoal(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.goals[id]; !ok {
		return core.ErrRecordNotFound
	}
	delete(f.goals, id)
	for _, t := range f.tasks {
		if t.GoalID != nil && *t.GoalID == id {
			t.GoalID = nil
		}
	}
	return nil
}

func (f *FakeStorage) ListGoalTasks(_ context.Context, goalID int64) ([]*core.Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*core.Task
	for _, t := range f.tasks {
		if t.GoalID != nil && *t.GoalID == goalID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sortTasks(out, core.OrderByID)
	return out, nil
}

func (f *FakeStorage) ReplaceGoalTasks(_ context.Context, goalID int64, taskIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// validate everything before touching state
	for _, id := range taskIDs {
		if _, ok := f.tasks[id]; !ok {
			return core.NotFound("Task", strconv.FormatInt(id, 10))
		}
	}

	for _, t := range f.tasks {
		if t.GoalID != nil && *t.GoalID == goalID {
			t.GoalID = nil
		}
	}
	for _, id := range taskIDs {
		gid := goalID
		f.tasks[id].GoalID = &gid
	}
	return nil
}

// fakeClock is a settable clock for expiration arithmetic.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeNotifier records completions and can be told to fail.
type fakeNotifier struct {
	calls chan *core.Task
	err   error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{calls: make(chan *core.Task, 8)}
}

func (n *fakeNotifier) TaskCompleted(_ context.Context, task *core.Task) error {
	n.calls <- task
	return n.err
}

func strptr(s string) *string { return &s }
