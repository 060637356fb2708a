package fiber

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/lborres/tasklist/core"
)

const internalErrorMessage = "Internal server error"

type sessionBody struct {
	ID   string         `json:"id"`
	User *core.Identity `json:"user"`
}

type sessionResponse struct {
	Session sessionBody `json:"session"`
}

type goalTasksResponse struct {
	ID      int64   `json:"id"`
	TaskIDs []int64 `json:"task_ids"`
}

type goalWithTasksResponse struct {
	ID    int64        `json:"id"`
	Title string       `json:"title"`
	Tasks []*core.Task `json:"tasks"`
}

// bind decodes the JSON body; malformed input is invalid request data.
func bind(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return core.ErrInvalidRequestData
	}
	return nil
}

// ============================================
// Sessions & users
// ============================================

func (a *Adapter) createSession(c fiber.Ctx) error {
	var input core.SignInInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}

	data, err := a.tl.Auth.SignIn(c.Context(), input)
	if err != nil {
		return handleError(c, err)
	}

	a.setSessionCookie(c, data.Session)
	return c.Status(http.StatusCreated).JSON(sessionResponse{
		Session: sessionBody{ID: data.Session.ID.String(), User: data.User},
	})
}

func (a *Adapter) deleteSession(c fiber.Ctx) error {
	if err := a.tl.Auth.SignOut(c.Context(), currentSession(c)); err != nil {
		return handleError(c, err)
	}

	c.ClearCookie(a.cookieName())
	return c.SendStatus(http.StatusNoContent)
}

func (a *Adapter) createUser(c fiber.Ctx) error {
	var input core.SignUpInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}

	identity, err := a.tl.Auth.SignUp(c.Context(), input)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(identity)
}

// ============================================
// Tasks
// ============================================

func (a *Adapter) listTasks(c fiber.Ctx) error {
	tasks, err := a.tl.Tasks.List(c.Context(), currentUser(c), c.Query("sort"))
	if err != nil {
		return handleError(c, err)
	}
	if tasks == nil {
		tasks = []*core.Task{}
	}
	return c.JSON(tasks)
}

func (a *Adapter) createTask(c fiber.Ctx) error {
	var input core.TaskInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}

	task, err := a.tl.Tasks.Create(c.Context(), currentUser(c), input)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(task)
}

func (a *Adapter) getTask(c fiber.Ctx) error {
	return c.JSON(currentTask(c))
}

func (a *Adapter) updateTask(c fiber.Ctx) error {
	var input core.TaskInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}

	task, err := a.tl.Tasks.Update(c.Context(), currentUser(c), currentTask(c), input)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(task)
}

func (a *Adapter) deleteTask(c fiber.Ctx) error {
	if err := a.tl.Tasks.Delete(c.Context(), currentUser(c), currentTask(c)); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (a *Adapter) markTaskComplete(c fiber.Ctx) error {
	task, err := a.tl.Tasks.MarkComplete(c.Context(), currentUser(c), currentTask(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(task)
}

func (a *Adapter) markTaskIncomplete(c fiber.Ctx) error {
	task, err := a.tl.Tasks.MarkIncomplete(c.Context(), currentUser(c), currentTask(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(task)
}

// ============================================
// Goals
// ============================================

func (a *Adapter) listGoals(c fiber.Ctx) error {
	goals, err := a.tl.Goals.List(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	if goals == nil {
		goals = []*core.Goal{}
	}
	return c.JSON(goals)
}

func (a *Adapter) createGoal(c fiber.Ctx) error {
	var input core.GoalInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}

	goal, err := a.tl.Goals.Create(c.Context(), input)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(goal)
}

func (a *Adapter) getGoal(c fiber.Ctx) error {
	return c.JSON(currentGoal(c))
}

func (a *Adapter) updateGoal(c fiber.Ctx) error {
	var input core.GoalInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}

	goal, err := a.tl.Goals.Update(c.Context(), currentGoal(c), input)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(goal)
}

func (a *Adapter) deleteGoal(c fiber.Ctx) error {
	if err := a.tl.Goals.Delete(c.Context(), currentGoal(c)); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (a *Adapter) setGoalTasks(c fiber.Ctx) error {
	var input core.GoalTasksInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}

	goal := currentGoal(c)
	ids, err := a.tl.Goals.SetTasks(c.Context(), goal, input)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(goalTasksResponse{ID: goal.ID, TaskIDs: ids})
}

func (a *Adapter) getGoalTasks(c fiber.Ctx) error {
	goal := currentGoal(c)
	tasks, err := a.tl.Goals.Tasks(c.Context(), goal)
	if err != nil {
		return handleError(c, err)
	}
	if tasks == nil {
		tasks = []*core.Task{}
	}
	return c.JSON(goalWithTasksResponse{ID: goal.ID, Title: goal.Title, Tasks: tasks})
}

// ============================================
// Errors
// ============================================

// ErrorHandler renders errors that escape a handler, including fiber's own
// 404 and 405, as {"details": ...}. Pass it as fiber.Config.ErrorHandler.
func ErrorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(core.ErrorResponse{Details: fe.Message})
	}
	return handleError(c, err)
}

// handleError maps domain errors to appropriate HTTP responses
func handleError(c fiber.Ctx, err error) error {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(core.ErrorResponse{Details: errorDetails(status, err)})
}

// mapErrorToStatus maps core error types to HTTP status codes
func mapErrorToStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, core.ErrInvalidAuthorization):
		return http.StatusUnauthorized

	case errors.Is(err, core.ErrRecordNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrInvalidRequestData):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

func errorDetails(status int, err error) string {
	switch status {
	case http.StatusUnauthorized:
		return core.ErrInvalidAuthorization.Error()
	case http.StatusBadRequest:
		return core.ErrInvalidRequestData.Error()
	case http.StatusNotFound:
		var nf *core.NotFoundError
		if errors.As(err, &nf) {
			return nf.Error()
		}
		return "Not found"
	default:
		return internalErrorMessage
	}
}
