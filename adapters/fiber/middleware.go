package fiber

import (
	"github.com/gofiber/fiber/v3"
	"github.com/lborres/tasklist/core"
)

// Keys under which guards store request-scoped values in c.Locals.
const (
	localUser    = "user"
	localSession = "session"
	localTask    = "task"
	localGoal    = "goal"
)

// requireAuth resolves the session cookie and stores user/session data in the
// context for downstream handlers. A missing or invalid session ends the
// request with 401.
func (a *Adapter) requireAuth(next fiber.Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := c.Cookies(a.cookieName())

		data, err := a.tl.Auth.Authenticate(c.Context(), token)
		if err != nil {
			return handleError(c, err)
		}

		c.Locals(localUser, data.User)
		c.Locals(localSession, data.Session)

		// keep the browser cookie in step with the slid expiration
		a.setSessionCookie(c, data.Session)

		return next(c)
	}
}

// requireTask loads the caller's task named by :id.
func (a *Adapter) requireTask(next fiber.Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		task, err := a.tl.Tasks.Get(c.Context(), currentUser(c), c.Params("id"))
		if err != nil {
			return handleError(c, err)
		}
		c.Locals(localTask, task)
		return next(c)
	}
}

// requireGoal loads the goal named by :id.
func (a *Adapter) requireGoal(next fiber.Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		goal, err := a.tl.Goals.Get(c.Context(), c.Params("id"))
		if err != nil {
			return handleError(c, err)
		}
		c.Locals(localGoal, goal)
		return next(c)
	}
}

func currentUser(c fiber.Ctx) *core.Identity {
	user, _ := c.Locals(localUser).(*core.Identity)
	return user
}

func currentSession(c fiber.Ctx) *core.Session {
	session, _ := c.Locals(localSession).(*core.Session)
	return session
}

func currentTask(c fiber.Ctx) *core.Task {
	task, _ := c.Locals(localTask).(*core.Task)
	return task
}

func currentGoal(c fiber.Ctx) *core.Goal {
	goal, _ := c.Locals(localGoal).(*core.Goal)
	return goal
}

func (a *Adapter) cookieName() string {
	if a.tl.Session.CookieName == "" {
		return core.DefaultCookieName
	}
	return a.tl.Session.CookieName
}

func (a *Adapter) setSessionCookie(c fiber.Ctx, session *core.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     a.cookieName(),
		Value:    session.ID.String(),
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   a.tl.Session.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
