package fiber

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/lborres/tasklist/core"
)

type Adapter struct {
	app *fiber.App
	tl  *core.Tasklist
}

var _ core.HTTPAdapter = (*Adapter)(nil)

func New(app *fiber.App) *Adapter {
	return &Adapter{app: app}
}

// RegisterRoutes mounts every endpoint of the registry. Each route runs the
// session guard when Protected, then the resource guard, then its handler.
func (a *Adapter) RegisterRoutes(tl *core.Tasklist) error {
	a.tl = tl
	handlers := a.operations()

	for _, ep := range tl.Endpoints {
		handler, ok := handlers[ep.Metadata.OperationID]
		if !ok {
			return fmt.Errorf("no handler for operation %q (%s %s)", ep.Metadata.OperationID, ep.Method, ep.Path)
		}

		switch ep.Resource {
		case core.ResourceNone:
		case core.ResourceTask:
			handler = a.requireTask(handler)
		case core.ResourceGoal:
			handler = a.requireGoal(handler)
		default:
			return fmt.Errorf("unknown resource %q on %s %s", ep.Resource, ep.Method, ep.Path)
		}

		if ep.Protected {
			handler = a.requireAuth(handler)
		}

		a.app.Add([]string{ep.Method}, ep.Path, handler)
	}

	return nil
}

// operations binds operation ids to handlers.
func (a *Adapter) operations() map[string]fiber.Handler {
	return map[string]fiber.Handler{
		"createSession": a.createSession,
		"deleteSession": a.deleteSession,
		"createUser":    a.createUser,

		"listTasks":          a.listTasks,
		"createTask":         a.createTask,
		"getTask":            a.getTask,
		"updateTask":         a.updateTask,
		"deleteTask":         a.deleteTask,
		"markTaskComplete":   a.markTaskComplete,
		"markTaskIncomplete": a.markTaskIncomplete,

		"listGoals":    a.listGoals,
		"createGoal":   a.createGoal,
		"getGoal":      a.getGoal,
		"updateGoal":   a.updateGoal,
		"deleteGoal":   a.deleteGoal,
		"setGoalTasks": a.setGoalTasks,
		"getGoalTasks": a.getGoalTasks,
	}
}
