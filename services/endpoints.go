package services

import (
	"fmt"
	"sort"

	"github.com/lborres/tasklist/core"
)

// BaseEndpoints returns framework-agnostic endpoint definitions
// for the whole HTTP surface.
//
// Each endpoint is a template:
// - Path and Method are set
// - Protected marks routes behind the session guard
// - Resource names the record loaded from :id before the handler runs
//
// Adapters bind a handler to every OperationID.
func BaseEndpoints() []core.Endpoint {
	return []core.Endpoint{
		// sessions & users
		{Method: "POST", Path: "/sessions", Metadata: meta("createSession", "Log in with email and password")},
		{Method: "DELETE", Path: "/sessions", Protected: true, Metadata: meta("deleteSession", "Log out the current session")},
		{Method: "POST", Path: "/users", Metadata: meta("createUser", "Sign up a new user")},

		// tasks
		{Method: "GET", Path: "/tasks", Protected: true, Metadata: meta("listTasks", "List the caller's tasks")},
		{Method: "POST", Path: "/tasks", Protected: true, Metadata: meta("createTask", "Create a task")},
		{Method: "GET", Path: "/tasks/:id", Protected: true, Resource: core.ResourceTask, Metadata: meta("getTask", "Get one task")},
		{Method: "PUT", Path: "/tasks/:id", Protected: true, Resource: core.ResourceTask, Metadata: meta("updateTask", "Replace a task's title and description")},
		{Method: "DELETE", Path: "/tasks/:id", Protected: true, Resource: core.ResourceTask, Metadata: meta("deleteTask", "Delete a task")},
		{Method: "PATCH", Path: "/tasks/:id/mark_complete", Protected: true, Resource: core.ResourceTask, Metadata: meta("markTaskComplete", "Mark a task complete")},
		{Method: "PATCH", Path: "/tasks/:id/mark_incomplete", Protected: true, Resource: core.ResourceTask, Metadata: meta("markTaskIncomplete", "Mark a task incomplete")},

		// goals
		{Method: "GET", Path: "/goals", Metadata: meta("listGoals", "List goals")},
		{Method: "POST", Path: "/goals", Metadata: meta("createGoal", "Create a goal")},
		{Method: "GET", Path: "/goals/:id", Resource: core.ResourceGoal, Metadata: meta("getGoal", "Get one goal")},
		{Method: "PUT", Path: "/goals/:id", Resource: core.ResourceGoal, Metadata: meta("updateGoal", "Rename a goal")},
		{Method: "DELETE", Path: "/goals/:id", Resource: core.ResourceGoal, Metadata: meta("deleteGoal", "Delete a goal")},
		{Method: "POST", Path: "/goals/:id/tasks", Resource: core.ResourceGoal, Metadata: meta("setGoalTasks", "Replace the goal's task set")},
		{Method: "GET", Path: "/goals/:id/tasks", Resource: core.ResourceGoal, Metadata: meta("getGoalTasks", "Get a goal with its tasks")},
	}
}

func meta(operationID, description string) core.EndpointMetadata {
	return core.EndpointMetadata{OperationID: operationID, Description: description}
}

// EndpointRegistry manages a collection of framework-agnostic endpoints
// and handles conflict detection for duplicate METHOD:PATH combinations
// and duplicate operation IDs.
type EndpointRegistry struct {
	// endpoints stores all registered endpoints keyed by "METHOD:PATH"
	endpoints map[string]*core.Endpoint
	opIDs     map[string]struct{}
}

// NewEndpointRegistry creates a new registry with all base endpoints
// pre-registered.
func NewEndpointRegistry() (*EndpointRegistry, error) {
	reg := &EndpointRegistry{
		endpoints: make(map[string]*core.Endpoint),
		opIDs:     make(map[string]struct{}),
	}

	if err := reg.Register(BaseEndpoints()); err != nil {
		return nil, err
	}
	return reg, nil
}

func endpointKey(ep *core.Endpoint) string {
	return fmt.Sprintf("%s:%s", ep.Method, ep.Path)
}

// Register adds endpoints to the registry.
// Returns error if any endpoint conflicts with existing endpoints
// or with other endpoints in the same batch; in that case nothing is registered.
func (r *EndpointRegistry) Register(endpoints []core.Endpoint) error {
	seenKeys := make(map[string]bool)
	seenOps := make(map[string]bool)
	for i := range endpoints {
		ep := &endpoints[i]
		key := endpointKey(ep)
		op := ep.Metadata.OperationID

		if op == "" {
			return fmt.Errorf("endpoint %s %s has no operation id", ep.Method, ep.Path)
		}
		if _, exists := r.endpoints[key]; exists || seenKeys[key] {
			return fmt.Errorf("endpoint conflict: %s %s already registered", ep.Method, ep.Path)
		}
		if _, exists := r.opIDs[op]; exists || seenOps[op] {
			return fmt.Errorf("endpoint conflict: operation %q already registered", op)
		}
		seenKeys[key] = true
		seenOps[op] = true
	}

	for i := range endpoints {
		ep := endpoints[i]
		r.endpoints[endpointKey(&ep)] = &ep
		r.opIDs[ep.Metadata.OperationID] = struct{}{}
	}

	return nil
}

// Endpoints returns all registered endpoints ordered by path, then method.
func (r *EndpointRegistry) Endpoints() []*core.Endpoint {
	result := make([]*core.Endpoint, 0, len(r.endpoints))
	for _, ep := range r.endpoints {
		result = append(result, ep)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Path != result[j].Path {
			return result[i].Path < result[j].Path
		}
		return result[i].Method < result[j].Method
	})
	return result
}
