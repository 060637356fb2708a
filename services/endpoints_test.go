package services

import (
	"strings"
	"testing"

	"github.com/lborres/tasklist/core"
)

// Requirement: BaseEndpoints describes every route with its guard flags.
func TestBaseEndpoints(t *testing.T) {
	tests := []struct {
		method    string
		path      string
		opID      string
		protected bool
		resource  core.Resource
	}{
		{method: "POST", path: "/sessions", opID: "createSession"},
		{method: "DELETE", path: "/sessions", opID: "deleteSession", protected: true},
		{method: "POST", path: "/users", opID: "createUser"},
		{method: "GET", path: "/tasks", opID: "listTasks", protected: true},
		{method: "POST", path: "/tasks", opID: "createTask", protected: true},
		{method: "GET", path: "/tasks/:id", opID: "getTask", protected: true, resource: core.ResourceTask},
		{method: "PUT", path: "/tasks/:id", opID: "updateTask", protected: true, resource: core.ResourceTask},
		{method: "DELETE", path: "/tasks/:id", opID: "deleteTask", protected: true, resource: core.ResourceTask},
		{method: "PATCH", path: "/tasks/:id/mark_complete", opID: "markTaskComplete", protected: true, resource: core.ResourceTask},
		{method: "PATCH", path: "/tasks/:id/mark_incomplete", opID: "markTaskIncomplete", protected: true, resource: core.ResourceTask},
		{method: "GET", path: "/goals", opID: "listGoals"},
		{method: "POST", path: "/goals", opID: "createGoal"},
		{method: "GET", path: "/goals/:id", opID: "getGoal", resource: core.ResourceGoal},
		{method: "PUT", path: "/goals/:id", opID: "updateGoal", resource: core.ResourceGoal},
		{method: "DELETE", path: "/goals/:id", opID: "deleteGoal", resource: core.ResourceGoal},
		{method: "POST", path: "/goals/:id/tasks", opID: "setGoalTasks", resource: core.ResourceGoal},
		{method: "GET", path: "/goals/:id/tasks", opID: "getGoalTasks", resource: core.ResourceGoal},
	}

	endpoints := BaseEndpoints()
	if len(endpoints) != len(tests) {
		t.Fatalf("BaseEndpoints() returned %d endpoints, want %d", len(endpoints), len(tests))
	}

	byKey := make(map[string]core.Endpoint, len(endpoints))
	for _, ep := range endpoints {
		byKey[ep.Method+" "+ep.Path] = ep
	}

	for _, test := range tests {
		test := test
		t.Run(test.method+" "+test.path, func(t *testing.T) {
			ep, ok := byKey[test.method+" "+test.path]
			if !ok {
				t.Fatal("endpoint missing")
			}
			if ep.Metadata.OperationID != test.opID {
				t.Errorf("OperationID = %q, want %q", ep.Metadata.OperationID, test.opID)
			}
			if ep.Metadata.Description == "" {
				t.Error("Description is empty")
			}
			if ep.Protected != test.protected {
				t.Errorf("Protected = %v, want %v", ep.Protected, test.protected)
			}
			if ep.Resource != test.resource {
				t.Errorf("Resource = %q, want %q", ep.Resource, test.resource)
			}
		})
	}
}

// Requirement: the registry rejects duplicate routes and operation ids atomically.
func TestEndpointRegistry_Register(t *testing.T) {
	tests := []struct {
		name    string
		batch   []core.Endpoint
		wantErr string
	}{
		{
			name:  "new endpoint",
			batch: []core.Endpoint{{Method: "GET", Path: "/health", Metadata: meta("health", "Health check")}},
		},
		{
			name:    "duplicate route",
			batch:   []core.Endpoint{{Method: "GET", Path: "/tasks", Metadata: meta("listTasks2", "")}},
			wantErr: "GET /tasks already registered",
		},
		{
			name:    "duplicate operation id",
			batch:   []core.Endpoint{{Method: "GET", Path: "/other", Metadata: meta("listTasks", "")}},
			wantErr: `operation "listTasks" already registered`,
		},
		{
			name: "conflict within batch",
			batch: []core.Endpoint{
				{Method: "GET", Path: "/a", Metadata: meta("a", "")},
				{Method: "GET", Path: "/a", Metadata: meta("b", "")},
			},
			wantErr: "GET /a already registered",
		},
		{
			name:    "missing operation id",
			batch:   []core.Endpoint{{Method: "GET", Path: "/anon"}},
			wantErr: "has no operation id",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			reg, err := NewEndpointRegistry()
			if err != nil {
				t.Fatalf("NewEndpointRegistry() error = %v", err)
			}
			before := len(reg.Endpoints())

			// Act
			err = reg.Register(test.batch)

			// Assert
			if test.wantErr == "" {
				if err != nil {
					t.Fatalf("Register() error = %v", err)
				}
				if got := len(reg.Endpoints()); got != before+len(test.batch) {
					t.Errorf("Endpoints() = %d, want %d", got, before+len(test.batch))
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("Register() error = %v, want containing %q", err, test.wantErr)
			}
			if got := len(reg.Endpoints()); got != before {
				t.Errorf("failed batch registered %d endpoints", got-before)
			}
		})
	}
}

// Requirement: Endpoints is ordered by path then method.
func TestEndpointRegistry_Endpoints_Sorted(t *testing.T) {
	reg, err := NewEndpointRegistry()
	if err != nil {
		t.Fatalf("NewEndpointRegistry() error = %v", err)
	}

	eps := reg.Endpoints()
	for i := 1; i < len(eps); i++ {
		prev, cur := eps[i-1], eps[i]
		if prev.Path > cur.Path || (prev.Path == cur.Path && prev.Method > cur.Method) {
			t.Errorf("endpoints out of order at %d: %s %s before %s %s", i, prev.Method, prev.Path, cur.Method, cur.Path)
		}
	}
}
