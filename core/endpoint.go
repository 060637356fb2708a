package core

// Resource names the record a route guard loads before the handler runs.
type Resource string

const (
	ResourceNone Resource = ""
	ResourceTask Resource = "Task"
	ResourceGoal Resource = "Goal"
)

type Endpoint struct {
	Path      string
	Method    string
	Protected bool     // requires an active session
	Resource  Resource // record loaded from the :id path param
	Metadata  EndpointMetadata
}

type EndpointMetadata struct {
	OperationID string
	Description string
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Details string `json:"details"`
}
