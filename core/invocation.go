package core

import "fmt"

// Parameter is a single name/type/value triple carried by an invocation. The
// Type field is descriptive metadata from the agent's action schema (e.g.
// "string", "integer"); matching compares values and treats the type as
// informational unless strict type matching is enabled.
type Parameter struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Invocation describes a single tool/action call surfaced by an agent via a
// return-control event. Concrete kinds implement the unexported isInvocation
// marker enabling a closed set (API-style vs function-style). Values are
// immutable once constructed.
type Invocation interface{ isInvocation() }

// APIInvocation is an API-style (OpenAPI action group) invocation identified
// by action group, API path and HTTP method.
type APIInvocation struct {
	ActionGroup string      `json:"actionGroup"`
	APIPath     string      `json:"apiPath"`
	HTTPMethod  string      `json:"httpMethod"`
	Parameters  []Parameter `json:"parameters,omitempty"`
}

// isInvocation implements the Invocation interface for APIInvocation.
func (APIInvocation) isInvocation() {}

// String returns a compact human-readable identity, e.g. "GET /get-weather [WeatherAPIs]".
func (a APIInvocation) String() string {
	return fmt.Sprintf("%s %s [%s]", a.HTTPMethod, a.APIPath, a.ActionGroup)
}

// FunctionInvocation is a function-style action group invocation identified by
// action group and function name.
type FunctionInvocation struct {
	ActionGroup string      `json:"actionGroup"`
	Function    string      `json:"function"`
	Parameters  []Parameter `json:"parameters,omitempty"`
}

// isInvocation implements the Invocation interface for FunctionInvocation.
func (FunctionInvocation) isInvocation() {}

// String returns a compact human-readable identity, e.g. "get_weather [WeatherAPIs]".
func (f FunctionInvocation) String() string {
	return fmt.Sprintf("%s [%s]", f.Function, f.ActionGroup)
}

// InvocationParameters returns the parameter sequence of an invocation
// regardless of its kind. Returns nil for a nil invocation.
func InvocationParameters(inv Invocation) []Parameter {
	switch v := inv.(type) {
	case APIInvocation:
		return v.Parameters
	case FunctionInvocation:
		return v.Parameters
	default:
		return nil
	}
}

// InvocationString renders the identity of an invocation for diagnostics.
func InvocationString(inv Invocation) string {
	switch v := inv.(type) {
	case APIInvocation:
		return v.String()
	case FunctionInvocation:
		return v.String()
	default:
		return "<nil invocation>"
	}
}
