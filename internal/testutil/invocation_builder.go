package testutil

import (
	"github.com/hupe1980/agentcheck/core"
)

// APIInvocationBuilder helps construct API invocation descriptors with fluent
// chaining for tests. Example:
//
//	inv := NewAPIInvocation("customer-actions", "/orders", "GET").Param("orderId", "string", "42").Build()
type APIInvocationBuilder struct {
	inv core.APIInvocation
}

// NewAPIInvocation creates a new builder for an API-schema invocation.
// Use the chainable Param method then call Build.
func NewAPIInvocation(actionGroup, apiPath, httpMethod string) *APIInvocationBuilder {
	return &APIInvocationBuilder{inv: core.APIInvocation{
		ActionGroup: actionGroup,
		APIPath:     apiPath,
		HTTPMethod:  httpMethod,
	}}
}

// Param appends a parameter to the descriptor (chainable).
func (b *APIInvocationBuilder) Param(name, typ, value string) *APIInvocationBuilder {
	b.inv.Parameters = append(b.inv.Parameters, core.Parameter{Name: name, Type: typ, Value: value})
	return b
}

// Build returns the assembled descriptor.
func (b *APIInvocationBuilder) Build() core.APIInvocation {
	return b.inv
}

// FunctionInvocationBuilder helps construct function invocation descriptors
// with fluent chaining for tests.
type FunctionInvocationBuilder struct {
	inv core.FunctionInvocation
}

// NewFunctionInvocation creates a new builder for a function-schema invocation.
func NewFunctionInvocation(actionGroup, function string) *FunctionInvocationBuilder {
	return &FunctionInvocationBuilder{inv: core.FunctionInvocation{
		ActionGroup: actionGroup,
		Function:    function,
	}}
}

// Param appends a parameter to the descriptor (chainable).
func (b *FunctionInvocationBuilder) Param(name, typ, value string) *FunctionInvocationBuilder {
	b.inv.Parameters = append(b.inv.Parameters, core.Parameter{Name: name, Type: typ, Value: value})
	return b
}

// Build returns the assembled descriptor.
func (b *FunctionInvocationBuilder) Build() core.FunctionInvocation {
	return b.inv
}
