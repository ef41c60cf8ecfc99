package core

import "testing"

func TestInvocationString(t *testing.T) {
	api := APIInvocation{ActionGroup: "customer-actions", APIPath: "/orders", HTTPMethod: "GET"}
	if got := InvocationString(api); got != "GET /orders [customer-actions]" {
		t.Errorf("unexpected api string: %q", got)
	}

	fn := FunctionInvocation{ActionGroup: "weather-actions", Function: "get_weather"}
	if got := InvocationString(fn); got != "get_weather [weather-actions]" {
		t.Errorf("unexpected function string: %q", got)
	}

	if got := InvocationString(nil); got != "<nil invocation>" {
		t.Errorf("unexpected nil string: %q", got)
	}
}

func TestInvocationParameters(t *testing.T) {
	params := []Parameter{{Name: "city", Type: "string", Value: "Berlin"}}

	if got := InvocationParameters(APIInvocation{Parameters: params}); len(got) != 1 {
		t.Errorf("expected api parameters, got %v", got)
	}
	if got := InvocationParameters(FunctionInvocation{Parameters: params}); len(got) != 1 {
		t.Errorf("expected function parameters, got %v", got)
	}
	if got := InvocationParameters(nil); got != nil {
		t.Errorf("nil invocation should have nil parameters, got %v", got)
	}
}
