package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentcheck/core"
	"github.com/hupe1980/agentcheck/internal/testutil"
)

func expectFile(inv core.Invocation, file string) core.ExpectedInvocation {
	return core.ExpectedInvocation{Invocation: inv, ResponseFile: file}
}

func TestMatch_FunctionInvocation(t *testing.T) {
	declared := testutil.NewFunctionInvocation("weather-actions", "get_weather").
		Param("city", "string", "Berlin").
		Build()
	observed := testutil.NewFunctionInvocation("weather-actions", "get_weather").
		Param("city", "string", "Berlin").
		Build()

	m := New()

	outcome, err := m.Match(observed, []core.ExpectedInvocation{expectFile(declared, "weather.json")})
	require.NoError(t, err)

	assert.Equal(t, core.OutcomeMatched, outcome.Result)
	require.NotNil(t, outcome.Expected)
	assert.Equal(t, "weather.json", outcome.Expected.ResponseFile)
}

func TestMatch_APIInvocation(t *testing.T) {
	declared := testutil.NewAPIInvocation("customer-actions", "/orders", "GET").
		Param("orderId", "string", "42").
		Build()
	observed := testutil.NewAPIInvocation("customer-actions", "/orders", "GET").
		Param("orderId", "string", "42").
		Build()

	m := New()

	outcome, err := m.Match(observed, []core.ExpectedInvocation{expectFile(declared, "orders.json")})
	require.NoError(t, err)

	assert.Equal(t, core.OutcomeMatched, outcome.Result)
}

func TestMatch_ParameterOrderIrrelevant(t *testing.T) {
	declared := testutil.NewFunctionInvocation("g", "f").
		Param("a", "string", "1").
		Param("b", "string", "2").
		Build()
	observed := testutil.NewFunctionInvocation("g", "f").
		Param("b", "string", "2").
		Param("a", "string", "1").
		Build()

	m := New()

	outcome, err := m.Match(observed, []core.ExpectedInvocation{expectFile(declared, "r.json")})
	require.NoError(t, err)

	assert.Equal(t, core.OutcomeMatched, outcome.Result)
}

func TestMatch_ParameterMismatch(t *testing.T) {
	declared := testutil.NewFunctionInvocation("weather-actions", "get_weather").
		Param("city", "string", "Berlin").
		Build()
	observed := testutil.NewFunctionInvocation("weather-actions", "get_weather").
		Param("city", "string", "Hamburg").
		Build()

	m := New()

	outcome, err := m.Match(observed, []core.ExpectedInvocation{expectFile(declared, "weather.json")})
	require.NoError(t, err)

	assert.Equal(t, core.OutcomeParameterMismatch, outcome.Result)
	assert.Contains(t, outcome.Detail, `expected "Berlin"`)
	assert.Contains(t, outcome.Detail, `observed "Hamburg"`)
	require.NotNil(t, outcome.Expected)
}

func TestMatch_MissingParameter(t *testing.T) {
	declared := testutil.NewFunctionInvocation("g", "f").
		Param("city", "string", "Berlin").
		Build()
	observed := testutil.NewFunctionInvocation("g", "f").Build()

	m := New()

	outcome, err := m.Match(observed, []core.ExpectedInvocation{expectFile(declared, "r.json")})
	require.NoError(t, err)

	assert.Equal(t, core.OutcomeParameterMismatch, outcome.Result)
	assert.Contains(t, outcome.Detail, "not observed")
}

func TestMatch_UnexpectedInvocation(t *testing.T) {
	declared := testutil.NewFunctionInvocation("weather-actions", "get_weather").Build()
	observed := testutil.NewFunctionInvocation("weather-actions", "get_forecast").Build()

	m := New()

	outcome, err := m.Match(observed, []core.ExpectedInvocation{expectFile(declared, "weather.json")})
	require.NoError(t, err)

	assert.Equal(t, core.OutcomeUnexpectedInvocation, outcome.Result)
	assert.Nil(t, outcome.Expected)
	assert.Contains(t, outcome.Detail, "get_forecast")
}

func TestMatch_EmptyCandidates(t *testing.T) {
	observed := testutil.NewFunctionInvocation("g", "f").Build()

	m := New()

	outcome, err := m.Match(observed, nil)
	require.NoError(t, err)

	assert.Equal(t, core.OutcomeUnexpectedInvocation, outcome.Result)
}

func TestMatch_KindNeverCrossMatches(t *testing.T) {
	// Same action group, but an API-style expectation must not match a
	// function-style observation.
	declared := testutil.NewAPIInvocation("g", "/f", "GET").Build()
	observed := testutil.NewFunctionInvocation("g", "f").Build()

	m := New()

	outcome, err := m.Match(observed, []core.ExpectedInvocation{expectFile(declared, "r.json")})
	require.NoError(t, err)

	assert.Equal(t, core.OutcomeUnexpectedInvocation, outcome.Result)
}

func TestMatch_SingleFieldDifferences(t *testing.T) {
	declared := testutil.NewAPIInvocation("customer-actions", "/orders", "GET").Build()

	tests := []struct {
		name     string
		observed core.Invocation
	}{
		{"action group differs", testutil.NewAPIInvocation("other-actions", "/orders", "GET").Build()},
		{"api path differs", testutil.NewAPIInvocation("customer-actions", "/invoices", "GET").Build()},
		{"http method differs", testutil.NewAPIInvocation("customer-actions", "/orders", "POST").Build()},
	}

	m := New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := m.Match(tt.observed, []core.ExpectedInvocation{expectFile(declared, "r.json")})
			require.NoError(t, err)
			assert.Equal(t, core.OutcomeUnexpectedInvocation, outcome.Result)
		})
	}
}

func TestMatch_ExtraObservedParameterTolerated(t *testing.T) {
	declared := testutil.NewFunctionInvocation("g", "f").
		Param("city", "string", "Berlin").
		Build()
	observed := testutil.NewFunctionInvocation("g", "f").
		Param("city", "string", "Berlin").
		Param("unit", "string", "celsius").
		Build()

	m := New()

	outcome, err := m.Match(observed, []core.ExpectedInvocation{expectFile(declared, "r.json")})
	require.NoError(t, err)

	assert.Equal(t, core.OutcomeMatched, outcome.Result)
}

func TestMatch_StrictParametersRejectsExtras(t *testing.T) {
	declared := testutil.NewFunctionInvocation("g", "f").
		Param("city", "string", "Berlin").
		Build()
	observed := testutil.NewFunctionInvocation("g", "f").
		Param("city", "string", "Berlin").
		Param("unit", "string", "celsius").
		Build()

	m := New(func(o *Options) { o.StrictParameters = true })

	outcome, err := m.Match(observed, []core.ExpectedInvocation{expectFile(declared, "r.json")})
	require.NoError(t, err)

	assert.Equal(t, core.OutcomeParameterMismatch, outcome.Result)
	assert.Contains(t, outcome.Detail, `"unit"`)
}

func TestMatch_StrictTypes(t *testing.T) {
	declared := testutil.NewFunctionInvocation("g", "f").
		Param("count", "integer", "3").
		Build()
	observed := testutil.NewFunctionInvocation("g", "f").
		Param("count", "string", "3").
		Build()

	// Default: type is metadata only
	outcome, err := New().Match(observed, []core.ExpectedInvocation{expectFile(declared, "r.json")})
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeMatched, outcome.Result)

	// Strict: type must agree
	strict := New(func(o *Options) { o.StrictTypes = true })
	outcome, err = strict.Match(observed, []core.ExpectedInvocation{expectFile(declared, "r.json")})
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeParameterMismatch, outcome.Result)
	assert.Contains(t, outcome.Detail, "type")
}

func TestMatch_PicksCorrectCandidateAmongMany(t *testing.T) {
	berlin := testutil.NewFunctionInvocation("g", "f").Param("city", "string", "Berlin").Build()
	hamburg := testutil.NewFunctionInvocation("g", "f").Param("city", "string", "Hamburg").Build()

	candidates := []core.ExpectedInvocation{
		expectFile(berlin, "berlin.json"),
		expectFile(hamburg, "hamburg.json"),
	}

	m := New()

	outcome, err := m.Match(hamburg, candidates)
	require.NoError(t, err)

	assert.Equal(t, core.OutcomeMatched, outcome.Result)
	require.NotNil(t, outcome.Expected)
	assert.Equal(t, "hamburg.json", outcome.Expected.ResponseFile)
}

func TestMatch_AmbiguousExpectation(t *testing.T) {
	inv := testutil.NewFunctionInvocation("g", "f").Param("city", "string", "Berlin").Build()

	candidates := []core.ExpectedInvocation{
		expectFile(inv, "a.json"),
		expectFile(inv, "b.json"),
	}

	m := New()

	_, err := m.Match(inv, candidates)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousExpectation)
}
