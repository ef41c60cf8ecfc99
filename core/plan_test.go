package core

import (
	"strings"
	"testing"
)

func validTest(name string) Test {
	return Test{
		Name: name,
		Steps: []Step{
			{
				Message: "What is the weather?",
				Expected: []ExpectedInvocation{
					{
						Invocation:   FunctionInvocation{ActionGroup: "weather-actions", Function: "get_weather"},
						ResponseFile: "weather.json",
					},
				},
			},
		},
	}
}

func TestTest_Validate(t *testing.T) {
	if err := validTest("t1").Validate(); err != nil {
		t.Fatalf("valid test should pass validation: %v", err)
	}

	noName := validTest("")
	if err := noName.Validate(); err == nil {
		t.Error("empty name should fail validation")
	}

	noSteps := Test{Name: "t1"}
	if err := noSteps.Validate(); err == nil {
		t.Error("test without steps should fail validation")
	}

	negativeTurns := validTest("t1")
	negativeTurns.MaxTurns = -1
	if err := negativeTurns.Validate(); err == nil {
		t.Error("negative max turns should fail validation")
	}

	noInvocation := validTest("t1")
	noInvocation.Steps[0].Expected[0].Invocation = nil
	if err := noInvocation.Validate(); err == nil {
		t.Error("expectation without invocation should fail validation")
	}

	noResponse := validTest("t1")
	noResponse.Steps[0].Expected[0].ResponseFile = ""
	if err := noResponse.Validate(); err == nil {
		t.Error("expectation without mock response should fail validation")
	}
}

func TestTest_Validate_InlineResponseSuffices(t *testing.T) {
	tc := validTest("t1")
	tc.Steps[0].Expected[0].ResponseFile = ""
	tc.Steps[0].Expected[0].Response = &MockResponse{Raw: `{"ok": true}`}

	if err := tc.Validate(); err != nil {
		t.Fatalf("inline response should satisfy validation: %v", err)
	}
}

func TestNewSuite_UniqueNames(t *testing.T) {
	suite, err := NewSuite(validTest("a"), validTest("b"))
	if err != nil {
		t.Fatalf("unique names should build a suite: %v", err)
	}
	if suite.NumTests() != 2 {
		t.Fatalf("expected 2 tests, got %d", suite.NumTests())
	}

	_, err = NewSuite(validTest("a"), validTest("a"))
	if err == nil {
		t.Fatal("duplicate names should be rejected")
	}
	if !strings.Contains(err.Error(), "unique") {
		t.Errorf("error should mention uniqueness: %v", err)
	}
}

func TestNewSuite_PropagatesValidation(t *testing.T) {
	if _, err := NewSuite(validTest("")); err == nil {
		t.Fatal("invalid test should be rejected at suite construction")
	}
}
