package errors_test

import (
	"errors"
	"fmt"
	"testing"

	. "acrunner/pkg/errors"
)

func TestErrorCode_Message(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{Success, "Success"},
		{ProblemNotLoaded, "No problem is loaded"},
		{RunInProgress, "A run is already in progress"},
		{ErrorCode(99999), "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.code.Message(); got != tt.want {
				t.Errorf("Message() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code       ErrorCode
		wantStatus int
	}{
		{Success, 200},
		{InvalidParams, 400},
		{ValidationFailed, 400},
		{ProblemNotLoaded, 404},
		{RunInProgress, 409},
		{TestCaseWriteFailed, 500},
	}

	for _, tt := range tests {
		t.Run(tt.code.Message(), func(t *testing.T) {
			if got := tt.code.HTTPStatus(); got != tt.wantStatus {
				t.Errorf("HTTPStatus() = %v, want %v", got, tt.wantStatus)
			}
		})
	}
}

func TestErrorCode_IsPrecondition(t *testing.T) {
	if !TestCaseEmpty.IsPrecondition() {
		t.Errorf("TestCaseEmpty should be a precondition code")
	}
	if !SolutionNotFound.IsPrecondition() {
		t.Errorf("SolutionNotFound should be a precondition code")
	}
	if SpawnFailed.IsPrecondition() {
		t.Errorf("SpawnFailed should not be a precondition code")
	}
}

func TestWrapf(t *testing.T) {
	cause := errors.New("exec: \"nope\": executable file not found in $PATH")
	err := Wrapf(cause, SpawnFailed, "start %s", "nope")

	if err.Code != SpawnFailed {
		t.Errorf("Code = %v, want %v", err.Code, SpawnFailed)
	}
	if !errors.Is(err, cause) {
		t.Errorf("wrapped error should match its cause")
	}
	want := "start nope: " + cause.Error()
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if Wrapf(nil, SpawnFailed, "ignored") != nil {
		t.Errorf("Wrapf(nil) should be nil")
	}
}

func TestGetCodeThroughFmtWrap(t *testing.T) {
	inner := New(SolutionNotFound)
	outer := fmt.Errorf("run case 1: %w", inner)

	if got := GetCode(outer); got != SolutionNotFound {
		t.Errorf("GetCode() = %v, want %v", got, SolutionNotFound)
	}
	if !Is(outer, SolutionNotFound) {
		t.Errorf("Is() should see through fmt wrapping")
	}
	if GetCode(errors.New("plain")) != InternalServerError {
		t.Errorf("plain errors should map to InternalServerError")
	}
	if GetCode(nil) != Success {
		t.Errorf("nil should map to Success")
	}
}

func TestValidationError(t *testing.T) {
	err := ValidationError("interpreter", "must be cpython or pypy")
	if err.Code != ValidationFailed {
		t.Errorf("Code = %v, want %v", err.Code, ValidationFailed)
	}
	if err.Details["field"] != "interpreter" {
		t.Errorf("field detail = %v", err.Details["field"])
	}
}
