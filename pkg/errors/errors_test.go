package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidTrip, "trip %q has no days", "t1")

	if err.Code != ErrCodeInvalidTrip {
		t.Errorf("code = %v", err.Code)
	}
	if err.Message != `trip "t1" has no days` {
		t.Errorf("message = %q", err.Message)
	}
	if got := err.Error(); got != `INVALID_TRIP: trip "t1" has no days` {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeStore, cause, "save schedule %s", "t1")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if got := err.Error(); got != "STORE_ERROR: save schedule t1: connection refused" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeSessionNotFound, "gone")
	wrapped := fmt.Errorf("handler: %w", err)

	if !Is(wrapped, ErrCodeSessionNotFound) {
		t.Error("Is failed through wrapping")
	}
	if Is(wrapped, ErrCodeStore) {
		t.Error("Is matched the wrong code")
	}
	if got := GetCode(wrapped); got != ErrCodeSessionNotFound {
		t.Errorf("GetCode = %v", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidRequest, "day number must be numeric")
	if got := UserMessage(err); got != "day number must be numeric" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("boom")); got != "boom" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid request", New(ErrCodeInvalidRequest, "bad"), http.StatusBadRequest},
		{"invalid trip", New(ErrCodeInvalidTrip, "bad"), http.StatusBadRequest},
		{"session not found", New(ErrCodeSessionNotFound, "gone"), http.StatusNotFound},
		{"schedule not found", New(ErrCodeScheduleNotFound, "gone"), http.StatusNotFound},
		{"unsupported", New(ErrCodeUnsupported, "nope"), http.StatusUnprocessableEntity},
		{"store error", New(ErrCodeStore, "down"), http.StatusInternalServerError},
		{"plain error", stderrors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}
