package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestInsufficientBalanceMessage(t *testing.T) {
	err := InsufficientBalance(50, nil)
	if err.Error() != "You need 50 more points to redeem this reward." {
		t.Fatalf("message = %q", err.Error())
	}
	if err.Needed != 50 {
		t.Fatalf("needed = %d", err.Needed)
	}
}

func TestKindThroughWrapping(t *testing.T) {
	sentinel := errors.New("reward not found")
	err := fmt.Errorf("redeem: %w", NotFound("Reward not found or inactive", sentinel))

	if !Is(err, KindNotFound) {
		t.Fatalf("expected not found kind")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel in chain")
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{InsufficientBalance(1, nil), http.StatusBadRequest},
		{NotFound("x", nil), http.StatusNotFound},
		{Conflict("x", nil), http.StatusConflict},
		{New(KindUnauthorized, "x", nil), http.StatusUnauthorized},
		{New(KindRateLimited, "x", nil), http.StatusTooManyRequests},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := Status(tt.err); got != tt.want {
			t.Errorf("Status(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
