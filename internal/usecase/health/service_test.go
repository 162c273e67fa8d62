package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus Status
		wantCheck  CheckResult
	}{
		{"healthy", nil, Healthy, CheckOK},
		{"source down", errors.New("conn refused"), Degraded, CheckError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := New(&mockPinger{err: tc.err}, "redis").Check(context.Background())

			if r.Status != tc.wantStatus {
				t.Errorf("Status = %q, want %q", r.Status, tc.wantStatus)
			}
			if r.Checks["redis"] != tc.wantCheck {
				t.Errorf("Checks[redis] = %q, want %q", r.Checks["redis"], tc.wantCheck)
			}
		})
	}
}

func TestCheck_DefaultName(t *testing.T) {
	r := New(&mockPinger{}, "").Check(context.Background())

	if _, ok := r.Checks["source"]; !ok {
		t.Errorf("expected default check name, got %v", r.Checks)
	}
}
