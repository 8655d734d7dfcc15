package models

import (
	"errors"
	"fmt"
	"testing"
)

// ============================================================================
// Error Tests
// ============================================================================

func TestConflictError_MatchesSentinel(t *testing.T) {
	err := Conflictf("cannot delete %s", "Firefox")

	if !errors.Is(err, ErrConflict) {
		t.Fatal("expected ConflictError to match ErrConflict")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("ConflictError should not match ErrNotFound")
	}

	wrapped := fmt.Errorf("failed to delete product: %w", err)
	if !errors.Is(wrapped, ErrConflict) {
		t.Error("wrapped ConflictError should still match ErrConflict")
	}

	var ce *ConflictError
	if !errors.As(wrapped, &ce) {
		t.Fatal("expected errors.As to find ConflictError")
	}
	if ce.Reason != "cannot delete Firefox" {
		t.Errorf("Reason = %q, want %q", ce.Reason, "cannot delete Firefox")
	}
}

func TestConflictError_Message(t *testing.T) {
	err := Conflictf("cycle is already active")
	if err.Error() != "conflict: cycle is already active" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

// ============================================================================
// Status Tests
// ============================================================================

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"draft", StatusDraft, false},
		{"active", StatusActive, false},
		{"disabled", StatusDisabled, false},
		{"locked", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatus(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ============================================================================
// Record Tests
// ============================================================================

func TestRecordKinds(t *testing.T) {
	suiteID := 4
	tests := []struct {
		name string
		rec  interface {
			Kind() Kind
			GetID() int
			String() string
		}
		kind Kind
		id   int
		str  string
	}{
		{"product", &Product{ID: 1, Name: "Firefox"}, KindProduct, 1, "Firefox"},
		{"suite", &Suite{ID: 2, Name: "Smoke"}, KindSuite, 2, "Smoke"},
		{"case", &Case{ID: 3, SuiteID: &suiteID, Name: "Open a tab"}, KindCase, 3, "Open a tab"},
		{"cycle", &Cycle{ID: 5, Name: "Release 10"}, KindCycle, 5, "Release 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.rec.Kind() != tt.kind {
				t.Errorf("Kind() = %q, want %q", tt.rec.Kind(), tt.kind)
			}
			if tt.rec.GetID() != tt.id {
				t.Errorf("GetID() = %d, want %d", tt.rec.GetID(), tt.id)
			}
			if tt.rec.String() != tt.str {
				t.Errorf("String() = %q, want %q", tt.rec.String(), tt.str)
			}
		})
	}
}
