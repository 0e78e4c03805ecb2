package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/daybook-app/daybook/internal/common"
)

func TestParseMergePolicy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    MergePolicy
		wantErr bool
	}{
		{name: "replace", input: "replace", want: PolicyReplace},
		{name: "date-merge", input: "date-merge", want: PolicyDateMerge},
		{name: "unknown", input: "append", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMergePolicy(tt.input)
			if tt.wantErr {
				if !errors.Is(err, common.ErrValidation) {
					t.Errorf("Expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMergePolicy failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseMergePolicy(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExport_DoesNotMutate(t *testing.T) {
	svc, store, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	saveTestExpense(t, store, "exp-1", time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local), 10, "日常")

	snap, err := svc.Export(ctx)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if snap.Version != 1 {
		t.Errorf("Expected snapshot version 1, got %d", snap.Version)
	}
	if !snap.GeneratedAt.Equal(testNow) {
		t.Errorf("Expected generatedAt %v, got %v", testNow, snap.GeneratedAt)
	}
	if len(snap.Expenses) != 1 {
		t.Errorf("Expected 1 expense in snapshot, got %d", len(snap.Expenses))
	}
	if len(snap.Categories) != 4 {
		t.Errorf("Expected the seeded registry in the snapshot, got %d", len(snap.Categories))
	}

	// Exporting twice yields the same content.
	again, err := svc.Export(ctx)
	if err != nil {
		t.Fatalf("Second export failed: %v", err)
	}
	if len(again.Expenses) != len(snap.Expenses) || len(again.Trash) != len(snap.Trash) {
		t.Error("Export must not mutate the underlying state")
	}
}
