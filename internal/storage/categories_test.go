package storage

import (
	"context"
	"testing"

	"github.com/daybook-app/daybook/internal/model"
)

func TestSQLiteStorage_DefaultCategories(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	got, err := store.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}

	want := model.DefaultCategories()
	if len(got) != len(want) {
		t.Fatalf("Expected %d seeded categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Name != want[i].Name {
			t.Errorf("Category %d: expected %q, got %q", i, want[i].Name, got[i].Name)
		}
		if got[i].Color != want[i].Color {
			t.Errorf("Category %d: expected color %q, got %q", i, want[i].Color, got[i].Color)
		}
	}
}

func TestSQLiteStorage_ReplaceCategories(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	replacement := []model.Category{
		{Name: "交通", Color: "#123456"},
		{Name: "娱乐"}, // no color, should get the default
	}
	if err := store.ReplaceCategories(ctx, replacement); err != nil {
		t.Fatalf("Failed to replace categories: %v", err)
	}

	got, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(got))
	}
	if got[0].Name != "交通" || got[1].Name != "娱乐" {
		t.Errorf("Slice order not preserved: %+v", got)
	}
	if got[0].Position != 0 || got[1].Position != 1 {
		t.Errorf("Positions not assigned from slice order: %+v", got)
	}
	if got[1].Color != model.DefaultColor {
		t.Errorf("Expected default color, got %q", got[1].Color)
	}
}
