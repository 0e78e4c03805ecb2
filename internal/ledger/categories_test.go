package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/daybook-app/daybook/internal/common"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/storage"
)

func TestService_AddCategory(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	added, err := svc.AddCategory(ctx, "交通", "#123456")
	if err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	if added.Name != "交通" || added.Color != "#123456" {
		t.Errorf("Unexpected category: %+v", added)
	}

	categories, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(categories) != 5 {
		t.Fatalf("Expected 5 categories, got %d", len(categories))
	}
	if categories[4].Name != "交通" {
		t.Errorf("New category should be appended last, got %q", categories[4].Name)
	}

	t.Run("duplicate name rejected", func(t *testing.T) {
		_, err := svc.AddCategory(ctx, "交通", "")
		if !errors.Is(err, common.ErrDuplicateCategory) {
			t.Errorf("Expected ErrDuplicateCategory, got %v", err)
		}
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := svc.AddCategory(ctx, "   ", "")
		if !errors.Is(err, common.ErrEmptyCategoryName) {
			t.Errorf("Expected ErrEmptyCategoryName, got %v", err)
		}
	})

	t.Run("empty color gets the default", func(t *testing.T) {
		added, err := svc.AddCategory(ctx, "娱乐", "")
		if err != nil {
			t.Fatalf("AddCategory failed: %v", err)
		}
		if added.Color != model.DefaultColor {
			t.Errorf("Expected default color, got %q", added.Color)
		}
	})
}

func TestService_RenameCategory_Cascades(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	active, err := svc.AddExpense(ctx, "breakfast", 12, testNow, "吃饭")
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	trashed, err := svc.AddExpense(ctx, "dinner", 45, testNow, "吃饭")
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if err := svc.SoftDelete(ctx, trashed.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	if err := svc.RenameCategory(ctx, "吃饭", "餐饮", ""); err != nil {
		t.Fatalf("RenameCategory failed: %v", err)
	}

	got, err := svc.Expense(ctx, active.ID)
	if err != nil {
		t.Fatalf("Expense failed: %v", err)
	}
	if got.Category != "餐饮" {
		t.Errorf("Ledger entry not renamed: %q", got.Category)
	}

	trash, err := svc.Trash(ctx)
	if err != nil {
		t.Fatalf("Trash failed: %v", err)
	}
	if len(trash) != 1 || trash[0].Category != "餐饮" {
		t.Errorf("Trash record not renamed: %+v", trash)
	}

	categories, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	for _, cat := range categories {
		if cat.Name == "吃饭" {
			t.Error("Old category name still present in registry")
		}
	}
}

func TestService_RenameCategory_Errors(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if err := svc.RenameCategory(ctx, "不存在", "新名", ""); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := svc.RenameCategory(ctx, "吃饭", "日常", ""); !errors.Is(err, common.ErrDuplicateCategory) {
		t.Errorf("Expected ErrDuplicateCategory, got %v", err)
	}
	if err := svc.RenameCategory(ctx, "吃饭", " ", ""); !errors.Is(err, common.ErrEmptyCategoryName) {
		t.Errorf("Expected ErrEmptyCategoryName, got %v", err)
	}

	// Renaming to the same name with the same color is a no-op.
	if err := svc.RenameCategory(ctx, "吃饭", "吃饭", ""); err != nil {
		t.Errorf("Expected no-op rename to succeed, got %v", err)
	}
}

func TestService_ReorderCategory(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	names := func() []string {
		categories, err := svc.Categories(ctx)
		if err != nil {
			t.Fatalf("Categories failed: %v", err)
		}
		out := make([]string, len(categories))
		for i, cat := range categories {
			out[i] = cat.Name
		}
		return out
	}

	if err := svc.ReorderCategory(ctx, 0, 2); err != nil {
		t.Fatalf("ReorderCategory failed: %v", err)
	}
	got := names()
	want := []string{"吃饭", "数码", "日常", "额外"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, got)
		}
	}

	t.Run("out of bounds target is a no-op", func(t *testing.T) {
		before := names()
		if err := svc.ReorderCategory(ctx, 0, -1); err != nil {
			t.Fatalf("ReorderCategory failed: %v", err)
		}
		after := names()
		for i := range before {
			if before[i] != after[i] {
				t.Errorf("Expected order unchanged, got %v", after)
			}
		}
	})

	t.Run("invalid index is an error", func(t *testing.T) {
		if err := svc.ReorderCategory(ctx, 10, 1); !errors.Is(err, common.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestService_RemoveCategory(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.AddExpense(ctx, "lunch", 20, testNow, "吃饭"); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	t.Run("category in use cannot be removed", func(t *testing.T) {
		if err := svc.RemoveCategory(ctx, 1); !errors.Is(err, common.ErrCategoryInUse) {
			t.Errorf("Expected ErrCategoryInUse, got %v", err)
		}
	})

	t.Run("unused category removed", func(t *testing.T) {
		if err := svc.RemoveCategory(ctx, 3); err != nil {
			t.Fatalf("RemoveCategory failed: %v", err)
		}
		categories, err := svc.Categories(ctx)
		if err != nil {
			t.Fatalf("Categories failed: %v", err)
		}
		if len(categories) != 3 {
			t.Errorf("Expected 3 categories, got %d", len(categories))
		}
	})

	t.Run("invalid index is an error", func(t *testing.T) {
		if err := svc.RemoveCategory(ctx, 10); !errors.Is(err, common.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestService_RemoveCategory_LastOne(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	// Trim the registry down to a single category.
	for i := 3; i >= 1; i-- {
		if err := svc.RemoveCategory(ctx, i); err != nil {
			t.Fatalf("RemoveCategory(%d) failed: %v", i, err)
		}
	}

	if err := svc.RemoveCategory(ctx, 0); !errors.Is(err, common.ErrLastCategory) {
		t.Errorf("Expected ErrLastCategory, got %v", err)
	}
}

func TestService_CategoriesFixed(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := storage.NewSQLiteStorage(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer func() { _ = store.Close() }()
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	svc := New(store, Config{
		Now:                func() time.Time { return testNow },
		CategoriesEditable: false,
	})
	ctx := context.Background()

	if _, err := svc.AddCategory(ctx, "交通", ""); !errors.Is(err, common.ErrCategoriesFixed) {
		t.Errorf("Expected ErrCategoriesFixed, got %v", err)
	}
	if err := svc.RenameCategory(ctx, "日常", "生活", ""); !errors.Is(err, common.ErrCategoriesFixed) {
		t.Errorf("Expected ErrCategoriesFixed, got %v", err)
	}
	if err := svc.ReorderCategory(ctx, 0, 1); !errors.Is(err, common.ErrCategoriesFixed) {
		t.Errorf("Expected ErrCategoriesFixed, got %v", err)
	}
	if err := svc.RemoveCategory(ctx, 0); !errors.Is(err, common.ErrCategoriesFixed) {
		t.Errorf("Expected ErrCategoriesFixed, got %v", err)
	}
}
