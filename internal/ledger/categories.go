package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/daybook-app/daybook/internal/common"
	"github.com/daybook-app/daybook/internal/model"
)

// AddCategory appends a new category to the end of the registry.
func (s *Service) AddCategory(ctx context.Context, name, color string) (*model.Category, error) {
	if !s.categoriesEditable {
		return nil, common.ErrCategoriesFixed
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrEmptyCategoryName
	}
	if color == "" {
		color = model.DefaultColor
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	for _, cat := range categories {
		if cat.Name == name {
			return nil, common.ErrDuplicateCategory
		}
	}

	added := model.Category{Name: name, Color: color, Position: len(categories)}
	categories = append(categories, added)
	if err := s.store.ReplaceCategories(ctx, categories); err != nil {
		return nil, fmt.Errorf("saving categories: %w", err)
	}

	slog.Info("added category", "name", name)
	return &added, nil
}

// RenameCategory updates a category's name and color. A name change
// cascades to every ledger entry and trash record referencing the old
// name, atomically with respect to readers.
func (s *Service) RenameCategory(ctx context.Context, oldName, newName, color string) error {
	if !s.categoriesEditable {
		return common.ErrCategoriesFixed
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return common.ErrEmptyCategoryName
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	categories, err := tx.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}

	index := -1
	for i, cat := range categories {
		if cat.Name == oldName {
			index = i
			continue
		}
		if cat.Name == newName {
			return common.ErrDuplicateCategory
		}
	}
	if index == -1 {
		return fmt.Errorf("%w: category %s", common.ErrNotFound, oldName)
	}

	if color == "" {
		color = categories[index].Color
	}
	if categories[index].Name == newName && categories[index].Color == color {
		return nil // nothing to do
	}

	categories[index].Name = newName
	categories[index].Color = color
	if err := tx.ReplaceCategories(ctx, categories); err != nil {
		return fmt.Errorf("saving categories: %w", err)
	}

	if oldName != newName {
		if err := tx.UpdateExpenseCategories(ctx, oldName, newName); err != nil {
			return fmt.Errorf("cascading rename to ledger: %w", err)
		}
		if err := tx.UpdateTrashCategories(ctx, oldName, newName); err != nil {
			return fmt.Errorf("cascading rename to trash: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing rename: %w", err)
	}

	slog.Info("renamed category", "from", oldName, "to", newName)
	return nil
}

// ReorderCategory moves the category at index by delta positions. A target
// position out of bounds leaves the registry unchanged.
func (s *Service) ReorderCategory(ctx context.Context, index, delta int) error {
	if !s.categoriesEditable {
		return common.ErrCategoriesFixed
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}
	if index < 0 || index >= len(categories) {
		return fmt.Errorf("%w: category index %d", common.ErrNotFound, index)
	}

	target := index + delta
	if target < 0 || target >= len(categories) {
		return nil // out of bounds, no-op
	}

	moved := categories[index]
	categories = append(categories[:index], categories[index+1:]...)
	categories = append(categories[:target], append([]model.Category{moved}, categories[target:]...)...)

	if err := s.store.ReplaceCategories(ctx, categories); err != nil {
		return fmt.Errorf("saving categories: %w", err)
	}
	return nil
}

// RemoveCategory deletes the category at index. The last remaining
// category and categories with recorded expenses cannot be removed.
func (s *Service) RemoveCategory(ctx context.Context, index int) error {
	if !s.categoriesEditable {
		return common.ErrCategoriesFixed
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}
	if index < 0 || index >= len(categories) {
		return fmt.Errorf("%w: category index %d", common.ErrNotFound, index)
	}
	if len(categories) <= 1 {
		return common.ErrLastCategory
	}

	name := categories[index].Name
	usage, err := s.store.CountExpensesByCategory(ctx, name)
	if err != nil {
		return fmt.Errorf("counting usage: %w", err)
	}
	if usage > 0 {
		return common.ErrCategoryInUse
	}

	categories = append(categories[:index], categories[index+1:]...)
	if err := s.store.ReplaceCategories(ctx, categories); err != nil {
		return fmt.Errorf("saving categories: %w", err)
	}

	slog.Info("removed category", "name", name)
	return nil
}

// UsageCount reports how many active ledger entries reference a category.
func (s *Service) UsageCount(ctx context.Context, name string) (int, error) {
	return s.store.CountExpensesByCategory(ctx, name)
}
