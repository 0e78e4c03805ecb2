package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/daybook-app/daybook/internal/common"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/report"
)

// ExportJSON writes the versioned JSON snapshot document.
func (s *Service) ExportJSON(ctx context.Context, w io.Writer) error {
	snap, err := s.Export(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// Loosely-typed mirror of the export document. Every field tolerates
// absence or the wrong primitive type so normalization can repair
// records one field at a time instead of rejecting the payload.
type rawSnapshot struct {
	Settings   *rawSettings  `json:"settings"`
	Expenses   []rawExpense  `json:"expenses"`
	Trash      []rawExpense  `json:"trash"`
	Categories []rawCategory `json:"categories"`
}

type rawExpense struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Category  string          `json:"category"`
	Amount    json.RawMessage `json:"amount"`
	Timestamp json.RawMessage `json:"ts"`
	DeletedAt json.RawMessage `json:"deletedAt"`
}

type rawSettings struct {
	DailyBudget   json.RawMessage `json:"dailyBudget"`
	MonthlyBudget json.RawMessage `json:"monthlyBudget"`
}

type rawCategory struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ImportJSON parses, validates, normalizes, and applies a JSON snapshot.
// A malformed document aborts with zero state change.
func (s *Service) ImportJSON(ctx context.Context, r io.Reader, policy MergePolicy) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("reading import payload: %w", err)
	}

	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", common.ErrBadFormat, err)
	}
	if raw.Expenses == nil && raw.Trash == nil {
		return ImportResult{}, fmt.Errorf("%w: snapshot has no expense or trash arrays", common.ErrValidation)
	}

	registered, firstCategory, err := s.effectiveRegistry(ctx, raw.Categories, policy)
	if err != nil {
		return ImportResult{}, err
	}

	now := s.now()
	snap := &model.Snapshot{
		Version:     model.SnapshotVersion,
		GeneratedAt: now,
		Settings:    normalizeSettings(raw.Settings),
	}
	snap.Expenses = make([]model.Expense, 0, len(raw.Expenses))
	for _, re := range raw.Expenses {
		snap.Expenses = append(snap.Expenses, normalizeExpense(re, now, registered, firstCategory))
	}
	snap.Trash = make([]model.TrashRecord, 0, len(raw.Trash))
	for _, re := range raw.Trash {
		snap.Trash = append(snap.Trash, model.TrashRecord{
			Expense:   normalizeExpense(re, now, registered, firstCategory),
			DeletedAt: parseInstant(re.DeletedAt, now),
		})
	}
	for i, rc := range raw.Categories {
		if rc.Name == "" {
			continue
		}
		color := rc.Color
		if color == "" {
			color = model.DefaultColor
		}
		snap.Categories = append(snap.Categories, model.Category{Name: rc.Name, Color: color, Position: i})
	}

	if err := s.apply(ctx, snap, policy); err != nil {
		return ImportResult{}, err
	}

	days := make(map[string]struct{})
	for _, e := range snap.Expenses {
		days[report.DayKey(e.Timestamp)] = struct{}{}
	}
	slog.Info("imported snapshot",
		"expenses", len(snap.Expenses), "trash", len(snap.Trash), "policy", string(policy))
	return ImportResult{Imported: len(snap.Expenses), Days: len(days)}, nil
}

// effectiveRegistry resolves the category set imported records are
// checked against, plus the fallback name for records whose own category
// is absent. Replace installs the imported registry when the snapshot
// carries one, so that registry is authoritative; under date-merge (or
// when no registry is imported) the stored one stays in place and wins.
func (s *Service) effectiveRegistry(ctx context.Context, imported []rawCategory, policy MergePolicy) (map[string]bool, string, error) {
	var names []string
	if policy == PolicyReplace {
		for _, rc := range imported {
			if rc.Name != "" {
				names = append(names, rc.Name)
			}
		}
	}
	if len(names) == 0 {
		categories, err := s.store.ListCategories(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("loading categories: %w", err)
		}
		if len(categories) == 0 {
			categories = model.DefaultCategories()
		}
		for _, cat := range categories {
			names = append(names, cat.Name)
		}
	}

	registered := make(map[string]bool, len(names))
	for _, name := range names {
		registered[name] = true
	}
	return registered, names[0], nil
}

func normalizeExpense(re rawExpense, now time.Time, registered map[string]bool, firstCategory string) model.Expense {
	e := model.Expense{
		ID:        re.ID,
		Title:     re.Title,
		Category:  re.Category,
		Amount:    parseAmountField(re.Amount),
		Timestamp: parseInstant(re.Timestamp, now),
	}
	if e.ID == "" {
		e.ID = model.NewID()
	}
	if e.Title == "" {
		e.Title = model.DefaultTitle
	}
	if !registered[e.Category] {
		e.Category = firstCategory
	}
	return e
}

func normalizeSettings(rs *rawSettings) model.Settings {
	settings := model.DefaultSettings()
	if rs == nil {
		return settings
	}
	if daily, ok := parseNumber(rs.DailyBudget); ok {
		settings.DailyBudget = daily
	}
	if monthly, ok := parseNumber(rs.MonthlyBudget); ok {
		settings.MonthlyBudget = monthly
	}
	return settings.Normalize()
}

// parseAmountField returns 0 for missing, negative, or unparseable amounts.
func parseAmountField(raw json.RawMessage) float64 {
	n, ok := parseNumber(raw)
	if !ok || n < 0 {
		return 0
	}
	return model.RoundAmount(n)
}

func parseNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// parseInstant accepts either an RFC 3339 string (what ExportJSON emits)
// or an epoch-millisecond number (the historical storage form). Anything
// else falls back to now.
func parseInstant(raw json.RawMessage, now time.Time) time.Time {
	if len(raw) == 0 {
		return now
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t
		}
		return now
	}
	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil && ms > 0 {
		return time.UnixMilli(ms)
	}
	return now
}
