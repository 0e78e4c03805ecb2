package report

import (
	"sort"
	"time"

	"github.com/daybook-app/daybook/internal/model"
)

// DayExtreme is a single day's total together with its constituent records,
// sorted ascending by timestamp.
type DayExtreme struct {
	Date    time.Time
	Entries []model.Expense
	Total   float64
}

// Extremes reports the outlier days of a window and the outlier single
// records of the trailing year. Any bucket with no qualifying data is nil.
type Extremes struct {
	// MinDay and MaxDay are the window's days with the smallest nonzero
	// and largest daily totals.
	MinDay *DayExtreme
	MaxDay *DayExtreme
	// MinExpense and MaxExpense are the smallest and largest individual
	// records (amount > 0) over the 365 days ending at ref. Ties break
	// toward the earliest timestamp.
	MinExpense *model.Expense
	MaxExpense *model.Expense
	// WindowTotal is the summed spend over [windowStart, windowEnd].
	WindowTotal float64
}

// ComputeExtremes scans the window [windowStart, windowEnd] day by day and,
// independently, the trailing 365-day window before ref.
func ComputeExtremes(records []model.Expense, windowStart, windowEnd, ref time.Time) Extremes {
	byDay := make(map[string][]model.Expense)
	for _, e := range records {
		key := DayKey(e.Timestamp)
		byDay[key] = append(byDay[key], e)
	}
	for _, entries := range byDay {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Timestamp.Before(entries[j].Timestamp)
		})
	}

	var result Extremes
	for day := StartOfDay(windowStart); !day.After(windowEnd); day = day.AddDate(0, 0, 1) {
		entries := byDay[DayKey(day)]
		total := Sum(entries)
		result.WindowTotal += total
		if total <= 0 {
			continue
		}
		if result.MinDay == nil || total < result.MinDay.Total {
			result.MinDay = &DayExtreme{Date: day, Total: total, Entries: append([]model.Expense(nil), entries...)}
		}
		if result.MaxDay == nil || total > result.MaxDay.Total {
			result.MaxDay = &DayExtreme{Date: day, Total: total, Entries: append([]model.Expense(nil), entries...)}
		}
	}

	yearStart := StartOfDay(ref.AddDate(0, 0, -365))
	yearEnd := EndOfDay(ref)
	for i := range records {
		e := records[i]
		if e.Amount <= 0 {
			continue
		}
		if e.Timestamp.Before(yearStart) || e.Timestamp.After(yearEnd) {
			continue
		}
		if result.MinExpense == nil ||
			e.Amount < result.MinExpense.Amount ||
			(e.Amount == result.MinExpense.Amount && e.Timestamp.Before(result.MinExpense.Timestamp)) {
			clone := e
			result.MinExpense = &clone
		}
		if result.MaxExpense == nil ||
			e.Amount > result.MaxExpense.Amount ||
			(e.Amount == result.MaxExpense.Amount && e.Timestamp.Before(result.MaxExpense.Timestamp)) {
			clone := e
			result.MaxExpense = &clone
		}
	}

	return result
}
