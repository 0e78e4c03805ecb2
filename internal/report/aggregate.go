package report

import (
	"sort"
	"strconv"
	"time"

	"github.com/daybook-app/daybook/internal/model"
)

// Sum returns the total amount over a record set.
func Sum(records []model.Expense) float64 {
	var total float64
	for _, e := range records {
		total += e.Amount
	}
	return total
}

// FilterByRange returns records with a timestamp in [start, end] inclusive.
func FilterByRange(records []model.Expense, start, end time.Time) []model.Expense {
	var out []model.Expense
	for _, e := range records {
		if !e.Timestamp.Before(start) && !e.Timestamp.After(end) {
			out = append(out, e)
		}
	}
	return out
}

// GroupByCategory returns summed amounts keyed by category name.
// Categories with no matching records are omitted.
func GroupByCategory(records []model.Expense) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range records {
		totals[e.Category] += e.Amount
	}
	return totals
}

// TrendPoint is one calendar day in a daily trend series.
type TrendPoint struct {
	Day    time.Time
	Label  string
	Amount float64
}

// DailyTrend returns one point per calendar day for the windowDays-day
// window ending on ref's day, chronologically ascending. Days with no
// activity appear with amount 0.
func DailyTrend(records []model.Expense, windowDays int, ref time.Time) []TrendPoint {
	if windowDays <= 0 {
		return nil
	}

	byDay := make(map[string]float64)
	for _, e := range records {
		byDay[DayKey(e.Timestamp)] += e.Amount
	}

	points := make([]TrendPoint, 0, windowDays)
	day := StartOfDay(ref).AddDate(0, 0, -(windowDays - 1))
	for i := 0; i < windowDays; i++ {
		points = append(points, TrendPoint{
			Day:    day,
			Label:  day.Format("01-02"),
			Amount: byDay[DayKey(day)],
		})
		day = day.AddDate(0, 0, 1)
	}
	return points
}

// MonthTotal is one month's bucket in a yearly breakdown.
type MonthTotal struct {
	Month  time.Month
	Amount float64
}

// MonthlyTotals returns twelve fixed buckets (January through December)
// for the given year, including zero months.
func MonthlyTotals(records []model.Expense, year int) []MonthTotal {
	totals := make([]MonthTotal, 12)
	for i := range totals {
		totals[i].Month = time.Month(i + 1)
	}
	for _, e := range records {
		if e.Timestamp.Year() != year {
			continue
		}
		totals[int(e.Timestamp.Month())-1].Amount += e.Amount
	}
	return totals
}

// YearTotal is one year's bucket in the all-time breakdown.
type YearTotal struct {
	Year   int
	Amount float64
}

// YearlyTotals returns one bucket per distinct year present in the record
// set, always including ref's year even when empty, ascending by year.
func YearlyTotals(records []model.Expense, ref time.Time) []YearTotal {
	byYear := make(map[int]float64)
	byYear[ref.Year()] = 0
	for _, e := range records {
		byYear[e.Timestamp.Year()] += e.Amount
	}

	totals := make([]YearTotal, 0, len(byYear))
	for year, amount := range byYear {
		totals = append(totals, YearTotal{Year: year, Amount: amount})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Year < totals[j].Year })
	return totals
}

// Segment is a contiguous day range with its summed spend.
type Segment struct {
	Start  time.Time
	End    time.Time
	Label  string
	Amount float64
}

// RecentWeekSegments splits the four Monday-aligned calendar weeks ending
// with ref's week into segments, oldest first.
func RecentWeekSegments(records []model.Expense, ref time.Time) []Segment {
	baseStart := StartOfWeek(ref)
	segments := make([]Segment, 0, 4)
	for offset := 3; offset >= 0; offset-- {
		start := baseStart.AddDate(0, 0, -offset*7)
		end := EndOfDay(start.AddDate(0, 0, 6))
		segments = append(segments, Segment{
			Start:  start,
			End:    end,
			Label:  start.Format("1/02") + "~" + end.Format("1/02"),
			Amount: Sum(FilterByRange(records, start, end)),
		})
	}
	return segments
}

// MonthSegments splits a month into fixed day bands (1-7日, 8-14日,
// 15-21日, 22-end日), clipped to the month's length.
func MonthSegments(records []model.Expense, year int, month time.Month) []Segment {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	days := DaysInMonth(first)

	bands := []struct{ startDay, endDay int }{
		{1, min(7, days)},
		{8, min(14, days)},
		{15, min(21, days)},
		{22, days},
	}

	var segments []Segment
	for _, band := range bands {
		if band.startDay > days {
			continue
		}
		start := time.Date(year, month, band.startDay, 0, 0, 0, 0, time.Local)
		end := EndOfDay(time.Date(year, month, band.endDay, 0, 0, 0, 0, time.Local))
		segments = append(segments, Segment{
			Start:  start,
			End:    end,
			Label:  segmentLabel(band.startDay, band.endDay),
			Amount: Sum(FilterByRange(records, start, end)),
		})
	}
	return segments
}

func segmentLabel(startDay, endDay int) string {
	return strconv.Itoa(startDay) + "-" + strconv.Itoa(endDay) + "日"
}
