// Package budget derives spending ceilings and balances from the
// configured budget settings. Balances may be negative; a negative
// balance is a display signal, not an error.
package budget

import (
	"time"

	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/report"
)

// DailyBalance returns the daily budget minus today's spend.
func DailyBalance(settings model.Settings, spentToday float64) float64 {
	return settings.DailyBudget - spentToday
}

// WeeklyBudget is the daily budget over a Monday-to-Sunday week.
func WeeklyBudget(settings model.Settings) float64 {
	return settings.DailyBudget * 7
}

// WeeklyBalance returns the weekly budget minus the week's spend.
func WeeklyBalance(settings model.Settings, spentThisWeek float64) float64 {
	return WeeklyBudget(settings) - spentThisWeek
}

// MonthlyBudget returns the explicit monthly budget when one is set,
// otherwise the daily budget scaled by the reference month's length.
func MonthlyBudget(settings model.Settings, referenceDate time.Time) float64 {
	if settings.MonthlyBudget > 0 {
		return settings.MonthlyBudget
	}
	return settings.DailyBudget * float64(report.DaysInMonth(referenceDate))
}

// MonthlyBalance returns the monthly budget minus the month's spend.
func MonthlyBalance(settings model.Settings, spentThisMonth float64, referenceDate time.Time) float64 {
	return MonthlyBudget(settings, referenceDate) - spentThisMonth
}
