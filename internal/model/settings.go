package model

// DefaultDailyBudget applies when the configured daily budget is unset or invalid.
const DefaultDailyBudget = 30.0

// Settings holds the user's budget configuration.
type Settings struct {
	// DailyBudget is the per-day spending ceiling. Always positive.
	DailyBudget float64 `json:"dailyBudget"`
	// MonthlyBudget overrides dailyBudget*daysInMonth when positive.
	// Zero means "derive from the daily budget".
	MonthlyBudget float64 `json:"monthlyBudget"`
}

// DefaultSettings returns the settings used on first run.
func DefaultSettings() Settings {
	return Settings{DailyBudget: DefaultDailyBudget, MonthlyBudget: 0}
}

// Normalize replaces invalid values with their documented fallbacks.
func (s Settings) Normalize() Settings {
	if s.DailyBudget <= 0 {
		s.DailyBudget = DefaultDailyBudget
	}
	if s.MonthlyBudget < 0 {
		s.MonthlyBudget = 0
	}
	return s
}
