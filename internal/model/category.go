package model

// DefaultColor is assigned to categories created without an explicit color.
const DefaultColor = "#0ea5e9"

// Category is a named, colored grouping for expenses. Registry order is
// significant: it drives default selection and display order.
type Category struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position int    `json:"-"`
}

// DefaultCategories returns the registry seeded on first run.
func DefaultCategories() []Category {
	return []Category{
		{Name: "日常", Color: "#0ea5e9", Position: 0},
		{Name: "吃饭", Color: "#22c55e", Position: 1},
		{Name: "数码", Color: "#f97316", Position: 2},
		{Name: "额外", Color: "#a78bfa", Position: 3},
	}
}
