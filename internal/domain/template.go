package domain

// Template is a reusable proposal starting point from the catalog.
type Template struct {
	ID          string
	Title       string
	Description string
	Category    string
	UsageCount  int
	Author      string
	SuccessRate int
	Content     string
}
