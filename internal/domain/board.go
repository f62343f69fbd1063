package domain

// Standard task-board layout for repository triage.
const (
	ListToDo         = "To Do"
	ListBugs         = "Bugs"
	ListEnhancements = "Enhancements"
	ListHighPriority = "High Priority"
	ListCritical     = "Critical"
	ListSuggestions  = "Suggestions"
	ListSummary      = "Summary"
)

// StandardLists is the set of lists SetupBoard ensures exist, in column order.
var StandardLists = []string{
	ListToDo,
	ListBugs,
	ListEnhancements,
	ListHighPriority,
	ListCritical,
	ListSuggestions,
	ListSummary,
}

// BoardLabel pairs a label name with its board color.
type BoardLabel struct {
	Name  string
	Color string
}

// StandardLabels is the set of labels SetupBoard ensures exist.
var StandardLabels = []BoardLabel{
	{"security", "red"},
	{"bug", "red"},
	{"enhancement", "blue"},
	{"documentation", "green"},
	{"testing", "yellow"},
	{"performance", "orange"},
	{"code-quality", "purple"},
	{"suggestion", "sky"},
	{"summary", "lime"},
}
