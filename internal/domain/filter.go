package domain

import "strings"

// Filter selects which tasks are shown. It is presentation-only and never sent to the backend.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// ParseFilter converts user input into a Filter.
func ParseFilter(s string) (Filter, bool) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FilterAll, FilterPending, FilterCompleted:
		return f, true
	}
	return "", false
}

// Matches reports whether a single task passes the filter.
// Unknown filters behave like FilterAll.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed
	default:
		return true
	}
}

// Apply returns the matching tasks in their original relative order.
// The input slice is never modified.
func (f Filter) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// EmptyMessage is the text shown when the filtered view has no tasks.
func (f Filter) EmptyMessage() string {
	if f == FilterAll || f == "" {
		return "No tasks yet"
	}
	return "No " + string(f) + " tasks"
}

// Counts are aggregate figures derived from a task list.
type Counts struct {
	Total     int
	Completed int
	Pending   int
}

// CountTasks derives the aggregate counts for a list.
func CountTasks(tasks []Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		}
	}
	c.Pending = c.Total - c.Completed
	return c
}
