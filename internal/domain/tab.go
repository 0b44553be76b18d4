package domain

import (
	"strings"

	"task-manager/internal/errors"
)

// Tab selects which subset of tasks the home view shows.
type Tab string

const (
	TabAll       Tab = "all"
	TabToday     Tab = "today"
	TabUpcoming  Tab = "upcoming"
	TabCompleted Tab = "completed"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabAll, TabToday, TabUpcoming, TabCompleted}

// ParseTab parses a tab name case-insensitively. An empty string selects TabAll.
func ParseTab(s string) (Tab, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TabAll, nil
	}
	for _, tab := range Tabs {
		if Tab(s) == tab {
			return tab, nil
		}
	}
	return "", errors.NewInvalidInputError("tab", s, "must be one of all, today, upcoming, completed")
}

// Next returns the tab after t, wrapping around.
func (t Tab) Next() Tab {
	for i, tab := range Tabs {
		if tab == t {
			return Tabs[(i+1)%len(Tabs)]
		}
	}
	return TabAll
}

// Label is the capitalized tab name.
func (t Tab) Label() string {
	return Capitalize(string(t))
}

func (t Tab) String() string {
	return string(t)
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
