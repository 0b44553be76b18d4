package domain

import (
	"strings"

	"task-manager/internal/errors"
)

// Color is a category color drawn from a fixed palette.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
	ColorPurple Color = "purple"
)

// DefaultColor is used when a category is added without one.
const DefaultColor = ColorBlue

// Palette lists the colors a category may use.
var Palette = []Color{ColorBlue, ColorGreen, ColorYellow, ColorRed, ColorPurple}

// ParseColor parses a palette color. An empty string yields DefaultColor.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultColor, nil
	}
	for _, c := range Palette {
		if Color(s) == c {
			return c, nil
		}
	}
	return "", errors.NewInvalidInputError("color", s, "must be one of blue, green, yellow, red, purple")
}

func (c Color) String() string {
	return string(c)
}

// Category groups tasks by name. Tasks are not linked to categories by id:
// a task belongs to a category when its Category label matches the name.
type Category struct {
	ID    string
	Name  string
	Color Color
}

// NewCategory creates a category with the given name and color.
func NewCategory(name string, color Color) Category {
	return Category{Name: name, Color: color}
}

// IsValid checks if the category has a non-blank name.
func (c Category) IsValid() bool {
	return strings.TrimSpace(c.Name) != ""
}

// Contains reports whether the task belongs to this category.
func (c Category) Contains(task Task) bool {
	return task.InCategory(c.Name)
}

func (c Category) String() string {
	return c.Name
}
