package tui

import (
	"fmt"
	"strings"

	"task-manager/internal/domain"
	"task-manager/internal/services"
)

var screenNames = []string{"1 Home", "2 Statistics", "3 Categories", "4 Settings"}

func (m Model) View() string {
	st := newStyles(m.prefs.Theme)

	var b strings.Builder
	b.WriteString(st.title.Render("Task Manager"))
	b.WriteString("  ")
	b.WriteString(m.renderNav(st))
	b.WriteString("\n")
	if m.reminder != "" {
		b.WriteString(st.reminder.Render("Reminder: " + m.reminder))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.screen {
	case screenHome:
		b.WriteString(m.renderHome(st))
	case screenDetails:
		b.WriteString(m.renderDetails(st))
	case screenStatistics:
		b.WriteString(m.renderStatistics(st))
	case screenCategories:
		b.WriteString(m.renderCategories(st))
	case screenSettings:
		b.WriteString(m.renderSettings(st))
	}

	if m.mode == modeSearch || m.mode == modeAdd || m.mode == modeAddCategory {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(st.status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(st.muted.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderNav(st styles) string {
	current := int(m.screen)
	if m.screen == screenDetails {
		current = int(screenHome)
	}
	parts := make([]string, len(screenNames))
	for i, name := range screenNames {
		if i == current {
			parts[i] = st.tabOn.Render(name)
		} else {
			parts[i] = st.tab.Render(name)
		}
	}
	return strings.Join(parts, "")
}

func (m Model) renderHome(st styles) string {
	var b strings.Builder

	tabs := make([]string, len(domain.Tabs))
	for i, tab := range domain.Tabs {
		if tab == m.tab {
			tabs[i] = st.tabOn.Render(tab.Label())
		} else {
			tabs[i] = st.tab.Render(tab.Label())
		}
	}
	b.WriteString(strings.Join(tabs, ""))
	if m.query != "" && m.mode != modeSearch {
		b.WriteString(st.muted.Render(fmt.Sprintf("  search: %q", m.query)))
	}
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(st.muted.Render("No tasks found"))
		b.WriteString("\n")
	}
	for i, task := range m.tasks {
		b.WriteString(m.renderTaskLine(st, task, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d of %d tasks completed (%d%%)", m.progress.Completed, m.progress.Total, m.progress.CompletionRate))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderTaskLine(st styles, task *domain.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = st.cursor.Render("> ")
	}
	check := "[ ]"
	title := task.Title
	if task.Completed {
		check = "[x]"
		title = st.done.Render(title)
	}

	line := fmt.Sprintf("%s%s %s  %s  %s", cursor, check, title,
		paint(priorityColor[task.Priority], task.Priority.String()),
		m.api.Calendar().FormatDueDate(task.DueDate, m.cfg.Time.DisplayDateFormat))
	if task.HasCategory() {
		line += "  " + m.categoryLabel(task.Category)
	}
	if m.api.Calendar().IsOverdue(task) {
		line += "  " + st.overdue.Render("overdue")
	}
	return line
}

// categoryLabel renders a task's category in its category color when known
func (m Model) categoryLabel(name string) string {
	for _, cs := range m.categories {
		if strings.EqualFold(cs.Category.Name, name) {
			return paint(cs.Category.Color, "#"+name)
		}
	}
	return "#" + name
}

func (m Model) renderDetails(st styles) string {
	if m.detail == nil {
		return st.panel.Render("Task not found") + "\n"
	}
	task := m.detail

	status := "Pending"
	if task.Completed {
		status = "Completed"
	} else if m.api.Calendar().IsOverdue(task) {
		status = "Overdue"
	}
	category := task.Category
	if category == "" {
		category = "-"
	}
	description := task.Description
	if description == "" {
		description = "No description provided."
	}

	lines := []string{
		st.title.Render(task.Title),
		"",
		"Status:      " + status,
		"Priority:    " + paint(priorityColor[task.Priority], domain.Capitalize(task.Priority.String())),
		"Due:         " + m.api.Calendar().FormatDueDate(task.DueDate, m.cfg.Time.DisplayDateFormat),
		"Category:    " + category,
		"",
		description,
	}
	return st.panel.Render(strings.Join(lines, "\n")) + "\n"
}

func (m Model) renderStatistics(st styles) string {
	if m.stats == nil {
		return st.muted.Render("No statistics") + "\n"
	}
	stats := m.stats
	var b strings.Builder

	o := stats.Overall
	b.WriteString(st.title.Render("Overview"))
	b.WriteString(fmt.Sprintf("\n  Total %d  Completed %d  Pending %d  Completion rate %d%%\n\n",
		o.Total, o.Completed, o.Pending, o.CompletionRate))

	b.WriteString(st.title.Render("Priority"))
	b.WriteString("\n")
	for _, p := range domain.Priorities {
		count := stats.Priorities.Get(p)
		share := services.PriorityShare(count, o.Total)
		b.WriteString(fmt.Sprintf("  %-7s %s %3d%%\n",
			domain.Capitalize(p.String()), paint(priorityColor[p], meter(share, 20)), share))
	}
	b.WriteString("\n")

	b.WriteString(st.title.Render("Categories"))
	b.WriteString("\n")
	for _, cc := range stats.Categories {
		b.WriteString(fmt.Sprintf("  %-12s %d\n", cc.Label, cc.Count))
	}
	b.WriteString("\n")

	b.WriteString(st.title.Render("This week"))
	b.WriteString("\n")
	for _, day := range stats.Weekly {
		b.WriteString(fmt.Sprintf("  %s  %s%s\n", day.Weekday,
			paint(domain.ColorGreen, strings.Repeat("#", day.Completed)),
			paint(domain.ColorYellow, strings.Repeat("#", day.Pending))))
	}
	b.WriteString("\n")

	mo := stats.Monthly
	b.WriteString(st.title.Render(fmt.Sprintf("< %s >", stats.Month)))
	b.WriteString(fmt.Sprintf("\n  Total %d  Completed %d  Pending %d  Completion rate %d%%\n",
		mo.Total, mo.Completed, mo.Pending, mo.CompletionRate))
	return b.String()
}

func (m Model) renderCategories(st styles) string {
	if len(m.categories) == 0 {
		return st.muted.Render("No categories") + "\n"
	}
	var b strings.Builder
	for i, cs := range m.categories {
		cursor := "  "
		if i == m.categoryCursor {
			cursor = st.cursor.Render("> ")
		}
		percent := services.Percentage(cs.Completed, cs.Total)
		b.WriteString(fmt.Sprintf("%s%s  %d/%d completed  %s\n", cursor,
			paint(cs.Category.Color, fmt.Sprintf("%-12s", cs.Category.Name)),
			cs.Completed, cs.Total, meter(percent, 10)))
	}
	return b.String()
}

func (m Model) renderSettings(st styles) string {
	values := []string{
		domain.Capitalize(string(m.prefs.Theme)),
		onOff(m.prefs.Notifications),
		onOff(m.prefs.EmailNotifications),
		onOff(m.prefs.SoundEffects),
	}
	var b strings.Builder
	for i, row := range settingRows {
		cursor := "  "
		if i == m.settingsCursor {
			cursor = st.cursor.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%-20s %s\n", cursor, row, values[i]))
	}
	return b.String()
}

func (m Model) helpLine() string {
	switch m.mode {
	case modeSearch:
		return "type to filter • enter: done • esc: clear"
	case modeAdd, modeAddCategory:
		return "enter: save • esc: cancel"
	case modeConfirmDelete:
		return "y: delete • any other key: cancel"
	}
	switch m.screen {
	case screenDetails:
		return "space: toggle • d: delete • esc: back • q: quit"
	case screenStatistics:
		return "←/→: month • 1-4: screens • q: quit"
	case screenCategories:
		return "a: add • c: color • d: delete • 1-4: screens • q: quit"
	case screenSettings:
		return "space: change • 1-4: screens • q: quit"
	}
	return "tab: filter • /: search • a: add • space: toggle • d: delete • enter: details • 1-4: screens • q: quit"
}

// meter draws percent as a bar of width cells
func meter(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func onOff(on bool) string {
	if on {
		return "On"
	}
	return "Off"
}
