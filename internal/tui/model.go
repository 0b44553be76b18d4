package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/services"
)

type screen int

const (
	screenHome screen = iota
	screenStatistics
	screenCategories
	screenSettings
	screenDetails
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeAdd
	modeAddCategory
	modeConfirmDelete
)

// ReminderMsg carries the tasks due today found by the reminder job
type ReminderMsg struct {
	Tasks []*domain.Task
}

// settingRows are the rows of the settings screen, in display order
var settingRows = []string{"Theme", "Notifications", "Email notifications", "Sound effects"}

// Model is the bubbletea model of the task manager UI
type Model struct {
	ctx context.Context
	api api.BusinessAPI
	cfg *config.Config

	screen screen
	mode   mode
	input  textinput.Model
	status string
	width  int

	// home
	tab      domain.Tab
	query    string
	tasks    []*domain.Task
	progress api.Summary
	cursor   int

	// details
	detailID string
	detail   *domain.Task

	// statistics
	month api.MonthCursor
	stats *api.Statistics

	// categories
	categories     []api.CategoryStats
	categoryCursor int

	// settings
	prefs          domain.Preferences
	settingsCursor int

	pendingDelete         *domain.Task
	pendingCategoryDelete *domain.Category
	reminder              string
}

// NewModel creates the UI model over businessAPI and loads the home screen
func NewModel(ctx context.Context, businessAPI api.BusinessAPI, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	ti := textinput.New()
	ti.CharLimit = cfg.Validation.TitleMaxLength
	ti.Width = cfg.Display.ListWidth - 10

	m := Model{
		ctx:    ctx,
		api:    businessAPI,
		cfg:    cfg,
		screen: screenHome,
		mode:   modeList,
		input:  ti,
		tab:    cfg.DefaultTab(),
		month:  businessAPI.CurrentMonth(),
		prefs:  businessAPI.GetPreferences(),
		status: "Press 'a' to add, space to toggle, 'd' to delete, '/' to search.",
	}
	m.reloadTasks()
	m.loadCategories()
	return m
}

// Init checks for tasks due today when notifications are on
func (m Model) Init() tea.Cmd {
	if !m.prefs.Notifications {
		return nil
	}
	return m.checkReminders
}

func (m Model) checkReminders() tea.Msg {
	tasks, err := m.api.DueToday(m.ctx)
	if err != nil || len(tasks) == 0 {
		return nil
	}
	return ReminderMsg{Tasks: tasks}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearchMode(msg)
		case modeAdd, modeAddCategory:
			return m.updateAddMode(msg)
		case modeConfirmDelete:
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 10
	case ReminderMsg:
		m.reminder = services.ReminderDigest(msg.Tasks)
		m.reloadTasks()
	}
	return m, nil
}

// handleKey handles keys in list mode: global keys first, then the screen's own
func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "1":
		return m.showHome(), nil
	case "2":
		return m.showStatistics(), nil
	case "3":
		return m.showCategories(), nil
	case "4":
		return m.showSettings(), nil
	}

	switch m.screen {
	case screenHome:
		return m.updateHome(key)
	case screenDetails:
		return m.updateDetails(key)
	case screenStatistics:
		return m.updateStatistics(key)
	case screenCategories:
		return m.updateCategories(key)
	case screenSettings:
		return m.updateSettings(key)
	}
	return m, nil
}

func (m Model) updateHome(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "tab":
		m.tab = m.tab.Next()
		m.cursor = 0
		m.reloadTasks()
	case "shift+tab":
		for i := 0; i < len(domain.Tabs)-1; i++ {
			m.tab = m.tab.Next()
		}
		m.cursor = 0
		m.reloadTasks()
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(m.tasks))
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(m.tasks))
	case "/":
		m.mode = modeSearch
		m.input.Placeholder = "Search tasks"
		m.input.SetValue(m.query)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "esc":
		if m.query != "" {
			m.query = ""
			m.reloadTasks()
		}
	case "a":
		m.mode = modeAdd
		m.input.Placeholder = "Task title"
		m.input.SetValue("")
		m.status = "Add mode: type a title and press Enter"
		return m, m.input.Focus()
	case " ", "space":
		if task := m.selectedTask(); task != nil {
			m.toggle(task.ID)
		}
	case "d":
		if task := m.selectedTask(); task != nil {
			m.confirmDelete(task)
		}
	case "enter":
		if task := m.selectedTask(); task != nil {
			m.detailID = task.ID
			m.screen = screenDetails
			m.loadDetail()
		}
	}
	return m, nil
}

func (m Model) updateDetails(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "backspace":
		return m.showHome(), nil
	case " ", "space":
		if m.detail != nil {
			m.toggle(m.detail.ID)
			m.loadDetail()
		}
	case "d":
		if m.detail != nil {
			m.confirmDelete(m.detail)
		}
	}
	return m, nil
}

func (m Model) updateStatistics(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "left", "h":
		m.month = m.month.Prev()
		m.loadStatistics()
	case "right", "l":
		m.month = m.month.Next()
		m.loadStatistics()
	case "esc":
		return m.showHome(), nil
	}
	return m, nil
}

func (m Model) updateCategories(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "down", "j":
		m.categoryCursor = clampCursor(m.categoryCursor+1, len(m.categories))
	case "up", "k":
		m.categoryCursor = clampCursor(m.categoryCursor-1, len(m.categories))
	case "a":
		m.mode = modeAddCategory
		m.input.Placeholder = "Category name"
		m.input.SetValue("")
		m.status = "New category: type a name and press Enter"
		return m, m.input.Focus()
	case "c":
		if category := m.selectedCategory(); category != nil {
			updated := *category
			updated.Color = nextColor(category.Color)
			if err := m.api.UpdateCategory(m.ctx, updated); err != nil {
				m.status = fmt.Sprintf("update failed: %s", errors.GetUserMessage(err))
			} else {
				m.status = fmt.Sprintf("%s is now %s", updated.Name, updated.Color)
			}
			m.loadCategories()
		}
	case "d":
		if category := m.selectedCategory(); category != nil {
			m.pendingCategoryDelete = category
			m.mode = modeConfirmDelete
			m.status = fmt.Sprintf("Delete category \"%s\"? y/n", category.Name)
		}
	case "esc":
		return m.showHome(), nil
	}
	return m, nil
}

func (m Model) updateSettings(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "down", "j":
		m.settingsCursor = clampCursor(m.settingsCursor+1, len(settingRows))
	case "up", "k":
		m.settingsCursor = clampCursor(m.settingsCursor-1, len(settingRows))
	case " ", "space", "enter":
		m.prefs = m.api.UpdatePreferences(toggleSetting(m.prefs, m.settingsCursor))
		m.status = "Settings saved for this session"
	case "esc":
		return m.showHome(), nil
	}
	return m, nil
}

// updateSearchMode filters the list as the query is typed
func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeList
		m.input.Blur()
		return m, nil
	case "esc":
		m.mode = modeList
		m.input.Blur()
		m.input.SetValue("")
		m.query = ""
		m.cursor = 0
		m.reloadTasks()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.query {
		m.query = m.input.Value()
		m.cursor = 0
		m.reloadTasks()
	}
	return m, cmd
}

// updateAddMode collects a task title or category name. Blank input is dropped.
func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		m.input.SetValue("")
		m.status = "Cancelled"
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		adding := m.mode
		m.mode = modeList
		m.input.Blur()
		m.input.SetValue("")
		if value == "" {
			m.status = ""
			return m, nil
		}
		if adding == modeAddCategory {
			m.addCategory(value)
		} else {
			m.addTask(value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	m.mode = modeList
	task, category := m.pendingDelete, m.pendingCategoryDelete
	m.pendingDelete, m.pendingCategoryDelete = nil, nil

	if key != "y" && key != "Y" {
		m.status = "Delete cancelled"
		return m, nil
	}

	switch {
	case task != nil:
		if err := m.api.DeleteTask(m.ctx, task.ID); err != nil {
			m.status = fmt.Sprintf("delete failed: %s", errors.GetUserMessage(err))
			return m, nil
		}
		m.status = fmt.Sprintf("Deleted \"%s\"", task.Title)
		if m.screen == screenDetails {
			m.screen = screenHome
		}
		m.reloadTasks()
	case category != nil:
		if err := m.api.DeleteCategory(m.ctx, category.ID); err != nil {
			m.status = fmt.Sprintf("delete failed: %s", errors.GetUserMessage(err))
			return m, nil
		}
		m.status = fmt.Sprintf("Deleted category \"%s\"", category.Name)
		m.loadCategories()
	}
	return m, nil
}

func (m Model) showHome() Model {
	m.screen = screenHome
	m.reloadTasks()
	return m
}

func (m Model) showStatistics() Model {
	m.screen = screenStatistics
	m.loadStatistics()
	return m
}

func (m Model) showCategories() Model {
	m.screen = screenCategories
	m.loadCategories()
	return m
}

func (m Model) showSettings() Model {
	m.screen = screenSettings
	m.prefs = m.api.GetPreferences()
	return m
}

func (m *Model) reloadTasks() {
	tasks, err := m.api.ListTasks(m.ctx, m.tab, m.query)
	if err != nil {
		m.status = fmt.Sprintf("load failed: %s", errors.GetUserMessage(err))
		return
	}
	m.tasks = tasks
	m.cursor = clampCursor(m.cursor, len(m.tasks))

	progress, err := m.api.GetProgress(m.ctx)
	if err != nil {
		m.status = fmt.Sprintf("load failed: %s", errors.GetUserMessage(err))
		return
	}
	m.progress = progress
}

func (m *Model) loadDetail() {
	task, err := m.api.GetTask(m.ctx, m.detailID)
	if err != nil {
		m.detail = nil
		if !errors.IsNotFound(err) {
			m.status = fmt.Sprintf("load failed: %s", errors.GetUserMessage(err))
		}
		return
	}
	m.detail = task
}

func (m *Model) loadStatistics() {
	stats, err := m.api.GetStatistics(m.ctx, m.month)
	if err != nil {
		m.status = fmt.Sprintf("load failed: %s", errors.GetUserMessage(err))
		return
	}
	m.stats = stats
}

func (m *Model) loadCategories() {
	categories, err := m.api.ListCategoryProgress(m.ctx)
	if err != nil {
		m.status = fmt.Sprintf("load failed: %s", errors.GetUserMessage(err))
		return
	}
	m.categories = categories
	m.categoryCursor = clampCursor(m.categoryCursor, len(m.categories))
}

func (m *Model) addTask(title string) {
	task, err := m.api.AddTask(m.ctx, api.TaskInput{Title: title})
	if err != nil {
		m.status = fmt.Sprintf("add failed: %s", errors.GetUserMessage(err))
		return
	}
	m.status = fmt.Sprintf("Added \"%s\"", task.Title)
	m.cursor = 0
	m.reloadTasks()
}

func (m *Model) addCategory(name string) {
	category, err := m.api.AddCategory(m.ctx, name, "")
	if err != nil {
		m.status = fmt.Sprintf("add failed: %s", errors.GetUserMessage(err))
		return
	}
	m.status = fmt.Sprintf("Added category \"%s\"", category.Name)
	m.loadCategories()
	m.categoryCursor = clampCursor(len(m.categories)-1, len(m.categories))
}

func (m *Model) toggle(id string) {
	if err := m.api.ToggleTask(m.ctx, id); err != nil {
		m.status = fmt.Sprintf("toggle failed: %s", errors.GetUserMessage(err))
		return
	}
	m.status = "Toggled task"
	m.reloadTasks()
}

func (m *Model) confirmDelete(task *domain.Task) {
	m.pendingDelete = task
	m.mode = modeConfirmDelete
	m.status = fmt.Sprintf("Delete \"%s\"? y/n", task.Title)
}

func (m Model) selectedTask() *domain.Task {
	if len(m.tasks) == 0 {
		return nil
	}
	return m.tasks[m.cursor]
}

func (m Model) selectedCategory() *domain.Category {
	if len(m.categories) == 0 {
		return nil
	}
	return m.categories[m.categoryCursor].Category
}

// toggleSetting flips the setting at row
func toggleSetting(p domain.Preferences, row int) domain.PreferencesUpdate {
	var update domain.PreferencesUpdate
	switch row {
	case 0:
		theme := domain.ThemeDark
		if p.Theme == domain.ThemeDark {
			theme = domain.ThemeLight
		}
		update.Theme = &theme
	case 1:
		on := !p.Notifications
		update.Notifications = &on
	case 2:
		on := !p.EmailNotifications
		update.EmailNotifications = &on
	case 3:
		on := !p.SoundEffects
		update.SoundEffects = &on
	}
	return update
}

// nextColor returns the palette color after c
func nextColor(c domain.Color) domain.Color {
	for i, color := range domain.Palette {
		if color == c {
			return domain.Palette[(i+1)%len(domain.Palette)]
		}
	}
	return domain.DefaultColor
}

func clampCursor(cur, n int) int {
	if n == 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
