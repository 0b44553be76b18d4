package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"task-manager/internal/domain"
	"task-manager/internal/repository/sqlite"
)

// UncategorizedKey is the breakdown key for tasks without a category
const UncategorizedKey = "uncategorized"

// statisticsServiceImpl implements the StatisticsService interface
type statisticsServiceImpl struct {
	repo        sqlite.Repository
	timeService TimeService
	mapper      *domain.Mapper
}

// NewStatisticsService creates a new StatisticsService instance
func NewStatisticsService(repo sqlite.Repository, timeService TimeService) StatisticsService {
	return &statisticsServiceImpl{
		repo:        repo,
		timeService: timeService,
		mapper:      domain.NewMapper(),
	}
}

func (s *statisticsServiceImpl) loadTasks(ctx context.Context) ([]*domain.Task, error) {
	dbTasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// GetProgress summarizes every task in the store
func (s *statisticsServiceImpl) GetProgress(ctx context.Context) (Summary, error) {
	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(tasks), nil
}

// GetStatistics builds the statistics screen for the given month
func (s *statisticsServiceImpl) GetStatistics(ctx context.Context, month MonthCursor) (*Statistics, error) {
	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		Overall:    Summarize(tasks),
		Priorities: CountByPriority(tasks),
		Categories: CategoryBreakdown(tasks),
		Weekly:     WeeklyBreakdown(tasks, s.timeService.WeekStart()),
		Month:      month,
		Monthly:    MonthlySummary(tasks, month.Year, month.Month),
	}, nil
}

// ListCategoryProgress counts tasks in each category, in category order
func (s *statisticsServiceImpl) ListCategoryProgress(ctx context.Context) ([]CategoryStats, error) {
	dbCategories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}
	return CategoryProgress(s.mapper.Category.FromDatabaseSlice(dbCategories), tasks), nil
}

// Summarize counts completed and pending tasks. CompletionRate is the
// rounded percentage of completed tasks, 0 for no tasks.
func Summarize(tasks []*domain.Task) Summary {
	summary := Summary{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			summary.Completed++
		}
	}
	summary.Pending = summary.Total - summary.Completed
	summary.CompletionRate = Percentage(summary.Completed, summary.Total)
	return summary
}

// Percentage returns round(part/total*100), 0 when total is 0
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// PriorityShare returns the percentage of total tasks at a priority
func PriorityShare(count, total int) int {
	return Percentage(count, total)
}

// CountByPriority counts tasks at each priority. Tasks with an unknown
// priority are not counted.
func CountByPriority(tasks []*domain.Task) PriorityCounts {
	var counts PriorityCounts
	for _, task := range tasks {
		switch task.Priority {
		case domain.PriorityHigh:
			counts.High++
		case domain.PriorityMedium:
			counts.Medium++
		case domain.PriorityLow:
			counts.Low++
		}
	}
	return counts
}

// CountByCategory counts tasks per lowercased category name. Tasks without
// a category are counted under UncategorizedKey.
func CountByCategory(tasks []*domain.Task) map[string]int {
	counts := make(map[string]int)
	for _, task := range tasks {
		key := UncategorizedKey
		if task.HasCategory() {
			key = strings.ToLower(task.Category)
		}
		counts[key]++
	}
	return counts
}

// CategoryBreakdown renders CountByCategory as labelled rows, largest first
func CategoryBreakdown(tasks []*domain.Task) []CategoryCount {
	counts := CountByCategory(tasks)
	rows := make([]CategoryCount, 0, len(counts))
	for name, count := range counts {
		rows = append(rows, CategoryCount{
			Name:  name,
			Label: domain.Capitalize(name),
			Count: count,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// CategoryProgress counts the tasks and completed tasks of each category
func CategoryProgress(categories []*domain.Category, tasks []*domain.Task) []CategoryStats {
	stats := make([]CategoryStats, 0, len(categories))
	for _, category := range categories {
		stats = append(stats, CategoryStats{
			Category:  category,
			Total:     TasksInCategory(tasks, *category),
			Completed: CompletedInCategory(tasks, *category),
		})
	}
	return stats
}

// TasksInCategory counts the tasks belonging to category
func TasksInCategory(tasks []*domain.Task, category domain.Category) int {
	count := 0
	for _, task := range tasks {
		if category.Contains(*task) {
			count++
		}
	}
	return count
}

// CompletedInCategory counts the completed tasks belonging to category
func CompletedInCategory(tasks []*domain.Task, category domain.Category) int {
	count := 0
	for _, task := range tasks {
		if task.Completed && category.Contains(*task) {
			count++
		}
	}
	return count
}

// WeeklyBreakdown counts completed and pending tasks due on each of the
// seven days starting at weekStart
func WeeklyBreakdown(tasks []*domain.Task, weekStart time.Time) []DayCount {
	days := make([]DayCount, 7)
	index := make(map[string]int, 7)
	for i := range days {
		day := weekStart.AddDate(0, 0, i)
		days[i] = DayCount{
			Date:    day.Format(domain.DateLayout),
			Weekday: day.Weekday().String()[:3],
		}
		index[days[i].Date] = i
	}

	for _, task := range tasks {
		i, ok := index[task.DueDate]
		if !ok {
			continue
		}
		if task.Completed {
			days[i].Completed++
		} else {
			days[i].Pending++
		}
	}
	return days
}

// MonthlySummary summarizes the tasks due in the given month
func MonthlySummary(tasks []*domain.Task, year int, month time.Month) Summary {
	cursor := MonthCursor{Year: year, Month: month}
	inMonth := make([]*domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if cursor.Contains(task.DueDate) {
			inMonth = append(inMonth, task)
		}
	}
	return Summarize(inMonth)
}
