package api

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// CSVHeader is the header row of a CSV export
var CSVHeader = []string{"id", "title", "completed", "priority", "due_date", "category", "description"}

// ExportedTask is a task as written by json and yaml exports
type ExportedTask struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Completed   bool   `json:"completed" yaml:"completed"`
	Priority    string `json:"priority" yaml:"priority"`
	DueDate     string `json:"due_date" yaml:"due_date"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

func toExported(tasks []*domain.Task) []ExportedTask {
	exported := make([]ExportedTask, len(tasks))
	for i, task := range tasks {
		exported[i] = ExportedTask{
			ID:          task.ID,
			Title:       task.Title,
			Completed:   task.Completed,
			Priority:    string(task.Priority),
			DueDate:     task.DueDate,
			Category:    task.Category,
			Description: task.Description,
		}
	}
	return exported
}

// WriteTasks writes tasks to w as csv, json or yaml
func WriteTasks(w io.Writer, tasks []*domain.Task, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return writeCSV(w, tasks)
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(toExported(tasks)); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
		return nil
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(toExported(tasks)); err != nil {
			return fmt.Errorf("failed to write YAML: %w", err)
		}
		return encoder.Close()
	default:
		return errors.NewInvalidInputError("format", format, "must be one of csv, json, yaml")
	}
}

// writeCSV outputs tasks in CSV format
func writeCSV(w io.Writer, tasks []*domain.Task) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range tasks {
		row := []string{
			task.ID,
			task.Title,
			strconv.FormatBool(task.Completed),
			string(task.Priority),
			task.DueDate,
			task.Category,
			task.Description,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
