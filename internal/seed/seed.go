// Package seed loads the sample tasks and categories a session starts with.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/repository/sqlite"
)

// EmbeddedSource names the built-in seed in errors and logs
const EmbeddedSource = "embedded seed"

const schemaURL = "https://task-manager.local/seed.schema.json"

//go:embed seed.json
var embeddedSeed []byte

//go:embed seed.schema.json
var schemaJSON []byte

// Task is a task as written in a seed file
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Completed   bool   `json:"completed"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

// Category is a category as written in a seed file
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Data is the decoded content of a seed file, in display order
type Data struct {
	Tasks      []Task     `json:"tasks"`
	Categories []Category `json:"categories"`
}

// Load reads the seed file at path, or the embedded seed when path is empty
func Load(path string) (*Data, error) {
	if path == "" {
		return Parse(embeddedSeed, EmbeddedSource)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewSeedError(path, err)
	}
	return Parse(raw, path)
}

// Parse validates raw against the seed schema and decodes it
func Parse(raw []byte, source string) (*Data, error) {
	if err := validateWithSchema(raw); err != nil {
		return nil, errors.NewSeedError(source, err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.NewSeedError(source, err)
	}
	return &data, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// validateWithSchema validates a raw seed document against the embedded schema.
func validateWithSchema(raw []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode seed: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return firstSchemaError(err)
	}
	return nil
}

// firstSchemaError reduces a schema validation error to its first leaf cause.
func firstSchemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	location := ve.InstanceLocation
	if location == "" {
		location = "/"
	}
	return fmt.Errorf("%s: %s", location, ve.Message)
}

// Apply stores the seed so that listing returns tasks and categories in
// the order the seed gives them
func Apply(ctx context.Context, repo sqlite.Repository, data *Data) error {
	mapper := domain.NewMapper()

	// Tasks are prepended, so insert them last to first.
	for i := len(data.Tasks) - 1; i >= 0; i-- {
		dbTask := mapper.Task.ToDatabase(data.Tasks[i].toDomain())
		if err := repo.CreateTask(ctx, &dbTask); err != nil {
			return errors.NewSeedError(fmt.Sprintf("task %q", data.Tasks[i].ID), err)
		}
	}

	for _, category := range data.Categories {
		dbCategory := mapper.Category.ToDatabase(category.toDomain())
		if err := repo.CreateCategory(ctx, &dbCategory); err != nil {
			return errors.NewSeedError(fmt.Sprintf("category %q", category.ID), err)
		}
	}

	logging.Debugf("seeded %d task(s) and %d category(ies)", len(data.Tasks), len(data.Categories))
	return nil
}

// LoadAndApply loads the seed at path and stores it in repo
func LoadAndApply(ctx context.Context, repo sqlite.Repository, path string) error {
	data, err := Load(path)
	if err != nil {
		return err
	}
	return Apply(ctx, repo, data)
}

func (t Task) toDomain() domain.Task {
	return domain.Task{
		ID:          t.ID,
		Title:       t.Title,
		Completed:   t.Completed,
		Priority:    domain.Priority(t.Priority),
		DueDate:     t.DueDate,
		Category:    t.Category,
		Description: t.Description,
	}
}

func (c Category) toDomain() domain.Category {
	return domain.Category{
		ID:    c.ID,
		Name:  c.Name,
		Color: domain.Color(c.Color),
	}
}
