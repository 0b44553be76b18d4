package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/tui"
)

// SessionOpener creates the seeded task store a command runs against
type SessionOpener func(ctx context.Context, cfg *config.Config) (*api.Session, error)

// TUIRunner runs the interactive UI until the user quits
type TUIRunner func(ctx context.Context, app *App) error

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd         *cobra.Command
	config      *config.Config
	openSession SessionOpener
	runTUI      TUIRunner
	session     *api.Session
	app         *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config) *RootCommand {
	return newRootCommand(cfg, api.OpenSession, runTerminalUI)
}

func newRootCommand(cfg *config.Config, openSession SessionOpener, runTUI TUIRunner) *RootCommand {
	root := &RootCommand{
		config:      cfg,
		openSession: openSession,
		runTUI:      runTUI,
	}

	root.cmd = &cobra.Command{
		Use:   "tm",
		Short: "A terminal task manager",
		Long: `Task Manager (tm) organizes tasks by priority, due date and category.

Running tm without a command opens the interactive UI. Every run starts a
fresh session loaded with the sample tasks and categories; nothing is saved
when it ends.

FEATURES:
  • Filter tasks by tab (all, today, upcoming, completed) and search text
  • Add, edit, complete and delete tasks
  • Manage categories and see their progress
  • Completion statistics by priority, category, week and month
  • Export tasks as CSV, JSON or YAML
  • Due-today reminders while the interactive UI is open

EXAMPLES:
  tm                                       # Open the interactive UI
  tm list --tab today                      # Tasks due today
  tm list --search report                  # Tasks whose title contains "report"
  tm add "Pay rent" --priority high --due 2023-07-01 --category finance
  tm toggle 1                              # Complete or reopen task 1
  tm stats --month 2023-06                 # Statistics for June 2023
  tm export --format json > tasks.json     # Export every task

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > TOML file > defaults

  Store Configuration:
    TM_STORE_DSN                           SQLite DSN (default: :memory:)
    TM_STORE_QUERY_TIMEOUT                 Query timeout (default: 10s)
    TM_STORE_WRITE_TIMEOUT                 Write timeout (default: 5s)
    TM_SEED_FILE                           Seed data file (default: built-in sample data)

  Time Configuration:
    TM_TIMEZONE                            Time zone for today/tomorrow (default: UTC)
    TM_DATE_FORMAT                         Due date display format (default: Jan 2, 2006)

  Display Configuration:
    TM_DEFAULT_TAB                         Tab shown first (default: all)
    TM_DISPLAY_LIST_WIDTH                  List width in columns (default: 72)

  Validation Configuration:
    TM_VALIDATION_TITLE_MIN                Min title length (default: 1)
    TM_VALIDATION_TITLE_MAX                Max title length (default: 255)
    TM_VALIDATION_CATEGORY_NAME_MAX        Max category name length (default: 50)

  Application Configuration:
    TM_CONFIG                              Optional TOML configuration file
    TM_APP_TIMEOUT                         Command timeout (default: 60s)
    TM_APP_VERBOSE                         Enable verbose output (default: false)
    TM_LOG_LEVEL                           Log level (default: info)
    TM_LOG_FORMAT                          Log format: text, json, logfmt (default: text)
    TM_REMINDER_SCHEDULE                   Reminder cron schedule (default: @every 30m)
    TM_DEBUG                               Print debug output

  Preferences:
    TM_THEME, TM_NOTIFICATIONS, TM_EMAIL_NOTIFICATIONS, TM_SOUND_EFFECTS

  Command Configuration:
    TM_EXPORT_DEFAULT_FORMAT               Default export format (default: csv)

GETTING HELP:
  tm [command] --help                      # Get help for any specific command
  tm completion bash                       # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			if err := root.getConfigFromFlags(); err != nil {
				return err
			}
			return root.startSession(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.runTUI(cmd.Context(), root.app)
		},
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// Execute runs the root command and releases the session afterwards
func (r *RootCommand) Execute() error {
	defer r.closeSession()
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with ctx
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	defer r.closeSession()
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs sets the arguments parsed instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetIO redirects command input and output
func (r *RootCommand) SetIO(in io.Reader, out, errOut io.Writer) {
	r.cmd.SetIn(in)
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

// startSession validates the configuration, configures logging and opens
// the task store for the command about to run
func (r *RootCommand) startSession(cmd *cobra.Command) error {
	if err := r.config.Validate(); err != nil {
		return NewErrorHandler().HandleSimple(err)
	}

	level := r.config.Application.LogLevel
	if r.config.Application.Verbose {
		level = "debug"
	}
	logging.ConfigureFromStrings(cmd.ErrOrStderr(), level, r.config.Application.LogFormat)

	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()

	session, err := r.openSession(ctx, r.config)
	if err != nil {
		return NewErrorHandler().Handle("open task store", err)
	}
	r.session = session
	r.app = NewAppWithIO(session.API, r.config, cmd.OutOrStdout(), cmd.InOrStdin())
	return nil
}

func (r *RootCommand) closeSession() {
	if r.session == nil {
		return
	}
	if err := r.session.Close(); err != nil {
		logging.Warn("closing task store", "err", err)
	}
	r.session = nil
}

// run executes fn with the configured application timeout
func (r *RootCommand) run(cmd *cobra.Command, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()
	return fn(ctx)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Store configuration
	flags.String("store-dsn", "", "SQLite DSN for the task store (overrides TM_STORE_DSN)")
	flags.Duration("store-query-timeout", 0, "Store query timeout (overrides TM_STORE_QUERY_TIMEOUT)")
	flags.Duration("store-write-timeout", 0, "Store write timeout (overrides TM_STORE_WRITE_TIMEOUT)")
	flags.String("seed-file", "", "Seed data file (overrides TM_SEED_FILE)")

	// Time configuration
	flags.String("timezone", "", "Time zone for today/tomorrow (overrides TM_TIMEZONE)")
	flags.String("date-format", "", "Due date display format (overrides TM_DATE_FORMAT)")

	// Display configuration
	flags.String("default-tab", "", "Tab shown first (overrides TM_DEFAULT_TAB)")
	flags.Int("list-width", 0, "List width in columns (overrides TM_DISPLAY_LIST_WIDTH)")

	// Validation configuration
	flags.Int("title-min-length", 0, "Minimum title length (overrides TM_VALIDATION_TITLE_MIN)")
	flags.Int("title-max-length", 0, "Maximum title length (overrides TM_VALIDATION_TITLE_MAX)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides TM_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TM_APP_VERBOSE)")
	flags.String("log-level", "", "Log level (overrides TM_LOG_LEVEL)")
	flags.String("log-format", "", "Log format (overrides TM_LOG_FORMAT)")

	// Commands configuration
	flags.String("export-format", "", "Default export format (overrides TM_EXPORT_DEFAULT_FORMAT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// List command
	var listOpts ListOptions
	listCmd := &cobra.Command{
		Use:   "list [search text]",
		Short: "List tasks",
		Long: `List tasks under a tab, optionally narrowed by search text.

Tabs:
  all        every task
  today      tasks due today
  upcoming   incomplete tasks due tomorrow or later
  completed  completed tasks

Search text matches task titles case-insensitively.

Examples:
  tm list                       # Every task
  tm list --tab upcoming        # Incomplete tasks due from tomorrow on
  tm list --search groceries    # Titles containing "groceries"
  tm list --tab today report    # Due today and containing "report"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewListCommand(r.app, listOpts).Execute(ctx, args)
			})
		},
	}
	listCmd.Flags().StringVarP(&listOpts.Tab, "tab", "t", "", "Tab to show: all, today, upcoming, completed")
	listCmd.Flags().StringVarP(&listOpts.Search, "search", "s", "", "Only tasks whose title contains this text")

	// Add command
	var addOpts AddOptions
	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Long: `Add a task at the top of the list.

Unset fields take their defaults: medium priority, due today, the personal
category. A blank title is ignored.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewAddCommand(r.app, addOpts).Execute(ctx, args)
			})
		},
	}
	addCmd.Flags().StringVarP(&addOpts.Priority, "priority", "p", "", "Priority: low, medium, high")
	addCmd.Flags().StringVarP(&addOpts.DueDate, "due", "d", "", "Due date as YYYY-MM-DD")
	addCmd.Flags().StringVarP(&addOpts.Category, "category", "c", "", "Category label")
	addCmd.Flags().StringVar(&addOpts.Description, "description", "", "Longer description")

	// Show command
	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewShowCommand(r.app).Execute(ctx, args)
			})
		},
	}

	// Edit command
	editCmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a task",
		Long: `Change fields of a task in place. Only the flags given are changed.

Example:
  tm edit 1 --priority low --due 2023-06-30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := EditOptions{
				Title:       changedString(cmd, "title"),
				Priority:    changedString(cmd, "priority"),
				DueDate:     changedString(cmd, "due"),
				Category:    changedString(cmd, "category"),
				Description: changedString(cmd, "description"),
				Completed:   changedBool(cmd, "completed"),
			}
			return r.run(cmd, func(ctx context.Context) error {
				return NewEditCommand(r.app, opts).Execute(ctx, args)
			})
		},
	}
	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().StringP("priority", "p", "", "New priority: low, medium, high")
	editCmd.Flags().StringP("due", "d", "", "New due date as YYYY-MM-DD")
	editCmd.Flags().StringP("category", "c", "", "New category label")
	editCmd.Flags().String("description", "", "New description")
	editCmd.Flags().Bool("completed", false, "Mark completed (or --completed=false to reopen)")

	// Toggle command
	toggleCmd := &cobra.Command{
		Use:   "toggle [id]",
		Short: "Complete or reopen a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewToggleCommand(r.app).Execute(ctx, args)
			})
		},
	}

	// Delete command
	var deleteOpts DeleteOptions
	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Long:  "Delete a task. You are asked to confirm unless --yes is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewDeleteCommand(r.app, deleteOpts).Execute(ctx, args)
			})
		},
	}
	deleteCmd.Flags().BoolVarP(&deleteOpts.Yes, "yes", "y", false, "Delete without asking")

	// Stats command
	var statsOpts StatsOptions
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Long: `Show completion statistics: overall, by priority, by category, for the
current week and for one month.

Examples:
  tm stats                      # Current month
  tm stats --month 2023-06      # June 2023
  tm stats --format yaml        # Machine-readable output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewStatsCommand(r.app, statsOpts).Execute(ctx, args)
			})
		},
	}
	statsCmd.Flags().StringVarP(&statsOpts.Month, "month", "m", "", "Month as YYYY-MM (default: current month)")
	statsCmd.Flags().StringVarP(&statsOpts.Format, "format", "f", "text", "Output format: text, json, yaml")

	// Settings command
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
		Long: `Show the session preferences. Flags change them for this session only.

Example:
  tm settings --theme dark --sound-effects=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := SettingsOptions{
				Theme:              changedString(cmd, "theme"),
				Notifications:      changedBool(cmd, "notifications"),
				EmailNotifications: changedBool(cmd, "email-notifications"),
				SoundEffects:       changedBool(cmd, "sound-effects"),
			}
			return r.run(cmd, func(ctx context.Context) error {
				return NewSettingsCommand(r.app, opts).Execute(ctx, args)
			})
		},
	}
	settingsCmd.Flags().String("theme", "", "Theme: light, dark")
	settingsCmd.Flags().Bool("notifications", false, "Enable reminders")
	settingsCmd.Flags().Bool("email-notifications", false, "Enable email notifications")
	settingsCmd.Flags().Bool("sound-effects", false, "Enable sound effects")

	// Export command
	var exportOpts ExportOptions
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks",
		Long: `Write every task to standard output.

Supported formats:
  csv   id,title,completed,priority,due_date,category,description
  json  an array of task objects
  yaml  a list of task mappings

Example:
  tm export --format csv > tasks.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewExportCommand(r.app, exportOpts).Execute(ctx, args)
			})
		},
	}
	exportCmd.Flags().StringVarP(&exportOpts.Format, "format", "f", "", "Export format: csv, json, yaml (default from TM_EXPORT_DEFAULT_FORMAT)")

	// TUI command
	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive UI",
		Long: `Open the interactive UI.

Keys:
  tab        next filter tab        /      search
  a          add a task             space  complete or reopen
  d          delete (asks y/n)      enter  task details
  1-4        home, statistics, categories, settings
  q          quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runTUI(cmd.Context(), r.app)
		},
	}

	// Add all subcommands to root
	r.cmd.AddCommand(
		listCmd,
		addCmd,
		showCmd,
		editCmd,
		toggleCmd,
		deleteCmd,
		statsCmd,
		r.categoriesCommand(),
		settingsCmd,
		exportCmd,
		tuiCmd,
	)
}

// categoriesCommand builds the categories command and its subcommands
func (r *RootCommand) categoriesCommand() *cobra.Command {
	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewCategoriesCommand(r.app, CategoryOptions{}).List(ctx, args)
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories with their progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewCategoriesCommand(r.app, CategoryOptions{}).List(ctx, args)
			})
		},
	}

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := CategoryOptions{Color: changedString(cmd, "color")}
			return r.run(cmd, func(ctx context.Context) error {
				return NewCategoriesCommand(r.app, opts).Add(ctx, args)
			})
		},
	}
	addCmd.Flags().String("color", "", "Color: blue, green, yellow, red, purple (default: blue)")

	editCmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Rename or recolor a category",
		Long:  "Rename or recolor a category. Tasks keep their category label, so a rename leaves them under the old name.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := CategoryOptions{
				Name:  changedString(cmd, "name"),
				Color: changedString(cmd, "color"),
			}
			return r.run(cmd, func(ctx context.Context) error {
				return NewCategoriesCommand(r.app, opts).Edit(ctx, args)
			})
		},
	}
	editCmd.Flags().String("name", "", "New name")
	editCmd.Flags().String("color", "", "New color")

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context) error {
				return NewCategoriesCommand(r.app, CategoryOptions{}).Delete(ctx, args)
			})
		},
	}

	categoriesCmd.AddCommand(listCmd, addCmd, editCmd, deleteCmd)
	return categoriesCmd
}

// changedString returns the flag value when it was set on the command line
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// changedBool returns the flag value when it was set on the command line
func changedBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	r.config.ApplyOverrides(r.overridesFromFlags())
	return nil
}

// overridesFromFlags collects the global flags that were set on the command line
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	num := func(name string) *int {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetInt(name)
		return &v
	}
	dur := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}

	overrides := &config.ConfigOverrides{
		// Store configuration
		StoreDSN:     str("store-dsn"),
		QueryTimeout: dur("store-query-timeout"),
		WriteTimeout: dur("store-write-timeout"),
		SeedFile:     str("seed-file"),

		// Time configuration
		Timezone:   str("timezone"),
		DateFormat: str("date-format"),

		// Validation configuration
		TitleMinLength: num("title-min-length"),
		TitleMaxLength: num("title-max-length"),

		// Display configuration
		DefaultTab: str("default-tab"),
		ListWidth:  num("list-width"),

		// Application configuration
		Timeout:   dur("app-timeout"),
		LogLevel:  str("log-level"),
		LogFormat: str("log-format"),

		// Commands configuration
		ExportDefaultFormat: str("export-format"),
	}
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		overrides.Verbose = &verbose
	}
	return overrides
}

// runTerminalUI opens the interactive UI over the session. Logs are
// discarded while it owns the screen.
func runTerminalUI(ctx context.Context, app *App) error {
	logging.ConfigureFromStrings(io.Discard, app.config.Application.LogLevel, app.config.Application.LogFormat)
	defer logging.ConfigureFromStrings(os.Stderr, app.config.Application.LogLevel, app.config.Application.LogFormat)

	return tui.Run(ctx, app.businessAPI, app.config)
}
