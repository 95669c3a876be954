package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"taskflow/internal/config"
)

// AppBuilder creates the application once flags and environment are resolved
type AppBuilder func(cfg *config.Config) (*App, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	build  AppBuilder
	config *config.Config
	app    *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(build AppBuilder) *RootCommand {
	root := &RootCommand{
		build: build,
	}

	root.cmd = &cobra.Command{
		Use:   "taskflow",
		Short: "A command-line client for the TaskFlow task backend",
		Long: `TaskFlow (taskflow) is a command-line client for a TaskFlow task backend.

FEATURES:
  • Register, log in and stay logged in between runs
  • Create, edit, complete and delete tasks
  • Filter by status, search by text and sort the task list
  • Show a summary of completion and priorities

EXAMPLES:
  taskflow register alice alice@example.com     # Create an account (prompts for a password)
  taskflow login alice                          # Log in with a username or an email
  taskflow add "Write report" -p high           # Create a task
  taskflow list --filter pending --sort title   # Pending tasks, alphabetically
  taskflow toggle <id>                          # Mark a task completed (or pending again)
  taskflow edit <id> --title "Write the report" # Change a task
  taskflow delete <id>                          # Delete a task
  taskflow stats                                # Summary of all tasks

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

    TASKFLOW_API_URL                  Backend base URL (default: ` + config.DefaultAPIURL + `)
    TASKFLOW_SESSION_DIR              Session directory (default: ~/.taskflow)
    TASKFLOW_SESSION_FILENAME         Session database filename (default: session.db)
    TASKFLOW_DATE_FORMAT              Date layout for task lists (default: 2006-01-02)
    TASKFLOW_DEFAULT_FILTER           Filter used by list (default: all)
    TASKFLOW_APP_TIMEOUT              Timeout for each command (default: 60s)
    TASKFLOW_APP_VERBOSE              Log informational messages (default: false)
    TASKFLOW_METRICS_FILE             Write request metrics to this file after each command
    TASKFLOW_DEBUG                    Print debug output

GETTING HELP:
  taskflow [command] --help                      # Get help for any specific command
  taskflow completion bash                       # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// Command exposes the underlying cobra command, e.g. to set arguments in tests
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command and releases the application afterwards
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if r.app != nil {
		if closeErr := r.app.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		r.app = nil
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("api-url", "", "Backend base URL (overrides TASKFLOW_API_URL)")
	flags.String("session-dir", "", "Session directory (overrides TASKFLOW_SESSION_DIR)")
	flags.String("session-file", "", "Session database filename (overrides TASKFLOW_SESSION_FILENAME)")
	flags.String("date-format", "", "Date layout for task lists (overrides TASKFLOW_DATE_FORMAT)")
	flags.String("default-filter", "", "Filter used by list (overrides TASKFLOW_DEFAULT_FILTER)")
	flags.Duration("app-timeout", 0, "Timeout for each command (overrides TASKFLOW_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Log informational messages (overrides TASKFLOW_APP_VERBOSE)")
	flags.String("metrics-file", "", "Write request metrics to this file (overrides TASKFLOW_METRICS_FILE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	var password string
	loginCmd := &cobra.Command{
		Use:   "login <username|email>",
		Short: "Log in and remember the session",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(app *App) Command {
			return NewLoginCommand(app, password)
		}),
	}
	loginCmd.Flags().StringVar(&password, "password", "", "Password (prompted for when omitted)")

	var registerPassword string
	registerCmd := &cobra.Command{
		Use:   "register <username> <email>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(2),
		RunE: r.run(func(app *App) Command {
			return NewRegisterCommand(app, registerPassword)
		}),
	}
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password of at least 6 characters (prompted for when omitted)")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Command { return NewLogoutCommand(app) }),
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Command { return NewWhoamiCommand(app) }),
	}

	var listOpts ListOptions
	listCmd := &cobra.Command{
		Use:   "list [text]",
		Short: "List tasks",
		Long: `List tasks, newest first.

Text arguments search titles and descriptions (case-insensitive).

Examples:
  taskflow list                          # All tasks
  taskflow list --filter completed       # Completed tasks only
  taskflow list report --priority high   # High priority tasks mentioning "report"
  taskflow list --sort priority          # High before medium before low`,
		RunE: r.run(func(app *App) Command { return NewListCommand(app, listOpts) }),
	}
	listCmd.Flags().StringVar(&listOpts.Filter, "filter", "", "Show all, pending or completed tasks (default from TASKFLOW_DEFAULT_FILTER)")
	listCmd.Flags().StringVar(&listOpts.Priority, "priority", "", "Only show tasks with this priority")
	listCmd.Flags().StringVar(&listOpts.Sort, "sort", "", "Sort by newest, oldest, title or priority")

	var addOpts AddOptions
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.run(func(app *App) Command { return NewAddCommand(app, addOpts) }),
	}
	addCmd.Flags().StringVarP(&addOpts.Description, "description", "d", "", "Task description")
	addCmd.Flags().StringVarP(&addOpts.Priority, "priority", "p", "", "low, medium or high (default medium)")

	var title, description, priority string
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title, description or priority of a task",
		Args:  cobra.ExactArgs(1),
	}
	editCmd.Flags().StringVar(&title, "title", "", "New title")
	editCmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	editCmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority")
	editCmd.RunE = r.run(func(app *App) Command {
		var opts EditOptions
		flags := editCmd.Flags()
		if flags.Changed("title") {
			opts.Title = &title
		}
		if flags.Changed("description") {
			opts.Description = &description
		}
		if flags.Changed("priority") {
			opts.Priority = &priority
		}
		return NewEditCommand(app, opts)
	})

	toggleCmd := &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Mark a task completed, or pending again",
		Args:    cobra.ExactArgs(1),
		RunE:    r.run(func(app *App) Command { return NewToggleCommand(app) }),
	}

	deleteCmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Long:    "Delete a task. This operation cannot be undone and there is no confirmation.",
		Args:    cobra.ExactArgs(1),
		RunE:    r.run(func(app *App) Command { return NewDeleteCommand(app) }),
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a summary of all tasks",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Command { return NewStatsCommand(app) }),
	}

	// Add all subcommands to root
	r.cmd.AddCommand(
		loginCmd,
		registerCmd,
		logoutCmd,
		whoamiCmd,
		listCmd,
		addCmd,
		editCmd,
		toggleCmd,
		deleteCmd,
		statsCmd,
	)
}

// run adapts a command handler to cobra: it resolves the configuration, builds the
// application on first use and bounds the handler with the application timeout
func (r *RootCommand) run(handler func(app *App) Command) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := r.ensureApp()
		if err != nil {
			return NewErrorHandler().HandleSimple(err)
		}
		app.SetIO(cmd.InOrStdin(), cmd.OutOrStdout())

		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()

		return handler(app).Execute(ctx, args)
	}
}

func (r *RootCommand) ensureApp() (*App, error) {
	if r.app != nil {
		return r.app, nil
	}

	cfg, err := config.NewLoader().LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		return nil, err
	}
	r.config = cfg

	app, err := r.build(cfg)
	if err != nil {
		return nil, err
	}
	r.app = app
	return app, nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// getOverridesFromFlags collects the global flags that were set explicitly
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("api-url") {
		v, _ := flags.GetString("api-url")
		overrides.APIURL = &v
	}
	if flags.Changed("session-dir") {
		v, _ := flags.GetString("session-dir")
		overrides.SessionDir = &v
	}
	if flags.Changed("session-file") {
		v, _ := flags.GetString("session-file")
		overrides.SessionFilename = &v
	}
	if flags.Changed("date-format") {
		v, _ := flags.GetString("date-format")
		overrides.DateFormat = &v
	}
	if flags.Changed("default-filter") {
		v, _ := flags.GetString("default-filter")
		overrides.DefaultFilter = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	if flags.Changed("metrics-file") {
		v, _ := flags.GetString("metrics-file")
		overrides.MetricsFile = &v
	}

	return overrides
}
