package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"taskflow/internal/api"
	"taskflow/internal/config"
	"taskflow/internal/dashboard"
	"taskflow/internal/domain"
	"taskflow/internal/errors"
	"taskflow/internal/httpclient"
	"taskflow/internal/logging"
	"taskflow/internal/metrics"
	"taskflow/internal/repository/sqlite"
	"taskflow/internal/services"
	"taskflow/internal/session"
)

// App represents the main CLI application
type App struct {
	tasks    api.TaskService
	services *services.ServiceContainer
	config   *config.Config
	logger   *logging.Logger
	registry *CommandRegistry
	gatherer prometheus.Gatherer
	repo     sqlite.Repository
	in       *bufio.Reader
	out      io.Writer
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(tasks api.TaskService, container *services.ServiceContainer, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		tasks:    tasks,
		services: container,
		config:   cfg,
		logger:   logging.Discard(),
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// NewAppFromConfig wires the production stack: the sqlite session store, the
// HTTP client reading the session token per request, and the services on top
func NewAppFromConfig(cfg *config.Config) (*App, error) {
	logger := logging.Default(cfg.Application.Verbose)

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, err
	}

	sess := session.New(repo)
	reg := prometheus.NewRegistry()

	client, err := httpclient.New(cfg.API.BaseURL,
		httpclient.WithTokenSource(sess),
		httpclient.WithLogger(logger),
		httpclient.WithMetrics(metrics.NewHTTPMetrics(reg)),
		httpclient.WithRequestIDs(func() string { return uuid.New().String() }),
	)
	if err != nil {
		repo.Close()
		return nil, err
	}

	apiInstance := api.New(client)
	container := &services.ServiceContainer{
		AuthService:      services.NewAuthService(apiInstance, sess, logger),
		SearchService:    services.NewSearchService(),
		ReportingService: services.NewReportingService(),
	}

	app := NewApp(apiInstance, container, cfg)
	app.logger = logger
	app.gatherer = reg
	app.repo = repo
	return app, nil
}

// SetIO redirects prompts and command output
func (a *App) SetIO(in io.Reader, out io.Writer) {
	a.in = bufio.NewReader(in)
	a.out = out
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}

	commandName := args[0]
	commandArgs := args[1:]

	return a.registry.Execute(ctx, commandName, commandArgs)
}

// Close exports the request metrics when a textfile is configured and closes the session store
func (a *App) Close() error {
	if path := a.config.Metrics.TextfilePath; path != "" && a.gatherer != nil {
		if err := metrics.WriteTextfile(path, a.gatherer); err != nil {
			a.logger.Warn("failed to write metrics textfile", logging.Fields{"path": path, "error": err})
		}
	}
	if a.repo != nil {
		return a.repo.Close()
	}
	return nil
}

// requireUser restores the persisted session and fails when nobody is logged in
func (a *App) requireUser(ctx context.Context) (*domain.User, error) {
	user, err := a.services.AuthService.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.NewAuthenticationError("not logged in; run 'taskflow login' first", nil)
	}
	return user, nil
}

// openDashboard returns a dashboard seeded with the configured default filter.
// The list is fetched unless load is false.
func (a *App) openDashboard(ctx context.Context, load bool) (*dashboard.Dashboard, error) {
	filter, ok := domain.ParseFilter(a.config.Display.DefaultFilter)
	if !ok {
		filter = domain.FilterAll
	}
	d := dashboard.New(a.tasks, dashboard.WithLogger(a.logger), dashboard.WithFilter(filter))
	if !load {
		return d, nil
	}
	if err := d.Load(ctx); err != nil {
		return d, bannerError(d.Error(), err)
	}
	return d, nil
}

// findTask looks a task up in the loaded list by id
func findTask(d *dashboard.Dashboard, id string) (domain.Task, error) {
	for _, task := range d.Tasks() {
		if task.ID == id {
			return task, nil
		}
	}
	return domain.Task{}, errors.NewNotFoundError("task", id)
}

// prompt writes label and reads one line of input
func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// formatDate renders a creation time with the configured layout
func (a *App) formatDate(t domain.Task) string {
	if t.CreatedAt.IsZero() {
		return "-"
	}
	return t.CreatedAt.Local().Format(a.config.Display.DateFormat)
}
