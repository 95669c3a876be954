package cli

import (
	"context"
	"fmt"
	"strings"

	"taskflow/internal/components"
	"taskflow/internal/domain"
	"taskflow/internal/errors"
)

// AddOptions are the flag values of the add command
type AddOptions struct {
	Description string
	Priority    string
}

// AddCommand handles the add command
type AddCommand struct {
	app  *App
	opts AddOptions
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App, opts AddOptions) *AddCommand {
	return &AddCommand{app: app, opts: opts}
}

// Execute fills a task form from the arguments and submits it to the dashboard
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if _, err := c.app.requireUser(ctx); err != nil {
		return NewErrorHandler().HandleSimple(err)
	}

	form := components.NewTaskForm()
	form.SetTitle(strings.Join(args, " "))
	form.SetDescription(c.opts.Description)
	if c.opts.Priority != "" {
		priority, ok := domain.ParsePriority(c.opts.Priority)
		if !ok {
			return errors.NewInvalidInputError("priority", c.opts.Priority, "must be low, medium or high")
		}
		form.SetPriority(priority)
	}

	intent, ok := form.Submit()
	if !ok {
		return errors.NewInvalidInputError("title", "", "title is required")
	}

	d, err := c.app.openDashboard(ctx, false)
	if err != nil {
		return err
	}
	d.OpenForm()
	if err := d.Dispatch(ctx, intent); err != nil {
		return bannerError(d.Error(), err)
	}

	created := d.Tasks()[0]
	fmt.Fprintf(c.app.out, "Created task %s: %s (%s)\n", created.ID, created.Title, created.Priority)
	return nil
}
