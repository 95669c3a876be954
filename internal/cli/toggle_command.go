package cli

import (
	"context"
	"fmt"

	"taskflow/internal/components"
	"taskflow/internal/errors"
)

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	app *App
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{app: app}
}

// Execute flips the completion flag of one task
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("arguments", len(args), "exactly one task id is required")
	}
	if _, err := c.app.requireUser(ctx); err != nil {
		return NewErrorHandler().HandleSimple(err)
	}

	d, err := c.app.openDashboard(ctx, true)
	if err != nil {
		return err
	}
	task, err := findTask(d, args[0])
	if err != nil {
		return NewErrorHandler().HandleSimple(err)
	}

	if err := d.Dispatch(ctx, components.NewTaskCard(task).ToggleComplete()); err != nil {
		return bannerError(d.Error(), err)
	}

	updated, err := findTask(d, task.ID)
	if err != nil {
		return err
	}
	state := "pending"
	if updated.Completed {
		state = "completed"
	}
	fmt.Fprintf(c.app.out, "Marked %q as %s\n", updated.Title, state)
	return nil
}
