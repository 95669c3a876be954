package cli

import (
	"context"
	"fmt"

	"taskflow/internal/components"
	"taskflow/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute runs the delete command. There is no confirmation step.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
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

	if err := d.Dispatch(ctx, components.NewTaskCard(task).Delete()); err != nil {
		return bannerError(d.Error(), err)
	}

	fmt.Fprintf(c.app.out, "Deleted task: %s\n", task.Title)
	return nil
}
