package cli

import (
	"context"
	"fmt"

	"taskflow/internal/components"
	"taskflow/internal/domain"
	"taskflow/internal/errors"
)

// EditOptions holds the fields to change; nil leaves a field as it is
type EditOptions struct {
	Title       *string
	Description *string
	Priority    *string
}

// EditCommand handles the edit command
type EditCommand struct {
	app  *App
	opts EditOptions
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App, opts EditOptions) *EditCommand {
	return &EditCommand{app: app, opts: opts}
}

// Execute opens the task card in edit mode, applies the changes and saves
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
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

	card := components.NewTaskCard(task)
	if err := card.Edit(); err != nil {
		return err
	}
	if err := c.apply(card); err != nil {
		return err
	}

	intent, err := card.Save()
	if err != nil {
		return err
	}
	if err := d.Dispatch(ctx, intent); err != nil {
		return bannerError(d.Error(), err)
	}

	updated, err := findTask(d, task.ID)
	if err != nil {
		return err
	}
	card.Refresh(updated)
	fmt.Fprintf(c.app.out, "Updated task %s: %s (%s)\n", updated.ID, updated.Title, updated.Priority)
	return nil
}

func (c *EditCommand) apply(card *components.TaskCard) error {
	if c.opts.Title != nil {
		if err := card.SetTitle(*c.opts.Title); err != nil {
			return err
		}
	}
	if c.opts.Description != nil {
		if err := card.SetDescription(*c.opts.Description); err != nil {
			return err
		}
	}
	if c.opts.Priority != nil {
		priority, ok := domain.ParsePriority(*c.opts.Priority)
		if !ok {
			return errors.NewInvalidInputError("priority", *c.opts.Priority, "must be low, medium or high")
		}
		if err := card.SetPriority(priority); err != nil {
			return err
		}
	}
	return nil
}
