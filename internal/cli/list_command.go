package cli

import (
	"context"
	"fmt"
	"strings"

	"taskflow/internal/domain"
	"taskflow/internal/errors"
	"taskflow/internal/services"
)

// ListOptions are the flag values of the list command
type ListOptions struct {
	Filter   string
	Priority string
	Sort     string
}

// ListCommand handles the list command
type ListCommand struct {
	app  *App
	opts ListOptions
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App, opts ListOptions) *ListCommand {
	return &ListCommand{app: app, opts: opts}
}

// Execute runs the list command. Positional arguments are joined into a text search.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	user, err := c.app.requireUser(ctx)
	if err != nil {
		return NewErrorHandler().HandleSimple(err)
	}

	criteria, order, err := c.parseOptions(args)
	if err != nil {
		return err
	}

	d, err := c.app.openDashboard(ctx, true)
	if err != nil {
		return err
	}
	if c.opts.Filter != "" {
		d.SetFilter(criteria.Status)
	}

	fmt.Fprintf(c.app.out, "Welcome back, %s!\n", user.Username)
	counts := d.Counts()
	fmt.Fprintf(c.app.out, "%d tasks: %d completed, %d pending (showing %s)\n\n",
		counts.Total, counts.Completed, counts.Pending, d.Filter())

	visible := d.Visible()
	if len(visible) == 0 {
		fmt.Fprintln(c.app.out, d.EmptyMessage())
		return nil
	}

	criteria.Status = ""
	search := c.app.services.SearchService
	matches := search.SortTasks(search.SearchTasks(visible, criteria), order)
	if len(matches) == 0 {
		fmt.Fprintln(c.app.out, "No tasks match the search")
		return nil
	}

	for _, task := range matches {
		c.printTask(task)
	}
	return nil
}

func (c *ListCommand) parseOptions(args []string) (services.SearchCriteria, services.SortOrder, error) {
	criteria := services.SearchCriteria{TextFilter: strings.Join(args, " ")}

	if c.opts.Filter != "" {
		filter, ok := domain.ParseFilter(c.opts.Filter)
		if !ok {
			return criteria, "", errors.NewInvalidInputError("filter", c.opts.Filter, "must be all, pending or completed")
		}
		criteria.Status = filter
	}

	if c.opts.Priority != "" {
		priority, ok := domain.ParsePriority(c.opts.Priority)
		if !ok {
			return criteria, "", errors.NewInvalidInputError("priority", c.opts.Priority, "must be low, medium or high")
		}
		criteria.Priority = priority
	}

	order, ok := services.ParseSortOrder(c.opts.Sort)
	if !ok {
		return criteria, "", errors.NewInvalidInputError("sort", c.opts.Sort, "must be newest, oldest, title or priority")
	}
	return criteria, order, nil
}

// printTask prints one task per line, with the description indented underneath:
// [x] id  title (priority) created
func (c *ListCommand) printTask(task domain.Task) {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	fmt.Fprintf(c.app.out, "[%s] %s  %s (%s) %s\n", mark, task.ID, task.Title, task.Priority, c.app.formatDate(task))
	if task.Description != "" {
		fmt.Fprintf(c.app.out, "      %s\n", task.Description)
	}
}
