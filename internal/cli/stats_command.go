package cli

import (
	"context"
	"fmt"
	"strings"

	"taskflow/internal/domain"
)

// summaryWidth is the width of the separator line under the stats heading
const summaryWidth = 40

// StatsCommand handles the stats command
type StatsCommand struct {
	app *App
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{app: app}
}

// Execute prints counts, the priority breakdown and the completion rate
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	if _, err := c.app.requireUser(ctx); err != nil {
		return NewErrorHandler().HandleSimple(err)
	}

	d, err := c.app.openDashboard(ctx, true)
	if err != nil {
		return err
	}

	out := c.app.out
	stats := c.app.services.ReportingService.Summarize(d.Tasks())

	fmt.Fprintln(out, "Task summary")
	fmt.Fprintln(out, strings.Repeat("=", summaryWidth))
	if stats.Counts.Total == 0 {
		fmt.Fprintln(out, domain.FilterAll.EmptyMessage())
		return nil
	}

	fmt.Fprintf(out, "Total:           %d\n", stats.Counts.Total)
	fmt.Fprintf(out, "Completed:       %d\n", stats.Counts.Completed)
	fmt.Fprintf(out, "Pending:         %d\n", stats.Counts.Pending)
	fmt.Fprintf(out, "Completion rate: %.1f%%\n", stats.CompletionRate)
	fmt.Fprintln(out, strings.Repeat("-", summaryWidth))
	for _, p := range domain.Priorities {
		fmt.Fprintf(out, "%-16s %d\n", capitalize(p.String())+":", stats.ByPriority[p])
	}
	fmt.Fprintf(out, "Pending high:    %d\n", stats.PendingHigh)
	if stats.OldestPending != nil {
		fmt.Fprintf(out, "Oldest pending:  %s (%s)\n", stats.OldestPending.Title, c.app.formatDate(*stats.OldestPending))
	}
	if stats.NewestTask != nil {
		fmt.Fprintf(out, "Newest task:     %s (%s)\n", stats.NewestTask.Title, c.app.formatDate(*stats.NewestTask))
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
