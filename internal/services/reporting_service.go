package services

import (
	"math"

	"taskflow/internal/domain"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct{}

// NewReportingService creates a new ReportingService instance
func NewReportingService() ReportingService {
	return &reportingServiceImpl{}
}

// Summarize derives counts, the priority breakdown and the completion rate.
// Nothing is stored; every call recomputes from the list it is given.
func (r *reportingServiceImpl) Summarize(tasks []domain.Task) *TaskStatistics {
	stats := &TaskStatistics{
		Counts:     domain.CountTasks(tasks),
		ByPriority: make(map[domain.Priority]int, len(domain.Priorities)),
	}
	for _, p := range domain.Priorities {
		stats.ByPriority[p] = 0
	}

	for i := range tasks {
		task := tasks[i]
		stats.ByPriority[task.Priority]++

		if !task.Completed {
			if task.Priority == domain.PriorityHigh {
				stats.PendingHigh++
			}
			if stats.OldestPending == nil || task.CreatedAt.Before(stats.OldestPending.CreatedAt) {
				stats.OldestPending = &tasks[i]
			}
		}
		if stats.NewestTask == nil || task.CreatedAt.After(stats.NewestTask.CreatedAt) {
			stats.NewestTask = &tasks[i]
		}
		if stats.FirstCreated.IsZero() || task.CreatedAt.Before(stats.FirstCreated) {
			stats.FirstCreated = task.CreatedAt
		}
	}

	if stats.Counts.Total > 0 {
		rate := float64(stats.Counts.Completed) / float64(stats.Counts.Total) * 100
		stats.CompletionRate = math.Round(rate*10) / 10
	}
	return stats
}
