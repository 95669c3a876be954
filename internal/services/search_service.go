package services

import (
	"sort"
	"strings"

	"taskflow/internal/domain"
)

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct{}

// NewSearchService creates a new SearchService instance
func NewSearchService() SearchService {
	return &searchServiceImpl{}
}

// matchesTextFilter checks title and description for a case-insensitive substring
func (s *searchServiceImpl) matchesTextFilter(task domain.Task, textFilter string) bool {
	if textFilter == "" {
		return true
	}
	needle := strings.ToLower(textFilter)
	return strings.Contains(strings.ToLower(task.Title), needle) ||
		strings.Contains(strings.ToLower(task.Description), needle)
}

// SearchTasks returns the tasks matching every criterion, in their original order
func (s *searchServiceImpl) SearchTasks(tasks []domain.Task, criteria SearchCriteria) []domain.Task {
	text := strings.TrimSpace(criteria.TextFilter)

	results := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if !criteria.Status.Matches(task) {
			continue
		}
		if criteria.Priority != "" && task.Priority != criteria.Priority {
			continue
		}
		if !s.matchesTextFilter(task, text) {
			continue
		}
		results = append(results, task)
	}
	return results
}

// SortTasks returns a sorted copy; ties keep their original relative order
func (s *searchServiceImpl) SortTasks(tasks []domain.Task, order SortOrder) []domain.Task {
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)

	switch order {
	case SortByOldestFirst:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})
	case SortByTitle:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
		})
	case SortByPriority:
		sort.SliceStable(sorted, func(i, j int) bool {
			return priorityRank(sorted[i].Priority) > priorityRank(sorted[j].Priority)
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}
	return sorted
}

func priorityRank(p domain.Priority) int {
	for i, candidate := range domain.Priorities {
		if candidate == p {
			return i + 1
		}
	}
	return 0
}
