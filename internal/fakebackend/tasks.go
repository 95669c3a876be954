package fakebackend

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"taskflow/internal/domain"
)

// taskPatch is the PUT body; absent fields keep their stored value
type taskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	owner := userIDFrom(r.Context())

	s.mu.Lock()
	tasks := append([]domain.Task{}, s.tasks[owner]...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var input domain.TaskInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if strings.TrimSpace(input.Title) == "" {
		writeMessage(w, http.StatusBadRequest, "Title is required")
		return
	}

	priority := domain.DefaultPriority
	if input.Priority != "" {
		p, ok := domain.ParsePriority(string(input.Priority))
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Priority must be low, medium or high")
			return
		}
		priority = p
	}

	task := domain.Task{
		ID:          s.newID(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Priority:    priority,
		CreatedAt:   s.now().UTC().Truncate(timeResolution),
	}

	owner := userIDFrom(r.Context())
	s.mu.Lock()
	s.tasks[owner] = append([]domain.Task{task}, s.tasks[owner]...)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var patch taskPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		writeMessage(w, http.StatusBadRequest, "Title is required")
		return
	}
	var priority domain.Priority
	if patch.Priority != nil {
		p, ok := domain.ParsePriority(*patch.Priority)
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Priority must be low, medium or high")
			return
		}
		priority = p
	}

	owner := userIDFrom(r.Context())
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.tasks[owner], id)
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Task not found")
		return
	}

	task := s.tasks[owner][i]
	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = priority
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	s.tasks[owner][i] = task

	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	owner := userIDFrom(r.Context())
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.tasks[owner], id)
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Task not found")
		return
	}
	s.tasks[owner] = append(s.tasks[owner][:i:i], s.tasks[owner][i+1:]...)

	writeMessage(w, http.StatusOK, "Task deleted")
}

func indexOf(tasks []domain.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
