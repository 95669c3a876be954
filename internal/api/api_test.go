package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskflow/internal/components"
	"taskflow/internal/domain"
	"taskflow/internal/errors"
	"taskflow/internal/fakebackend"
	"taskflow/internal/httpclient"
	"taskflow/internal/validation"
)

type testEnv struct {
	api     API
	backend *fakebackend.Server
	token   string
}

func setupTestAPI(t *testing.T) *testEnv {
	t.Helper()
	seq := 0
	backend := fakebackend.New(
		fakebackend.WithBcryptCost(bcrypt.MinCost),
		fakebackend.WithIDs(func() string { seq++; return "task-" + strconv.Itoa(seq) }),
	)
	server := httptest.NewServer(backend.Handler())
	t.Cleanup(server.Close)

	env := &testEnv{backend: backend}
	client, err := httpclient.New(server.URL,
		httpclient.WithTokenSource(httpclient.TokenFunc(func() string { return env.token })),
	)
	require.NoError(t, err)
	env.api = New(client)
	return env
}

func (e *testEnv) register(t *testing.T) *domain.AuthResponse {
	t.Helper()
	resp, err := e.api.Register(context.Background(), domain.Profile{
		Username: "alice", Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	e.token = resp.Token
	return resp
}

func TestAPI_Auth(t *testing.T) {
	env := setupTestAPI(t)
	ctx := context.Background()

	registered := env.register(t)
	assert.Equal(t, "alice", registered.User.Username)
	assert.NotEmpty(t, registered.Token)

	loggedIn, err := env.api.Login(ctx, domain.Credentials{Identifier: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.User, loggedIn.User)

	me, err := env.api.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, registered.User, *me)
}

func TestAPI_RegisterSurfacesBackendMessage(t *testing.T) {
	env := setupTestAPI(t)
	env.register(t)

	_, err := env.api.Register(context.Background(), domain.Profile{
		Username: "alice", Email: "alice@example.com", Password: "secret1",
	})

	require.Error(t, err)
	msg, ok := httpclient.BackendMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "User already exists", msg)
}

func TestAPI_LoginFailure(t *testing.T) {
	env := setupTestAPI(t)
	env.register(t)

	resp, err := env.api.Login(context.Background(), domain.Credentials{Identifier: "alice", Password: "wrong"})

	assert.Nil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, httpclient.StatusOf(err))
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeAuthentication))
}

func TestAPI_MeWithoutTokenIsUnauthorized(t *testing.T) {
	env := setupTestAPI(t)

	_, err := env.api.Me(context.Background())

	assert.Equal(t, http.StatusUnauthorized, httpclient.StatusOf(err))
}

func TestAPI_CRUD_Task(t *testing.T) {
	env := setupTestAPI(t)
	auth := env.register(t)
	ctx := context.Background()

	// List on an empty account
	tasks, err := env.api.ListTasks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)

	// Create
	task, err := env.api.CreateTask(ctx, domain.TaskInput{Title: "  Test Task ", Priority: domain.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, "Test Task", task.Title)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.False(t, task.Completed)

	// Update
	changed := task.WithCompleted(true)
	changed.Title = "Updated Task"
	updated, err := env.api.UpdateTask(ctx, task.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, changed, *updated)

	// List
	tasks, err = env.api.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{*updated}, tasks)

	// Delete
	require.NoError(t, env.api.DeleteTask(ctx, task.ID))
	assert.Equal(t, 0, env.backend.TaskCount(auth.User.ID))

	err = env.api.DeleteTask(ctx, task.ID)
	assert.Equal(t, http.StatusNotFound, httpclient.StatusOf(err))
}

func TestAPI_UpdateTaskClearsDescription(t *testing.T) {
	env := setupTestAPI(t)
	env.register(t)
	ctx := context.Background()

	task, err := env.api.CreateTask(ctx, domain.TaskInput{Title: "a", Description: "old"})
	require.NoError(t, err)

	card := components.NewTaskCard(*task)
	require.NoError(t, card.Edit())
	require.NoError(t, card.SetDescription(""))
	intent, err := card.Save()
	require.NoError(t, err)
	update := intent.(components.UpdateIntent)

	updated, err := env.api.UpdateTask(ctx, update.ID, update.Task)
	require.NoError(t, err)
	assert.Equal(t, "", updated.Description)

	tasks, err := env.api.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "", tasks[0].Description)
}

func TestAPI_LongTitlesAreLeftToTheBackend(t *testing.T) {
	env := setupTestAPI(t)
	env.register(t)
	ctx := context.Background()
	long := strings.Repeat("a", 250)

	task, err := env.api.CreateTask(ctx, domain.TaskInput{Title: long, Description: strings.Repeat("d", 3000)})
	require.NoError(t, err)
	assert.Equal(t, long, task.Title)

	updated, err := env.api.UpdateTask(ctx, task.ID, task.WithCompleted(true))
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, long, updated.Title)
}

func TestAPI_CreateTaskBlankTitleNeverSent(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client, err := httpclient.New(server.URL)
	require.NoError(t, err)
	a := New(client)

	for _, title := range []string{"", "   ", "\t\n"} {
		task, err := a.CreateTask(context.Background(), domain.TaskInput{Title: title})
		assert.Nil(t, task)
		assert.True(t, validation.IsValidationError(err))
	}
	assert.Equal(t, 0, calls)
}

func TestAPI_TaskIDIsPathEscaped(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"message":"Task deleted"}`))
	}))
	defer server.Close()

	client, err := httpclient.New(server.URL + "/api")
	require.NoError(t, err)

	require.NoError(t, New(client).DeleteTask(context.Background(), "a b?c"))
	assert.Equal(t, "/api/tasks/a%20b%3Fc", gotPath)
}

func TestAPI_CreateTaskServerError(t *testing.T) {
	env := setupTestAPI(t)
	env.register(t)
	env.backend.FailNext(http.MethodPost, "/tasks", http.StatusInternalServerError)

	task, err := env.api.CreateTask(context.Background(), domain.NewTaskInput("x"))

	assert.Nil(t, task)
	assert.Equal(t, http.StatusInternalServerError, httpclient.StatusOf(err))
}
