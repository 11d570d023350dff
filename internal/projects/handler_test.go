package projects_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/projects"
	"github.com/taskforge/taskforge/internal/subtasks"
	"github.com/taskforge/taskforge/internal/token"
)

type mockRepository struct {
	projects      map[int64]*projects.Project
	subtasks      map[int64][]subtasks.Subtask
	nextID        int64
	nextSubtaskID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		projects:      make(map[int64]*projects.Project),
		subtasks:      make(map[int64][]subtasks.Subtask),
		nextID:        1,
		nextSubtaskID: 1,
	}
}

func (m *mockRepository) storeSubtasks(projectID int64, subs []subtasks.Subtask) {
	stored := make([]subtasks.Subtask, 0, len(subs))
	for _, st := range subs {
		st.ID = m.nextSubtaskID
		m.nextSubtaskID++
		st.ProjectID = projectID
		stored = append(stored, st)
	}
	m.subtasks[projectID] = stored
}

func (m *mockRepository) Create(_ context.Context, p projects.Project, subs []subtasks.Subtask) (int64, error) {
	p.ID = m.nextID
	m.nextID++
	m.projects[p.ID] = &p
	m.storeSubtasks(p.ID, subs)
	return p.ID, nil
}

func (m *mockRepository) List(_ context.Context, userID int64) ([]projects.Project, error) {
	list := make([]projects.Project, 0)
	for _, p := range m.projects {
		if p.UserID != userID {
			continue
		}
		cp := *p
		cp.Subtasks = append([]subtasks.Subtask{}, m.subtasks[p.ID]...)
		list = append(list, cp)
	}
	return list, nil
}

func (m *mockRepository) Get(_ context.Context, id, userID int64) (*projects.Project, error) {
	p, ok := m.projects[id]
	if !ok || p.UserID != userID {
		return nil, projects.ErrNotFound
	}
	cp := *p
	cp.Subtasks = append([]subtasks.Subtask{}, m.subtasks[id]...)
	return &cp, nil
}

func (m *mockRepository) Update(_ context.Context, p projects.Project, subs []subtasks.Subtask) error {
	existing, ok := m.projects[p.ID]
	if !ok || existing.UserID != p.UserID {
		return projects.ErrNotFound
	}
	m.projects[p.ID] = &p
	m.storeSubtasks(p.ID, subs)
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id, userID int64) error {
	p, ok := m.projects[id]
	if !ok || p.UserID != userID {
		return projects.ErrNotFound
	}
	delete(m.subtasks, id)
	delete(m.projects, id)
	return nil
}

func newServer(t *testing.T, repo projects.Repository, owner token.Identity) http.Handler {
	t.Helper()
	handler := projects.NewHandler(slog.Default(), projects.NewService(repo))
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.ContextWithIdentity(req.Context(), owner)))
		})
	})
	r.Route("/projects", handler.MountRoutes)
	return r
}

func do(server http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	res := httptest.NewRecorder()
	server.ServeHTTP(res, req)
	return res
}

func TestCreateRequiresTitle(t *testing.T) {
	server := newServer(t, newMockRepository(), token.Identity{ID: 1})

	res := do(server, http.MethodPost, "/projects", `{"description":"untitled"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "Title is required")
}

func TestCreateReadBackRoundTrip(t *testing.T) {
	server := newServer(t, newMockRepository(), token.Identity{ID: 1})

	res := do(server, http.MethodPost, "/projects",
		`{"title":"T","subtasks":[{"task":"s1"},{"task":"s2","completed":true}]}`)
	require.Equal(t, http.StatusCreated, res.Code)

	var created projects.CreateResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.InsertedID)

	getRes := do(server, http.MethodGet, "/projects/1", "")
	require.Equal(t, http.StatusOK, getRes.Code)

	var p projects.Project
	require.NoError(t, json.Unmarshal(getRes.Body.Bytes(), &p))
	require.Len(t, p.Subtasks, 2)
	assert.Equal(t, "s1", p.Subtasks[0].Task)
	assert.Equal(t, "s2", p.Subtasks[1].Task)
	// Submitted completed flags are ignored on create; subtasks start fresh.
	assert.False(t, p.Subtasks[0].Completed)
	assert.False(t, p.Subtasks[1].Completed)
}

func TestListIncludesSubtasks(t *testing.T) {
	server := newServer(t, newMockRepository(), token.Identity{ID: 1})

	require.Equal(t, http.StatusCreated,
		do(server, http.MethodPost, "/projects", `{"title":"T","subtasks":[{"task":"s1"}]}`).Code)

	res := do(server, http.MethodGet, "/projects", "")
	require.Equal(t, http.StatusOK, res.Code)

	var list []projects.Project
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Len(t, list[0].Subtasks, 1)
	assert.Equal(t, "s1", list[0].Subtasks[0].Task)
}

func TestUpdateReplacesSubtaskSet(t *testing.T) {
	repo := newMockRepository()
	server := newServer(t, repo, token.Identity{ID: 1})

	require.Equal(t, http.StatusCreated,
		do(server, http.MethodPost, "/projects", `{"title":"T","subtasks":[{"task":"old-1"},{"task":"old-2"}]}`).Code)

	res := do(server, http.MethodPut, "/projects/1",
		`{"title":"T2","subtasks":[{"task":"new","completed":true}]}`)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"updated":true`)

	getRes := do(server, http.MethodGet, "/projects/1", "")
	require.Equal(t, http.StatusOK, getRes.Code)

	var p projects.Project
	require.NoError(t, json.Unmarshal(getRes.Body.Bytes(), &p))
	assert.Equal(t, "T2", p.Title)
	// Replace, not merge: only the submitted subtask survives, and its
	// completed flag is honored on update.
	require.Len(t, p.Subtasks, 1)
	assert.Equal(t, "new", p.Subtasks[0].Task)
	assert.True(t, p.Subtasks[0].Completed)
}

func TestUpdateNotFound(t *testing.T) {
	server := newServer(t, newMockRepository(), token.Identity{ID: 1})

	res := do(server, http.MethodPut, "/projects/9", `{"title":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Contains(t, res.Body.String(), "Project not found or no changes made")
}

func TestDeleteCascades(t *testing.T) {
	repo := newMockRepository()
	server := newServer(t, repo, token.Identity{ID: 1})

	require.Equal(t, http.StatusCreated,
		do(server, http.MethodPost, "/projects", `{"title":"T","subtasks":[{"task":"s1"}]}`).Code)

	res := do(server, http.MethodDelete, "/projects/1", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"deleted":true`)
	assert.Empty(t, repo.subtasks[1])

	assert.Equal(t, http.StatusNotFound, do(server, http.MethodDelete, "/projects/1", "").Code)
}

func TestOwnershipIsolation(t *testing.T) {
	repo := newMockRepository()
	ownerA := newServer(t, repo, token.Identity{ID: 1})
	ownerB := newServer(t, repo, token.Identity{ID: 2})

	require.Equal(t, http.StatusCreated,
		do(ownerA, http.MethodPost, "/projects", `{"title":"mine"}`).Code)

	assert.Equal(t, http.StatusNotFound, do(ownerB, http.MethodGet, "/projects/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(ownerB, http.MethodDelete, "/projects/1", "").Code)

	listRes := do(ownerB, http.MethodGet, "/projects", "")
	require.Equal(t, http.StatusOK, listRes.Code)
	assert.Equal(t, "[]", strings.TrimSpace(listRes.Body.String()))
}
