package weddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
	"vowboard.io/planner-gateway/app/domain/activitylog"
	"vowboard.io/planner-gateway/app/domain/auth"
	"vowboard.io/planner-gateway/app/domain/document"
	"vowboard.io/planner-gateway/app/domain/preference"
	"vowboard.io/planner-gateway/app/domain/profile"
	"vowboard.io/planner-gateway/app/domain/schema"
	"vowboard.io/planner-gateway/app/domain/task"
	"vowboard.io/planner-gateway/app/domain/taskgroup"
	"vowboard.io/planner-gateway/app/domain/wedding"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
	"vowboard.io/planner-gateway/app/infrastructure/supabase"
	"vowboard.io/planner-gateway/config/environment_variables"
	_ "vowboard.io/planner-gateway/docs"
)

type store struct {
	mu     sync.Mutex
	seq    int
	tasks  map[string]*task.Task
	groups map[string]*taskgroup.TaskGroup
	docs   map[string]*document.Document
	notes  map[string]string
	logs   []*activitylog.Entry
}

func newStore() *store {
	return &store{
		tasks:  map[string]*task.Task{},
		groups: map[string]*taskgroup.TaskGroup{},
		docs:   map[string]*document.Document{},
		notes:  map[string]string{},
	}
}

func (s *store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s%d", prefix, s.seq)
}

type weddingRepo struct{ s *store }

func (r weddingRepo) FindByClient(_ context.Context, clientID string) ([]*wedding.Wedding, error) {
	w, _ := r.FindByID(context.Background(), "w1")
	if w.ClientID != clientID {
		return nil, nil
	}
	return []*wedding.Wedding{w}, nil
}

func (r weddingRepo) FindByID(_ context.Context, id string) (*wedding.Wedding, error) {
	if id != "w1" {
		return nil, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	notes := r.s.notes[id]
	return &wedding.Wedding{ID: "w1", ClientID: "c1", Title: "Ana & Luis", Status: wedding.WeddingStatusPlanning, Notes: &notes}, nil
}

func (r weddingRepo) Create(_ context.Context, w *wedding.Wedding) (*wedding.Wedding, error) {
	return w, nil
}

func (r weddingRepo) Update(_ context.Context, id string, patch wedding.WeddingPatch) (*wedding.Wedding, error) {
	if patch.Notes != nil {
		r.s.mu.Lock()
		r.s.notes[id] = *patch.Notes
		r.s.mu.Unlock()
	}
	return r.FindByID(context.Background(), id)
}

func (r weddingRepo) Delete(context.Context, string) error { return nil }

type taskRepo struct{ s *store }

func (r taskRepo) FindByWedding(_ context.Context, weddingID string) ([]*task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*task.Task
	for _, t := range r.s.tasks {
		if t.WeddingID == weddingID {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

func (r taskRepo) FindByID(_ context.Context, _ string, id string) (*task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.tasks[id].Clone(), nil
}

func (r taskRepo) Create(_ context.Context, t *task.Task) (*task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.nextID("t")
	t.CreatedAt = time.Unix(int64(r.s.seq), 0)
	r.s.tasks[t.ID] = t.Clone()
	return t, nil
}

func (r taskRepo) Update(_ context.Context, _ string, id string, patch task.TaskPatch) (*task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, nil
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	return t.Clone(), nil
}

func (r taskRepo) UpdateOrder(_ context.Context, _ string, id string, order int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tasks[id].Order = &order
	return nil
}

func (r taskRepo) UpdateGroup(_ context.Context, _ string, id string, groupID *string) (*task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tasks[id].TaskGroupID = groupID
	return r.s.tasks[id].Clone(), nil
}

func (r taskRepo) Delete(_ context.Context, _ string, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.tasks, id)
	return nil
}

type groupRepo struct{ s *store }

func (r groupRepo) FindByWedding(context.Context, string) ([]*taskgroup.TaskGroup, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*taskgroup.TaskGroup
	for _, g := range r.s.groups {
		out = append(out, g.Clone())
	}
	return out, nil
}

func (r groupRepo) Create(_ context.Context, g *taskgroup.TaskGroup) (*taskgroup.TaskGroup, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g.ID = r.s.nextID("g")
	r.s.groups[g.ID] = g.Clone()
	return g, nil
}

func (r groupRepo) Rename(_ context.Context, _ string, id string, name string) (*taskgroup.TaskGroup, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.groups[id].Name = name
	return r.s.groups[id].Clone(), nil
}

func (r groupRepo) UpdateOrder(_ context.Context, _ string, id string, order int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.groups[id].Order = &order
	return nil
}

func (r groupRepo) Delete(_ context.Context, _ string, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.groups, id)
	return nil
}

type documentRepo struct{ s *store }

func (r documentRepo) FindByWedding(context.Context, string) ([]*document.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*document.Document
	for _, d := range r.s.docs {
		out = append(out, d.Clone())
	}
	return out, nil
}

func (r documentRepo) FindByID(_ context.Context, _ string, id string) (*document.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.docs[id].Clone(), nil
}

func (r documentRepo) Create(_ context.Context, d *document.Document) (*document.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d.ID = r.s.nextID("d")
	r.s.docs[d.ID] = d.Clone()
	return d, nil
}

func (r documentRepo) Update(_ context.Context, _ string, id string, _ document.DocumentPatch) (*document.Document, error) {
	return r.FindByID(context.Background(), "", id)
}

func (r documentRepo) UpdateOrder(_ context.Context, _ string, id string, order int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.docs[id].Order = &order
	return nil
}

func (r documentRepo) UpdatePinned(_ context.Context, _ string, id string, pinned bool) (*document.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.docs[id].Pinned = pinned
	return r.s.docs[id].Clone(), nil
}

func (r documentRepo) Delete(_ context.Context, _ string, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.docs, id)
	return nil
}

type logRepo struct{ s *store }

func (r logRepo) Create(_ context.Context, e *activitylog.Entry) (*activitylog.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.logs = append(r.s.logs, e)
	return e, nil
}

func (r logRepo) FindByWedding(context.Context, string, int) ([]*activitylog.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]*activitylog.Entry(nil), r.s.logs...), nil
}

type profileRepo map[string]*profile.Profile

func (r profileRepo) FindByID(_ context.Context, id string) (*profile.Profile, error) {
	return r[id], nil
}

type nopPreferences struct{}

func (nopPreferences) Get(context.Context, string, string) (*preference.Preference, error) {
	return nil, nil
}
func (nopPreferences) Set(context.Context, *preference.Preference) error { return nil }

type noSessions struct{}

func (noSessions) SignInWithPassword(context.Context, string, string) (*supabase.Session, error) {
	return nil, nil
}
func (noSessions) RefreshSession(context.Context, string) (*supabase.Session, error) {
	return nil, nil
}

type allColumns struct{}

func (allColumns) HasColumn(context.Context, string, string) (bool, error) { return true, nil }

type fixture struct {
	engine *gin.Engine
	store  *store
	saver  *preference.NoteSaver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	environment_variables.EnvironmentVariables.SUPABASE_JWT_SECRET = "route-secret"

	s := newStore()
	clientOne, clientTwo := "c1", "c2"
	profiles := profileRepo{
		"org":   {ID: "org", Role: profile.RoleOrganizer},
		"ana":   {ID: "ana", Role: profile.RoleClient, ClientID: &clientOne},
		"other": {ID: "other", Role: profile.RoleClient, ClientID: &clientTwo},
	}
	caps := schema.NewCapabilityService(allColumns{}, cache.NewMemoryCacheService(cache.SystemClock{}))
	activity := activitylog.NewService(logRepo{s})
	authService := auth.NewAuthService(profile.NewService(profiles), noSessions{})
	weddingService := wedding.NewService(weddingRepo{s}, activity)
	boards := task.NewBoardService(taskRepo{s}, caps, activity)
	saver := preference.NewNoteSaver(weddingService, nopPreferences{}, 10*time.Millisecond)

	route := NewWeddingsRoute(
		authService,
		weddingService,
		task.NewService(taskRepo{s}, activity, boards),
		boards,
		taskgroup.NewService(groupRepo{s}, caps, activity, boards),
		document.NewService(documentRepo{s}, caps, activity),
		activity,
		saver,
	)
	engine := gin.New()
	route.RegisterRouter(engine.Group("/v1"))
	return &fixture{engine: engine, store: s, saver: saver}
}

func token(t *testing.T, userID string) string {
	t.Helper()
	signed, err := auth.CreateJwtSignedString(auth.UserClaim{
		Role: auth.AuthenticatedRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)
	return signed
}

func (f *fixture) do(t *testing.T, userID string, method string, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token(t, userID))
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestWeddingAccessIsScopedToClient(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusOK, f.do(t, "org", http.MethodGet, "/v1/weddings/w1", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(t, "ana", http.MethodGet, "/v1/weddings/w1", nil).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, "other", http.MethodGet, "/v1/weddings/w1", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, "org", http.MethodGet, "/v1/weddings/missing", nil).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, "ana", http.MethodDelete, "/v1/weddings/w1", nil).Code)
}

func TestWarmTaskBoardIsNotServedOutsideTheWedding(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, "ana", http.MethodPost, "/v1/weddings/w1/tasks", gin.H{"title": "Venue walkthrough"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = f.do(t, "ana", http.MethodGet, "/v1/weddings/w1/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Venue walkthrough")

	rec = f.do(t, "other", http.MethodGet, "/v1/weddings/w1/tasks", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Venue walkthrough")
}

func TestEveryWeddingRouteIsDocumented(t *testing.T) {
	f := newFixture(t)
	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	for _, route := range f.engine.Routes() {
		segments := strings.Split(route.Path, "/")
		for i, seg := range segments {
			if strings.HasPrefix(seg, ":") {
				segments[i] = "{" + seg[1:] + "}"
			}
		}
		path := strings.Join(segments, "/")
		assert.Contains(t, doc.Paths[path], strings.ToLower(route.Method), "%s %s", route.Method, path)
	}
}

func TestTaskBoardFlow(t *testing.T) {
	f := newFixture(t)

	var ids []string
	for _, title := range []string{"Venue", "Catering", "Flowers"} {
		rec := f.do(t, "ana", http.MethodPost, "/v1/weddings/w1/tasks", gin.H{"title": title})
		require.Equal(t, http.StatusCreated, rec.Code)
		created := decode[TaskResponse](t, rec)
		assert.Equal(t, task.TaskStatusPending, created.Status)
		ids = append(ids, created.ID)
	}

	rec := f.do(t, "ana", http.MethodPost, "/v1/weddings/w1/tasks", gin.H{"title": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, "ana", http.MethodPost, "/v1/weddings/w1/tasks/"+ids[0]+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, task.TaskStatusCompleted, decode[TaskResponse](t, rec).Status)

	rec = f.do(t, "ana", http.MethodPost, "/v1/weddings/w1/tasks/reorder", gin.H{"dragged_id": ids[2], "target_id": ids[0]})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[BoardResponse[TaskResponse]](t, rec)
	assert.True(t, resp.Changed)
	assert.Equal(t, "applied", resp.Outcome)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, []string{ids[2], ids[0], ids[1]}, []string{resp.Items[0].ID, resp.Items[1].ID, resp.Items[2].ID})
	assert.Equal(t, 0, *f.store.tasks[ids[2]].Order)

	rec = f.do(t, "ana", http.MethodPost, "/v1/weddings/w1/tasks/reorder", gin.H{"dragged_id": ids[2], "target_id": "ghost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentDownloadRedirects(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, "org", http.MethodPost, "/v1/weddings/w1/documents", gin.H{
		"name": "Budget",
		"url":  "https://docs.google.com/spreadsheets/d/abc123/edit#gid=0",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[DocumentResponse](t, rec)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc123/export?format=xlsx", created.DownloadURL)

	rec = f.do(t, "org", http.MethodGet, "/v1/weddings/w1/documents/"+created.ID+"/download", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, created.DownloadURL, rec.Header().Get("Location"))

	rec = f.do(t, "org", http.MethodPost, "/v1/weddings/w1/documents/"+created.ID+"/pin", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[DocumentResponse](t, rec).Pinned)

	rec = f.do(t, "org", http.MethodGet, "/v1/weddings/w1/documents", nil)
	board := decode[DocumentBoardResponse](t, rec)
	assert.Len(t, board.Pinned, 1)
	assert.Empty(t, board.Unpinned)
}

func TestNotesAreDebouncedOntoTheWedding(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusAccepted, f.do(t, "ana", http.MethodPut, "/v1/weddings/w1/notes", gin.H{"notes": "draft"}).Code)
	assert.Equal(t, http.StatusAccepted, f.do(t, "ana", http.MethodPut, "/v1/weddings/w1/notes", gin.H{"notes": "final"}).Code)

	rec := f.do(t, "ana", http.MethodGet, "/v1/weddings/w1/notes", nil)
	pending := decode[NotesResponse](t, rec)
	assert.Equal(t, "final", pending.Notes)

	f.saver.Flush()
	rec = f.do(t, "ana", http.MethodGet, "/v1/weddings/w1/notes", nil)
	saved := decode[NotesResponse](t, rec)
	assert.False(t, saved.Pending)
	assert.Equal(t, "final", saved.Notes)
}
