package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order *int   `json:"order"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithConfig(Config{BaseURL: server.URL, AnonKey: "anon-key"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestSelectSendsFiltersAndToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/tasks", r.URL.Path)
		assert.Equal(t, "eq.w1", r.URL.Query().Get("wedding_id"))
		assert.Equal(t, "order.asc.nullslast,created_at.desc", r.URL.Query().Get("order"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []row{{ID: "t1"}, {ID: "t2"}})
	})

	ctx := WithAccessToken(context.Background(), "user-token")
	rows, err := SelectMany[row](ctx, client, "tasks", NewQuery().
		Eq("wedding_id", "w1").
		Order("order", true, true).
		Order("created_at", false, false))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSelectFallsBackToAnonKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []row{})
	})
	row, err := SelectOne[row](context.Background(), client, "profiles", NewQuery().Eq("id", "u1"))
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestRemoteErrorsAreTyped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "42703",
			"message": `column documents.order does not exist`,
		})
	})
	_, err := SelectMany[row](context.Background(), client, "documents", NewQuery().Select("order"))
	require.Error(t, err)
	assert.True(t, IsMissingColumn(err))
	assert.False(t, IsNotFound(err))

	var remoteErr *Error
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusBadRequest, remoteErr.Status)
}

func TestHasColumn(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/v1/documents":
			writeJSON(w, http.StatusBadRequest, map[string]string{"code": "PGRST204", "message": "missing"})
		case "/rest/v1/tasks":
			writeJSON(w, http.StatusOK, []row{})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
		}
	})
	ctx := context.Background()

	ok, err := client.HasColumn(ctx, "documents", "order")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = client.HasColumn(ctx, "tasks", "order")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = client.HasColumn(ctx, "task_groups", "order")
	assert.Error(t, err)
}

func TestRPCNormalizesRecordShapes(t *testing.T) {
	responses := map[string]any{
		"/rest/v1/rpc/as_record": row{ID: "c1", Name: "Ana"},
		"/rest/v1/rpc/as_array":  []row{{ID: "c2", Name: "Luis"}},
		"/rest/v1/rpc/as_empty":  []row{},
	}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		writeJSON(w, http.StatusOK, responses[r.URL.Path])
	})
	ctx := context.Background()

	record, err := RPCOne[row](ctx, client, "as_record", map[string]any{"p_id": "c1"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", record.Name)

	record, err = RPCOne[row](ctx, client, "as_array", nil)
	require.NoError(t, err)
	assert.Equal(t, "Luis", record.Name)

	_, err = RPCOne[row](ctx, client, "as_empty", nil)
	assert.ErrorIs(t, err, ErrEmptyResult)

	many, err := RPCMany[row](ctx, client, "as_record", nil)
	require.NoError(t, err)
	assert.Len(t, many, 1)
}

func TestInsertAndUpdateReturnRepresentation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch r.Method {
		case http.MethodPost:
			writeJSON(w, http.StatusCreated, []row{{ID: "new", Name: body["name"].(string)}})
		case http.MethodPatch:
			assert.Equal(t, "eq.t1", r.URL.Query().Get("id"))
			writeJSON(w, http.StatusOK, []row{})
		}
	})
	ctx := context.Background()

	created, err := InsertOne[row](ctx, client, "tasks", map[string]any{"name": "Florist"})
	require.NoError(t, err)
	assert.Equal(t, "Florist", created.Name)

	_, err = UpdateOne[row](ctx, client, "tasks", NewQuery().Eq("id", "t1"), map[string]any{"name": "x"})
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestSignInWithPassword(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		writeJSON(w, http.StatusOK, Session{AccessToken: "jwt", User: AuthUser{ID: "u1"}})
	})
	session, err := client.SignInWithPassword(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", session.AccessToken)
	assert.Equal(t, "u1", session.User.ID)
}
