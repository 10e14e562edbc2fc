package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/model"
)

type staticToken string

func (s staticToken) AccessToken() string { return string(s) }

func TestListUsesSummaryProjection(t *testing.T) {
	var gotQuery map[string]string
	var gotAuth, gotAPIKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/v1/projects", r.URL.Path)
		gotQuery = map[string]string{
			"select":  r.URL.Query().Get("select"),
			"user_id": r.URL.Query().Get("user_id"),
			"order":   r.URL.Query().Get("order"),
		}
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"p2","first_name":"Claire","last_name":"Dubois","location":"Annecy","created_at":"2026-02-01T10:00:00Z"},
			{"id":"p1","first_name":"Jean","last_name":"Martin","location":"Biarritz","created_at":"2026-01-15T09:00:00Z"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key", staticToken("user-token"))
	api := NewProjectAPI(client)

	summaries, err := api.List(context.Background(), "u1")
	require.NoError(t, err)

	require.Equal(t, "id,first_name,last_name,location,created_at", gotQuery["select"])
	require.Equal(t, "eq.u1", gotQuery["user_id"])
	require.Equal(t, "created_at.desc", gotQuery["order"])
	require.Equal(t, "Bearer user-token", gotAuth)
	require.Equal(t, "anon-key", gotAPIKey)

	require.Len(t, summaries, 2)
	require.Equal(t, "p2", summaries[0].ID)
	require.Equal(t, "Claire", summaries[0].FirstName)
}

func TestDetailDecodesLooseBlobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "info,documents", r.URL.Query().Get("select"))
		require.Equal(t, "eq.p1", r.URL.Query().Get("id"))
		require.Equal(t, "eq.u1", r.URL.Query().Get("user_id"))

		w.Write([]byte(`[{
			"info": {"strengths": ["Relationnel", "Réseau"], "conciergeCommission": 25},
			"documents": [{"id":"d1","name":"bail.pdf"},{"name":"sans-id"}]
		}]`))
	}))
	defer srv.Close()

	api := NewProjectAPI(NewClient(srv.URL, "anon-key", nil))

	detail, err := api.Detail(context.Background(), "u1", "p1")
	require.NoError(t, err)
	require.Equal(t, "Relationnel, Réseau", detail.Info.Strengths)
	require.Equal(t, "25", detail.Info.ConciergeCommission)
	require.Len(t, detail.Documents, 1)
	require.Equal(t, "d1", detail.Documents[0].ID)
}

func TestDetailNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	api := NewProjectAPI(NewClient(srv.URL, "anon-key", nil))

	_, err := api.Detail(context.Background(), "u1", "missing")
	require.ErrorIs(t, err, ErrRemoteRejected)
}

func TestInsertReturnsRepresentation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var row map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
		require.Equal(t, "u1", row["user_id"])
		require.Equal(t, "Jean", row["first_name"])
		// documents must stay an array on the wire, even when empty
		require.IsType(t, []any{}, row["documents"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"id":"p-new","first_name":"Jean","last_name":"Martin","location":"Biarritz","created_at":"2026-03-01T08:00:00Z","info":{},"documents":[]}]`))
	}))
	defer srv.Close()

	api := NewProjectAPI(NewClient(srv.URL, "anon-key", nil))

	created, err := api.Insert(context.Background(), "u1", &model.Project{
		FirstName: "Jean",
		LastName:  "Martin",
		Location:  "Biarritz",
	})
	require.NoError(t, err)
	require.Equal(t, "p-new", created.ID)
	require.NotNil(t, created.Documents)
}

func TestUpdateSendsWholeRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "eq.p1", r.URL.Query().Get("id"))
		require.Equal(t, "eq.u1", r.URL.Query().Get("user_id"))

		var row map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
		info, ok := row["info"].(map[string]any)
		require.True(t, ok, "info must be a whole JSON object, not a patch")
		require.Equal(t, "Ancien hôtelier", info["biography"])

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	api := NewProjectAPI(NewClient(srv.URL, "anon-key", nil))

	project := &model.Project{ID: "p1", FirstName: "Jean", LastName: "Martin"}
	project.Info.Biography = "Ancien hôtelier"

	require.NoError(t, api.Update(context.Background(), "u1", project))
}

func TestRejectedRequestSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"duplicate key value"}`))
	}))
	defer srv.Close()

	api := NewProjectAPI(NewClient(srv.URL, "anon-key", nil))

	err := api.Delete(context.Background(), "u1", "p1")
	require.ErrorIs(t, err, ErrRemoteRejected)
	require.Contains(t, err.Error(), "duplicate key value")
}
