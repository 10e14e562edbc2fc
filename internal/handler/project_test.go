package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/ctxkeys"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/model"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/remote"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/repository"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/service"
)

type stubAPI struct {
	summaries []remote.ProjectSummary
	details   map[string]*remote.ProjectDetail
	inserted  *model.Project
}

func (s *stubAPI) List(ctx context.Context, userID string) ([]remote.ProjectSummary, error) {
	return s.summaries, nil
}

func (s *stubAPI) Detail(ctx context.Context, userID, projectID string) (*remote.ProjectDetail, error) {
	if d, ok := s.details[projectID]; ok {
		return d, nil
	}
	return nil, remote.ErrRemoteRejected
}

func (s *stubAPI) Insert(ctx context.Context, userID string, project *model.Project) (*model.Project, error) {
	created := project.Clone()
	created.ID = "p-created"
	s.inserted = created
	return created.Clone(), nil
}

func (s *stubAPI) Update(ctx context.Context, userID string, project *model.Project) error {
	return nil
}

func (s *stubAPI) Delete(ctx context.Context, userID, projectID string) error {
	return nil
}

type stubCache struct{}

func (stubCache) ByUserID(string) (*model.CacheEntry, error) {
	return nil, repository.ErrCacheEntryNotFound
}
func (stubCache) Put(string, []byte) error { return nil }
func (stubCache) Delete(string) error      { return nil }
func (stubCache) DeleteAll() error         { return nil }

func sessionCtx(r *http.Request) *http.Request {
	session := &model.Session{UserID: "u1", Email: "claire@exemple.fr", ExpiresAt: time.Now().Add(time.Hour)}
	return r.WithContext(ctxkeys.WithSession(r.Context(), session))
}

func newTestHandler(api *stubAPI) *ProjectHandler {
	store := service.NewProjectService(api, stubCache{}, time.Second, time.Second, time.Second)
	return NewProjectHandler(store, nil)
}

func TestListReturnsSnapshot(t *testing.T) {
	api := &stubAPI{summaries: []remote.ProjectSummary{
		{ID: "p1", FirstName: "Jean", LastName: "Martin", Location: "Biarritz"},
	}}
	h := newTestHandler(api)

	req := sessionCtx(httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Projects []model.Project `json:"projects"`
		Version  uint64          `json:"version"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Projects, 1)
	require.Equal(t, "p1", body.Projects[0].ID)
	require.NotZero(t, body.Version)
}

func TestCreateNormalizesAutomationPayload(t *testing.T) {
	api := &stubAPI{}
	h := newTestHandler(api)

	// Workflow integrations send strengths/goals as arrays.
	payload := `{
		"firstName": "Claire",
		"lastName": "Dubois",
		"location": "Annecy",
		"info": {
			"strengths": ["Relationnel", "Réseau local"],
			"goals": ["Ouvrir une agence"],
			"conciergeCommission": 25
		}
	}`

	req := sessionCtx(httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(payload)))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, api.inserted)
	require.Equal(t, "Relationnel, Réseau local", api.inserted.Info.Strengths)
	require.Equal(t, "Ouvrir une agence", api.inserted.Info.Goals)
	require.Equal(t, "25", api.inserted.Info.ConciergeCommission)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	h := newTestHandler(&stubAPI{})

	req := sessionCtx(httptest.NewRequest(http.MethodPost, "/api/projects",
		strings.NewReader(`{"firstName": "Claire"}`)))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLoadsDetail(t *testing.T) {
	api := &stubAPI{
		summaries: []remote.ProjectSummary{{ID: "p1", FirstName: "Jean", LastName: "Martin"}},
		details: map[string]*remote.ProjectDetail{
			"p1": {Info: model.ProjectInfo{Biography: "bio"}, Documents: []model.Document{}},
		},
	}
	h := newTestHandler(api)

	// Warm the list so the dossier exists in memory.
	warm := sessionCtx(httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	h.List(httptest.NewRecorder(), warm)

	req := sessionCtx(httptest.NewRequest(http.MethodGet, "/api/projects/p1", nil))
	req.SetPathValue("id", "p1")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var project model.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &project))
	require.Equal(t, "bio", project.Info.Biography)
}

func TestGetUnknownDossier(t *testing.T) {
	h := newTestHandler(&stubAPI{})

	req := sessionCtx(httptest.NewRequest(http.MethodGet, "/api/projects/ghost", nil))
	req.SetPathValue("id", "ghost")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
