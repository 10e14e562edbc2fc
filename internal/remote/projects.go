package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/model"
)

// Summary column projection used by list loads. The heavy JSON blobs are
// deliberately excluded; they are fetched per dossier on demand.
const summaryColumns = "id,first_name,last_name,location,created_at"

// detailColumns is the projection for a single-dossier detail fetch.
const detailColumns = "info,documents"

// ProjectSummary is a dossier row without its heavy fields.
type ProjectSummary struct {
	ID        string
	FirstName string
	LastName  string
	Location  string
	CreatedAt string
}

// ProjectDetail carries just the heavy fields of one dossier.
type ProjectDetail struct {
	Info      model.ProjectInfo
	Documents []model.Document
}

// ProjectAPI is the CRUD surface consumed on the remote projects collection.
// info and documents are always written as whole JSON blobs; there is no
// field-level patching.
type ProjectAPI interface {
	List(ctx context.Context, userID string) ([]ProjectSummary, error)
	Detail(ctx context.Context, userID, projectID string) (*ProjectDetail, error)
	Insert(ctx context.Context, userID string, project *model.Project) (*model.Project, error)
	Update(ctx context.Context, userID string, project *model.Project) error
	Delete(ctx context.Context, userID, projectID string) error
}

// projectRow mirrors the wire shape of the projects table.
type projectRow struct {
	ID        string          `json:"id,omitempty"`
	UserID    string          `json:"user_id,omitempty"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Location  string          `json:"location"`
	CreatedAt string          `json:"created_at,omitempty"`
	Info      json.RawMessage `json:"info,omitempty"`
	Documents json.RawMessage `json:"documents,omitempty"`
}

type projectAPI struct {
	client *Client
}

// NewProjectAPI returns the PostgREST-backed implementation of ProjectAPI.
func NewProjectAPI(client *Client) ProjectAPI {
	return &projectAPI{client: client}
}

func (a *projectAPI) List(ctx context.Context, userID string) ([]ProjectSummary, error) {
	q := url.Values{}
	q.Set("select", summaryColumns)
	q.Set("user_id", "eq."+userID)
	q.Set("order", "created_at.desc")

	req, err := a.client.newRequest(ctx, http.MethodGet, "/rest/v1/projects?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var rows []projectRow
	if err := a.client.doJSON(req, &rows); err != nil {
		return nil, err
	}

	summaries := make([]ProjectSummary, 0, len(rows))
	for _, r := range rows {
		if r.ID == "" {
			continue
		}
		summaries = append(summaries, ProjectSummary{
			ID:        r.ID,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Location:  r.Location,
			CreatedAt: r.CreatedAt,
		})
	}
	return summaries, nil
}

func (a *projectAPI) Detail(ctx context.Context, userID, projectID string) (*ProjectDetail, error) {
	q := url.Values{}
	q.Set("select", detailColumns)
	q.Set("id", "eq."+projectID)
	q.Set("user_id", "eq."+userID)

	req, err := a.client.newRequest(ctx, http.MethodGet, "/rest/v1/projects?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var rows []projectRow
	if err := a.client.doJSON(req, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: project %s not found", ErrRemoteRejected, projectID)
	}

	return &ProjectDetail{
		Info:      model.DecodeInfo(rows[0].Info),
		Documents: model.DecodeDocuments(rows[0].Documents),
	}, nil
}

func (a *projectAPI) Insert(ctx context.Context, userID string, project *model.Project) (*model.Project, error) {
	info, err := json.Marshal(project.Info)
	if err != nil {
		return nil, fmt.Errorf("encoding info: %w", err)
	}
	docs, err := json.Marshal(documentsOrEmpty(project.Documents))
	if err != nil {
		return nil, fmt.Errorf("encoding documents: %w", err)
	}

	body := projectRow{
		UserID:    userID,
		FirstName: project.FirstName,
		LastName:  project.LastName,
		Location:  project.Location,
		Info:      info,
		Documents: docs,
	}

	req, err := a.client.newRequest(ctx, http.MethodPost, "/rest/v1/projects", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	var rows []projectRow
	if err := a.client.doJSON(req, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: insert returned no record", ErrRemoteRejected)
	}

	r := rows[0]
	return &model.Project{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Location:  r.Location,
		CreatedAt: r.CreatedAt,
		Info:      model.DecodeInfo(r.Info),
		Documents: model.DecodeDocuments(r.Documents),
	}, nil
}

func (a *projectAPI) Update(ctx context.Context, userID string, project *model.Project) error {
	info, err := json.Marshal(project.Info)
	if err != nil {
		return fmt.Errorf("encoding info: %w", err)
	}
	docs, err := json.Marshal(documentsOrEmpty(project.Documents))
	if err != nil {
		return fmt.Errorf("encoding documents: %w", err)
	}

	body := projectRow{
		FirstName: project.FirstName,
		LastName:  project.LastName,
		Location:  project.Location,
		Info:      info,
		Documents: docs,
	}

	q := url.Values{}
	q.Set("id", "eq."+project.ID)
	q.Set("user_id", "eq."+userID)

	req, err := a.client.newRequest(ctx, http.MethodPatch, "/rest/v1/projects?"+q.Encode(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=minimal")

	return a.client.doJSON(req, nil)
}

func (a *projectAPI) Delete(ctx context.Context, userID, projectID string) error {
	q := url.Values{}
	q.Set("id", "eq."+projectID)
	q.Set("user_id", "eq."+userID)

	req, err := a.client.newRequest(ctx, http.MethodDelete, "/rest/v1/projects?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	return a.client.doJSON(req, nil)
}

// documentsOrEmpty keeps the wire shape a JSON array even for brand-new
// dossiers that have never loaded documents.
func documentsOrEmpty(docs []model.Document) []model.Document {
	if docs == nil {
		return []model.Document{}
	}
	return docs
}
