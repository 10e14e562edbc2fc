package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/model"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/remote"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/repository"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrCreateInFlight   = errors.New("a dossier creation is already in flight")
	ErrCreateUnconfirmed = errors.New("creation outcome unknown, list reloaded")
)

// loadState tracks where a dossier (or the list) sits in its fetch cycle.
type loadState int

const (
	loadIdle loadState = iota
	loadInProgress
	loadDone
)

// ProjectService owns the in-memory dossier list and reconciles it between
// the per-user persisted cache, the remote store, and in-flight edits.
//
// Concurrency discipline: every operation takes the single mutex only to
// read or mutate state, never across a network call. In-flight network work
// is collapsed by explicit state fields (one flag for the list, a state per
// dossier id for details, one busy flag for creation); a second concurrent
// call is dropped, not queued. The list itself is replaced wholesale on
// every merge, so readers always get a consistent snapshot.
type ProjectService struct {
	remote remote.ProjectAPI
	cache  repository.CacheRepository

	listTimeout   time.Duration
	detailTimeout time.Duration
	writeTimeout  time.Duration

	mu          sync.Mutex
	userID      string
	projects    []*model.Project
	listState   loadState
	detailState map[string]loadState
	creating    bool
	selected    string
	version     uint64
	epoch       uint64 // bumped on every clear; responses from an older epoch are dropped
}

func NewProjectService(api remote.ProjectAPI, cache repository.CacheRepository, listTimeout, detailTimeout, writeTimeout time.Duration) *ProjectService {
	return &ProjectService{
		remote:        api,
		cache:         cache,
		listTimeout:   listTimeout,
		detailTimeout: detailTimeout,
		writeTimeout:  writeTimeout,
		detailState:   make(map[string]loadState),
	}
}

// LoadList paints the list from the persisted cache, then refreshes it from
// the remote store with a summary-only query. Concurrent calls while a load
// is in flight are dropped. Timeouts and remote errors are logged and leave
// the current state untouched: stale-but-available beats blocking the UI.
func (s *ProjectService) LoadList(ctx context.Context, userID string) error {
	s.mu.Lock()
	if s.listState == loadInProgress {
		s.mu.Unlock()
		return nil
	}
	s.listState = loadInProgress
	if s.userID != userID {
		s.clearLocked()
		s.listState = loadInProgress
		s.userID = userID
	}
	if len(s.projects) == 0 {
		s.paintFromCacheLocked(userID)
	}
	epoch := s.epoch
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.listTimeout)
	defer cancel()

	summaries, err := s.remote.List(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		// The store was reset while the response was in flight. Dropping
		// it keeps signed-out state empty.
		return nil
	}

	if err != nil {
		s.listState = loadIdle
		if errors.Is(err, context.DeadlineExceeded) {
			slog.Warn("project list load timed out, keeping current state", "user_id", userID)
		} else {
			slog.Error("project list load failed, keeping current state", "user_id", userID, "error", err)
		}
		return nil
	}

	s.mergeSummariesLocked(summaries)
	s.listState = loadDone
	s.version++
	s.persistCacheLocked()
	return nil
}

// EnsureDetail fetches the heavy fields (info, documents) for one dossier.
// It is idempotent and collapsed per id: a call while a fetch for the same
// id is outstanding is a no-op, and a dossier already fully loaded this
// session is not fetched again. Errors leave the prior state untouched.
func (s *ProjectService) EnsureDetail(ctx context.Context, userID, projectID string) error {
	s.mu.Lock()
	project := s.findLocked(projectID)
	if project == nil {
		s.mu.Unlock()
		return ErrProjectNotFound
	}
	switch s.detailState[projectID] {
	case loadInProgress:
		s.mu.Unlock()
		return nil
	case loadDone:
		if project.HasDetail() {
			s.mu.Unlock()
			return nil
		}
	}
	s.detailState[projectID] = loadInProgress
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.detailTimeout)
	defer cancel()

	detail, err := s.remote.Detail(ctx, userID, projectID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.detailState[projectID] = loadIdle
		slog.Error("project detail load failed, keeping current state", "project_id", projectID, "error", err)
		return nil
	}

	project = s.findLocked(projectID)
	if project == nil {
		// Removed while the fetch was in flight.
		delete(s.detailState, projectID)
		return nil
	}

	project.Info = detail.Info
	project.Documents = detail.Documents
	s.detailState[projectID] = loadDone
	s.version++
	s.persistCacheLocked()
	return nil
}

// CreateProjectInput carries the fields of a new dossier. Info is
// optional; intake integrations prefill it, manual creation leaves it
// empty.
type CreateProjectInput struct {
	FirstName string
	LastName  string
	Location  string
	Info      model.ProjectInfo
}

func (i CreateProjectInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.FirstName, validation.Required),
		validation.Field(&i.LastName, validation.Required),
		validation.Field(&i.Location, validation.Required),
	)
}

// Create inserts a new dossier. Validation failures and a creation already
// in flight are rejected locally before any network call. A write timeout
// is treated as "outcome unknown": the list is reconciled from the remote
// store instead of assuming failure or duplicating the record, and
// ErrCreateUnconfirmed is returned.
func (s *ProjectService) Create(ctx context.Context, userID string, input CreateProjectInput) (*model.Project, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Location = strings.TrimSpace(input.Location)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.creating {
		s.mu.Unlock()
		return nil, ErrCreateInFlight
	}
	s.creating = true
	epoch := s.epoch
	s.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	info := input.Info
	if info.ExchangeDate == "" {
		info.ExchangeDate = time.Now().Format("2006-01-02")
	}

	created, err := s.remote.Insert(callCtx, userID, &model.Project{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Location:  input.Location,
		Info:      info,
		Documents: []model.Document{},
	})

	s.mu.Lock()
	s.creating = false
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.mu.Lock()
			reset := s.epoch != epoch
			s.mu.Unlock()
			if reset {
				return nil, ErrCreateUnconfirmed
			}
			slog.Warn("project create timed out, reconciling via list reload", "user_id", userID)
			if loadErr := s.LoadList(context.WithoutCancel(ctx), userID); loadErr != nil {
				slog.Error("reconciliation list load failed", "user_id", userID, "error", loadErr)
			}
			return nil, ErrCreateUnconfirmed
		}
		return nil, err
	}

	if created.Documents == nil {
		created.Documents = []model.Document{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		// Signed out while the insert was in flight. The remote record
		// exists and the next list load will surface it, but the local
		// state stays cleared.
		return created.Clone(), nil
	}
	s.projects = append([]*model.Project{created}, s.projects...)
	s.version++
	s.persistCacheLocked()
	return created.Clone(), nil
}

// Update sends the complete dossier payload (whole-record replace, no
// field-level patching). On success the in-memory record and cache entry
// are replaced and the dossier's fully-loaded flag is cleared so a future
// EnsureDetail reconsiders it. On error no state is mutated; the caller
// keeps its own draft.
func (s *ProjectService) Update(ctx context.Context, userID string, project *model.Project) (*model.Project, error) {
	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	if err := s.remote.Update(ctx, userID, project); err != nil {
		return nil, err
	}

	updated := project.Clone()
	if updated.Documents == nil {
		updated.Documents = []model.Document{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		// The remote write went through, but the local state was cleared
		// by a sign-out in the meantime.
		return updated, nil
	}

	replaced := false
	for i, p := range s.projects {
		if p.ID == updated.ID {
			if updated.CreatedAt == "" {
				updated.CreatedAt = p.CreatedAt
			}
			s.projects[i] = updated
			replaced = true
			break
		}
	}
	if !replaced {
		s.projects = append([]*model.Project{updated}, s.projects...)
	}

	s.detailState[updated.ID] = loadIdle
	s.version++
	s.persistCacheLocked()
	return updated.Clone(), nil
}

// Remove deletes the dossier remotely, then drops it from memory and cache
// and clears any active selection pointing at it. The removed record is
// returned so the caller can clean up its blobs best-effort.
func (s *ProjectService) Remove(ctx context.Context, userID, projectID string) (*model.Project, error) {
	s.mu.Lock()
	known := s.findLocked(projectID) != nil
	s.mu.Unlock()
	if !known {
		return nil, ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	if err := s.remote.Delete(ctx, userID, projectID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed *model.Project
	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID == projectID {
			removed = p
			continue
		}
		kept = append(kept, p)
	}
	s.projects = kept

	delete(s.detailState, projectID)
	if s.selected == projectID {
		s.selected = ""
	}
	s.version++
	s.persistCacheLocked()

	if removed == nil {
		// Raced with a concurrent reset; nothing left to clean up.
		return nil, ErrProjectNotFound
	}
	return removed.Clone(), nil
}

// Projects returns a snapshot of the current list, optionally filtered by a
// case-insensitive substring match on the client's full name.
func (s *ProjectService) Projects(query string) []*model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]*model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if query != "" && !strings.Contains(strings.ToLower(p.DisplayName()), query) {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

// Project returns a snapshot of one dossier.
func (s *ProjectService) Project(projectID string) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findLocked(projectID)
	if p == nil {
		return nil, ErrProjectNotFound
	}
	return p.Clone(), nil
}

// Select marks a dossier as the active selection.
func (s *ProjectService) Select(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = projectID
}

func (s *ProjectService) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Version is bumped on every state change so dependent views can refresh.
func (s *ProjectService) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Reset clears all in-memory dossier state (sign-out path). The persisted
// cache is left alone unless the caller purges it explicitly.
func (s *ProjectService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *ProjectService) clearLocked() {
	s.userID = ""
	s.projects = nil
	s.listState = loadIdle
	s.detailState = make(map[string]loadState)
	s.creating = false
	s.selected = ""
	s.version++
	s.epoch++
}

func (s *ProjectService) findLocked(projectID string) *model.Project {
	for _, p := range s.projects {
		if p.ID == projectID {
			return p
		}
	}
	return nil
}

// mergeSummariesLocked reconciles a summary-only remote response with the
// in-memory list. The remote response is authoritative for membership and
// order; heavy fields are kept from the in-memory record when present,
// because completeness wins over freshness for documents/info.
func (s *ProjectService) mergeSummariesLocked(summaries []remote.ProjectSummary) {
	existing := make(map[string]*model.Project, len(s.projects))
	for _, p := range s.projects {
		existing[p.ID] = p
	}

	merged := make([]*model.Project, 0, len(summaries))
	for _, sum := range summaries {
		p := &model.Project{
			ID:        sum.ID,
			FirstName: sum.FirstName,
			LastName:  sum.LastName,
			Location:  sum.Location,
			CreatedAt: sum.CreatedAt,
			Documents: []model.Document{},
		}
		if prev, ok := existing[sum.ID]; ok {
			p.Info = prev.Info
			if prev.Documents != nil {
				p.Documents = prev.Documents
			}
		}
		merged = append(merged, p)
	}
	s.projects = merged

	// Drop detail bookkeeping for dossiers that no longer exist remotely.
	for id := range s.detailState {
		found := false
		for _, p := range merged {
			if p.ID == id {
				found = true
				break
			}
		}
		if !found {
			delete(s.detailState, id)
		}
	}
}

func (s *ProjectService) paintFromCacheLocked(userID string) {
	entry, err := s.cache.ByUserID(userID)
	if err != nil {
		if !errors.Is(err, repository.ErrCacheEntryNotFound) {
			slog.Warn("cache read failed", "user_id", userID, "error", err)
		}
		return
	}

	var cached []*model.Project
	if err := json.Unmarshal(entry.Payload, &cached); err != nil {
		slog.Warn("cache payload malformed, ignoring", "user_id", userID, "error", err)
		return
	}
	if len(cached) == 0 {
		return
	}

	for _, p := range cached {
		if p.Documents == nil {
			p.Documents = []model.Document{}
		}
	}
	s.projects = cached
	s.version++
}

func (s *ProjectService) persistCacheLocked() {
	if s.userID == "" {
		return
	}
	payload, err := json.Marshal(s.projects)
	if err != nil {
		slog.Error("cache encode failed", "user_id", s.userID, "error", err)
		return
	}
	if err := s.cache.Put(s.userID, payload); err != nil {
		slog.Warn("cache write failed", "user_id", s.userID, "error", err)
	}
}
