package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/model"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/storage"
)

// uploadConcurrency bounds parallel blob writes of one batch.
const uploadConcurrency = 4

// ErrDocumentNotFound means the dossier has no attachment with that id.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentService moves dossier attachments into the blob store and
// keeps the dossier's documents list in sync. Blob keys follow
// {userID}/{projectID}/{generatedID}.{ext}.
type DocumentService struct {
	storage       storage.Storage
	store         *ProjectService
	presignExpiry time.Duration
}

func NewDocumentService(store *ProjectService, blobs storage.Storage, presignExpiry time.Duration) *DocumentService {
	return &DocumentService{
		storage:       blobs,
		store:         store,
		presignExpiry: presignExpiry,
	}
}

// UploadInput is one incoming attachment.
type UploadInput struct {
	Name        string
	ContentType string
	Size        int64
	Data        io.Reader
}

// Upload stores a batch of attachments and appends them to the dossier.
// Files are isolated from each other: a failed blob write drops that
// file with a log line and the rest of the batch proceeds. The dossier
// record is written once, after the batch.
func (s *DocumentService) Upload(ctx context.Context, userID, projectID string, files []UploadInput) (*model.Project, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files in upload")
	}

	project, err := s.store.Project(projectID)
	if err != nil {
		return nil, err
	}

	var (
		mu   sync.Mutex
		docs []model.Document
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for _, file := range files {
		g.Go(func() error {
			doc, err := s.saveOne(gctx, userID, projectID, file)
			if err != nil {
				slog.Warn("attachment upload failed, skipping file",
					"project_id", projectID, "name", file.Name, "error", err)
				return nil
			}
			mu.Lock()
			docs = append(docs, doc)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if len(docs) == 0 {
		return nil, fmt.Errorf("all %d uploads failed", len(files))
	}

	project.Documents = append(project.Documents, docs...)
	return s.store.Update(ctx, userID, project)
}

func (s *DocumentService) saveOne(ctx context.Context, userID, projectID string, file UploadInput) (model.Document, error) {
	id := uuid.NewString()
	key := userID + "/" + projectID + "/" + id + strings.ToLower(path.Ext(file.Name))

	if err := s.storage.Save(ctx, key, file.Data); err != nil {
		return model.Document{}, err
	}

	// The durable public locator is preferred; previews are persisted in
	// the dossier record and must not expire. A signed locator is the
	// fallback for private buckets.
	previewURL := s.storage.PublicURL(key)
	if previewURL == "" {
		signed, err := s.storage.PresignedURL(ctx, key, s.presignExpiry)
		if err != nil {
			return model.Document{}, fmt.Errorf("no preview locator for %s: %w", key, err)
		}
		previewURL = signed
	}

	return model.Document{
		ID:         id,
		Name:       file.Name,
		Type:       file.ContentType,
		Size:       file.Size,
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
		PreviewURL: previewURL,
		// Text extraction is not wired yet; the analyst prompts get a
		// descriptive stand-in so documents still appear in the analysis.
		Content: fmt.Sprintf("Extrait de contenu simulé pour %s. Ce document est de type %s.", file.Name, file.ContentType),
	}, nil
}

// Remove drops one attachment from the dossier and deletes its blob
// best-effort. The dossier record update is what matters; an orphaned
// blob is only wasted storage.
func (s *DocumentService) Remove(ctx context.Context, userID, projectID, documentID string) (*model.Project, error) {
	project, err := s.store.Project(projectID)
	if err != nil {
		return nil, err
	}

	var removed *model.Document
	kept := make([]model.Document, 0, len(project.Documents))
	for _, d := range project.Documents {
		if d.ID == documentID {
			removed = &d
			continue
		}
		kept = append(kept, d)
	}
	if removed == nil {
		return nil, fmt.Errorf("%w: %s in project %s", ErrDocumentNotFound, documentID, projectID)
	}
	project.Documents = kept

	updated, err := s.store.Update(ctx, userID, project)
	if err != nil {
		return nil, err
	}

	s.deleteBlob(ctx, userID, projectID, removed)
	return updated, nil
}

// Cleanup deletes every blob of a removed dossier, best-effort.
func (s *DocumentService) Cleanup(ctx context.Context, userID string, project *model.Project) {
	if project == nil {
		return
	}
	for _, d := range project.Documents {
		s.deleteBlob(ctx, userID, project.ID, &d)
	}
}

func (s *DocumentService) deleteBlob(ctx context.Context, userID, projectID string, doc *model.Document) {
	key := blobKey(doc.PreviewURL, userID, projectID)
	if key == "" {
		slog.Warn("could not derive blob key, leaving blob behind",
			"project_id", projectID, "document_id", doc.ID)
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		slog.Warn("blob delete failed, leaving blob behind", "key", key, "error", err)
	}
}

// blobKey recovers the storage key from a preview URL by locating the
// {userID}/{projectID}/ prefix inside it. Presign query parameters and
// whatever host or bucket prefix the store uses are irrelevant to the key.
func blobKey(previewURL, userID, projectID string) string {
	prefix := userID + "/" + projectID + "/"
	idx := strings.Index(previewURL, prefix)
	if idx < 0 {
		return ""
	}
	key := previewURL[idx:]
	if q := strings.IndexByte(key, '?'); q >= 0 {
		key = key[:q]
	}
	return key
}
