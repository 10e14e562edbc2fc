package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/model"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/remote"
)

type fakeStorage struct {
	mu       sync.Mutex
	saved    map[string][]byte
	deleted  []string
	failName string // blobs whose content contains this marker fail to save
	private  bool   // no public locator, signed access only
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: make(map[string][]byte)}
}

func (f *fakeStorage) Save(ctx context.Context, key string, blob io.Reader) error {
	data, err := io.ReadAll(blob)
	if err != nil {
		return err
	}
	if f.failName != "" && strings.Contains(string(data), f.failName) {
		return io.ErrUnexpectedEOF
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved[key] = data
	return nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	delete(f.saved, key)
	return nil
}

func (f *fakeStorage) PublicURL(key string) string {
	if f.private {
		return ""
	}
	return "https://blob.example.com/dossiers/" + key
}

func (f *fakeStorage) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://blob.example.com/dossiers/" + key + "?sig=test", nil
}

func detailStore(t *testing.T, api *fakeAPI) *ProjectService {
	t.Helper()
	store := newStore(api, nil)
	require.NoError(t, store.LoadList(context.Background(), "u1"))
	return store
}

func TestUploadStoresBlobsAndAppendsDocuments(t *testing.T) {
	api := &fakeAPI{summaries: summariesOf("p1")}
	store := detailStore(t, api)
	blobs := newFakeStorage()
	docs := NewDocumentService(store, blobs, time.Hour)

	project, err := docs.Upload(context.Background(), "u1", "p1", []UploadInput{
		{Name: "bail.pdf", ContentType: "application/pdf", Size: 4, Data: strings.NewReader("pdf1")},
		{Name: "kbis.PDF", ContentType: "application/pdf", Size: 4, Data: strings.NewReader("pdf2")},
	})
	require.NoError(t, err)
	require.Len(t, project.Documents, 2)

	blobs.mu.Lock()
	keys := make([]string, 0, len(blobs.saved))
	for k := range blobs.saved {
		keys = append(keys, k)
	}
	blobs.mu.Unlock()

	require.Len(t, keys, 2)
	for _, k := range keys {
		require.True(t, strings.HasPrefix(k, "u1/p1/"), "key %q must be scoped to user and project", k)
		require.True(t, strings.HasSuffix(k, ".pdf"), "extension must be lowercased: %q", k)
	}

	for _, d := range project.Documents {
		require.NotEmpty(t, d.ID)
		require.Contains(t, d.PreviewURL, "u1/p1/")
		require.NotContains(t, d.PreviewURL, "sig=", "persisted previews must use the durable locator, not an expiring one")
		require.Contains(t, d.Content, "Extrait de contenu simulé pour")
	}

	// The dossier write happened once, with both documents.
	api.mu.Lock()
	defer api.mu.Unlock()
	require.Len(t, api.updates, 1)
	require.Len(t, api.updates[0].Documents, 2)
}

func TestUploadSignsPreviewsForPrivateBucket(t *testing.T) {
	api := &fakeAPI{summaries: summariesOf("p1")}
	store := detailStore(t, api)
	blobs := newFakeStorage()
	blobs.private = true
	docs := NewDocumentService(store, blobs, time.Hour)

	project, err := docs.Upload(context.Background(), "u1", "p1", []UploadInput{
		{Name: "bail.pdf", ContentType: "application/pdf", Size: 4, Data: strings.NewReader("pdf1")},
	})
	require.NoError(t, err)
	require.Len(t, project.Documents, 1)
	require.Contains(t, project.Documents[0].PreviewURL, "sig=test", "a private bucket falls back to the signed locator")
}

func TestUploadIsolatesFailingFiles(t *testing.T) {
	api := &fakeAPI{summaries: summariesOf("p1")}
	store := detailStore(t, api)
	blobs := newFakeStorage()
	blobs.failName = "corrupt"
	docs := NewDocumentService(store, blobs, time.Hour)

	project, err := docs.Upload(context.Background(), "u1", "p1", []UploadInput{
		{Name: "ok.pdf", ContentType: "application/pdf", Size: 2, Data: strings.NewReader("ok")},
		{Name: "bad.pdf", ContentType: "application/pdf", Size: 7, Data: strings.NewReader("corrupt")},
	})
	require.NoError(t, err, "one bad file must not sink the batch")
	require.Len(t, project.Documents, 1)
	require.Equal(t, "ok.pdf", project.Documents[0].Name)
}

func TestUploadFailsWhenNothingStored(t *testing.T) {
	api := &fakeAPI{summaries: summariesOf("p1")}
	store := detailStore(t, api)
	blobs := newFakeStorage()
	blobs.failName = "corrupt"
	docs := NewDocumentService(store, blobs, time.Hour)

	_, err := docs.Upload(context.Background(), "u1", "p1", []UploadInput{
		{Name: "bad.pdf", ContentType: "application/pdf", Size: 7, Data: strings.NewReader("corrupt")},
	})
	require.Error(t, err)

	api.mu.Lock()
	defer api.mu.Unlock()
	require.Empty(t, api.updates, "a fully failed batch must not touch the dossier")
}

func TestRemoveDeletesBlobBestEffort(t *testing.T) {
	api := &fakeAPI{
		summaries: summariesOf("p1"),
		details: map[string]*remote.ProjectDetail{
			"p1": {
				Info: model.ProjectInfo{Biography: "bio"},
				Documents: []model.Document{{
					ID:         "d1",
					Name:       "bail.pdf",
					PreviewURL: "https://blob.example.com/dossiers/u1/p1/d1.pdf?sig=old",
				}},
			},
		},
	}
	store := detailStore(t, api)
	require.NoError(t, store.EnsureDetail(context.Background(), "u1", "p1"))

	blobs := newFakeStorage()
	docs := NewDocumentService(store, blobs, time.Hour)

	project, err := docs.Remove(context.Background(), "u1", "p1", "d1")
	require.NoError(t, err)
	require.Empty(t, project.Documents)

	blobs.mu.Lock()
	defer blobs.mu.Unlock()
	require.Equal(t, []string{"u1/p1/d1.pdf"}, blobs.deleted, "key must be recovered without the query string")
}

func TestRemoveUnknownDocument(t *testing.T) {
	api := &fakeAPI{summaries: summariesOf("p1")}
	store := detailStore(t, api)
	docs := NewDocumentService(store, newFakeStorage(), time.Hour)

	_, err := docs.Remove(context.Background(), "u1", "p1", "ghost")
	require.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestBlobKey(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://blob.example.com/dossiers/u1/p1/d1.pdf", "u1/p1/d1.pdf"},
		{"https://blob.example.com/dossiers/u1/p1/d1.pdf?sig=abc&exp=1", "u1/p1/d1.pdf"},
		{"https://elsewhere.test/x/y/z.pdf", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := blobKey(tt.url, "u1", "p1"); got != tt.want {
			t.Errorf("blobKey(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
