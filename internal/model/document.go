package model

// Document is a file attachment belonging to a dossier. Its ID is generated
// client-side at upload time and must stay stable so that delete-by-id hits
// the same entity in both the blob store and the dossier's document list.
type Document struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"` // MIME-like string
	Size       int64  `json:"size"` // bytes
	UploadedAt string `json:"uploadedAt"`
	PreviewURL string `json:"previewUrl,omitempty"`
	Content    string `json:"content,omitempty"` // extracted/placeholder text for summarization
}
