package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// The remote store persists info and documents as loose JSON blobs. Anything
// coming back over the wire is normalized here: missing or malformed fields
// default instead of failing the whole record. This is the one place external
// data is treated as untrusted.

// DecodeInfo normalizes a raw info blob. Array-valued fields are joined with
// ", " (automation payloads send strengths/goals as arrays), numbers are
// stringified, anything else becomes the empty string.
func DecodeInfo(raw json.RawMessage) ProjectInfo {
	var m map[string]any
	if len(raw) == 0 || json.Unmarshal(raw, &m) != nil {
		return ProjectInfo{}
	}

	return ProjectInfo{
		Email:               looseString(m["email"]),
		Phone:               looseString(m["phone"]),
		Profession:          looseString(m["profession"]),
		ConciergeCommission: looseString(m["conciergeCommission"]),
		ExchangeDate:        looseString(m["exchangeDate"]),
		Strengths:           looseString(m["strengths"]),
		Biography:           looseString(m["biography"]),
		Goals:               looseString(m["goals"]),
		TargetRevenueY1:     looseString(m["targetRevenueY1"]),
		TargetRevenueY2:     looseString(m["targetRevenueY2"]),
		TargetRevenueY3:     looseString(m["targetRevenueY3"]),
		TargetGrossMargin:   looseString(m["targetGrossMargin"]),
		CallTranscript:      looseString(m["callTranscript"]),
		Description:         looseString(m["description"]),
		Budget:              looseString(m["budget"]),
		Deadline:            looseString(m["deadline"]),
		Notes:               looseString(m["notes"]),
	}
}

// DecodeDocuments normalizes a raw documents blob. Entries without a usable
// id are dropped; all other fields default. A nil or malformed blob decodes
// to an empty (non-nil) list, meaning "fetched, no documents".
func DecodeDocuments(raw json.RawMessage) []Document {
	docs := []Document{}

	var entries []map[string]any
	if len(raw) == 0 || json.Unmarshal(raw, &entries) != nil {
		return docs
	}

	for _, e := range entries {
		id := looseString(e["id"])
		if id == "" {
			continue
		}
		docs = append(docs, Document{
			ID:         id,
			Name:       looseString(e["name"]),
			Type:       looseString(e["type"]),
			Size:       looseInt64(e["size"]),
			UploadedAt: looseString(e["uploadedAt"]),
			PreviewURL: looseString(e["previewUrl"]),
			Content:    looseString(e["content"]),
		})
	}

	return docs
}

func looseString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s := looseString(e); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

func looseInt64(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
