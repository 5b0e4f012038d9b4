package models

// ImageCandidate is a fetched and validated image, ready for upload.
// Data holds the original downloaded bytes; decoding during validation
// is discarded and never re-encoded.
type ImageCandidate struct {
	URL      string
	Data     []byte
	MimeType string
}

// ProfileMetadata is the parsed content of a kind 0 profile event.
type ProfileMetadata struct {
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
}

// BestName returns the preferred human-readable name, or "" when the
// profile carries neither field.
func (m *ProfileMetadata) BestName() string {
	if m == nil {
		return ""
	}
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Name
}
