package domain

import "time"

// MedicalDocument is a file stored in the medical records service.
type MedicalDocument struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	SizeBytes   int64     `json:"size_bytes"`
	URL         string    `json:"url"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
