package entities

import "refurb-tracker/pkg/types"

// Вид вложения определяет таблицу и колонку владельца.
const (
	FileKindDevice       = "device"
	FileKindIntervention = "intervention"
)

// Attachment - строка device_files или intervention_files.
type Attachment struct {
	ID        uint64 `json:"id"`
	Kind      string `json:"kind" db:"-"`
	OwnerID   uint64 `json:"owner_id"` // device_id или intervention_id
	Bucket    string `json:"bucket"`
	FileName  string `json:"file_name"`
	FilePath  string `json:"file_path"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`

	types.BaseEntity
}
