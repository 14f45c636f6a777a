package dto

type AttachmentDTO struct {
	ID          uint64 `json:"id"`
	Kind        string `json:"kind"`
	OwnerID     uint64 `json:"owner_id"`
	Bucket      string `json:"bucket"`
	FileName    string `json:"file_name"`
	MimeType    string `json:"mime_type"`
	SizeBytes   int64  `json:"size_bytes"`
	DownloadURL string `json:"download_url"`
	CreatedAt   string `json:"created_at"`
}
