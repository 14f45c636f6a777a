package config

// BucketPolicy - правила хранилища вложений.
type BucketPolicy struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
	Public           bool // публичные бакеты отдаются статикой без токена
}

const (
	BucketDeviceFiles       = "device-files"
	BucketInterventionFiles = "intervention-files"
	BucketDocuments         = "documents"
	BucketDevicePhotos      = "device-photos"
)

var imageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif", "image/heic"}

var Buckets = map[string]BucketPolicy{
	BucketDeviceFiles: {
		AllowedMimeTypes: append(append([]string{}, imageTypes...), "application/pdf"),
		MaxSizeMB:        20,
	},
	BucketInterventionFiles: {
		AllowedMimeTypes: append(append([]string{}, imageTypes...), "application/pdf", "text/plain"),
		MaxSizeMB:        20,
	},
	BucketDocuments: {
		AllowedMimeTypes: []string{"application/pdf"},
		MaxSizeMB:        10,
	},
	BucketDevicePhotos: {
		AllowedMimeTypes: imageTypes,
		MaxSizeMB:        10,
		Public:           true,
	},
}
