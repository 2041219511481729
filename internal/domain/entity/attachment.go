package entity

// Attachment is an opaque reference to a blob in external storage.
// The engine and the API never open these; Size/Type come from the upload.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}
