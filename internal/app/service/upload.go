package service

import "io"

// FileUpload is the in-flight shape of a multipart file on its way to the
// blob store.
type FileUpload struct {
	Reader      io.Reader
	ContentType string
	Filename    string
	Size        int64
}
