// Package filestorage stores uploaded files on the local filesystem
package filestorage

import "mime/multipart"

// FileStorage abstracts where uploaded files end up
type FileStorage interface {
	// SaveFile stores the upload under the given subdirectory and returns
	// the public URL path of the stored file.
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a previously stored file by its URL path
	DeleteFile(fileURL string) error
}
