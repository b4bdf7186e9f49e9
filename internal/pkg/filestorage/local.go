package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/itcommunity/platform/internal/pkg/logger"
)

// LocalStorage saves files under a base directory and exposes them through a
// base URL prefix.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a LocalStorage rooted at basePath. The directory is
// created when missing.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// SaveFile stores the upload under subPath with a generated filename and
// returns its URL path.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dirPath := ls.basePath
	if subPath != "" {
		dirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	// Unique name to prevent collisions
	filename := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	dstPath := filepath.Join(dirPath, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}

	urlPath := filename
	if subPath != "" {
		urlPath = subPath + "/" + filename
	}
	return ls.baseURL + "/" + urlPath, nil
}

// URL returns the public URL path a stored filename is served under
func (ls *LocalStorage) URL(filename string) string {
	return ls.baseURL + "/" + filename
}

// Path maps a stored file URL back to its location on disk
func (ls *LocalStorage) Path(fileURL string) string {
	relative := strings.TrimPrefix(fileURL, ls.baseURL+"/")
	return filepath.Join(ls.basePath, filepath.Clean("/"+relative))
}

// DeleteFile removes a stored file by its URL path. Missing files are not an
// error.
func (ls *LocalStorage) DeleteFile(fileURL string) error {
	if fileURL == "" {
		return nil
	}

	relative := strings.TrimPrefix(fileURL, ls.baseURL+"/")
	if relative == fileURL && ls.baseURL != "" {
		return fmt.Errorf("file url %s is outside storage base", fileURL)
	}

	fullPath := filepath.Join(ls.basePath, filepath.Clean("/"+relative))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
