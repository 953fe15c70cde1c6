package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload is one stored audio file, keyed by a generated identifier so each
// request cleans up exactly its own file.
type Upload struct {
	ID          string
	Path        string
	Filename    string
	ContentType string
	Size        int64
}

type UploadStore struct {
	dir      string
	maxBytes int64
}

func NewUploadStore(dir string, maxBytes int64) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &UploadStore{dir: dir, maxBytes: maxBytes}, nil
}

// Save writes the uploaded file under a uuid-based name, enforcing the size
// limit while copying.
func (s *UploadStore) Save(file multipart.File, header *multipart.FileHeader) (Upload, error) {
	if s.maxBytes > 0 && header.Size > s.maxBytes {
		return Upload{}, fmt.Errorf("file exceeds maximum size of %d bytes", s.maxBytes)
	}

	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(header.Filename))
	path := filepath.Join(s.dir, id+ext)

	out, err := os.Create(path)
	if err != nil {
		return Upload{}, fmt.Errorf("create upload file: %w", err)
	}

	limit := io.Reader(file)
	if s.maxBytes > 0 {
		limit = io.LimitReader(file, s.maxBytes+1)
	}

	written, err := io.Copy(out, limit)
	if err != nil {
		out.Close()
		os.Remove(path)
		return Upload{}, fmt.Errorf("write upload file: %w", err)
	}
	if s.maxBytes > 0 && written > s.maxBytes {
		out.Close()
		os.Remove(path)
		return Upload{}, fmt.Errorf("file exceeds maximum size of %d bytes", s.maxBytes)
	}

	if err := out.Close(); err != nil {
		os.Remove(path)
		return Upload{}, fmt.Errorf("close upload file: %w", err)
	}

	return Upload{
		ID:          id,
		Path:        path,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        written,
	}, nil
}

// Remove deletes the stored file for one upload.
func (s *UploadStore) Remove(u Upload) error {
	if err := os.Remove(u.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload %s: %w", u.ID, err)
	}
	return nil
}
