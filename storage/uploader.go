// Package storage persists generated ticket documents through the app
// filesystem (local volume or S3, per the app settings) and derives the
// public URL they are served under.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/pocketbase/pocketbase/core"
)

type FileStore struct {
	app           core.App
	publicBaseURL string
	prefix        string
}

func NewFileStore(app core.App, publicBaseURL, prefix string) *FileStore {
	return &FileStore{
		app:           app,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		prefix:        prefix,
	}
}

// DocumentKey derives the deterministic object key for a ticket's document.
// Re-generating a document for the same ticket overwrites the same key.
func (s *FileStore) DocumentKey(ticketID string) string {
	return path.Join(s.prefix, fmt.Sprintf("ticket-%s.png", ticketID))
}

// Upload writes content under key (upsert on conflict) and returns the
// durable public URL.
func (s *FileStore) Upload(ctx context.Context, key string, content []byte) (string, error) {
	fsys, err := s.app.NewFilesystem()
	if err != nil {
		return "", fmt.Errorf("open filesystem: %w", err)
	}
	defer fsys.Close()

	if err := fsys.Upload(content, key); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return s.PublicURL(key), nil
}

// Fetch reads back a previously uploaded object, e.g. for mail attachments.
func (s *FileStore) Fetch(ctx context.Context, key string) ([]byte, error) {
	fsys, err := s.app.NewFilesystem()
	if err != nil {
		return nil, fmt.Errorf("open filesystem: %w", err)
	}
	defer fsys.Close()

	r, err := fsys.GetFile(key)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}
	defer r.Close()

	return io.ReadAll(r)
}

func (s *FileStore) PublicURL(key string) string {
	return s.publicBaseURL + "/" + key
}
