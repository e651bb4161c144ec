package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

const exportContentType = "application/json"

// ObjectWriter stores an object under key.
type ObjectWriter interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
}

// ExportResult describes a finished export.
type ExportResult struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// ExportService writes a principal's articles to object storage as one JSON document.
type ExportService struct {
	articles ArticleLifecycle
	objects  ObjectWriter
	now      func() time.Time
}

func NewExportService(articles ArticleLifecycle, objects ObjectWriter) *ExportService {
	return &ExportService{articles: articles, objects: objects, now: time.Now}
}

// Export stores the principal's own articles and returns the object key.
func (s *ExportService) Export(ctx context.Context, principalID int64) (ExportResult, error) {
	articles, err := s.articles.List(ctx, principalID)
	if err != nil {
		return ExportResult{}, fmt.Errorf("list articles: %w", err)
	}

	data, err := json.Marshal(articles)
	if err != nil {
		return ExportResult{}, fmt.Errorf("encode articles: %w", err)
	}

	key := ExportKey(principalID, s.now())
	if err := s.objects.Put(ctx, key, bytes.NewReader(data), int64(len(data)), exportContentType); err != nil {
		return ExportResult{}, fmt.Errorf("upload export: %w", err)
	}
	return ExportResult{Key: key, Count: len(articles)}, nil
}

// ExportKey is the object key of an export taken at t.
func ExportKey(principalID int64, t time.Time) string {
	return fmt.Sprintf("exports/users/%d/articles-%d.json", principalID, t.UnixNano())
}
