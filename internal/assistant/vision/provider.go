// Package vision answers natural-language queries about images using
// vision-capable models.
package vision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// QueryRequest pairs an on-disk image with a user question about it.
type QueryRequest struct {
	ImagePath string `json:"image_path"`
	Query     string `json:"query"`
}

// QueryResult holds the model's answer.
type QueryResult struct {
	Content string `json:"content"`
	Model   string `json:"model,omitempty"`
}

// Provider is the interface for vision+language backends.
type Provider interface {
	Answer(ctx context.Context, req QueryRequest) (*QueryResult, error)
	Name() string
}

// readImage loads the image and resolves its mime type from the extension.
func readImage(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read image file: %w", err)
	}
	return data, mimeFromExtension(filepath.Ext(path)), nil
}

func mimeFromExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
