package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"studyhub/internal/domain"
	"studyhub/internal/providers"
)

// Provider reads the catalog from a local JSON file; "*.br" files are
// brotli-compressed JSON.
type Provider struct {
	Path string
}

func (p Provider) Name() string { return "file:" + filepath.Base(p.Path) }

func (p Provider) ListCourses(ctx context.Context) ([]domain.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, fmt.Errorf("file: open catalog: %w", err)
	}
	defer f.Close()

	return providers.Decode(f, providers.IsBrotli(p.Path))
}
