package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/andybalholm/brotli"

	"studyhub/internal/domain"
	"studyhub/internal/providers"
)

// WriteCatalogJSON writes courses as the JSON array the catalog providers read.
func WriteCatalogJSON(w io.Writer, courses []domain.Course) error {
	if courses == nil {
		courses = []domain.Course{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(courses)
}

// WriteCatalogJSONFile writes the catalog to path, brotli-compressed when
// path ends in ".br", so the file can be fed back through -catalog.
func WriteCatalogJSONFile(path string, courses []domain.Course) (err error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: mkdir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("export: close %s: %w", path, cerr)
		}
	}()

	if !providers.IsBrotli(path) {
		if err := WriteCatalogJSON(f, courses); err != nil {
			return fmt.Errorf("export: write catalog: %w", err)
		}
		return nil
	}

	bw := brotli.NewWriter(f)
	if err := WriteCatalogJSON(bw, courses); err != nil {
		return fmt.Errorf("export: write catalog: %w", err)
	}
	if err := bw.Close(); err != nil {
		return fmt.Errorf("export: flush brotli: %w", err)
	}
	return nil
}
