// Package providers loads the static course catalog from its sources.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"

	"studyhub/internal/concurrency"
	"studyhub/internal/domain"
)

// CatalogProvider is one source of catalog records.
type CatalogProvider interface {
	Name() string
	ListCourses(ctx context.Context) ([]domain.Course, error)
}

// IsBrotli reports whether name carries the brotli ".br" suffix.
func IsBrotli(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".br")
}

// Decode reads a JSON array of courses, brotli-decompressing first when
// compressed is set.
func Decode(r io.Reader, compressed bool) ([]domain.Course, error) {
	if compressed {
		r = brotli.NewReader(r)
	}
	var courses []domain.Course
	dec := json.NewDecoder(r)
	if err := dec.Decode(&courses); err != nil {
		return nil, fmt.Errorf("providers: decode catalog: %w", err)
	}
	return courses, nil
}

// LoadAll runs every provider in parallel and concatenates their courses in
// provider order. The merged catalog is validated before it is returned;
// any provider error fails the whole load.
func LoadAll(ctx context.Context, list []CatalogProvider, opts concurrency.ParallelOptions) ([]domain.Course, error) {
	results, errs := concurrency.ProcessParallel(ctx, list, opts, func(ctx context.Context, _ int, p CatalogProvider) ([]domain.Course, error) {
		courses, err := p.ListCourses(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name(), err)
		}
		return courses, nil
	})
	if err := concurrency.FirstError(errs); err != nil {
		return nil, err
	}

	var all []domain.Course
	for _, courses := range results {
		all = append(all, courses...)
	}
	if err := domain.ValidateCatalog(all); err != nil {
		return nil, err
	}
	return all, nil
}
