package remote

import (
	"bytes"
	"context"
	"path"

	"studyhub/internal/domain"
	"studyhub/internal/providers"
	"studyhub/internal/sftpclient"
)

// Provider downloads the catalog file from an SFTP server.
type Provider struct {
	Config sftpclient.Config
	Path   string
}

func (p Provider) Name() string { return "sftp:" + path.Base(p.Path) }

func (p Provider) ListCourses(ctx context.Context) ([]domain.Course, error) {
	b, err := sftpclient.Download(ctx, p.Config, p.Path)
	if err != nil {
		return nil, err
	}
	return providers.Decode(bytes.NewReader(b), providers.IsBrotli(p.Path))
}

var _ providers.CatalogProvider = Provider{}
