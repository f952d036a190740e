package refdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"barkday/internal/domain/reference"
	"barkday/internal/platform/httpclient"
)

// Source entrega el documento crudo de cada tabla de referencia.
type Source interface {
	Fetch(ctx context.Context, kind reference.Kind) ([]byte, error)
	Name() string
}

// FileSource lee <Dir>/<kind>.json.
type FileSource struct {
	Dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: strings.TrimSpace(dir)}
}

func (s *FileSource) Fetch(ctx context.Context, kind reference.Kind) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filepath.Join(s.Dir, kind.FileName()))
	if err != nil {
		return nil, fmt.Errorf("refdata: read %s: %w", kind.FileName(), err)
	}
	return b, nil
}

func (s *FileSource) Name() string { return "file:" + s.Dir }

// HTTPSource baja <BaseURL>/<kind>.json sin cache.
type HTTPSource struct {
	client *httpclient.Client
}

func NewHTTPSource(baseURL string, timeout time.Duration) (*HTTPSource, error) {
	c, err := httpclient.NewWithBaseURL(strings.TrimSpace(baseURL), timeout)
	if err != nil {
		return nil, fmt.Errorf("refdata: %w", err)
	}
	if c.BaseURL == "" {
		return nil, fmt.Errorf("refdata: base url is required")
	}
	return &HTTPSource{client: c}, nil
}

func (s *HTTPSource) Fetch(ctx context.Context, kind reference.Kind) ([]byte, error) {
	b, err := s.client.Get(ctx, kind.FileName())
	if err != nil {
		return nil, fmt.Errorf("refdata: fetch %s: %w", kind.FileName(), err)
	}
	return b, nil
}

func (s *HTTPSource) Name() string { return "http:" + s.client.BaseURL }
