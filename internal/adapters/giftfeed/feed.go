package giftfeed

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"barkday/internal/domain/gifts"
	"barkday/internal/platform/httpclient"
)

// HTTPFeed baja el catálogo de una URL en cada llamada (sin cache propio;
// para eso está RedisCache).
type HTTPFeed struct {
	url    string
	client *httpclient.Client
}

func NewHTTPFeed(url string, timeout time.Duration) *HTTPFeed {
	return &HTTPFeed{
		url:    strings.TrimSpace(url),
		client: httpclient.New(timeout),
	}
}

func (f *HTTPFeed) Catalog(ctx context.Context) ([]gifts.Gift, error) {
	b, err := f.client.Get(ctx, f.url)
	if err != nil {
		return nil, fmt.Errorf("giftfeed: %w", err)
	}
	items, err := gifts.DecodeCatalog(b)
	if err != nil {
		return nil, fmt.Errorf("giftfeed: decode %s: %w", f.url, err)
	}
	return items, nil
}

// FileFeed lee el catálogo de un archivo local (dev, tests, mirrors).
type FileFeed struct {
	path string
}

func NewFileFeed(path string) *FileFeed {
	return &FileFeed{path: strings.TrimSpace(path)}
}

func (f *FileFeed) Catalog(ctx context.Context) ([]gifts.Gift, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("giftfeed: %w", err)
	}
	items, err := gifts.DecodeCatalog(b)
	if err != nil {
		return nil, fmt.Errorf("giftfeed: decode %s: %w", f.path, err)
	}
	return items, nil
}
