package upload

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL prefixes the URLs returned by Placeholder
const DefaultBaseURL = "blob:catalog"

// Uploader turns image data into a URL that can be stored in a product
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}

// Placeholder stands in for a real image host. It waits Delay, consumes the
// reader and hands back a unique URL without storing anything.
type Placeholder struct {
	Delay   time.Duration
	BaseURL string
}

// NewPlaceholder creates a placeholder uploader
func NewPlaceholder(baseURL string, delay time.Duration) *Placeholder {
	return &Placeholder{Delay: delay, BaseURL: baseURL}
}

func (p *Placeholder) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("no image data for %q", name)
	}

	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", fmt.Errorf("failed to read image %q: %w", name, err)
	}

	base := p.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	ext := strings.ToLower(filepath.Ext(name))
	return strings.TrimSuffix(base, "/") + "/" + uuid.NewString() + ext, nil
}
