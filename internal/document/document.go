// Package document reads reference documents. Every call goes back to the
// underlying store; nothing is cached between lookups.
package document

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when the configured path does not name a readable
// document.
var ErrNotFound = errors.New("reference document not found")

// Reader fetches the full text of a reference document.
type Reader interface {
	Read(ctx context.Context, path string) (string, error)
}

// Router sends s3:// paths to the object store and everything else to the
// vault filesystem.
type Router struct {
	Files   Reader
	Objects Reader
}

func (r *Router) Read(ctx context.Context, path string) (string, error) {
	if IsS3Path(path) {
		if r.Objects == nil {
			return "", errors.New("s3 reference documents are not configured")
		}
		return r.Objects.Read(ctx, path)
	}
	return r.Files.Read(ctx, path)
}

// IsS3Path reports whether path uses the s3:// scheme.
func IsS3Path(path string) bool {
	return strings.HasPrefix(strings.TrimSpace(path), "s3://")
}
