package blob

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// FileResolver converts a caller-supplied local file reference into raw
// bytes suitable for upload. File picking and permission handling belong to
// the caller's platform, not here.
type FileResolver interface {
	Resolve(uri string) (io.ReadCloser, int64, error)
}

type localFileResolver struct{}

func NewFileResolver() FileResolver {
	return localFileResolver{}
}

func (localFileResolver) Resolve(uri string) (io.ReadCloser, int64, error) {
	path := strings.TrimPrefix(uri, "file://")

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open local image %q: %w", uri, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat local image %q: %w", uri, err)
	}
	return f, info.Size(), nil
}
