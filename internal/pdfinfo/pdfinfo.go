// Package pdfinfo extracts file-level metadata from source PDFs: byte size,
// SHA-256 content hash and page count. Rasterization is out of scope; page
// previews come from an external renderer.
package pdfinfo

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Info is the metadata stored per source file.
type Info struct {
	Bytes     int64
	SHA256    string
	PageCount int
}

// Extract reads metadata for one PDF.
func Extract(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("stat %s: %w", path, err)
	}

	sum, err := hashFile(path)
	if err != nil {
		return Info{}, err
	}

	pages, err := api.PageCountFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("page count %s: %w", path, err)
	}

	return Info{
		Bytes:     fi.Size(),
		SHA256:    sum,
		PageCount: pages,
	}, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
