// Package page handles page identity: the sequential numeric ID encoded in
// each source filename, and the canonical file id derived from it.
package page

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

// DefaultIDPattern matches the first run of 4-10 digits in a filename.
const DefaultIDPattern = `(\d{4,10})`

// Identity is a parsed page identity.
type Identity struct {
	ID     int64  // sequential numeric ID from the filename
	FileID string // canonical id, stable across reingests
	Path   string // source file path
}

// Parser extracts page identities from filenames.
type Parser struct {
	re *regexp.Regexp
}

// NewParser compiles an identity pattern. The pattern must contain exactly
// one capture group holding the numeric ID.
func NewParser(pattern string) (*Parser, error) {
	if pattern == "" {
		pattern = DefaultIDPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile id pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("id pattern %q must have exactly one capture group, has %d", pattern, re.NumSubexp())
	}
	return &Parser{re: re}, nil
}

// Parse extracts the identity from a file path. A filename that does not
// match the pattern is a malformed identity and is reported as an error,
// never silently skipped.
func (p *Parser) Parse(path string) (Identity, error) {
	name := filepath.Base(path)
	m := p.re.FindStringSubmatch(name)
	if m == nil {
		return Identity{}, fmt.Errorf("filename %q does not match id pattern", name)
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Identity{}, fmt.Errorf("parse id from %q: %w", name, err)
	}
	return Identity{
		ID:     id,
		FileID: FormatFileID(id),
		Path:   path,
	}, nil
}

// FormatFileID returns the canonical file id for a numeric page ID.
func FormatFileID(id int64) string {
	return fmt.Sprintf("P%08d", id)
}
