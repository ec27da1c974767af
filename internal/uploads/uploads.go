// Package uploads stores visitor-submitted photos on disk.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// AllowedExtensions lists the accepted photo file extensions (lowercase,
// without the dot).
var AllowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"webp": true,
}

// maxNameAttempts bounds the search for a free timestamp-prefixed name.
const maxNameAttempts = 100

// Store saves photos in a single directory under collision-free names of the
// form "{epoch}_{sanitized-name}".
type Store struct {
	dir string
	now func() time.Time
}

// New creates the upload directory if needed and returns a Store for it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Dir returns the upload directory.
func (s *Store) Dir() string { return s.dir }

// FS returns the upload directory as a read-only file system.
func (s *Store) FS() fs.FS { return os.DirFS(s.dir) }

// Extension returns the lowercase extension of name without the dot.
func Extension(name string) string {
	ext := filepath.Ext(name)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// AllowedFile reports whether name carries an accepted photo extension.
func AllowedFile(name string) bool {
	return AllowedExtensions[Extension(name)]
}

// SanitizeFilename reduces a client-supplied file name to a safe ASCII base
// name: directories are dropped, accents are stripped, whitespace becomes
// underscores and anything outside [A-Za-z0-9._-] is removed. The extension
// is kept and lowercased; an empty stem becomes "photo".
func SanitizeFilename(name string) string {
	// Clients on Windows send backslash-separated paths.
	name = strings.ReplaceAll(name, `\`, "/")
	name = name[strings.LastIndex(name, "/")+1:]

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	stem = cleanPart(stem)
	ext = cleanPart(strings.ToLower(strings.TrimPrefix(ext, ".")))

	if stem == "" {
		stem = "photo"
	}
	if ext == "" {
		return stem
	}
	return stem + "." + ext
}

func cleanPart(s string) string {
	var b strings.Builder
	underscore := false
	for _, r := range norm.NFKD.String(s) {
		switch {
		case r > unicode.MaxASCII:
			continue
		case unicode.IsSpace(r):
			if !underscore && b.Len() > 0 {
				b.WriteByte('_')
				underscore = true
			}
			continue
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
			underscore = r == '_'
		}
	}
	return strings.Trim(b.String(), "._")
}

// Save writes r under a new timestamp-prefixed name derived from original
// and returns the stored file name (not a path).
func (s *Store) Save(original string, r io.Reader) (string, error) {
	safe := SanitizeFilename(original)
	epoch := s.now().Unix()

	for i := 0; i < maxNameAttempts; i++ {
		name := strconv.FormatInt(epoch+int64(i), 10) + "_" + safe
		f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating upload: %w", err)
		}

		if _, err := io.Copy(f, r); err != nil {
			f.Close()
			os.Remove(f.Name())
			return "", fmt.Errorf("writing upload: %w", err)
		}
		if err := f.Close(); err != nil {
			os.Remove(f.Name())
			return "", fmt.Errorf("closing upload: %w", err)
		}
		return name, nil
	}

	return "", fmt.Errorf("creating upload: no free name for %q", safe)
}

// Remove deletes a stored photo. A missing file is not an error.
func (s *Store) Remove(name string) error {
	base := filepath.Base(name)
	if base != name || name == "" || name == "." || name == ".." {
		return fmt.Errorf("removing upload: invalid name %q", name)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing upload: %w", err)
	}
	return nil
}
