// Package fs provides file-based storage for snapshots and extracted records.
package fs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/pulse"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
)

// Default locations relative to the data directory.
const (
	RawDir       = "raw_data"
	ProcessedDir = "processed_data"
	SnapshotFile = "web_data.html"
)

// Ensure SnapshotStore implements pulse.SnapshotStore at compile time.
var _ pulse.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore keeps the raw portal snapshot in a single file.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a store for the snapshot at path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Path returns the snapshot file path.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Save writes raw bytes to a temporary file and renames it over the snapshot.
func (s *SnapshotStore) Save(ctx context.Context, raw []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeAtomic(s.path, func(f *os.File) error {
		_, err := f.Write(raw)
		return err
	})
}

// Load reads and decodes the snapshot.
// Returns EMISSING if the file does not exist or holds only whitespace.
func (s *SnapshotStore) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", pulse.Errorf(pulse.EMISSING, "snapshot %s not found: run 'pulse fetch' first", s.path)
	}
	if err != nil {
		return "", err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", pulse.Errorf(pulse.EMISSING, "snapshot %s is empty: run 'pulse fetch' first", s.path)
	}

	return Decode(raw), nil
}

// Decode converts snapshot bytes to text. Valid UTF-8 is returned as is.
// Otherwise the charset declared by a <meta> tag is used, falling back to
// Windows-1252. Undecodable sequences become U+FFFD.
func Decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}

	enc, name, _ := charset.DetermineEncoding(raw, "")
	if name == "utf-8" {
		return strings.ToValidUTF8(string(raw), "\uFFFD")
	}

	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		// ISO-8859-1 maps every byte.
		out, _ = charmap.ISO8859_1.NewDecoder().Bytes(raw)
	}
	return strings.ToValidUTF8(string(out), "\uFFFD")
}

// writeAtomic creates the parent directories of path, writes a temporary
// file next to it and renames it into place.
func writeAtomic(path string, write func(f *os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
