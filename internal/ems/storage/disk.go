// Package storage keeps uploaded employee documents on local disk.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrEmptyFile       = errors.New("file not uploaded")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
)

// allowed maps accepted extensions to the content types they may sniff as.
var allowed = map[string][]string{
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
	".png":  {"image/png"},
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword", "application/x-ole-storage"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
}

// FileStore persists an uploaded file and returns the path it is served from.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

type DiskStore struct {
	Dir      string
	MaxBytes int64

	now func() time.Time
}

func NewDiskStore(dir string, maxBytes int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir, MaxBytes: maxBytes, now: time.Now}, nil
}

// Save writes r as <base>-<unixmillis><ext> under Dir.
func (s *DiskStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(name))
	types, ok := allowed[ext]
	if !ok {
		return "", ErrUnsupportedType
	}

	data, err := readLimited(r, s.MaxBytes)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if !sniffMatches(mimetype.Detect(data), types) {
		return "", ErrUnsupportedType
	}

	base := sanitize(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	fileName := base + "-" + strconv.FormatInt(s.now().UnixMilli(), 10) + filepath.Ext(name)
	path := filepath.Join(s.Dir, fileName)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return filepath.ToSlash(path), nil
}

func readLimited(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		return io.ReadAll(r)
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if n > max {
		return nil, ErrTooLarge
	}
	return buf.Bytes(), nil
}

// sniffMatches walks the detected type and its parents.
func sniffMatches(mt *mimetype.MIME, types []string) bool {
	for m := mt; m != nil; m = m.Parent() {
		for _, t := range types {
			if m.Is(t) {
				return true
			}
		}
	}
	return false
}

func sanitize(base string) string {
	base = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ' ':
			return '_'
		case r < 0x20:
			return -1
		}
		return r
	}, base)
	if base == "" || base == "." || base == ".." {
		return "file"
	}
	return base
}
