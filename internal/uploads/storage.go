package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const fallbackName = "upload.bin"

// Storage writes uploaded photos to a local directory served under a public URL prefix.
type Storage struct {
	dir       string
	urlPrefix string
}

// NewStorage creates dir when missing.
func NewStorage(dir, urlPrefix string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}
	return &Storage{dir: dir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

// Dir returns the directory files are written to.
func (s *Storage) Dir() string {
	return s.dir
}

// URLPrefix returns the public path files are served from.
func (s *Storage) URLPrefix() string {
	return s.urlPrefix
}

// Save stores one file as <prefix>_<uuid>_<name> and returns its public URL.
func (s *Storage) Save(fh *multipart.FileHeader, prefix string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := StoredName(prefix, uuid.NewString(), fh.Filename)
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}
	return path.Join(s.urlPrefix, name), nil
}

// SaveAll stores files in order and returns their URLs.
func (s *Storage) SaveAll(files []*multipart.FileHeader, prefix string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := s.Save(fh, prefix)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// StoredName builds the on-disk name. Path separators in the client name are flattened.
func StoredName(prefix, id, original string) string {
	name := SanitizeName(original)
	if prefix == "" {
		return id + "_" + name
	}
	return prefix + "_" + id + "_" + name
}

// SanitizeName strips directory components and leading dots from a client supplied file name.
func SanitizeName(original string) string {
	name := strings.NewReplacer("/", "_", `\`, "_", "\x00", "").Replace(original)
	name = strings.TrimLeft(strings.TrimSpace(name), ".")
	if name == "" {
		return fallbackName
	}
	return name
}
