package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"photo.png":          "photo.png",
		"../../etc/passwd":   "_.._etc_passwd",
		`..\windows\sys.ini`: "_windows_sys.ini",
		"":                   "upload.bin",
		"...":                "upload.bin",
		".hidden":            "hidden",
		"a/b.jpg":            "a_b.jpg",
	}
	for in, want := range tests {
		if got := SanitizeName(in); got != want {
			t.Errorf("SanitizeName(%q) = %q, want %q", in, got, want)
		}
		if strings.ContainsAny(SanitizeName(in), `/\`) {
			t.Errorf("SanitizeName(%q) kept a path separator", in)
		}
	}
}

func TestStoredName(t *testing.T) {
	if got := StoredName("module", "abc", "a/b.png"); got != "module_abc_a_b.png" {
		t.Errorf("StoredName() = %q", got)
	}
	if got := StoredName("", "abc", "b.png"); got != "abc_b.png" {
		t.Errorf("StoredName() without prefix = %q", got)
	}
}

func TestStorage_SaveAll(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStorage(filepath.Join(dir, "nested"), "uploads/")
	if err != nil {
		t.Fatalf("NewStorage() error = %v", err)
	}

	files := multipartFiles(t, map[string]string{"../chair.png": "png-bytes", "table.jpg": "jpg-bytes"})
	urls, err := s.SaveAll(files, "furniture")
	if err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("SaveAll() returned %d urls, want 2", len(urls))
	}

	for i, url := range urls {
		if !strings.HasPrefix(url, "/uploads/furniture_") {
			t.Errorf("url = %q, want /uploads/furniture_ prefix", url)
		}
		name := strings.TrimPrefix(url, "/uploads/")
		if strings.Contains(name, "/") {
			t.Errorf("stored name %q escapes the uploads dir", name)
		}
		content, err := os.ReadFile(filepath.Join(s.Dir(), name))
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if !strings.HasSuffix(name, SanitizeName(files[i].Filename)) {
			t.Errorf("stored name %q does not end with the sanitized client name", name)
		}
		if len(content) == 0 {
			t.Errorf("stored file %q is empty", name)
		}
	}
	if urls[0] == urls[1] {
		t.Error("two uploads share a URL")
	}
}

func multipartFiles(t *testing.T, files map[string]string) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile("photos", name)
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte(content))
	}
	w.Close()

	req, err := http.NewRequest(http.MethodPost, "/", &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["photos"]
}
