package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BruksfildServices01/careflow-api/internal/config"
)

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"report.pdf":            "report.pdf",
		"../../etc/passwd":      "passwd",
		`..\..\windows\sys.ini`: "sys.ini",
		"my scan (1).png":       "my_scan__1_.png",
		"..":                    "upload",
		"":                      "upload",
		".hidden":               "hidden",
	}
	for in, want := range tests {
		if got := SanitizeName(in); got != want {
			t.Errorf("SanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewKeyHasNoTraversal(t *testing.T) {
	key := NewKey("65a1b2c3d4e5f6a7b8c9d0e1", "../../secret/../x.pdf")

	parts := strings.Split(key, "/")
	if len(parts) != 2 {
		t.Fatalf("expected owner/name, got %q", key)
	}
	if parts[0] != "65a1b2c3d4e5f6a7b8c9d0e1" || !strings.HasSuffix(parts[1], "_x.pdf") {
		t.Fatalf("unexpected key %q", key)
	}
	if strings.Contains(key, "..") {
		t.Fatalf("key contains traversal: %q", key)
	}
}

func TestLocalStorePut(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	key := NewKey("owner", "lab.png")
	if err := s.Put(context.Background(), key, "image/png", bytes.NewReader([]byte("png")), 3); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	if err != nil || string(b) != "png" {
		t.Fatalf("unexpected file: %q %v", b, err)
	}

	if err := s.Put(context.Background(), "../escape", "", bytes.NewReader(nil), 0); err == nil {
		t.Fatal("expected escape to be rejected")
	}
}

func TestNewSelectsBackend(t *testing.T) {
	if _, err := New(&config.Config{UploadBackend: "local", UploadDir: t.TempDir()}); err != nil {
		t.Fatal(err)
	}
	if _, err := New(&config.Config{UploadBackend: "s3"}); err == nil {
		t.Fatal("expected missing bucket error")
	}
	if _, err := New(&config.Config{UploadBackend: "ftp"}); err == nil {
		t.Fatal("expected unknown backend error")
	}
	if s, err := New(&config.Config{UploadBackend: "s3", S3: config.S3Config{Bucket: "b", Region: "us-east-1"}}); err != nil || s == nil {
		t.Fatalf("s3 store: %v", err)
	}
}
