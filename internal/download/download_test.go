package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestSave_WritesDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("document-bytes"))
	}))
	t.Cleanup(server.Close)

	dir := filepath.Join(t.TempDir(), "downloads")
	path, err := Save(context.Background(), server.URL, "invoice_1.docx", dir)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if path != filepath.Join(dir, "invoice_1.docx") {
		t.Fatalf("path = %q, want file under %q", path, dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "document-bytes" {
		t.Fatalf("content = %q, want document-bytes", data)
	}
}

func TestSave_RejectsUnsafeFilenames(t *testing.T) {
	for _, name := range []string{"", "  ", "../../etc/passwd", "a/b.docx", "..", "."} {
		if _, err := Save(context.Background(), "http://127.0.0.1:1", name, t.TempDir()); err == nil {
			t.Errorf("Save accepted unsafe filename %q", name)
		}
	}
}

func TestSave_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	if _, err := Save(context.Background(), server.URL, "doc.docx", dir); err == nil {
		t.Fatalf("Save returned nil error for 404 response")
	}
	if _, err := os.Stat(filepath.Join(dir, "doc.docx")); !os.IsNotExist(err) {
		t.Fatalf("file was created despite failed fetch")
	}
}
