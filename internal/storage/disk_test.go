package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDiskUploader(t *testing.T) {
	dir := t.TempDir()
	uploader, err := NewDiskUploader(dir, "http://localhost:8080/proofs/")
	if err != nil {
		t.Fatalf("NewDiskUploader failed: %v", err)
	}

	url, err := uploader.Upload(context.Background(), "delivery_abc_1.jpg", []byte("jpeg"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if url != "http://localhost:8080/proofs/delivery_abc_1.jpg" {
		t.Errorf("Unexpected url: %s", url)
	}

	content, err := os.ReadFile(filepath.Join(dir, "delivery_abc_1.jpg"))
	if err != nil {
		t.Fatalf("Failed to read stored proof: %v", err)
	}
	if string(content) != "jpeg" {
		t.Errorf("Unexpected content: %q", content)
	}
}

func TestDiskUploader_StripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	uploader, err := NewDiskUploader(dir, "http://localhost:8080/proofs")
	if err != nil {
		t.Fatalf("NewDiskUploader failed: %v", err)
	}

	if _, err := uploader.Upload(context.Background(), "../escape.jpg", []byte("x")); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "escape.jpg")); err != nil {
		t.Errorf("Expected the file inside the storage directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.jpg")); err == nil {
		t.Error("The file escaped the storage directory")
	}
}
