package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHomeMediaDir(t *testing.T) {
	dir, err := HomeMediaDir()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.HasSuffix(dir, MediaDirName) {
		t.Errorf("Expected media dir to end with %q, got %q", MediaDirName, dir)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("Expected home directory, got %v", err)
	}
	if !strings.HasPrefix(dir, home) {
		t.Errorf("Expected media dir under home %q, got %q", home, dir)
	}
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "nested", "media")

	if err := CreateDirectoryIfNotExists(target); err != nil {
		t.Fatalf("Expected no error creating directory, got %v", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("Expected directory to exist, got %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected a directory")
	}

	// Second call is a no-op.
	if err := CreateDirectoryIfNotExists(target); err != nil {
		t.Errorf("Expected no error for existing directory, got %v", err)
	}
}

func TestOpenFileInManager_MissingFile(t *testing.T) {
	err := OpenFileInManager(filepath.Join(t.TempDir(), "missing.mp4"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}
