package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("with explicit path", func(t *testing.T) {
		dir, err := New("/tmp/test-reflow")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.Path() != "/tmp/test-reflow" {
			t.Errorf("expected path /tmp/test-reflow, got %s", dir.Path())
		}
	})

	t.Run("with empty path uses default", func(t *testing.T) {
		dir, err := New("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, DefaultDirName)
		if dir.Path() != expected {
			t.Errorf("expected path %s, got %s", expected, dir.Path())
		}
	})
}

func TestDir_Paths(t *testing.T) {
	dir, _ := New("/tmp/test-reflow")

	t.Run("ExportsDir", func(t *testing.T) {
		expected := "/tmp/test-reflow/exports"
		if dir.ExportsDir() != expected {
			t.Errorf("expected %s, got %s", expected, dir.ExportsDir())
		}
	})

	t.Run("ConfigPath", func(t *testing.T) {
		expected := "/tmp/test-reflow/config.yaml"
		if dir.ConfigPath() != expected {
			t.Errorf("expected %s, got %s", expected, dir.ConfigPath())
		}
	})

	t.Run("ExportPath", func(t *testing.T) {
		expected := "/tmp/test-reflow/exports/book.txt"
		if got := dir.ExportPath("/some/where/book.pdf"); got != expected {
			t.Errorf("expected %s, got %s", expected, got)
		}
	})

	t.Run("ExportPath without extension", func(t *testing.T) {
		expected := "/tmp/test-reflow/exports/notes.txt"
		if got := dir.ExportPath("notes"); got != expected {
			t.Errorf("expected %s, got %s", expected, got)
		}
	})
}

func TestDir_EnsureExists(t *testing.T) {
	// Use a temp directory
	tmpDir := t.TempDir()
	reflowDir := filepath.Join(tmpDir, "reflow-test")

	dir, err := New(reflowDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Directory shouldn't exist yet
	if dir.Exists() {
		t.Error("directory should not exist before EnsureExists")
	}

	// Create it
	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	// Now it should exist
	if !dir.Exists() {
		t.Error("directory should exist after EnsureExists")
	}

	// Exports directory should also exist
	if _, err := os.Stat(dir.ExportsDir()); os.IsNotExist(err) {
		t.Error("exports directory should exist after EnsureExists")
	}
}

func TestDir_ConfigExists(t *testing.T) {
	tmpDir := t.TempDir()
	dir, _ := New(tmpDir)

	// Config doesn't exist
	if dir.ConfigExists() {
		t.Error("config should not exist initially")
	}

	// Create a config file
	configPath := dir.ConfigPath()
	if err := os.WriteFile(configPath, []byte("test: true\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Now it should exist
	if !dir.ConfigExists() {
		t.Error("config should exist after creation")
	}
}
