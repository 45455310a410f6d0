package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPrintHelpers(t *testing.T) {
	var buf bytes.Buffer
	Output = &buf
	defer func() { Output = os.Stdout }()

	PrintSuccess("added %s", "A1")
	PrintError("failed %d", 2)
	PrintInfo("info")
	PrintWarning("careful")

	out := buf.String()
	for _, want := range []string{"✓ added A1", "✗ failed 2", "ℹ info", "⚠ careful"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output %q", want, out)
		}
	}
}

func TestPrintField(t *testing.T) {
	var buf bytes.Buffer
	PrintField(&buf, "SKU", "A1")
	if !strings.Contains(buf.String(), "SKU:") || !strings.HasSuffix(buf.String(), " A1\n") {
		t.Errorf("Unexpected field line %q", buf.String())
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yml")

	if FileExists(path) {
		t.Error("File should not exist yet")
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if !FileExists(path) {
		t.Error("File should exist")
	}
}
