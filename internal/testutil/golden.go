package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// UpdateEnv names the environment variable that rewrites golden files.
const UpdateEnv = "GOLDEN_UPDATE"

// GoldenPath returns the golden file path for name, relative to the test's package.
func GoldenPath(name string) string {
	return filepath.Join("testdata", name+".golden")
}

// Golden compares output against testdata/<name>.golden.
// If GOLDEN_UPDATE is set, the golden file is rewritten instead.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	path := GoldenPath(name)

	if os.Getenv(UpdateEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(path, got, 0644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nGot:\n%s", path, err, got)
	}

	if !bytes.Equal(got, want) {
		t.Errorf("output mismatch for %s (rerun with %s=1 to accept)\nWant:\n%s\nGot:\n%s", name, UpdateEnv, want, got)
	}
}
