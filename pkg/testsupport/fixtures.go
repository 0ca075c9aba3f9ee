package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/field"
	"github.com/goliatone/go-formschema/pkg/translation"
)

// LoadTree reads a field definition fixture and builds its tree. Failures
// abort the test.
func LoadTree(t *testing.T, path string) *field.Tree {
	t.Helper()

	tree, err := LoadTreeFromPath(path)
	if err != nil {
		t.Fatalf("load tree: %v", err)
	}
	return tree
}

// LoadTreeFromPath returns a Tree without requiring testing.T so callers can
// wire fixtures in setup functions.
func LoadTreeFromPath(path string) (*field.Tree, error) {
	if path == "" {
		return nil, errors.New("testsupport: definition path is required")
	}
	tree, err := field.LoadFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("testsupport: %w", err)
	}
	return tree, nil
}

// LoadCatalog reads every catalog file under dir.
func LoadCatalog(t *testing.T, dir string, opts ...translation.CatalogOption) *translation.Catalog {
	t.Helper()

	catalog, err := translation.LoadCatalogFS(os.DirFS(dir), opts...)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return catalog
}

// AssertGoldenJSON marshals value with two-space indentation and compares it
// with the golden file at path. With UPDATE_GOLDENS set the golden is
// rewritten instead.
func AssertGoldenJSON(t *testing.T, path string, value any) {
	t.Helper()

	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	payload = append(payload, '\n')
	if WriteMaybeGolden(t, path, payload) {
		return
	}
	want := MustReadGoldenString(t, path)
	if diff := CompareGolden(want, string(payload)); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
