package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/rigid2d/physics"
)

func TestLoadPhysicsSpecEmbedded(t *testing.T) {
	spec, err := LoadPhysicsSpec()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Grid != (physics.GridConfig{Rows: 4, Cols: 4}) {
		t.Fatalf("unexpected grid %+v", spec.Grid)
	}
	if spec.Gravity.Y != 980 || spec.Substeps != 1 || spec.Resolver != "rotation" {
		t.Fatalf("unexpected spec %+v", spec)
	}
}

func TestLoadPhysicsSpecFile(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"valid", "grid: {rows: 2, cols: 8}\nresolver: linear\nsubsteps: 4\n", nil},
		{"grid_out_of_range", "grid: {rows: 0, cols: 8}\n", physics.ErrInvalidGridConfig},
		{"unknown_resolver", "grid: {rows: 2, cols: 2}\nresolver: verlet\n", ErrInvalidSpec},
		{"negative_substeps", "grid: {rows: 2, cols: 2}\nsubsteps: -1\n", ErrInvalidSpec},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			if err := os.WriteFile(path, []byte(tc.doc), 0o644); err != nil {
				t.Fatal(err)
			}
			spec, err := LoadPhysicsSpecFile(path)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if spec.Grid.Cols != 8 || spec.Resolver != "linear" || spec.Substeps != 4 {
				t.Fatalf("unexpected spec %+v", spec)
			}
		})
	}
}

func TestLoadPhysicsSpecFileMissing(t *testing.T) {
	if _, err := LoadPhysicsSpecFile(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a wrapped not-exist error, got %v", err)
	}
}

func TestCleanPrefabPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"physics.yaml", "physics.yaml"},
		{"prefabs/physics.yaml", "physics.yaml"},
	}
	for _, tc := range tests {
		if got := cleanPrefabPath(tc.in); got != tc.want {
			t.Fatalf("cleanPrefabPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWatcherReportsSpecWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, PhysicsFile)
	if err := os.WriteFile(target, []byte("grid: {rows: 1, cols: 1}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if name != target {
			t.Fatalf("expected only yaml events, got %q", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for %s", target)
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatalf("Events should be closed")
	}
}
