package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/neoschema/internal/config"
	"github.com/roach88/neoschema/internal/ir"
	"github.com/roach88/neoschema/internal/testutil"
)

// createTestStore creates a new store in a temp dir with a
// deterministic clock.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithClock(testutil.NewDeterministicClock()))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestBuild creates a build of sdl with the default config.
func createTestBuild(sdl string) Build {
	return Build{
		SchemaHash: ir.SchemaHash(sdl),
		Config:     config.Default(),
		SDL:        "# augmented\n" + sdl,
	}
}
