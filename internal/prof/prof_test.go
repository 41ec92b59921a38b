package prof_test

import (
	"os"
	"path/filepath"
	"testing"

	"kvd/internal/prof"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	opts := prof.Options{
		CPUPath: filepath.Join(dir, "cpu.pprof"),
		MemPath: filepath.Join(dir, "mem.pprof"),
	}
	s, err := prof.Start(opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	for _, p := range []string{opts.CPUPath, opts.MemPath} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("profile %s not written: %v", p, err)
		}
	}
}

func TestStartBadPath(t *testing.T) {
	_, err := prof.Start(prof.Options{CPUPath: filepath.Join(t.TempDir(), "missing", "cpu.pprof")})
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
