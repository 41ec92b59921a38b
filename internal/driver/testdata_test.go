package driver_test

import (
	"context"
	"path/filepath"
	"testing"

	"kvd/internal/driver"
	"kvd/internal/testkit"
)

func TestTestdataCorpus(t *testing.T) {
	tests := []struct {
		dir     string
		wantErr bool
	}{
		{dir: "valid", wantErr: false},
		{dir: "invalid", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			root := filepath.Join("..", "..", "testdata", tt.dir)
			res, err := driver.ParseDir(context.Background(), root, driver.DirOptions{Jobs: 2})
			if err != nil {
				t.Fatal(err)
			}
			if len(res.Files) == 0 {
				t.Fatalf("no fixtures under %s", root)
			}
			for i, f := range res.Files {
				failed := f.Root == nil
				if failed != tt.wantErr {
					t.Errorf("%s: failed = %v, want %v (%v)", res.Paths[i], failed, tt.wantErr, f.Bag.Items())
					continue
				}
				if failed {
					if !f.Bag.HasErrors() {
						t.Errorf("%s: failure without diagnostics", res.Paths[i])
					}
					continue
				}
				if err := testkit.CheckSpanInvariants(f.Root, f.File); err != nil {
					t.Errorf("%s: %v", res.Paths[i], err)
				}
			}
		})
	}
}
