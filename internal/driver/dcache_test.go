package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"kvd/internal/ast"
	"kvd/internal/driver"
	"kvd/internal/pipeline"
	"kvd/internal/source"
	"kvd/internal/testkit"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := driver.NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	src := `{"name": "kvd", 1: [1, 2.5, x, {}], "name": "again"}`
	file := fs.Get(fs.AddVirtual("c.kvd", []byte(src)))
	res, err := driver.Parse(context.Background(), writeFile(t, t.TempDir(), "c.kvd", src), driver.ParseOptions{})
	if err != nil || res.Root == nil {
		t.Fatalf("parse: %v %v", err, res.Err)
	}

	if err := cache.Put(file.Hash, res.Root); err != nil {
		t.Fatal(err)
	}
	got, hit, err := cache.Get(file.Hash, file.ID)
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if !ast.Equal(got, res.Root) {
		t.Errorf("cached tree differs:\n got %#v\nwant %#v", got, res.Root)
	}
	if err := testkit.CheckSpanInvariants(got, file); err != nil {
		t.Errorf("restored spans: %v", err)
	}
	obj := got.(*ast.KeyValueList)
	if len(obj.Entries) != 3 || obj.Len() != 2 {
		t.Errorf("entries=%d keys=%d, want 3 and 2", len(obj.Entries), obj.Len())
	}

	var other [32]byte
	if _, hit, err := cache.Get(other, file.ID); hit || err != nil {
		t.Errorf("unknown key: hit=%v err=%v", hit, err)
	}
}

func TestDiskCacheCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	cache, err := driver.NewDiskCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	var key [32]byte
	key[0] = 1
	if err := cache.Put(key, &ast.Integer{Value: 1}); err != nil {
		t.Fatal(err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "ast", "*.mp"))
	if len(matches) != 1 {
		t.Fatalf("cache files = %v", matches)
	}
	if err := os.WriteFile(matches[0], []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := cache.Get(key, 0); hit || err == nil {
		t.Errorf("corrupt entry: hit=%v err=%v", hit, err)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := cache.Get(key, 0); hit {
		t.Error("DropAll must remove entries")
	}
}

func TestParseUsesCache(t *testing.T) {
	cache, err := driver.NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, t.TempDir(), "p.kvd", `{"a": [1]}`)
	opts := driver.ParseOptions{Cache: cache}

	first, err := driver.Parse(context.Background(), path, opts)
	if err != nil || first.Cached {
		t.Fatalf("first parse: cached=%v err=%v", first.Cached, err)
	}

	rec := &pipeline.Recorder{}
	opts.Sink = rec
	second, err := driver.Parse(context.Background(), path, opts)
	if err != nil || !second.Cached {
		t.Fatalf("second parse: cached=%v err=%v", second.Cached, err)
	}
	if !ast.Equal(first.Root, second.Root) {
		t.Error("cached tree differs from parsed tree")
	}
	events := rec.Events()
	if len(events) != 1 || events[0].Status != pipeline.StatusCached {
		t.Errorf("events = %+v, want one cached event", events)
	}

	bad := writeFile(t, t.TempDir(), "bad.kvd", `[1,]`)
	if _, err := driver.Parse(context.Background(), bad, opts); err != nil {
		t.Fatal(err)
	}
	again, _ := driver.Parse(context.Background(), bad, opts)
	if again.Cached || again.Root != nil {
		t.Error("failed parses must not be cached")
	}
}

func TestDiskCacheDirDoesNotCreate(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	dir, err := driver.DiskCacheDir("kvd")
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join(base, "kvd") {
		t.Fatalf("dir = %q", dir)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("DiskCacheDir must not create %s: %v", dir, err)
	}
	cache, err := driver.OpenDiskCache("kvd")
	if err != nil || cache.Dir() != dir {
		t.Fatalf("OpenDiskCache = %v, %v", cache, err)
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		t.Fatalf("OpenDiskCache must create %s: %v", dir, err)
	}
}
