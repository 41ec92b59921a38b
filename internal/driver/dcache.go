package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"kvd/internal/ast"
	"kvd/internal/source"
)

// Current schema version - increment when the cached node layout changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores parsed trees on disk keyed by the sha256 of the
// normalized file content. Only successful parses are stored.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the msgpack document written per file.
type DiskPayload struct {
	Schema uint16
	Root   CachedNode
}

// CachedNode is a file-independent snapshot of an ast.Node. Spans are
// stored as offsets and rebound to a FileID when loaded.
type CachedNode struct {
	Kind     uint8
	Key      string `msgpack:",omitempty"`
	KeyStart uint32 `msgpack:",omitempty"`
	KeyEnd   uint32 `msgpack:",omitempty"`
	Str      string `msgpack:",omitempty"`
	Int      int64  `msgpack:",omitempty"`
	Float    float64
	Start    uint32
	End      uint32
	Children []CachedNode `msgpack:",omitempty"`
}

// DiskCacheDir returns $XDG_CACHE_HOME/<app> (or ~/.cache/<app>) without
// creating it.
func DiskCacheDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// OpenDiskCache opens the cache under DiskCacheDir(app), creating it if needed.
func OpenDiskCache(app string) (*DiskCache, error) {
	dir, err := DiskCacheDir(app)
	if err != nil {
		return nil, err
	}
	return NewDiskCache(dir)
}

// NewDiskCache opens a cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "ast", hex.EncodeToString(key[:])+".mp")
}

// Put serializes root and stores it under key. The write is atomic.
func (c *DiskCache) Put(key [32]byte, root ast.Node) (err error) {
	if c == nil {
		return nil
	}
	payload := DiskPayload{Schema: diskCacheSchemaVersion, Root: snapshot(root)}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads the tree stored under key with spans bound to file.
// A missing entry or one written by another schema is a miss.
func (c *DiskCache) Get(key [32]byte, file source.FileID) (ast.Node, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("decode cache entry: %w", err)
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	root, err := restore(&payload.Root, file)
	if err != nil {
		return nil, false, err
	}
	return root, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func snapshot(n ast.Node) CachedNode {
	out := CachedNode{Kind: uint8(ast.KindOf(n))}
	if n == nil {
		return out
	}
	sp := n.Pos()
	out.Start, out.End = sp.Start, sp.End
	switch x := n.(type) {
	case *ast.KeyValue:
		out.Key = x.Key
		out.KeyStart, out.KeyEnd = x.KeySpan.Start, x.KeySpan.End
		out.Children = []CachedNode{snapshot(x.Value)}
	case *ast.KeyValueList:
		out.Children = make([]CachedNode, len(x.Entries))
		for i, kv := range x.Entries {
			out.Children[i] = snapshot(kv)
		}
	case *ast.List:
		out.Children = make([]CachedNode, len(x.Items))
		for i, item := range x.Items {
			out.Children[i] = snapshot(item)
		}
	case *ast.String:
		out.Str = x.Value
	case *ast.Integer:
		out.Int = x.Value
	case *ast.Float:
		out.Float = x.Value
	}
	return out
}

func restore(c *CachedNode, file source.FileID) (ast.Node, error) {
	span := source.Span{File: file, Start: c.Start, End: c.End}
	switch ast.NodeKind(c.Kind) {
	case ast.KindKeyValue:
		if len(c.Children) != 1 {
			return nil, fmt.Errorf("cached key/value %q has %d values", c.Key, len(c.Children))
		}
		value, err := restore(&c.Children[0], file)
		if err != nil {
			return nil, err
		}
		return &ast.KeyValue{
			Key:     c.Key,
			KeySpan: source.Span{File: file, Start: c.KeyStart, End: c.KeyEnd},
			Value:   value,
			Span:    span,
		}, nil
	case ast.KindKeyValueList:
		obj := ast.NewKeyValueList(span)
		for i := range c.Children {
			member, err := restore(&c.Children[i], file)
			if err != nil {
				return nil, err
			}
			if err := obj.Append(member); err != nil {
				return nil, err
			}
		}
		return obj, nil
	case ast.KindList:
		list := &ast.List{Items: make([]ast.Node, 0, len(c.Children)), Span: span}
		for i := range c.Children {
			item, err := restore(&c.Children[i], file)
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, item)
		}
		return list, nil
	case ast.KindString:
		return &ast.String{Value: c.Str, Span: span}, nil
	case ast.KindInteger:
		return &ast.Integer{Value: c.Int, Span: span}, nil
	case ast.KindFloat:
		return &ast.Float{Value: c.Float, Span: span}, nil
	default:
		return nil, fmt.Errorf("unexpected cached node kind %d", c.Kind)
	}
}
