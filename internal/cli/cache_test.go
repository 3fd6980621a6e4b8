package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/graphedit/pkg/cache"
)

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	expected := filepath.Join(customCache, appName)
	if dir := cacheDir(); dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	expected := filepath.Join(home, ".cache", appName)
	if dir := cacheDir(); dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestClearCache(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		if err := fc.Set(ctx, cache.Key("svg", k), []byte(k), 0); err != nil {
			t.Fatalf("Set(%s) error: %v", k, err)
		}
	}

	count, err := clearCache(dir)
	if err != nil {
		t.Fatalf("clearCache() error: %v", err)
	}
	if count != 3 {
		t.Errorf("clearCache() = %d, want 3", count)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after clear, want 0", len(entries))
	}
	if _, hit, _ := fc.Get(ctx, cache.Key("svg", "a")); hit {
		t.Error("Get() hit after clear")
	}
}

func TestNewCacheDisabled(t *testing.T) {
	c, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(true) error: %v", err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("newCache(true) = %T, want *cache.NullCache", c)
	}
}
