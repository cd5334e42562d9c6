package harness

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"goldiff/internal/compare"
	"goldiff/internal/transcript"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenCache("goldiff-test")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	return cache
}

func TestCacheRoundTrip(t *testing.T) {
	cache := openTestCache(t)
	data := []byte(fixtureText(t))

	tr, err := transcript.Parse("fixture", data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	key := CacheKey(data)
	if _, ok, err := cache.Get(key); err != nil || ok {
		t.Fatalf("fresh cache should miss: ok=%v err=%v", ok, err)
	}
	if err := cache.Put(key, tr); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := cache.Get(key)
	if err != nil || !ok {
		t.Fatalf("get after put: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, tr) {
		t.Fatal("cached transcript differs from the original")
	}

	// A different content hash is a different entry.
	other := CacheKey([]byte("other content"))
	if _, ok, _ := cache.Get(other); ok {
		t.Fatal("unexpected hit for unrelated key")
	}
}

func TestCacheNilReceiver(t *testing.T) {
	var cache *Cache
	if err := cache.Put(Key{}, &transcript.Transcript{}); err != nil {
		t.Errorf("nil cache Put: %v", err)
	}
	if _, ok, err := cache.Get(Key{}); ok || err != nil {
		t.Errorf("nil cache Get: ok=%v err=%v", ok, err)
	}
}

func TestRunWithCache(t *testing.T) {
	cache := openTestCache(t)
	text := fixtureText(t)

	expectedRoot := t.TempDir()
	actualRoot := t.TempDir()
	writeTree(t, expectedRoot, map[string]string{"ok.stderr": text})
	writeTree(t, actualRoot, map[string]string{"ok.stderr": text})

	opts := Options{
		ExpectedRoot: expectedRoot,
		ActualRoot:   actualRoot,
		Config:       compare.DefaultConfig(),
		Cache:        cache,
	}
	for i := 0; i < 2; i++ {
		report, err := Run(context.Background(), opts)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if report.Failed != 0 {
			t.Fatalf("run %d failed: %+v", i, report.Results)
		}
	}

	// The second run should have been served from disk.
	entries, err := os.ReadDir(filepath.Join(os.Getenv("XDG_CACHE_HOME"), "goldiff-test", "transcripts"))
	if err != nil {
		t.Fatalf("read cache dir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("cache directory is empty after a cached run")
	}
}
