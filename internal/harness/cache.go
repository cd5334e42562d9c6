package harness

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"goldiff/internal/transcript"
)

// Current schema version - increment when cachePayload format changes
const cacheSchemaVersion uint16 = 1

// Key addresses a cached transcript by the content it was parsed from.
type Key [sha256.Size]byte

// CacheKey derives the cache key for raw transcript bytes.
func CacheKey(data []byte) Key {
	return sha256.Sum256(data)
}

// Cache memoizes parsed transcripts on disk, keyed by content hash, so
// repeated runs over large fixture trees skip re-parsing unchanged
// files. Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema     uint16
	Transcript transcript.Transcript
}

// OpenCache initializes and returns a disk cache at the standard location.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Key) string {
	return filepath.Join(c.dir, "transcripts", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a parsed transcript to the disk cache.
func (c *Cache) Put(key Key, t *transcript.Transcript) error {
	if c == nil || t == nil {
		return nil
	}
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
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(cachePayload{Schema: cacheSchemaVersion, Transcript: *t}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replacement
	return os.Rename(f.Name(), p)
}

// Get reads a cached transcript. The second return value reports a hit;
// a missing entry or a schema mismatch is a miss, not an error.
func (c *Cache) Get(key Key) (*transcript.Transcript, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return &payload.Transcript, true, nil
}
