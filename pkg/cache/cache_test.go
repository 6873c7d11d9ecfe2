package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before set.
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("unexpected hit before Set")
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get after Set = %v, %v", hit, err)
	}
	if string(data) != "v" {
		t.Errorf("data = %q, want v", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("hit after Delete")
	}
	// Deleting an absent key is fine.
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete absent key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
}

func TestGraphKey(t *testing.T) {
	k1 := GraphKey(Hash([]byte("manifest-a")))
	if k1 != GraphKey(Hash([]byte("manifest-a"))) {
		t.Error("keys should be deterministic")
	}
	if k1 == GraphKey(Hash([]byte("manifest-b"))) {
		t.Error("manifest content should affect the key")
	}
	if k1 == ArtifactKey(Hash([]byte("manifest-a")), "svg", nil) {
		t.Error("graph and artifact keys should not collide")
	}
}

func TestArtifactKey(t *testing.T) {
	type opts struct{ Margin int }

	k1 := ArtifactKey("abc", "svg", opts{Margin: 50})
	k2 := ArtifactKey("abc", "svg", opts{Margin: 50})
	if k1 != k2 {
		t.Error("keys should be deterministic")
	}
	if k1 == ArtifactKey("abc", "dot", opts{Margin: 50}) {
		t.Error("format should affect the key")
	}
	if k1 == ArtifactKey("abc", "svg", opts{Margin: 10}) {
		t.Error("options should affect the key")
	}
	if k1 == ArtifactKey("other", "svg", opts{Margin: 50}) {
		t.Error("graph hash should affect the key")
	}
}
