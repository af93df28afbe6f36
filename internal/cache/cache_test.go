// file: internal/cache/cache_test.go
// version: 2.1.0
// guid: b2c3d4e5-f6a7-8b9c-0d1e-2f3a4b5c6d7e

package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New[string](time.Minute)
	c.Set("k", "v")
	v, ok := c.Get("k")
	if !ok || v != "v" {
		t.Fatalf("expected v, got %q ok=%v", v, ok)
	}
}

func TestExpiry(t *testing.T) {
	c := New[int](time.Millisecond)
	c.Set("k", 42)
	time.Sleep(5 * time.Millisecond)
	_, ok := c.Get("k")
	if ok {
		t.Fatal("expected expired entry")
	}
	if c.Len() != 1 {
		t.Fatalf("expired entries stay until swept, len=%d", c.Len())
	}
}

func TestZeroTTLDisablesCaching(t *testing.T) {
	c := New[int](0)
	c.Set("k", 1)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected nothing cached with zero TTL")
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cache, got %d", c.Len())
	}
}

func TestBounded(t *testing.T) {
	c := NewBounded[int](time.Minute, 2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)
	if c.Len() != 2 {
		t.Fatalf("overwriting a key must not evict, len=%d", c.Len())
	}
	c.Set("c", 3)
	if c.Len() > 2 {
		t.Fatalf("expected at most 2 entries, got %d", c.Len())
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Fatal("expected newest entry to be present")
	}
}

func TestInvalidateAll(t *testing.T) {
	c := New[int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	if n := c.InvalidateAll(); n != 2 {
		t.Fatalf("expected 2 dropped entries, got %d", n)
	}
	_, ok := c.Get("a")
	if ok {
		t.Fatal("expected all invalidated")
	}
}

func TestSearchKey(t *testing.T) {
	a := SearchKey("search", 1, "parts", "freio", map[string]string{"model": "GL", "category": "freios"})
	b := SearchKey("search", 1, "parts", "freio", map[string]string{"category": "freios", "model": "GL", "tipo": ""})
	if a != b {
		t.Fatalf("expected equal keys, got %q and %q", a, b)
	}
	if a == SearchKey("search", 1, "parts", "freio ", nil) {
		t.Fatal("raw query whitespace must be part of the key")
	}
	if SearchKey("search", 1, "parts", "x", nil) == SearchKey("suggest", 1, "parts", "x", nil) {
		t.Fatal("operation must be part of the key")
	}
	if SearchKey("search", 1, "parts", "x", nil) == SearchKey("search", 2, "parts", "x", nil) {
		t.Fatal("catalog generation must be part of the key")
	}
	if SearchKey("search", 1, "parts", "a|b", nil) == SearchKey("search", 1, "parts|a", "b", nil) {
		t.Fatal("separators inside values must not collide")
	}
}
