/* Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3cache

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/gregjones/httpcache/test"
)

const testBucket = "bopmatic-tvvc-lineuptracker-prod-state"

func newTestCache(t *testing.T, gzip bool) *Cache {
	bucket := os.Getenv("LINEUP_TEST_BUCKET")
	if bucket == "" {
		bucket = testBucket
	}
	cache := New(context.Background(), bucket, "test", gzip, true)
	if err := cache.Init(); err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			bucket, err))
	}
	return cache
}

func TestS3Cache(t *testing.T) {
	test.Cache(t, newTestCache(t, false))
}

func TestS3CacheWithGzip(t *testing.T) {
	test.Cache(t, newTestCache(t, true))
}

func TestS3CacheKeys(t *testing.T) {
	cache := newTestCache(t, true)
	cache.Set("keys_test__a", []byte("1"))
	cache.Set("keys_test__b/c", []byte("2"))
	defer cache.Delete("keys_test__a")
	defer cache.Delete("keys_test__b/c")

	keys, err := cache.Keys("keys_test__")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("Keys() = %v; want 2 entries", keys)
	}
}

func TestObjectKeyMapping(t *testing.T) {
	cases := []struct {
		gzip   bool
		key    string
		objKey string
	}{
		{gzip: false, key: "tvvc_lineup_state__16u", objKey: "lineup/tvvc_lineup_state__16u"},
		{gzip: true, key: "tvvc_lineup_state__16u", objKey: "lineup/tvvc_lineup_state__16u.gz"},
		{gzip: false, key: "https://example.org/a b", objKey: "lineup/https:%2F%2Fexample.org%2Fa%20b"},
	}
	for _, c := range cases {
		cache := New(context.Background(), "bucket", "/lineup/", c.gzip, false)
		got := cache.cacheKeyToObjectKey(c.key)
		if got != c.objKey {
			t.Errorf("cacheKeyToObjectKey(%q) = %q; want %q", c.key, got, c.objKey)
		}
		back, ok := cache.objectKeyToCacheKey(got)
		if !ok || back != c.key {
			t.Errorf("objectKeyToCacheKey(%q) = %q, %v; want %q", got, back, ok, c.key)
		}
	}

	plain := New(context.Background(), "bucket", "lineup", false, false)
	if _, ok := plain.objectKeyToCacheKey("lineup/x.gz"); ok {
		t.Errorf("plain cache should ignore gzip objects")
	}
	if _, ok := plain.objectKeyToCacheKey("other/x"); ok {
		t.Errorf("objects outside the prefix should be ignored")
	}
}
