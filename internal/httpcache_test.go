/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestHttpClientCaches(t *testing.T) {
	var hits atomic.Int32
	var gotUA atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		gotUA.Store(r.Header.Get("User-Agent"))
		w.Header().Set("Cache-Control", "no-store")
		fmt.Fprint(w, "<table class=\"roster\"></table>")
	}))
	defer srv.Close()

	client := NewCachedHttpClient(context.Background(), "", 5*time.Minute)

	for i := 0; i < 3; i++ {
		resp, err := client.Get(srv.URL)
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil || len(data) == 0 {
			t.Fatalf("read %d: %v (len %d)", i, err, len(data))
		}
		if i > 0 && resp.Header.Get("X-From-Cache") != "1" {
			t.Errorf("request %d not served from cache", i)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("origin hit %d times; want 1", n)
	}
	if ua, _ := gotUA.Load().(string); ua != UserAgent {
		t.Errorf("User-Agent = %q; want %q", ua, UserAgent)
	}
}
