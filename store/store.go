/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package store persists lineup match state in a key/value store. A Store has
// the same contract as httpcache.Cache, so any of its implementations can be
// used as a backend.
package store

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/gregjones/httpcache"
	"github.com/peterbourgon/diskv"

	"github.com/mikeb26/tvvc-lineuptracker/internal"
	"github.com/mikeb26/tvvc-lineuptracker/s3cache"
)

// Store is a string-keyed byte store. Implementations report failures by
// logging and returning ok=false; they never panic on I/O errors.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, data []byte)
	Delete(key string)
}

// Lister is implemented by stores that can enumerate their keys.
type Lister interface {
	Keys(prefix string) ([]string, error)
}

var (
	_ Store  = (httpcache.Cache)(nil)
	_ Store  = (*MemoryStore)(nil)
	_ Lister = (*MemoryStore)(nil)
	_ Store  = (*DiskStore)(nil)
	_ Lister = (*DiskStore)(nil)
	_ Store  = (*s3cache.Cache)(nil)
	_ Lister = (*s3cache.Cache)(nil)
)

// MemoryStore is an httpcache.MemoryCache that also tracks its keys.
type MemoryStore struct {
	*httpcache.MemoryCache

	mu   sync.Mutex
	keys map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		MemoryCache: httpcache.NewMemoryCache(),
		keys:        make(map[string]struct{}),
	}
}

func (m *MemoryStore) Set(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MemoryCache.Set(key, data)
	m.keys[key] = struct{}{}
}

func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MemoryCache.Delete(key)
	delete(m.keys, key)
}

func (m *MemoryStore) Keys(prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for k := range m.keys {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

// DiskStore keeps one file per key under a base directory, the on-disk
// counterpart of browser local storage.
type DiskStore struct {
	d *diskv.Diskv
}

// NewDiskStore returns a DiskStore rooted at basePath. Keys must not contain
// path separators.
func NewDiskStore(basePath string) *DiskStore {
	return &DiskStore{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024,
		}),
	}
}

func (s *DiskStore) Get(key string) ([]byte, bool) {
	data, err := s.d.Read(key)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("store.disk.get: failed to read %v: %v", key, err)
		}
		return nil, false
	}
	return data, true
}

func (s *DiskStore) Set(key string, data []byte) {
	if err := s.d.Write(key, data); err != nil {
		log.Printf("store.disk.set: failed to write %v: %v", key, err)
	}
}

func (s *DiskStore) Delete(key string) {
	if err := s.d.Erase(key); err != nil && !os.IsNotExist(err) {
		log.Printf("store.disk.delete: failed to erase %v: %v", key, err)
	}
}

func (s *DiskStore) Keys(prefix string) ([]string, error) {
	var out []string
	for k := range s.d.KeysPrefix(prefix, nil) {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

// Open builds the backend selected by cfg. For s3 the bucket is checked for
// access before returning.
func Open(ctx context.Context, cfg internal.Config) (Store, error) {
	switch cfg.Store {
	case internal.StoreMemory:
		return NewMemoryStore(), nil
	case internal.StoreDisk:
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("store.open: unable to create %v: %w", cfg.Dir, err)
		}
		return NewDiskStore(cfg.Dir), nil
	case internal.StoreS3:
		cache := s3cache.New(ctx, cfg.Bucket, "lineup", cfg.Gzip, true)
		if err := cache.Init(); err != nil {
			return nil, fmt.Errorf("store.open: %w", err)
		}
		return cache, nil
	}
	return nil, fmt.Errorf("store.open: unknown store kind %q", cfg.Store)
}

// OpenOrMemory is Open with a logged fallback to an in-memory store, so that
// match tracking keeps working when storage is unavailable.
func OpenOrMemory(ctx context.Context, cfg internal.Config) Store {
	s, err := Open(ctx, cfg)
	if err != nil {
		log.Printf("store: warning %v; falling back to memory store", err)
		return NewMemoryStore()
	}
	return s
}
