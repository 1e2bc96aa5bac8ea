/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"os"
	"path/filepath"
	"strconv"
)

type StoreKind string

const (
	StoreMemory StoreKind = "memory"
	StoreDisk   StoreKind = "disk"
	StoreS3     StoreKind = "s3"
)

// Config holds runtime settings read from the environment.
type Config struct {
	// Store selects the persistence backend (LINEUP_STORE).
	Store StoreKind
	// Dir is the base directory for the disk backend (LINEUP_DIR).
	Dir string
	// Bucket is the S3 bucket for the s3 backend (LINEUP_BUCKET).
	Bucket string
	// Gzip compresses objects in the s3 backend (LINEUP_GZIP).
	Gzip bool
	// RosterFile overrides the embedded team catalog (LINEUP_ROSTER).
	RosterFile string
}

// LoadConfig reads LINEUP_* environment variables, applying defaults for
// anything unset or malformed.
func LoadConfig() Config {
	cfg := Config{
		Store:      StoreDisk,
		Dir:        defaultDir(),
		Bucket:     LineupBucket,
		RosterFile: os.Getenv("LINEUP_ROSTER"),
	}

	switch kind := StoreKind(os.Getenv("LINEUP_STORE")); kind {
	case StoreMemory, StoreDisk, StoreS3:
		cfg.Store = kind
	}
	if dir := os.Getenv("LINEUP_DIR"); dir != "" {
		cfg.Dir = dir
	}
	if bucket := os.Getenv("LINEUP_BUCKET"); bucket != "" {
		cfg.Bucket = bucket
	}
	if gz, err := strconv.ParseBool(os.Getenv("LINEUP_GZIP")); err == nil {
		cfg.Gzip = gz
	}

	return cfg
}

func defaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "tvvc-lineuptracker")
	}
	return filepath.Join(os.TempDir(), "tvvc-lineuptracker")
}
