/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"testing"
	"time"
)

func TestParseDateOrZero(t *testing.T) {
	for _, s := range []string{"", "null", "  "} {
		got, err := ParseDateOrZero(s)
		if err != nil || !got.IsZero() {
			t.Errorf("ParseDateOrZero(%q) = %v, %v; want zero", s, got, err)
		}
	}

	got, err := ParseDateOrZero("2025-10-18")
	if err != nil {
		t.Fatalf("ParseDateOrZero: %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.October || got.Day() != 18 {
		t.Errorf("ParseDateOrZero(2025-10-18) = %v", got)
	}

	if _, err := ParseDateOrZero("not a date"); err == nil {
		t.Errorf("expected error for garbage input")
	}
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"  Ava   Smith ": "Ava Smith",
		"BEA JONES":      "Bea Jones",
		"Cal O'Neil":     "Cal O'Neil",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("LINEUP_STORE", "s3")
	t.Setenv("LINEUP_BUCKET", "my-bucket")
	t.Setenv("LINEUP_GZIP", "true")
	t.Setenv("LINEUP_DIR", "/tmp/lineup")

	cfg := LoadConfig()
	if cfg.Store != StoreS3 || cfg.Bucket != "my-bucket" || !cfg.Gzip ||
		cfg.Dir != "/tmp/lineup" {
		t.Errorf("LoadConfig() = %+v", cfg)
	}

	t.Setenv("LINEUP_STORE", "floppy")
	if cfg := LoadConfig(); cfg.Store != StoreDisk {
		t.Errorf("unknown store kind should fall back to disk, got %v", cfg.Store)
	}
}
