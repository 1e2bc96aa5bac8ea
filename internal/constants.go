/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent        = "tvvc-lineuptracker/0.3.0 (+https://github.com/mikeb26/tvvc-lineuptracker)"
	StorageKeyPrefix = "tvvc_lineup_state__"
	LineupBucket     = "bopmatic-tvvc-lineuptracker-prod-state"
	WebCacheBucket   = "bopmatic-tvvc-lineuptracker-prod-webcache"
)
