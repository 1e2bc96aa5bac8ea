/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseLocal(s)
}

// NormalizeName collapses runs of whitespace and title-cases names that were
// entered in all caps.
func NormalizeName(name string) string {
	fields := strings.Fields(name)
	for i, f := range fields {
		if f == strings.ToUpper(f) && len(f) > 1 {
			fields[i] = f[:1] + strings.ToLower(f[1:])
		}
	}
	return strings.Join(fields, " ")
}
