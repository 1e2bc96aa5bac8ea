/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package lineup

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var exampleRoster = []string{"a", "b", "c", "d", "e", "f", "g"}

func TestInitializeCourt(t *testing.T) {
	cases := []struct {
		name   string
		roster []string
		want   CourtState
	}{
		{
			name:   "full roster with bench",
			roster: exampleRoster,
			want:   CourtState{"a", "b", "c", "d", "e", "f"},
		},
		{
			name:   "exactly six",
			roster: exampleRoster[:6],
			want:   CourtState{"a", "b", "c", "d", "e", "f"},
		},
		{
			name:   "short roster leaves empty slots",
			roster: []string{"a", "b", "c"},
			want:   CourtState{"a", "b", "c", "", "", ""},
		},
		{
			name:   "empty roster",
			roster: nil,
			want:   CourtState{},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := InitializeCourt(c.roster)
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("InitializeCourt() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRemainingBench(t *testing.T) {
	court := InitializeCourt(exampleRoster)
	if diff := cmp.Diff(Bench{"g"}, RemainingBench(exampleRoster, court)); diff != "" {
		t.Errorf("bench mismatch (-want +got):\n%s", diff)
	}

	// order follows the roster, not the court
	court = CourtState{"g", "", "a", "", "c", ""}
	want := Bench{"b", "d", "e", "f"}
	if diff := cmp.Diff(want, RemainingBench(exampleRoster, court)); diff != "" {
		t.Errorf("bench mismatch (-want +got):\n%s", diff)
	}
}

func TestRotateExample(t *testing.T) {
	court := InitializeCourt(exampleRoster)
	got := Rotate(court)
	want := CourtState{"b", "c", "d", "e", "f", "a"}
	if got != want {
		t.Fatalf("Rotate() = %v; want %v", got, want)
	}
	if court != (CourtState{"a", "b", "c", "d", "e", "f"}) {
		t.Errorf("Rotate() modified its input: %v", court)
	}
	if Server(got) != "b" {
		t.Errorf("Server() = %q; want b", Server(got))
	}
}

func TestRotateOrderSix(t *testing.T) {
	courts := []CourtState{
		{},
		{"a", "b", "c", "d", "e", "f"},
		{"a", "", "c", "", "", "f"},
		{"", "", "", "", "", "x"},
	}
	for _, c := range courts {
		got := c
		for i := 1; i <= NumPositions; i++ {
			got = Rotate(got)
			if i < NumPositions && got == c && len(c.Occupied()) == NumPositions {
				t.Errorf("rotation of %v returned early after %d steps", c, i)
			}
		}
		if got != c {
			t.Errorf("six rotations of %v = %v", c, got)
		}
	}
}

func sortedIDs(c CourtState, b Bench) []string {
	ids := append(c.Occupied(), b...)
	sort.Strings(ids)
	return ids
}

func TestSubstitute(t *testing.T) {
	court := Rotate(InitializeCourt(exampleRoster))
	bench := RemainingBench(exampleRoster, court)

	newCourt, newBench := Substitute(court, bench, "g", 3)
	if newCourt.At(3) != "g" {
		t.Errorf("position 3 = %q; want g", newCourt.At(3))
	}
	// position 3 held d after one rotation
	if diff := cmp.Diff(Bench{"d"}, newBench); diff != "" {
		t.Errorf("bench mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sortedIDs(court, bench), sortedIDs(newCourt, newBench)); diff != "" {
		t.Errorf("id set changed (-before +after):\n%s", diff)
	}
	if bench[0] != "g" || court.At(3) != "d" {
		t.Errorf("Substitute() modified its inputs")
	}
}

func TestSubstituteEdgeCases(t *testing.T) {
	cases := []struct {
		name      string
		court     CourtState
		bench     Bench
		player    string
		pos       PositionKey
		wantCourt CourtState
		wantBench Bench
	}{
		{
			name:      "into empty slot",
			court:     CourtState{"a", "b", "c", "", "e", "f"},
			bench:     Bench{"g", "h"},
			player:    "h",
			pos:       4,
			wantCourt: CourtState{"a", "b", "c", "h", "e", "f"},
			wantBench: Bench{"g"},
		},
		{
			name:      "incoming not on bench",
			court:     CourtState{"a", "b", "c", "d", "e", "f"},
			bench:     Bench{"g"},
			player:    "z",
			pos:       1,
			wantCourt: CourtState{"z", "b", "c", "d", "e", "f"},
			wantBench: Bench{"g", "a"},
		},
		{
			name:      "evicted goes to end",
			court:     CourtState{"a", "b", "c", "d", "e", "f"},
			bench:     Bench{"g", "h", "i"},
			player:    "h",
			pos:       6,
			wantCourt: CourtState{"a", "b", "c", "d", "e", "h"},
			wantBench: Bench{"g", "i", "f"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gotCourt, gotBench := Substitute(c.court, c.bench, c.player, c.pos)
			if diff := cmp.Diff(c.wantCourt, gotCourt); diff != "" {
				t.Errorf("court mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(c.wantBench, gotBench); diff != "" {
				t.Errorf("bench mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRows(t *testing.T) {
	for _, pos := range Positions {
		if pos.IsFrontRow() == pos.IsBackRow() {
			t.Errorf("position %d must be in exactly one row", pos)
		}
	}
	for _, pos := range []PositionKey{2, 3, 4} {
		if !pos.IsFrontRow() {
			t.Errorf("position %d should be front row", pos)
		}
	}
}

func TestParsePositionKey(t *testing.T) {
	cases := []struct {
		in      string
		want    PositionKey
		wantErr bool
	}{
		{in: "1", want: 1},
		{in: " 6 ", want: 6},
		{in: "p3", want: 3},
		{in: "0", wantErr: true},
		{in: "7", wantErr: true},
		{in: "x", wantErr: true},
	}
	for _, c := range cases {
		got, err := ParsePositionKey(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParsePositionKey(%q) err = %v; wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if got != c.want {
			t.Errorf("ParsePositionKey(%q) = %d; want %d", c.in, got, c.want)
		}
	}
}
