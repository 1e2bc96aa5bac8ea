/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package lineup

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCourtStateJSON(t *testing.T) {
	c := CourtState{"a", "", "c", "d", "", "f"}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	const want = `{"1":"a","2":null,"3":"c","4":"d","5":null,"6":"f"}`
	if string(data) != want {
		t.Errorf("marshal = %s; want %s", data, want)
	}

	var got CourtState
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != c {
		t.Errorf("unmarshal = %v; want %v", got, c)
	}
}

func TestMatchStateDecodesStoredRecord(t *testing.T) {
	const stored = `{"teamId":"16u","usScore":3,"oppScore":1,
		"positions":{"1":"p2","2":"p3","3":null,"4":"p5","5":"p6","6":"p1"},
		"bench":["p7","p4"],"updatedAt":1730000000000}`

	var s MatchState
	if err := json.Unmarshal([]byte(stored), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := MatchState{
		TeamID:    "16u",
		UsScore:   3,
		OppScore:  1,
		Positions: CourtState{"p2", "p3", "", "p5", "p6", "p1"},
		Bench:     Bench{"p7", "p4"},
		UpdatedAt: 1730000000000,
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("decoded state mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := &MatchState{
		TeamID: "t",
		Bench:  Bench{"a", "b"},
		History: []MatchEvent{
			{Type: EventSub, Details: map[string]any{"in": "a"}},
		},
	}
	c := s.Clone()
	c.Bench[0] = "z"
	c.History[0].Details["in"] = "z"
	c.Positions = c.Positions.With(1, "z")

	if s.Bench[0] != "a" || s.History[0].Details["in"] != "a" || s.Positions.At(1) != "" {
		t.Errorf("Clone() shares memory with original: %+v", s)
	}
}

func TestParseSide(t *testing.T) {
	for in, want := range map[string]Side{"us": SideUs, "HOME": SideUs,
		"them": SideThem, "opp": SideThem} {
		got, err := ParseSide(in)
		if err != nil || got != want {
			t.Errorf("ParseSide(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseSide("both"); err == nil {
		t.Errorf("ParseSide(both) should fail")
	}
}
