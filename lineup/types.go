/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package lineup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Player is immutable roster data for a single team member.
type Player struct {
	ID     string   `json:"id" yaml:"id"`
	Number string   `json:"number" yaml:"number"`
	Name   string   `json:"name" yaml:"name"`
	Tags   []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Team is a named roster.
type Team struct {
	ID     string   `json:"id" yaml:"id"`
	Name   string   `json:"name" yaml:"name"`
	Roster []Player `json:"roster" yaml:"roster,omitempty"`
}

// RosterIDs returns the player ids of the team in roster order.
func (t *Team) RosterIDs() []string {
	ids := make([]string, 0, len(t.Roster))
	for _, p := range t.Roster {
		ids = append(ids, p.ID)
	}
	return ids
}

// Player looks up a roster member by id.
func (t *Team) Player(id string) (Player, bool) {
	for _, p := range t.Roster {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// PositionKey identifies one of the six court positions. Position 1 serves.
type PositionKey int

const NumPositions = 6

// Positions lists every PositionKey in ascending order.
var Positions = [NumPositions]PositionKey{1, 2, 3, 4, 5, 6}

func (p PositionKey) Valid() bool {
	return p >= 1 && p <= NumPositions
}

// IsFrontRow reports whether p is one of positions 2, 3 or 4.
func (p PositionKey) IsFrontRow() bool {
	return p == 2 || p == 3 || p == 4
}

// IsBackRow reports whether p is one of positions 1, 5 or 6.
func (p PositionKey) IsBackRow() bool {
	return p == 1 || p == 5 || p == 6
}

// ParsePositionKey converts user input such as "3" or "P3" into a PositionKey.
func ParsePositionKey(s string) (PositionKey, error) {
	s = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "P")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: %w", s, err)
	}
	pos := PositionKey(n)
	if !pos.Valid() {
		return 0, fmt.Errorf("invalid position %v: must be 1-%v", n, NumPositions)
	}
	return pos, nil
}

// CourtState holds the player id at each position; "" is an empty slot.
// Index 0 is position 1.
type CourtState [NumPositions]string

// At returns the occupant of pos, or "" when the slot is empty.
func (c CourtState) At(pos PositionKey) string {
	return c[pos-1]
}

// With returns a copy of c with pos set to playerID.
func (c CourtState) With(pos PositionKey, playerID string) CourtState {
	c[pos-1] = playerID
	return c
}

// PositionOf returns the position currently held by playerID.
func (c CourtState) PositionOf(playerID string) (PositionKey, bool) {
	if playerID == "" {
		return 0, false
	}
	for i, id := range c {
		if id == playerID {
			return PositionKey(i + 1), true
		}
	}
	return 0, false
}

// Occupied returns the non-empty occupants in position order.
func (c CourtState) Occupied() []string {
	var out []string
	for _, id := range c {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

// MarshalJSON encodes the court as {"1": id|null, ..., "6": id|null}.
func (c CourtState) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:", strconv.Itoa(i+1))
		if id == "" {
			buf.WriteString("null")
			continue
		}
		raw, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts the object form written by MarshalJSON. Unknown keys
// are ignored and missing keys decode as empty slots.
func (c *CourtState) UnmarshalJSON(data []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("CourtState unmarshal: %w", err)
	}
	*c = CourtState{}
	for k, v := range raw {
		pos, err := ParsePositionKey(k)
		if err != nil || v == nil {
			continue
		}
		c[pos-1] = *v
	}
	return nil
}

// Bench is the ordered list of player ids not on court.
type Bench []string

// Contains reports whether playerID is on the bench.
func (b Bench) Contains(playerID string) bool {
	for _, id := range b {
		if id == playerID {
			return true
		}
	}
	return false
}

// Side selects which score a score intent applies to.
type Side string

const (
	SideUs   Side = "us"
	SideThem Side = "them"
)

// ParseSide accepts "us"/"home" and "them"/"opp"/"away".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "us", "home":
		return SideUs, nil
	case "them", "opp", "away":
		return SideThem, nil
	}
	return "", fmt.Errorf("invalid side %q: expected us or them", s)
}

type EventType string

const (
	EventScore  EventType = "score"
	EventSub    EventType = "sub"
	EventRotate EventType = "rotate"
)

// MatchEvent is one entry of the persisted match log.
type MatchEvent struct {
	ID        string         `json:"id,omitempty"`
	Type      EventType      `json:"type"`
	Timestamp int64          `json:"timestamp"`
	Details   map[string]any `json:"details,omitempty"`
}

// MatchState is the full per-team match record. UpdatedAt is in Unix
// milliseconds.
type MatchState struct {
	TeamID    string       `json:"teamId"`
	UsScore   int          `json:"usScore"`
	OppScore  int          `json:"oppScore"`
	Positions CourtState   `json:"positions"`
	Bench     Bench        `json:"bench"`
	UpdatedAt int64        `json:"updatedAt"`
	History   []MatchEvent `json:"history,omitempty"`
}

// Clone returns a deep copy of s.
func (s *MatchState) Clone() *MatchState {
	out := *s
	if s.Bench != nil {
		out.Bench = append(Bench{}, s.Bench...)
	}
	if s.History != nil {
		out.History = make([]MatchEvent, len(s.History))
		for i, ev := range s.History {
			out.History[i] = ev
			if ev.Details != nil {
				d := make(map[string]any, len(ev.Details))
				for k, v := range ev.Details {
					d[k] = v
				}
				out.History[i].Details = d
			}
		}
	}
	return &out
}
