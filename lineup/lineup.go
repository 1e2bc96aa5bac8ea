/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package lineup

// Substitute places playerID at pos. The incoming id is removed from the
// bench wherever it appears and the displaced occupant, if any, is appended
// to the end of the bench. Neither input is modified.
//
// No roster or duplicate-seat checks are done here; see match.Session for the
// validated entry point.
func Substitute(c CourtState, b Bench, playerID string,
	pos PositionKey) (CourtState, Bench) {

	current := c.At(pos)
	newCourt := c.With(pos, playerID)

	newBench := make(Bench, 0, len(b)+1)
	for _, id := range b {
		if id != playerID {
			newBench = append(newBench, id)
		}
	}
	if current != "" {
		newBench = append(newBench, current)
	}

	return newCourt, newBench
}

// InitializeCourt seats the first six roster ids in positions 1 through 6.
// Positions past the end of a short roster stay empty.
func InitializeCourt(rosterIDs []string) CourtState {
	var c CourtState
	for i := 0; i < NumPositions && i < len(rosterIDs); i++ {
		c[i] = rosterIDs[i]
	}
	return c
}

// RemainingBench returns the roster ids not seated on c, in roster order.
func RemainingBench(rosterIDs []string, c CourtState) Bench {
	onCourt := make(map[string]struct{}, NumPositions)
	for _, id := range c.Occupied() {
		onCourt[id] = struct{}{}
	}

	bench := make(Bench, 0, len(rosterIDs))
	for _, id := range rosterIDs {
		if _, ok := onCourt[id]; !ok {
			bench = append(bench, id)
		}
	}
	return bench
}

// NewMatchState builds a fresh zero-score state for team.
func NewMatchState(team *Team, nowMillis int64) *MatchState {
	ids := team.RosterIDs()
	court := InitializeCourt(ids)
	return &MatchState{
		TeamID:    team.ID,
		Positions: court,
		Bench:     RemainingBench(ids, court),
		UpdatedAt: nowMillis,
	}
}
