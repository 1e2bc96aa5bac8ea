/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package match

import "github.com/mikeb26/tvvc-lineuptracker/lineup"

// undoStack holds full snapshots, newest last. Snapshots are never mutated
// after being pushed.
type undoStack struct {
	snapshots []*lineup.MatchState
}

func (u *undoStack) push(s *lineup.MatchState) {
	u.snapshots = append(u.snapshots, s)
}

func (u *undoStack) pop() (*lineup.MatchState, bool) {
	n := len(u.snapshots)
	if n == 0 {
		return nil, false
	}
	s := u.snapshots[n-1]
	u.snapshots[n-1] = nil
	u.snapshots = u.snapshots[:n-1]
	return s, true
}

func (u *undoStack) len() int {
	return len(u.snapshots)
}

func (u *undoStack) clear() {
	u.snapshots = nil
}
