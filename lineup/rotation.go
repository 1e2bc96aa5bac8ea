/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package lineup

// Rotate moves every occupant one position in serve order: 2->1, 3->2, 4->3,
// 5->4, 6->5 and 1->6. Empty slots rotate like any other.
func Rotate(c CourtState) CourtState {
	var out CourtState
	for i := range c {
		out[i] = c[(i+1)%NumPositions]
	}
	return out
}

// Server returns the player in position 1, or "" when it is empty.
func Server(c CourtState) string {
	return c.At(1)
}
