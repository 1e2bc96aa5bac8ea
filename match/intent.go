/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package match

import (
	"fmt"
	"strings"

	"github.com/mikeb26/tvvc-lineuptracker/lineup"
)

type IntentKind string

const (
	IntentSub    IntentKind = "sub"
	IntentRotate IntentKind = "rotate"
	IntentUndo   IntentKind = "undo"
	IntentReset  IntentKind = "reset"
	IntentScore  IntentKind = "score"
)

// Intent is a single state-changing user action. Tap-to-select and
// drag-and-drop front ends both reduce a substitution to IntentSub.
type Intent struct {
	Kind     IntentKind
	PlayerID string
	Position lineup.PositionKey
	Side     lineup.Side
	Delta    int
}

// ParseIntent parses the text form used by the CLI and the bot:
//
//	sub <player-id> <position>
//	rotate
//	undo
//	reset
//	score us|them [+|-]
func ParseIntent(fields []string) (Intent, error) {
	if len(fields) == 0 {
		return Intent{}, fmt.Errorf("empty command")
	}
	kind := IntentKind(strings.ToLower(fields[0]))
	args := fields[1:]

	switch kind {
	case IntentRotate, IntentUndo, IntentReset:
		return Intent{Kind: kind}, nil
	case IntentSub:
		if len(args) != 2 {
			return Intent{}, fmt.Errorf("usage: sub <player-id> <position>")
		}
		pos, err := lineup.ParsePositionKey(args[1])
		if err != nil {
			return Intent{}, err
		}
		return Intent{Kind: kind, PlayerID: args[0], Position: pos}, nil
	case IntentScore:
		if len(args) < 1 || len(args) > 2 {
			return Intent{}, fmt.Errorf("usage: score us|them [+|-]")
		}
		side, err := lineup.ParseSide(args[0])
		if err != nil {
			return Intent{}, err
		}
		delta := 1
		if len(args) == 2 {
			switch args[1] {
			case "+", "+1", "inc":
			case "-", "-1", "dec":
				delta = -1
			default:
				return Intent{}, fmt.Errorf("invalid score change %q: expected + or -",
					args[1])
			}
		}
		return Intent{Kind: kind, Side: side, Delta: delta}, nil
	}
	return Intent{}, fmt.Errorf("unknown command %q", fields[0])
}

// Do applies in to the session and returns a short confirmation.
func (s *Session) Do(in Intent) (string, error) {
	switch in.Kind {
	case IntentSub:
		if err := s.Substitute(in.PlayerID, in.Position); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s in at P%d", lineup.PlayerLabel(s.Team(),
			in.PlayerID), in.Position), nil
	case IntentRotate:
		if err := s.Rotate(); err != nil {
			return "", err
		}
		return fmt.Sprintf("Rotated; %s serves", lineup.PlayerLabel(s.Team(),
			lineup.Server(s.State().Positions))), nil
	case IntentUndo:
		ok, err := s.Undo()
		if err != nil {
			return "", err
		}
		if !ok {
			return "Nothing to undo", nil
		}
		return "Undone", nil
	case IntentReset:
		if err := s.Reset(); err != nil {
			return "", err
		}
		return "Match reset", nil
	case IntentScore:
		var err error
		if in.Delta < 0 {
			err = s.DecScore(in.Side)
		} else {
			err = s.IncScore(in.Side)
		}
		if err != nil {
			return "", err
		}
		st := s.State()
		return fmt.Sprintf("Score %d-%d", st.UsScore, st.OppScore), nil
	}
	return "", fmt.Errorf("unsupported intent %q", in.Kind)
}
