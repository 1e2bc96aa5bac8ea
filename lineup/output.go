/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package lineup

import (
	"fmt"
	"strings"
	"time"
)

// court as seen from behind the baseline
var (
	frontRowOrder = []PositionKey{4, 3, 2}
	backRowOrder  = []PositionKey{5, 6, 1}
)

// PlayerLabel renders a roster id as "#<number> <name>"; ids missing from the
// roster are shown verbatim.
func PlayerLabel(team *Team, id string) string {
	if id == "" {
		return "(empty)"
	}
	if team != nil {
		if p, ok := team.Player(id); ok {
			return fmt.Sprintf("#%s %s", p.Number, p.Name)
		}
	}
	return id
}

// BuildScoreOutput formats the scoreline.
func BuildScoreOutput(team *Team, s *MatchState) string {
	name := s.TeamID
	if team != nil && team.Name != "" {
		name = team.Name
	}
	return fmt.Sprintf("%s %d - %d Opponent\n", name, s.UsScore, s.OppScore)
}

// BuildCourtOutput formats the court as two aligned rows, front row first.
// The server in position 1 is marked with '*'.
func BuildCourtOutput(team *Team, s *MatchState) string {
	cell := func(pos PositionKey) string {
		label := PlayerLabel(team, s.Positions.At(pos))
		if pos == 1 && s.Positions.At(pos) != "" {
			label += "*"
		}
		return fmt.Sprintf("P%d %s", pos, label)
	}

	width := 0
	for _, pos := range Positions {
		if l := len(cell(pos)); l > width {
			width = l
		}
	}

	var sb strings.Builder
	writeRow := func(title string, order []PositionKey) {
		sb.WriteString(fmt.Sprintf("%-6s", title))
		for i, pos := range order {
			if i > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(fmt.Sprintf("%-*s", width, cell(pos)))
		}
		sb.WriteString("\n")
	}
	writeRow("Front", frontRowOrder)
	writeRow("Back", backRowOrder)

	return sb.String()
}

// BuildBenchOutput lists bench players in bench order.
func BuildBenchOutput(team *Team, s *MatchState) string {
	if len(s.Bench) == 0 {
		return "Bench: (empty)\n"
	}
	var sb strings.Builder
	sb.WriteString("Bench:\n")
	for _, id := range s.Bench {
		sb.WriteString(fmt.Sprintf("- %s (%s)\n", PlayerLabel(team, id), id))
	}
	return sb.String()
}

// BuildMatchOutput combines score, court and bench.
func BuildMatchOutput(team *Team, s *MatchState) string {
	var sb strings.Builder
	sb.WriteString(BuildScoreOutput(team, s))
	sb.WriteString("\n")
	sb.WriteString(BuildCourtOutput(team, s))
	sb.WriteString("\n")
	sb.WriteString(BuildBenchOutput(team, s))
	return sb.String()
}

// BuildHistoryOutput lists the logged match events oldest first.
func BuildHistoryOutput(team *Team, s *MatchState) string {
	if len(s.History) == 0 {
		return "No events recorded.\n"
	}
	var sb strings.Builder
	for _, ev := range s.History {
		ts := time.UnixMilli(ev.Timestamp).Format("15:04:05")
		sb.WriteString(fmt.Sprintf("%s %-6s %s\n", ts, ev.Type,
			describeEvent(team, ev)))
	}
	return sb.String()
}

func describeEvent(team *Team, ev MatchEvent) string {
	str := func(k string) string {
		if v, ok := ev.Details[k]; ok {
			return fmt.Sprint(v)
		}
		return ""
	}

	switch ev.Type {
	case EventSub:
		out := str("out")
		if out == "" {
			return fmt.Sprintf("%s in at P%s", PlayerLabel(team, str("in")),
				str("position"))
		}
		return fmt.Sprintf("%s in for %s at P%s", PlayerLabel(team, str("in")),
			PlayerLabel(team, out), str("position"))
	case EventScore:
		return fmt.Sprintf("%s %s (%s-%s)", str("side"), str("delta"),
			str("us"), str("opp"))
	case EventRotate:
		return fmt.Sprintf("server %s", PlayerLabel(team, str("server")))
	}
	return ""
}
