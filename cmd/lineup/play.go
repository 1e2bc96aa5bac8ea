/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mikeb26/tvvc-lineuptracker/lineup"
	"github.com/mikeb26/tvvc-lineuptracker/match"
	"github.com/mikeb26/tvvc-lineuptracker/roster"
)

const playHelp = `team <id>            select a team
sub <player> <pos>   substitute player into position 1-6
rotate               rotate clockwise
score us|them [+|-]  adjust a score
undo                 revert the last change
reset                start the match over
show | bench | history | teams
quit
`

// player drives an interactive session, one command per input line.
type player struct {
	catalog *roster.Catalog
	sess    *match.Session
	out     io.Writer
}

func newPlayer(catalog *roster.Catalog, sess *match.Session,
	out io.Writer) *player {

	return &player{catalog: catalog, sess: sess, out: out}
}

func (p *player) prompt() {
	name := "-"
	if t := p.sess.Team(); t != nil {
		name = t.ID
	}
	fmt.Fprintf(p.out, "%s> ", name)
}

// run reads commands from r until EOF or quit.
func (p *player) run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	p.prompt()
	for scanner.Scan() {
		if !p.exec(strings.Fields(scanner.Text())) {
			return nil
		}
		p.prompt()
	}
	fmt.Fprintln(p.out)
	return scanner.Err()
}

// exec runs one command and reports whether the session should continue.
func (p *player) exec(fields []string) bool {
	if len(fields) == 0 {
		return true
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return false
	case "help", "?":
		fmt.Fprint(p.out, playHelp)
	case "teams":
		fmt.Fprint(p.out, p.catalog.BuildTeamsOutput())
	case "team":
		if len(fields) != 2 {
			fmt.Fprintln(p.out, "usage: team <id>")
			break
		}
		team, ok := p.catalog.Team(fields[1])
		if !ok {
			fmt.Fprintf(p.out, "unknown team %q\n", fields[1])
			break
		}
		if p.sess.SelectTeam(team) {
			fmt.Fprintf(p.out, "Resumed saved match for %s\n\n", team.Name)
		} else {
			fmt.Fprintf(p.out, "New match for %s\n\n", team.Name)
		}
		p.show(lineup.BuildMatchOutput)
	case "show":
		p.show(lineup.BuildMatchOutput)
	case "bench":
		p.show(lineup.BuildBenchOutput)
	case "history":
		p.show(lineup.BuildHistoryOutput)
	default:
		in, err := match.ParseIntent(fields)
		if err != nil {
			fmt.Fprintf(p.out, "%v (try help)\n", err)
			break
		}
		msg, err := p.sess.Do(in)
		if err != nil {
			p.reportErr(err)
			break
		}
		fmt.Fprintf(p.out, "%s\n\n", msg)
		p.show(lineup.BuildMatchOutput)
	}
	return true
}

func (p *player) show(build func(*lineup.Team, *lineup.MatchState) string) {
	st := p.sess.State()
	if st == nil {
		fmt.Fprintln(p.out, "No team selected; use team <id>.")
		return
	}
	fmt.Fprint(p.out, build(p.sess.Team(), st))
}

func (p *player) reportErr(err error) {
	if errors.Is(err, match.ErrNoTeamSelected) {
		fmt.Fprintln(p.out, "No team selected; use team <id>.")
		return
	}
	fmt.Fprintf(p.out, "error: %v\n", err)
}
