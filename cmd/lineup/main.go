/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/mikeb26/tvvc-lineuptracker/internal"
	"github.com/mikeb26/tvvc-lineuptracker/lineup"
	"github.com/mikeb26/tvvc-lineuptracker/match"
	"github.com/mikeb26/tvvc-lineuptracker/roster"
	"github.com/mikeb26/tvvc-lineuptracker/store"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":    handleHelp,
	"teams":   handleTeams,
	"show":    handleShow,
	"bench":   handleBench,
	"history": handleHistory,
	"sub":     handleIntent(match.IntentSub),
	"rotate":  handleIntent(match.IntentRotate),
	"score":   handleIntent(match.IntentScore),
	"reset":   handleIntent(match.IntentReset),
	"saved":   handleSaved,
	"play":    handlePlay,
}

func main() {
	ctx := context.Background()
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

type app struct {
	catalog *roster.Catalog
	adapter *store.Adapter
}

func openApp(ctx context.Context) *app {
	cfg := internal.LoadConfig()
	catalog, err := roster.Load(cfg.RosterFile)
	if err != nil {
		log.Fatalf("Error loading rosters: %v", err)
	}
	return &app{
		catalog: catalog,
		adapter: store.NewAdapter(store.OpenOrMemory(ctx, cfg)),
	}
}

// session returns a session for teamID with any saved state loaded.
func (a *app) session(teamID string) *match.Session {
	team, ok := a.catalog.Team(teamID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown team %q; run 'lineup teams' to list teams.\n",
			teamID)
		os.Exit(1)
	}
	sess := match.NewSession(a.adapter)
	sess.SelectTeam(team)
	return sess
}

// parseTeamFlag parses -team for cmd and returns the remaining arguments.
func parseTeamFlag(cmd string, args []string) (string, []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	teamID := fs.String("team", "", "Team id (as returned by teams)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *teamID == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid -team id.")
		fs.Usage()
		os.Exit(1)
	}
	return *teamID, fs.Args()
}

func handleTeams(ctx context.Context, args []string) {
	a := openApp(ctx)
	fmt.Print(a.catalog.BuildTeamsOutput())
}

func handleShow(ctx context.Context, args []string) {
	teamID, _ := parseTeamFlag("show", args)
	sess := openApp(ctx).session(teamID)
	fmt.Print(lineup.BuildMatchOutput(sess.Team(), sess.State()))
}

func handleBench(ctx context.Context, args []string) {
	teamID, _ := parseTeamFlag("bench", args)
	sess := openApp(ctx).session(teamID)
	fmt.Print(lineup.BuildBenchOutput(sess.Team(), sess.State()))
}

func handleHistory(ctx context.Context, args []string) {
	teamID, _ := parseTeamFlag("history", args)
	sess := openApp(ctx).session(teamID)
	fmt.Print(lineup.BuildHistoryOutput(sess.Team(), sess.State()))
}

// handleIntent runs a single state-changing command against the team's saved
// match. Undo is only offered by play since the undo stack is not persisted.
func handleIntent(kind match.IntentKind) cmdHandler {
	return func(ctx context.Context, args []string) {
		teamID, rest := parseTeamFlag(string(kind), args)
		in, err := match.ParseIntent(append([]string{string(kind)}, rest...))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		sess := openApp(ctx).session(teamID)
		msg, err := sess.Do(in)
		if err != nil {
			log.Fatalf("Error running %v for %v: %v", kind, teamID, err)
		}
		fmt.Println(msg)
		fmt.Println()
		fmt.Print(lineup.BuildMatchOutput(sess.Team(), sess.State()))
	}
}

func handleSaved(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("saved", flag.ExitOnError)
	sinceStr := fs.String("since", "", "Only list matches updated on or after this date")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	since, err := internal.ParseDateOrZero(*sinceStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -since date: %v\n", err)
		os.Exit(1)
	}

	a := openApp(ctx)
	teamIDs, err := a.adapter.List()
	if err != nil {
		log.Fatalf("Error listing saved matches: %v", err)
	}

	states := make([]*lineup.MatchState, 0, len(teamIDs))
	for _, id := range teamIDs {
		st, ok := a.adapter.Load(id)
		if !ok {
			continue
		}
		if !since.IsZero() && time.UnixMilli(st.UpdatedAt).Before(since) {
			continue
		}
		states = append(states, st)
	}
	if len(states) == 0 {
		fmt.Println("No saved matches found.")
		return
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].UpdatedAt > states[j].UpdatedAt
	})
	for _, st := range states {
		team, _ := a.catalog.Team(st.TeamID)
		fmt.Printf("%s  %s", time.UnixMilli(st.UpdatedAt).Format("2006-01-02 15:04"),
			lineup.BuildScoreOutput(team, st))
	}
}

func handlePlay(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	teamID := fs.String("team", "", "Team id to start with")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	a := openApp(ctx)
	p := newPlayer(a.catalog, match.NewSession(a.adapter), os.Stdout)
	if *teamID != "" {
		p.exec([]string{"team", *teamID})
	}
	if err := p.run(os.Stdin); err != nil {
		log.Fatalf("Error reading input: %v", err)
	}
}
