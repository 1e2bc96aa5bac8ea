/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/tvvc-lineuptracker/internal"
	"github.com/mikeb26/tvvc-lineuptracker/lineup"
	"github.com/mikeb26/tvvc-lineuptracker/match"
	"github.com/mikeb26/tvvc-lineuptracker/roster"
	"github.com/mikeb26/tvvc-lineuptracker/store"
)

type LineupSubCommand string

const (
	LineupHelpCmd    LineupSubCommand = "help"
	LineupTeamsCmd   LineupSubCommand = "teams"
	LineupTeamCmd    LineupSubCommand = "team"
	LineupShowCmd    LineupSubCommand = "show"
	LineupBenchCmd   LineupSubCommand = "bench"
	LineupSavedCmd   LineupSubCommand = "saved"
	LineupHistoryCmd LineupSubCommand = "history"
	LineupSubCmd     LineupSubCommand = "sub"
	LineupRotateCmd  LineupSubCommand = "rotate"
	LineupScoreCmd   LineupSubCommand = "score"
	LineupUndoCmd    LineupSubCommand = "undo"
	LineupResetCmd   LineupSubCommand = "reset"
)

var lineupSubCmdHdlrs = map[LineupSubCommand]CmdHandler{
	LineupHelpCmd:    lineupHelpCmdHandler,
	LineupTeamsCmd:   lineupTeamsCmdHandler,
	LineupTeamCmd:    lineupTeamCmdHandler,
	LineupShowCmd:    lineupShowCmdHandler,
	LineupBenchCmd:   lineupBenchCmdHandler,
	LineupSavedCmd:   lineupSavedCmdHandler,
	LineupHistoryCmd: lineupHistoryCmdHandler,
	LineupSubCmd:     lineupSubCmdHandler,
	LineupRotateCmd:  lineupIntentCmdHandler(match.IntentRotate),
	LineupScoreCmd:   lineupScoreCmdHandler,
	LineupUndoCmd:    lineupIntentCmdHandler(match.IntentUndo),
	LineupResetCmd:   lineupIntentCmdHandler(match.IntentReset),
}

// channelSessions holds one independent match session per Discord channel.
type channelSessions struct {
	catalog *roster.Catalog
	adapter *store.Adapter

	mu       sync.Mutex
	sessions map[string]*match.Session
}

var tracker *channelSessions

func newChannelSessions(catalog *roster.Catalog,
	adapter *store.Adapter) *channelSessions {

	return &channelSessions{
		catalog:  catalog,
		adapter:  adapter,
		sessions: make(map[string]*match.Session),
	}
}

func (cs *channelSessions) get(channelID string) *match.Session {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	sess, ok := cs.sessions[channelID]
	if !ok {
		sess = match.NewSession(cs.adapter)
		cs.sessions[channelID] = sess
	}
	return sess
}

func lineupCommand() *discordgo.ApplicationCommand {
	broadcastOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
	sub := func(name LineupSubCommand, desc string,
		opts ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {

		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        string(name),
			Description: desc,
			Options:     append(opts, broadcastOpt),
		}
	}

	return &discordgo.ApplicationCommand{
		Name:        string(LineupCmd),
		Description: "Volleyball lineup tracker; try /lineup help to start",
		Options: []*discordgo.ApplicationCommandOption{
			sub(LineupHelpCmd, "Show usage for lineup"),
			sub(LineupTeamsCmd, "List the configured teams"),
			sub(LineupTeamCmd, "Select the team for this channel",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "id",
					Description: "Team id (as returned by teams)",
					Required:    true,
				}),
			sub(LineupShowCmd, "Show score, court and bench"),
			sub(LineupBenchCmd, "Show the bench"),
			sub(LineupSavedCmd, "List teams with a saved match",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "since",
					Description: "Only list matches updated on or after this date",
					Required:    false,
				}),
			sub(LineupHistoryCmd, "Show the logged match events"),
			sub(LineupSubCmd, "Substitute a player into a position",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "player",
					Description: "Player id (as shown by show)",
					Required:    true,
				},
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "position",
					Description: "Court position 1-6",
					Required:    true,
				}),
			sub(LineupRotateCmd, "Rotate the court clockwise"),
			sub(LineupScoreCmd, "Adjust a score",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "side",
					Description: "Which score to change",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "us", Value: string(lineup.SideUs)},
						{Name: "them", Value: string(lineup.SideThem)},
					},
				},
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "change",
					Description: "+ to add a point (default), - to remove one",
					Required:    false,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "+", Value: "+"},
						{Name: "-", Value: "-"},
					},
				}),
			sub(LineupUndoCmd, "Revert the last change made in this channel"),
			sub(LineupResetCmd, "Start the match over"),
		},
	}
}

func lineupCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := lineupHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := lineupSubCmdHdlrs[LineupSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

func newResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

// subOptions returns the options passed to the subcommand keyed by name and
// applies the broadcast option to resp.
func subOptions(inter *discordgo.Interaction,
	resp *discordgo.InteractionResponse) map[string]*discordgo.ApplicationCommandInteractionDataOption {

	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	data := inter.ApplicationCommandData()
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			opts[opt.Name] = opt
		}
	}
	if b, ok := opts["broadcast"]; ok && b.BoolValue() {
		resp.Data.Flags = 0
	}
	return opts
}

// codeBlock wraps output for monospace formatting in Discord.
func codeBlock(s string) string {
	return truncateContent(fmt.Sprintf("```\n%s```", s))
}

//go:embed help.md
var helpText string

func lineupHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

func lineupTeamsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	subOptions(inter, resp)
	resp.Data.Content = codeBlock(tracker.catalog.BuildTeamsOutput())
	return resp
}

func lineupTeamCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := subOptions(inter, resp)
	idOpt, ok := opts["id"]
	if !ok {
		resp.Data.Content = "Please provide a team id."
		log.Printf("lineupbot.team: %v", resp.Data.Content)
		return resp
	}
	teamID := idOpt.StringValue()
	team, ok := tracker.catalog.Team(teamID)
	if !ok {
		resp.Data.Content = fmt.Sprintf("Unknown team '%v'; try /lineup teams", teamID)
		log.Printf("lineupbot.team: %v", resp.Data.Content)
		return resp
	}

	sess := tracker.get(inter.ChannelID)
	header := fmt.Sprintf("New match for %v", team.Name)
	if sess.SelectTeam(team) {
		header = fmt.Sprintf("Resumed saved match for %v", team.Name)
	}
	resp.Data.Content = truncateContent(fmt.Sprintf("%v\n```\n%s```", header,
		lineup.BuildMatchOutput(sess.Team(), sess.State())))
	return resp
}

// selectedSession returns the channel's session, or sets resp to a hint and
// returns nil when no team has been chosen yet.
func selectedSession(inter *discordgo.Interaction,
	resp *discordgo.InteractionResponse) *match.Session {

	sess := tracker.get(inter.ChannelID)
	if sess.Team() == nil {
		resp.Data.Content = "No team selected; run /lineup team <id> first."
		return nil
	}
	return sess
}

func lineupShowCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	subOptions(inter, resp)
	sess := selectedSession(inter, resp)
	if sess == nil {
		return resp
	}
	resp.Data.Content = codeBlock(lineup.BuildMatchOutput(sess.Team(),
		sess.State()))
	return resp
}

func lineupBenchCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	subOptions(inter, resp)
	sess := selectedSession(inter, resp)
	if sess == nil {
		return resp
	}
	resp.Data.Content = codeBlock(lineup.BuildBenchOutput(sess.Team(),
		sess.State()))
	return resp
}

func lineupSavedCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := subOptions(inter, resp)
	var since time.Time
	if sinceOpt, ok := opts["since"]; ok {
		var err error
		since, err = internal.ParseDateOrZero(sinceOpt.StringValue())
		if err != nil {
			resp.Data.Content = fmt.Sprintf("Invalid since date: %v", err)
			return resp
		}
	}

	teamIDs, err := tracker.adapter.List()
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error listing saved matches: %v", err)
		log.Printf("lineupbot.saved: %v", resp.Data.Content)
		return resp
	}

	var sb strings.Builder
	for _, id := range teamIDs {
		st, ok := tracker.adapter.Load(id)
		if !ok {
			continue
		}
		updated := time.UnixMilli(st.UpdatedAt)
		if !since.IsZero() && updated.Before(since) {
			continue
		}
		team, _ := tracker.catalog.Team(st.TeamID)
		sb.WriteString(fmt.Sprintf("%s  %s", updated.Format("2006-01-02 15:04"),
			lineup.BuildScoreOutput(team, st)))
	}
	if sb.Len() == 0 {
		resp.Data.Content = "No saved matches found."
		return resp
	}
	resp.Data.Content = codeBlock(sb.String())
	return resp
}

func lineupHistoryCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	subOptions(inter, resp)
	sess := selectedSession(inter, resp)
	if sess == nil {
		return resp
	}
	resp.Data.Content = codeBlock(lineup.BuildHistoryOutput(sess.Team(),
		sess.State()))
	return resp
}

// runIntent applies in to the channel's session and renders the result.
func runIntent(inter *discordgo.Interaction, resp *discordgo.InteractionResponse,
	in match.Intent) *discordgo.InteractionResponse {

	sess := selectedSession(inter, resp)
	if sess == nil {
		return resp
	}
	msg, err := sess.Do(in)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Unable to %v: %v", in.Kind, err)
		if !errors.Is(err, match.ErrNoTeamSelected) {
			log.Printf("lineupbot.%v: %v", in.Kind, resp.Data.Content)
		}
		return resp
	}
	resp.Data.Content = truncateContent(fmt.Sprintf("%v\n```\n%s```", msg,
		lineup.BuildMatchOutput(sess.Team(), sess.State())))
	return resp
}

func lineupIntentCmdHandler(kind match.IntentKind) CmdHandler {
	return func(ctx context.Context,
		inter *discordgo.Interaction) *discordgo.InteractionResponse {

		resp := newResponse()
		subOptions(inter, resp)
		return runIntent(inter, resp, match.Intent{Kind: kind})
	}
}

func lineupSubCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := subOptions(inter, resp)
	playerOpt, ok1 := opts["player"]
	posOpt, ok2 := opts["position"]
	if !ok1 || !ok2 {
		resp.Data.Content = "Please provide a player id and a position."
		log.Printf("lineupbot.sub: %v", resp.Data.Content)
		return resp
	}

	in, err := match.ParseIntent([]string{string(match.IntentSub),
		playerOpt.StringValue(), strconv.FormatInt(posOpt.IntValue(), 10)})
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Unable to sub: %v", err)
		return resp
	}
	return runIntent(inter, resp, in)
}

func lineupScoreCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := subOptions(inter, resp)
	sideOpt, ok := opts["side"]
	if !ok {
		resp.Data.Content = "Please provide a side (us or them)."
		log.Printf("lineupbot.score: %v", resp.Data.Content)
		return resp
	}
	fields := []string{string(match.IntentScore), sideOpt.StringValue()}
	if changeOpt, ok := opts["change"]; ok {
		fields = append(fields, changeOpt.StringValue())
	}

	in, err := match.ParseIntent(fields)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Unable to score: %v", err)
		return resp
	}
	return runIntent(inter, resp, in)
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
