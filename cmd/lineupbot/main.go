/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/tvvc-lineuptracker/internal"
	"github.com/mikeb26/tvvc-lineuptracker/roster"
	"github.com/mikeb26/tvvc-lineuptracker/store"
)

var botPubKey ed25519.PublicKey

var client *discordgo.Session

type TopLevelCommand string

const (
	LineupCmd TopLevelCommand = "lineup"
)

type CmdHandler func(ctx context.Context,
	i *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	LineupCmd: lineupCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("lineupbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("lineupbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("lineupbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := dispatchInteraction(r.Context(), &inter)
	if resp == nil {
		log.Printf("lineupbot.int: unimplemented interation type %v: inter:%v",
			inter.Type, inter)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("lineupbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(rawResp); err != nil {
		log.Printf("lineupbot.int: failed to write resp: err:%v", err)
	}
}

// dispatchInteraction returns nil for interaction types the bot does not
// handle.
func dispatchInteraction(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{}
	switch inter.Type {
	case discordgo.InteractionPing:
		resp.Type = discordgo.InteractionResponsePong
	case discordgo.InteractionApplicationCommand:
		name := inter.ApplicationCommandData().Name
		hdlr, ok := topLevelCmdHdlrs[TopLevelCommand(name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'", name),
				Flags:   discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(ctx, inter)
		}
	default:
		return nil
	}
	return resp
}

func mustGetenv(name string) string {
	v := os.Getenv(name)
	if v == "" {
		log.Fatalf("lineupbot.init: %v must be set", name)
	}
	return v
}

func cmdRegistrationHash(cmd *discordgo.ApplicationCommand) string {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		log.Fatalf("lineupbot.reg: failed to marshal cmd: %v", err)
	}
	hash := sha256.Sum256(cmdJson)
	return hex.EncodeToString(hash[:])
}

func shouldUpdateCmdRegistration(cmd *discordgo.ApplicationCommand,
	lastHash string) bool {

	hexString := cmdRegistrationHash(cmd)
	shouldUpdate := (hexString != lastHash)
	if shouldUpdate {
		log.Printf("lineupbot.reg: updating cmd reg; please set LINEUP_BOT_CMD_HASH to %v",
			hexString)
	}

	return shouldUpdate
}

func registerSlashCommands(appID string, cmdID string, lastHash string) {
	lineupCmd := lineupCommand()

	if cmdID == "" {
		cmd, err := client.ApplicationCommandCreate(appID, "", lineupCmd)
		if err != nil {
			log.Printf("lineupbot.reg: failed to register %v: %v", lineupCmd.Name,
				err)
			return
		}

		log.Printf("lineupbot.reg: registered %v(cmdID:%v); please set LINEUP_BOT_CMD_ID",
			cmd.Name, cmd.ID)
	} else if shouldUpdateCmdRegistration(lineupCmd, lastHash) {
		cmd, err := client.ApplicationCommandEdit(appID, "", cmdID, lineupCmd)
		if err != nil {
			log.Printf("lineupbot.reg: failed to update %v: %v", lineupCmd.Name,
				err)
			return
		}

		log.Printf("lineupbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
	}
}

func main() {
	ctx := context.Background()
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	pubKeyBytes, err := hex.DecodeString(mustGetenv("LINEUP_BOT_PUBKEY"))
	if err != nil {
		log.Fatalf("lineupbot.init: Failed to parse public key: %v", err)
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)

	client, err = discordgo.New("Bot " + mustGetenv("LINEUP_BOT_TOKEN"))
	if err != nil {
		log.Fatalf("lineupbot.init: Failed to initialize discord client: %v", err)
	}

	cfg := internal.LoadConfig()
	catalog, err := roster.Load(cfg.RosterFile)
	if err != nil {
		log.Fatalf("lineupbot.init: Failed to load rosters: %v", err)
	}
	tracker = newChannelSessions(catalog,
		store.NewAdapter(store.OpenOrMemory(ctx, cfg)))

	go registerSlashCommands(mustGetenv("LINEUP_BOT_APP_ID"),
		os.Getenv("LINEUP_BOT_CMD_ID"), os.Getenv("LINEUP_BOT_CMD_HASH"))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("lineupbot.main: starting server on %v%v", hostname, addr)

	http.HandleFunc("/DiscordBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("lineupbot.main: Serve failed: %v", err)
	}

	log.Printf("lineupbot.main: exiting")
}
