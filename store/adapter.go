/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mikeb26/tvvc-lineuptracker/internal"
	"github.com/mikeb26/tvvc-lineuptracker/lineup"
)

// Adapter saves and restores MatchState records, one per team. Every failure
// is logged and swallowed: Load reports a miss, Save and Clear do nothing.
type Adapter struct {
	store Store
}

func NewAdapter(s Store) *Adapter {
	return &Adapter{store: s}
}

// StorageKey returns the key a team's state is stored under.
func StorageKey(teamID string) string {
	return internal.StorageKeyPrefix + teamID
}

// guard keeps a misbehaving backend from escaping the adapter.
func guard(op string) {
	if r := recover(); r != nil {
		log.Printf("store.%v: recovered from backend failure: %v", op, r)
	}
}

// Save overwrites the stored state for state.TeamID.
func (a *Adapter) Save(state *lineup.MatchState) {
	defer guard("save")
	if a == nil || a.store == nil || state == nil {
		log.Printf("store.save: storage unavailable")
		return
	}

	data, err := json.Marshal(state)
	if err != nil {
		log.Printf("store.save: failed to marshal state for %v: %v",
			state.TeamID, err)
		return
	}
	a.store.Set(StorageKey(state.TeamID), data)
}

// Load returns the stored state for teamID as written, without checking its
// lineup invariants.
func (a *Adapter) Load(teamID string) (state *lineup.MatchState, ok bool) {
	defer guard("load")
	if a == nil || a.store == nil {
		log.Printf("store.load: storage unavailable")
		return nil, false
	}

	data, found := a.store.Get(StorageKey(teamID))
	if !found || len(data) == 0 {
		return nil, false
	}
	var s lineup.MatchState
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("store.load: failed to unmarshal state for %v: %v", teamID, err)
		return nil, false
	}
	return &s, true
}

// Clear removes the stored state for teamID.
func (a *Adapter) Clear(teamID string) {
	defer guard("clear")
	if a == nil || a.store == nil {
		log.Printf("store.clear: storage unavailable")
		return
	}
	a.store.Delete(StorageKey(teamID))
}

// List returns the ids of teams with saved state.
func (a *Adapter) List() ([]string, error) {
	if a == nil || a.store == nil {
		return nil, fmt.Errorf("store.list: storage unavailable")
	}
	lister, ok := a.store.(Lister)
	if !ok {
		return nil, fmt.Errorf("store.list: backend %T cannot enumerate keys",
			a.store)
	}
	keys, err := lister.Keys(internal.StorageKeyPrefix)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		if id, ok := strings.CutPrefix(k, internal.StorageKeyPrefix); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
