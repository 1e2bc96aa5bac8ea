/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package roster provides the team catalog the lineup tracker selects from.
package roster

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mikeb26/tvvc-lineuptracker/lineup"
)

//go:embed teams.yaml
var defaultTeamsYAML []byte

// Catalog is an ordered set of teams with unique ids.
type Catalog struct {
	Teams []lineup.Team `yaml:"teams"`
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(bytes.NewReader(defaultTeamsYAML))
	if err != nil {
		panic(fmt.Sprintf("BUG: embedded teams.yaml is invalid: %v", err))
	}
	return c
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open roster file: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("unable to load %v: %w", path, err)
	}
	return c, nil
}

// Load returns the catalog at path, or the embedded default when path is "".
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Parse decodes and validates a YAML catalog.
func Parse(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("unable to parse roster yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that team ids are unique and that player ids are unique
// within the catalog.
func (c *Catalog) Validate() error {
	teamIDs := make(map[string]struct{})
	playerIDs := make(map[string]string)
	for _, t := range c.Teams {
		if t.ID == "" {
			return fmt.Errorf("team %q has no id", t.Name)
		}
		if strings.ContainsAny(t.ID, `/\`) {
			return fmt.Errorf("team id %q may not contain path separators", t.ID)
		}
		if _, dup := teamIDs[t.ID]; dup {
			return fmt.Errorf("duplicate team id %q", t.ID)
		}
		teamIDs[t.ID] = struct{}{}

		for _, p := range t.Roster {
			if p.ID == "" {
				return fmt.Errorf("team %v: player %q has no id", t.ID, p.Name)
			}
			if other, dup := playerIDs[p.ID]; dup {
				return fmt.Errorf("duplicate player id %q in teams %v and %v",
					p.ID, other, t.ID)
			}
			playerIDs[p.ID] = t.ID
		}
	}
	return nil
}

// Team looks up a team by id.
func (c *Catalog) Team(id string) (*lineup.Team, bool) {
	for i := range c.Teams {
		if c.Teams[i].ID == id {
			return &c.Teams[i], true
		}
	}
	return nil, false
}

// Merge adds or replaces teams by id, keeping the catalog sorted by id.
func (c *Catalog) Merge(teams ...lineup.Team) {
	for _, t := range teams {
		replaced := false
		for i := range c.Teams {
			if c.Teams[i].ID == t.ID {
				c.Teams[i] = t
				replaced = true
				break
			}
		}
		if !replaced {
			c.Teams = append(c.Teams, t)
		}
	}
	sort.SliceStable(c.Teams, func(i, j int) bool {
		return c.Teams[i].ID < c.Teams[j].ID
	})
}

// Write encodes the catalog as YAML.
func (c *Catalog) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("unable to encode roster yaml: %w", err)
	}
	return enc.Close()
}

// BuildTeamsOutput lists teams with their roster sizes.
func (c *Catalog) BuildTeamsOutput() string {
	if len(c.Teams) == 0 {
		return "No teams configured.\n"
	}
	var sb strings.Builder
	for _, t := range c.Teams {
		sb.WriteString(fmt.Sprintf("%-12s %s (%d players)\n", t.ID, t.Name,
			len(t.Roster)))
	}
	return sb.String()
}
