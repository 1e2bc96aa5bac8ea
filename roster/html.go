/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/tvvc-lineuptracker/internal"
	"github.com/mikeb26/tvvc-lineuptracker/lineup"
)

// Source names a club roster page and the team it describes.
type Source struct {
	TeamID string
	Name   string
	URL    string
}

// ParseSource parses "id=url" or "id:Team Name=url".
func ParseSource(s string) (Source, error) {
	spec, url, ok := strings.Cut(s, "=")
	if !ok || spec == "" || url == "" {
		return Source{}, fmt.Errorf("invalid roster source %q: expected id[:name]=url", s)
	}
	id, name, _ := strings.Cut(spec, ":")
	if name == "" {
		name = id
	}
	return Source{TeamID: id, Name: name, URL: url}, nil
}

var nonIDChars = regexp.MustCompile(`[^a-z0-9]+`)

func playerID(teamID, number, name string) string {
	base := number
	if base == "" {
		base = strings.ToLower(name)
	}
	base = strings.Trim(nonIDChars.ReplaceAllString(strings.ToLower(base), "-"), "-")
	return teamID + "-" + base
}

// ParseHTML extracts a team from the first table.roster in r. Columns are
// located by header text ("#"/"No"/"Number", "Name"/"Player",
// "Pos"/"Position"); rows without a name are skipped.
func ParseHTML(r io.Reader, teamID, teamName string) (*lineup.Team, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse roster html: %w", err)
	}

	table := doc.Find("table.roster").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no roster table found for %v", teamID)
	}

	numIdx, nameIdx, posIdx := -1, -1, -1
	table.Find("thead th").Each(func(i int, s *goquery.Selection) {
		switch strings.ToLower(strings.TrimSpace(s.Text())) {
		case "#", "no", "no.", "number":
			numIdx = i
		case "name", "player":
			nameIdx = i
		case "pos", "pos.", "position":
			posIdx = i
		}
	})
	if nameIdx < 0 {
		return nil, fmt.Errorf("roster table for %v has no name column", teamID)
	}

	team := &lineup.Team{ID: teamID, Name: teamName}
	seen := make(map[string]int)
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		cell := func(idx int) string {
			if idx < 0 || idx >= cells.Length() {
				return ""
			}
			return strings.TrimSpace(cells.Eq(idx).Text())
		}

		name := internal.NormalizeName(cell(nameIdx))
		if name == "" {
			return
		}
		number := strings.TrimPrefix(cell(numIdx), "#")
		p := lineup.Player{
			ID:     playerID(teamID, number, name),
			Number: number,
			Name:   name,
		}
		base := p.ID
		if n := seen[base]; n > 0 {
			p.ID = fmt.Sprintf("%s-%d", base, n+1)
		}
		seen[base]++
		for _, tag := range strings.FieldsFunc(cell(posIdx), func(r rune) bool {
			return r == '/' || r == ',' || r == ' '
		}) {
			p.Tags = append(p.Tags, strings.ToLower(tag))
		}
		team.Roster = append(team.Roster, p)
	})

	if len(team.Roster) == 0 {
		return nil, fmt.Errorf("roster table for %v has no players", teamID)
	}
	return team, nil
}

// FetchTeam downloads and parses one roster page.
func FetchTeam(ctx context.Context, client *http.Client,
	src Source) (*lineup.Team, error) {

	req, err := http.NewRequestWithContext(ctx, "GET", src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch roster %v (new): %w", src.TeamID, err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch roster %v (do): %w", src.TeamID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to fetch roster %v (http): %v",
			src.TeamID, resp.StatusCode)
	}

	return ParseHTML(resp.Body, src.TeamID, src.Name)
}

// FetchTeams fetches every source concurrently. Results keep the order of
// sources; the first error cancels the remaining fetches.
func FetchTeams(ctx context.Context, client *http.Client,
	sources []Source) ([]lineup.Team, error) {

	teams := make([]lineup.Team, len(sources))
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			t, err := FetchTeam(ctx, client, src)
			if err != nil {
				return err
			}
			mu.Lock()
			teams[i] = *t
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return teams, nil
}
