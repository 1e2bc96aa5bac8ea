/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mikeb26/tvvc-lineuptracker/lineup"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if len(c.Teams) < 2 {
		t.Fatalf("default catalog has %d teams", len(c.Teams))
	}
	team, ok := c.Team("16u-navy")
	if !ok {
		t.Fatalf("16u-navy missing from default catalog")
	}
	if len(team.Roster) < 7 {
		t.Errorf("16u-navy roster too small: %d", len(team.Roster))
	}
	if _, ok := c.Team("nope"); ok {
		t.Errorf("Team(nope) should miss")
	}
}

func TestParseValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{
			name: "duplicate team",
			yaml: "teams:\n  - {id: a, name: A}\n  - {id: a, name: B}\n",
		},
		{
			name: "missing team id",
			yaml: "teams:\n  - {name: A}\n",
		},
		{
			name: "duplicate player",
			yaml: "teams:\n  - id: a\n    roster: [{id: p1}, {id: p1}]\n",
		},
		{
			name: "path separator in team id",
			yaml: "teams:\n  - {id: a/b}\n",
		},
		{
			name: "malformed",
			yaml: "teams: [",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(c.yaml)); err == nil {
				t.Errorf("Parse should fail")
			}
		})
	}
}

func TestWriteLoadFile(t *testing.T) {
	c := &Catalog{}
	c.Merge(lineup.Team{ID: "b", Name: "B", Roster: []lineup.Player{
		{ID: "b1", Number: "1", Name: "One", Tags: []string{"setter"}}}})
	c.Merge(lineup.Team{ID: "a", Name: "A"})
	c.Merge(lineup.Team{ID: "b", Name: "B2"})

	if c.Teams[0].ID != "a" || c.Teams[1].Name != "B2" || len(c.Teams) != 2 {
		t.Fatalf("Merge result unexpected: %+v", c.Teams)
	}

	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	path := filepath.Join(t.TempDir(), "teams.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(c, got); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("LoadFile(missing) should fail")
	}
}

const rosterPage = `<html><body>
<h1>16U Navy</h1>
<table class="roster">
  <thead><tr><th>#</th><th>Player</th><th>Pos</th></tr></thead>
  <tbody>
    <tr><td>1</td><td>Claire  Dunn</td><td>S</td></tr>
    <tr><td>#4</td><td>JADA MOORE</td><td>OH/DS</td></tr>
    <tr><td></td><td>Walk On</td><td></td></tr>
    <tr><td>9</td><td></td><td>MB</td></tr>
  </tbody>
</table>
</body></html>`

func TestParseHTML(t *testing.T) {
	team, err := ParseHTML(strings.NewReader(rosterPage), "16n", "16U Navy")
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	want := &lineup.Team{
		ID:   "16n",
		Name: "16U Navy",
		Roster: []lineup.Player{
			{ID: "16n-1", Number: "1", Name: "Claire Dunn", Tags: []string{"s"}},
			{ID: "16n-4", Number: "4", Name: "Jada Moore", Tags: []string{"oh", "ds"}},
			{ID: "16n-walk-on", Name: "Walk On"},
		},
	}
	if diff := cmp.Diff(want, team); diff != "" {
		t.Errorf("ParseHTML mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHTMLErrors(t *testing.T) {
	for name, page := range map[string]string{
		"no table":   `<p>nothing here</p>`,
		"no name":    `<table class="roster"><thead><tr><th>#</th></tr></thead><tbody><tr><td>1</td></tr></tbody></table>`,
		"no players": `<table class="roster"><thead><tr><th>Name</th></tr></thead><tbody></tbody></table>`,
	} {
		if _, err := ParseHTML(strings.NewReader(page), "x", "X"); err == nil {
			t.Errorf("%s: ParseHTML should fail", name)
		}
	}
}

func TestParseSource(t *testing.T) {
	src, err := ParseSource("16n:16U Navy=https://example.org/16n")
	if err != nil {
		t.Fatal(err)
	}
	if src != (Source{TeamID: "16n", Name: "16U Navy", URL: "https://example.org/16n"}) {
		t.Errorf("ParseSource = %+v", src)
	}
	src, err = ParseSource("14r=https://example.org/14r?x=1")
	if err != nil || src.Name != "14r" || src.URL != "https://example.org/14r?x=1" {
		t.Errorf("ParseSource = %+v, %v", src, err)
	}
	if _, err := ParseSource("nourl"); err == nil {
		t.Errorf("ParseSource(nourl) should fail")
	}
}

func TestFetchTeams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, rosterPage)
	}))
	defer srv.Close()

	ctx := context.Background()
	teams, err := FetchTeams(ctx, srv.Client(), []Source{
		{TeamID: "a", Name: "A", URL: srv.URL + "/a"},
		{TeamID: "b", Name: "B", URL: srv.URL + "/b"},
	})
	if err != nil {
		t.Fatalf("FetchTeams: %v", err)
	}
	if len(teams) != 2 || teams[0].ID != "a" || teams[1].ID != "b" {
		t.Errorf("FetchTeams order/ids wrong: %+v", teams)
	}
	if len(teams[1].Roster) != 3 {
		t.Errorf("team b roster = %d players; want 3", len(teams[1].Roster))
	}

	_, err = FetchTeams(ctx, srv.Client(), []Source{
		{TeamID: "a", URL: srv.URL + "/a"},
		{TeamID: "gone", URL: srv.URL + "/missing"},
	})
	if err == nil {
		t.Errorf("FetchTeams should fail when one page is missing")
	}
}
