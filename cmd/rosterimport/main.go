/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mikeb26/tvvc-lineuptracker/internal"
	"github.com/mikeb26/tvvc-lineuptracker/roster"
)

// this program builds a team catalog from club roster pages

func main() {
	fs := flag.NewFlagSet("rosterimport", flag.ExitOnError)
	base := fs.String("base", "", "Existing catalog to merge into (default: built-in teams)")
	out := fs.String("out", "", "Write the catalog here instead of stdout")
	bucket := fs.String("cachebucket", "", "S3 bucket for the page cache (default: memory)")
	maxAge := fs.Duration("maxage", 12*time.Hour, "How long fetched pages are cached")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: rosterimport [options] <team-id>[:<name>]=<url> ...\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(1)
	}

	sources := make([]roster.Source, 0, fs.NArg())
	for _, arg := range fs.Args() {
		src, err := roster.ParseSource(arg)
		if err != nil {
			log.Fatalf("rosterimport: %v", err)
		}
		sources = append(sources, src)
	}

	ctx := context.Background()
	client := internal.NewCachedHttpClient(ctx, *bucket, *maxAge)

	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("rosterimport: unable to create %v: %v", *out, err)
		}
		defer f.Close()
		w = f
	}

	if err := importRosters(ctx, client, *base, sources, w); err != nil {
		log.Fatalf("rosterimport: %v", err)
	}
}

// importRosters fetches sources, merges them over the catalog at basePath
// and writes the result to w.
func importRosters(ctx context.Context, client *http.Client, basePath string,
	sources []roster.Source, w io.Writer) error {

	catalog, err := roster.Load(basePath)
	if err != nil {
		return err
	}

	teams, err := roster.FetchTeams(ctx, client, sources)
	if err != nil {
		return err
	}
	for _, t := range teams {
		log.Printf("rosterimport: imported %v (%d players)", t.ID, len(t.Roster))
	}

	catalog.Merge(teams...)
	if err := catalog.Validate(); err != nil {
		return err
	}
	return catalog.Write(w)
}
