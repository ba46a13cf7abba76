package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/casegallery/internal/gallery"
	"github.com/ziadkadry99/casegallery/internal/progress"
)

var indexJSON bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Scan the image root and report collections and overlay pairing",
	Long:  `Builds the corpus the viewer would serve and prints every collection with its image, overlay and note counts. Nothing is written to disk.`,
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(indexCmd)
}

// indexRow is one collection in the index report.
type indexRow struct {
	Key      string `json:"key"`
	Images   int    `json:"images"`
	Overlays int    `json:"overlays"`
	Mapped   int    `json:"mapped"`
	HasNote  bool   `json:"has_note"`
}

// indexReport is the full output of the index command.
type indexReport struct {
	Root        string        `json:"root"`
	Stats       gallery.Stats `json:"stats"`
	Collections []indexRow    `json:"collections"`
}

func runIndex(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	var rep progress.Reporter
	if !indexJSON {
		rep = progress.NewReporter("Indexing")
	}
	corpus, err := buildCorpus(cfg, log, rep)
	if err != nil {
		return err
	}

	report := indexReport{Root: cfg.ImageRoot, Stats: corpus.Stats(), Collections: []indexRow{}}
	for _, key := range corpus.CollectionKeys() {
		col, _ := corpus.Collection(key)
		report.Collections = append(report.Collections, indexRow{
			Key:      key,
			Images:   len(col.Images),
			Overlays: len(col.Overlays),
			Mapped:   len(corpus.OverlayMapping(key)),
			HasNote:  corpus.CollectionNote(key) != "",
		})
	}

	if indexJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLLECTION\tIMAGES\tOVERLAYS\tMAPPED\tNOTE")
	for _, r := range report.Collections {
		note := "-"
		if r.HasNote {
			note = "yes"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", r.Key, r.Images, r.Overlays, r.Mapped, note)
	}
	tw.Flush()

	s := report.Stats
	fmt.Printf("\n%d collections (%d selectable), %d images, %d overlays (%d images paired), %d notes, %d skipped in %s\n",
		s.Collections, s.Selectable, s.Images, s.Overlays, s.Mapped, s.Notes, s.Skipped, time.Since(start).Round(time.Millisecond))
	return nil
}
