package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cesargomez89/albumdays/internal/app"
	"github.com/cesargomez89/albumdays/internal/constants"
	"github.com/cesargomez89/albumdays/internal/exporter"
	"github.com/cesargomez89/albumdays/internal/history"
	"github.com/cesargomez89/albumdays/internal/musicbrainz"
)

var exportCmd = &cobra.Command{
	Use:   "export [archives...]",
	Short: "Aggregates streaming history and exports albums over the threshold",
	Long: `Reads one or more ZIP or JSON streaming-history exports, merges them into
per-album listening totals, optionally fetches release dates from
MusicBrainz, and writes the result as an albums.json document.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", constants.DefaultOutputName, "where to write filtered albums")
	viper.BindPFlag("output", exportCmd.Flags().Lookup("output"))

	exportCmd.Flags().Float64P("min-minutes", "m", constants.DefaultMinMinutes, "minimum minutes listened per album")
	viper.BindPFlag("min_minutes", exportCmd.Flags().Lookup("min-minutes"))

	exportCmd.Flags().Bool("fetch-release-dates", true, "fetch release dates from MusicBrainz")
	viper.BindPFlag("fetch_release_dates", exportCmd.Flags().Lookup("fetch-release-dates"))

	exportCmd.Flags().Float64("pause", constants.DefaultLookupPause.Seconds(), "delay between MusicBrainz requests, in seconds")
	viper.BindPFlag("pause", exportCmd.Flags().Lookup("pause"))
}

func runExport(ctx context.Context, archives []string) error {
	log := newLogger()

	albums, stats, err := history.Aggregate(archives, log)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	filtered := history.FilterByMinutes(albums, viper.GetFloat64("min_minutes"))

	if viper.GetBool("fetch_release_dates") {
		client := musicbrainz.NewClient(constants.DefaultMusicBrainzURL, nil, log)
		lookup := musicbrainz.NewCachedLookup(client, musicbrainz.NewMemoryCache(), 0, log)
		pause := time.Duration(viper.GetFloat64("pause") * float64(time.Second))
		filtered = app.NewReleaseEnricher(lookup, pause, log).Enrich(ctx, filtered)
	}

	output := viper.GetString("output")
	if err := exporter.Export(filtered, output); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Printf("Saved %d albums to %s (%d records read, %d skipped)\n",
		len(filtered), output, stats.Records, stats.Skipped)
	return nil
}
