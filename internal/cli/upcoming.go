package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cesargomez89/albumdays/internal/birthdays"
	"github.com/cesargomez89/albumdays/internal/constants"
	"github.com/cesargomez89/albumdays/internal/domain"
	"github.com/cesargomez89/albumdays/internal/exporter"
)

var upcomingCmd = &cobra.Command{
	Use:   "upcoming [albums.json]",
	Short: "Shows upcoming album release anniversaries",
	Long:  `Reads an albums.json document and prints the release anniversaries falling within the horizon.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpcoming(args[0])
	},
}

func init() {
	rootCmd.AddCommand(upcomingCmd)

	upcomingCmd.Flags().IntP("days", "n", constants.DefaultHorizonDays, "horizon in days")
	viper.BindPFlag("days", upcomingCmd.Flags().Lookup("days"))
}

func runUpcoming(path string) error {
	albums, err := exporter.Load(path)
	if err != nil {
		return fmt.Errorf("upcoming: %w", err)
	}

	events := birthdays.Upcoming(albums, domain.Today(), viper.GetInt("days"))
	if len(events) == 0 {
		fmt.Println("No album birthdays in the selected period.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"In (days)", "Date", "Artist", "Album", "Turns", "Minutes"})
	for _, event := range events {
		table.Append([]string{
			strconv.Itoa(event.DaysUntil),
			event.NextDate.String(),
			event.Album.Artist,
			event.Album.Album,
			strconv.Itoa(event.Age),
			fmt.Sprintf("%.0f", event.Album.Minutes),
		})
	}
	table.Render()
	return nil
}
