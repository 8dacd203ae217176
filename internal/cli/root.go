// Package cli implements the albumdays command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cesargomez89/albumdays/internal/logger"
)

var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "albumdays",
	Short: "Prepares album listening statistics from streaming history exports",
	Long: `albumdays aggregates personal streaming-history exports into per-album
listening totals, enriches them with release dates from MusicBrainz, and
computes upcoming release anniversaries.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func newLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:  viper.GetString("log_level"),
		Format: "text",
	})
}
