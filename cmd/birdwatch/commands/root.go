package commands

import (
	"context"
	"fmt"
	"os"

	"birdwatch/lib/telemetry"

	"github.com/spf13/cobra"
)

var verbose *bool
var jsonOutput *bool
var configPath *string

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging and request dumping.")
	jsonOutput = rootCmd.PersistentFlags().Bool("json", false, "Emit JSON instead of tables.")
	configPath = rootCmd.PersistentFlags().String("config", "birdwatch.json5", "Path to the configuration file.")
}

var rootCmd = &cobra.Command{
	Use:   "birdwatch",
	Short: "birdwatch reads timelines, threads and search results off the bird site's internal API.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
		if _, err := telemetry.SetupFromEnv(cmd.Context(), "birdwatch"); err == nil {
			telemetry.InstrumentPerfStats(cmd.Context())
		}
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
