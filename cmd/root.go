package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "narrative-video-automator",
	Short: "Turn narration analysis into timed, animated scenes with visuals",
	Long: `narrative-video-automator reads per-scene narration analysis and produces
scenes with a clamped duration, a visual (AI image, curated figure image,
stock photo or video, or a placeholder) and a Ken Burns pan/zoom setting.
Single scenes can be regenerated without touching the rest of the set.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")

	rootCmd.AddCommand(scenesCmd)
	rootCmd.AddCommand(regenerateCmd)
}
