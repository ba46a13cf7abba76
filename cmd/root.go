package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "casegallery",
	Short: "Browse annotated case image collections in the browser",
	Long: `casegallery indexes a folder of case collections, pairs every image with
its annotated overlay and serves a viewer with keyboard, wheel, swipe and
press-and-hold navigation. Collections can also be queried by AI agents
over MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".casegallery.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
