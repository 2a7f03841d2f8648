package cmd

import (
	"github.com/spf13/cobra"
)

const app = "scrapper-hellowork"

var (
	// Used for flags.
	cfgFile   string
	dataDir   string
	debugMode bool
	jsonLogs  bool

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "scrapper-hellowork collects job offers from HelloWork, scores them against your skills and drafts motivation letters",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is config.yml inside the data dir, seeded from config/config.yml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", ".", "directory for exports, letters and debug artifacts")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLogs, "json", "j", false, "json format for logging")
}
