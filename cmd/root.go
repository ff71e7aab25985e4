// Package cmd provides the command line interface: the web editor server and the
// export and listing commands that work on the persisted tabs.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ConfigEnv names the environment variable holding the config file path.
const ConfigEnv = "TABSMITH_CONFIG"

var configPath string

// rootCmd runs the web editor when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "tabsmith",
	Short: "Build a set of tabs and export them as one standalone HTML file",
	Long: `tabsmith serves a small editor for a list of tabs (up to 15) and turns them
into a single self-contained HTML document with inline styles and script.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: $"+ConfigEnv+" or the first config.yml found)")
	rootCmd.AddCommand(serveCmd, exportCmd, tabsCmd)
}
