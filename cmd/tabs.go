package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/OliveiraNt/tabsmith/internal/utils"
	"github.com/spf13/cobra"
)

var tabsJSON bool

var tabsCmd = &cobra.Command{
	Use:   "tabs",
	Short: "List the persisted tabs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		utils.LogToStderr()
		a, err := bootstrap(resolveConfigPath(configPath))
		if err != nil {
			return err
		}
		defer a.Close()
		return runTabs(a, cmd.OutOrStdout(), tabsJSON)
	},
}

func init() {
	tabsCmd.Flags().BoolVar(&tabsJSON, "json", false, "print the snapshot as JSON")
}

func runTabs(a *app, out io.Writer, asJSON bool) error {
	snap := a.store.Snapshot()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, t := range snap.Tabs {
		marker := " "
		if t.ID == snap.ActiveID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s %d\t%s\t%d chars\n", marker, i+1, t.DisplayTitle(), len([]rune(t.Content)))
	}
	return tw.Flush()
}
