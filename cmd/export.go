package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/OliveiraNt/tabsmith/internal/utils"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportCopy   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the persisted tabs as a standalone HTML document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		utils.LogToStderr()
		a, err := bootstrap(resolveConfigPath(configPath))
		if err != nil {
			return err
		}
		defer a.Close()
		return runExport(cmd.Context(), a, cmd.OutOrStdout(), exportOutput, exportCopy)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")
	exportCmd.Flags().BoolVar(&exportCopy, "copy", false, "also copy the document to the clipboard")
}

func runExport(ctx context.Context, a *app, stdout io.Writer, output string, copyOut bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	doc := a.builder.Generate()

	if output == "" {
		if _, err := io.WriteString(stdout, doc); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
	} else {
		if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		utils.Logger.Info("export written", "path", output, "tabs", a.store.Len())
	}

	if copyOut && !a.builder.CopyLastGenerated(ctx) {
		utils.Logger.Warn("export not copied to clipboard")
	}
	return nil
}
