package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/meysamhadeli/tierlist/constants/lipgloss"
	"github.com/meysamhadeli/tierlist/utils"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the computed snapshots and deltas as JSON.",
	Long: `The 'export' command writes the normalized board, every computed snapshot and the per-snapshot
deltas as a single JSON document. Output on a terminal is syntax highlighted with the configured theme.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pretty, _ := cmd.Flags().GetBool("pretty")
		outPath, _ := cmd.Flags().GetString("out")

		deps, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleExportCommand(cmd, deps, pretty, outPath)
	},
}

func init() {
	exportCmd.Flags().BoolP("pretty", "p", false, "Indent the exported JSON.")
	exportCmd.Flags().StringP("out", "o", "", "Write to this file instead of stdout.")

	rootCmd.AddCommand(exportCmd)
}

func handleExportCommand(cmd *cobra.Command, deps *RootDependencies, pretty bool, outPath string) error {
	ctx := commandContext(cmd)

	tl, err := loadTimeline(ctx, deps)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	highlight := outPath == "" && out == os.Stdout && utils.IsTerminal(os.Stdout)

	var data []byte
	if pretty || highlight {
		data, err = json.MarshalIndent(tl, "", "  ")
	} else {
		data, err = json.Marshal(tl)
	}
	if err != nil {
		return fmt.Errorf("failed to encode timeline: %w", err)
	}
	data = append(data, '\n')

	if outPath != "" {
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		fmt.Fprintln(out, lipgloss.Green.Render(fmt.Sprintf("✓ Exported %d snapshots to %s", len(tl.Snapshots), outPath)))
		return nil
	}

	if highlight {
		return utils.HighlightJSON(ctx, out, string(data), deps.Config.Theme)
	}

	_, err = out.Write(data)
	return err
}
