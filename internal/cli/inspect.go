package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/addonhub-labs/addonhub/internal/blinfo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Extract and print one add-on's bl_info declaration",
	Long: `Extract the bl_info declaration from a single add-on source file and print
it as JSON. Useful for checking why an add-on was excluded from the index.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info := blinfo.Parse(args[0], slog.Default())
		if info == nil {
			return fmt.Errorf("no usable bl_info declaration in %s", args[0])
		}

		out, err := json.MarshalIndent(info, "", "    ")
		if err != nil {
			return fmt.Errorf("marshaling declaration: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
