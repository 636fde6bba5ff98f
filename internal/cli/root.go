package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/addonhub-labs/addonhub/internal/branding"
	"github.com/addonhub-labs/addonhub/internal/config"
	"github.com/addonhub-labs/addonhub/internal/index"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagMerge   bool
	flagSource  string
	flagBase    string
	flagOutput  string
	flagVerbose bool
)

var printer = message.NewPrinter(language.English)

func init() {
	rootCmd.Flags().BoolVar(&flagMerge, "merge", false,
		"Merge with an existing index file instead of starting fresh")
	rootCmd.Flags().StringVar(&flagSource, "source", config.DefaultSource,
		"Source label stored in every generated entry")
	rootCmd.Flags().StringVar(&flagBase, "base", config.DefaultBaseURL,
		"Base URL used to compute each entry's download_url")
	rootCmd.Flags().StringVar(&flagOutput, "output", config.DefaultOutput,
		"Path of the index file to write (and to merge from)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"Enable debug logging")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " DIR",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scans a directory of add-ons, statically extracts the
bl_info metadata declaration embedded in each one (no add-on code is ever
executed), and writes an index.json document for the package-manager client.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args[0])
	},
}

// runGenerate executes one scan-extract-merge-write cycle over dir.
func runGenerate(cmd *cobra.Command, dir string) error {
	log := slog.Default()

	source := flagValue(cmd, "source", config.KeySource, flagSource)
	base := flagValue(cmd, "base", config.KeyBaseURL, flagBase)
	output := flagValue(cmd, "output", config.KeyOutput, flagOutput)

	existing := map[string]index.Entry{}
	if flagMerge {
		log.Info("reading existing index", "path", output)
		var err error
		existing, err = index.Read(output)
		if err != nil {
			return err
		}
	}

	fresh, err := index.Build(dir, source, base, log)
	if err != nil {
		return err
	}

	merged := index.Merge(existing, fresh)

	log.Info("writing add-on index", "path", output)
	if err := index.Write(output, merged); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(),
		printer.Sprintf("Indexed %d add-ons (%d total in %s)", len(fresh), len(merged), output))
	return nil
}

// flagValue resolves a setting: an explicitly set flag wins, then the config
// file / environment, then the flag's built-in default.
func flagValue(cmd *cobra.Command, flagName, configKey, current string) string {
	if cmd.Flags().Changed(flagName) {
		return current
	}
	if v := config.Get(configKey); v != "" {
		return v
	}
	return current
}

// Execute runs the root command with build info injected via ldflags.
// Fatal errors are reported on stderr here, once, rather than through
// cobra's own printing (SilenceErrors), so operators reading the logs see
// why a run aborted.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	config.Load()
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}
