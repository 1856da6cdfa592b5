package cli

import (
	"fmt"

	"github.com/assistkit/assistkit/internal/config"
	"github.com/assistkit/assistkit/internal/introspect"
	"github.com/spf13/cobra"
)

var (
	introspectAssistant string
	introspectExclude   []string
)

func init() {
	introspectCmd.Flags().StringVarP(&introspectAssistant, "assistant", "a", "", "Assistant the document targets (default from config, \"gemini\")")
	introspectCmd.Flags().StringArrayVarP(&introspectExclude, "exclude", "x", nil, "Additional directory glob to skip (repeatable)")
	rootCmd.AddCommand(introspectCmd)
}

var introspectCmd = &cobra.Command{
	Use:   "introspect [dir]",
	Short: "Write a project context document for an AI assistant",
	Long: `Summarize the project in dir (default: the current directory) into a single
context document named after the assistant, e.g. GEMINI.md.

The document lists the package.json name, dependencies, dev dependencies and
scripts when a readable manifest exists, followed by every file in the
project. .git and node_modules directories are always skipped; globs from
introspect.exclude and --exclude are skipped too. An existing document is
replaced. The assistant name may contain only letters, digits, '-' and '_'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		assistant := config.IntrospectAssistant()
		if cmd.Flags().Changed("assistant") {
			assistant = introspectAssistant
		}
		if err := introspect.CheckAssistant(assistant); err != nil {
			return err
		}
		exclude := introspect.ExcludeList(config.IntrospectExclude()...)
		exclude = append(exclude, introspectExclude...)

		result, err := introspect.Run(cmd.Context(), root, introspect.Options{
			Assistant: assistant,
			Exclude:   exclude,
			Logger:    &logger,
		})
		if err != nil {
			return fmt.Errorf("creating configuration file: %w", err)
		}

		logger.Debug().Int("files", result.Files).Bool("manifest", result.Manifest).Msg("introspection complete")
		fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file at %s\n", result.Path)
		return nil
	},
}
