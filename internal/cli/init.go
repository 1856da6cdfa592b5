package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/assistkit/assistkit/internal/branding"
	"github.com/assistkit/assistkit/internal/detect"
	"github.com/assistkit/assistkit/internal/prompt"
	"github.com/assistkit/assistkit/internal/render"
	"github.com/assistkit/assistkit/internal/setup"
	"github.com/spf13/cobra"
)

var (
	initLanguage  string
	initFramework string
	initCommands  string
	initHooks     string
	initMCPs      string
	initAnalytics bool
	initAnswers   string
	initYes       bool
	initDryRun    bool
	initForce     bool
)

func init() {
	initCmd.Flags().StringVarP(&initLanguage, "language", "l", "", "Project language (skips the language question)")
	initCmd.Flags().StringVarP(&initFramework, "framework", "f", "", "Framework, or \"none\" (skips the framework question)")
	initCmd.Flags().StringVar(&initCommands, "commands", "", "Comma-separated slash commands; empty for none")
	initCmd.Flags().StringVar(&initHooks, "hooks", "", "Comma-separated lifecycle hooks; empty for none")
	initCmd.Flags().StringVar(&initMCPs, "mcps", "", "Comma-separated MCP servers; empty for none")
	initCmd.Flags().BoolVar(&initAnalytics, "analytics", false, "Enable usage analytics (skips the analytics question)")
	initCmd.Flags().StringVar(&initAnswers, "answers", "", "YAML or JSON answers file; runs without questions")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Confirm the configuration without asking")
	initCmd.Flags().BoolVar(&initDryRun, "dry-run", false, "Show the files that would be written without writing them")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing integration files")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Configure an AI assistant integration for a project",
	Long: `Configure an AI assistant integration for the project in dir (default: the
current directory).

The project's language and framework are detected from marker files. Each
remaining setting is asked interactively unless it is given as a flag. With
--answers, all settings come from a file and no questions are asked; flags
still override the file.

Nothing is written if setup is cancelled or the answers are invalid.`,
	Example: `  ` + branding.CLIName() + ` init
  ` + branding.CLIName() + ` init ./api --language go --framework gin --hooks preToolUse,stop --yes
  ` + branding.CLIName() + ` init --answers answers.yaml --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	out := cmd.OutOrStdout()

	s, err := loadSchema()
	if err != nil {
		return err
	}

	opts := initOptions(cmd)

	var answers *setup.UserAnswers
	if initAnswers != "" {
		a, err := setup.LoadAnswers(initAnswers)
		if err != nil {
			return err
		}
		merged := opts.Apply(*a)
		answers = &merged
		logger.Debug().Str("file", initAnswers).Msg("loaded answers file")
	} else {
		info := detect.Detect(root)
		logger.Debug().
			Str("language", info.DetectedLanguage).
			Str("framework", info.DetectedFramework).
			Msg("detected project")

		flow := setup.NewFlow(s, newDriver(cmd)).WithLogger(logger)
		answers, err = flow.Run(cmd.Context(), info, opts)
		if errors.Is(err, setup.ErrUserCancelled) {
			fmt.Fprintln(out, "Setup cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	cfg, err := setup.Resolve(s, *answers)
	if err != nil {
		if errors.Is(err, setup.ErrNotConfirmed) && initAnswers != "" {
			return fmt.Errorf("%w (set confirm: true in %s or pass --yes)", err, initAnswers)
		}
		return err
	}

	printConfig(out, cfg)

	result, err := render.Render(s, cfg, root, render.Options{
		Force:  initForce,
		DryRun: initDryRun,
		Logger: &logger,
	})
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}

	created, updated := "Created", "Updated"
	if result.DryRun {
		created, updated = "Would create", "Would update"
	}
	fmt.Fprintln(out)
	for _, f := range result.Files {
		fmt.Fprintf(out, "%s %s\n", created, f)
	}
	for _, f := range result.Updated {
		fmt.Fprintf(out, "%s %s\n", updated, f)
	}
	if !result.DryRun {
		fmt.Fprintf(out, "\nIntegration configured in %s\n", result.Root)
	}
	return nil
}

// initOptions converts the flags that were set on the command line into
// pre-supplied answers. Unset flags stay absent so their questions are asked.
func initOptions(cmd *cobra.Command) setup.Options {
	flags := cmd.Flags()
	opts := setup.Options{
		Language:  strings.TrimSpace(initLanguage),
		Framework: strings.TrimSpace(initFramework),
		AssumeYes: initYes,
	}
	if flags.Changed("commands") {
		opts.Commands = parseList(initCommands)
	}
	if flags.Changed("hooks") {
		opts.Hooks = parseList(initHooks)
	}
	if flags.Changed("mcps") {
		opts.MCPs = parseList(initMCPs)
	}
	if flags.Changed("analytics") {
		v := initAnalytics
		opts.Analytics = &v
	}
	return opts
}

// parseList splits a comma-separated flag value. The result is never nil so
// an empty flag means "none" rather than "ask".
func parseList(s string) []string {
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// newDriver picks the terminal driver when stdin is a terminal file and the
// line driver for anything else.
func newDriver(cmd *cobra.Command) prompt.Driver {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		return prompt.NewDriver(f, cmd.ErrOrStderr())
	}
	return prompt.NewLineDriver(in, cmd.ErrOrStderr())
}

func printConfig(w io.Writer, cfg *setup.TemplateConfig) {
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "  Language:  %s\n", cfg.Language)
	fmt.Fprintf(w, "  Framework: %s\n", cfg.Framework)
	fmt.Fprintf(w, "  Commands:  %s\n", listOrNone(cfg.Commands))
	fmt.Fprintf(w, "  Hooks:     %s\n", listOrNone(cfg.Hooks))
	fmt.Fprintf(w, "  MCPs:      %s\n", listOrNone(cfg.MCPs))
	fmt.Fprintf(w, "  Analytics: %t\n", cfg.Analytics)
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
