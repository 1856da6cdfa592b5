package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/assistkit/assistkit/internal/branding"
	"github.com/assistkit/assistkit/internal/config"
	"github.com/assistkit/assistkit/internal/logging"
	"github.com/assistkit/assistkit/internal/schema"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	rootVerbose  bool
	rootLogLevel string
	rootSchema   string
)

// logger is configured in PersistentPreRun from flags and config.
var logger = logging.Nop()

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Log debug diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootSchema, "schema", "", "Answer catalog file to use instead of the built-in one")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` sets up AI coding assistant integrations for a project.

It detects the project's language and framework, asks which slash commands,
lifecycle hooks, MCP servers and analytics settings to enable, validates the
answers against its catalog and writes the integration files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()

		level := config.LogLevel()
		if rootLogLevel != "" {
			level = rootLogLevel
		}
		if rootVerbose {
			level = zerolog.LevelDebugValue
		}
		logger = logging.New(cmd.ErrOrStderr(), level)
		logger.Debug().Str("config", config.FilePath()).Str("level", level).Msg("loaded settings")
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := interruptContext(context.Background())
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// interruptContext is cancelled by the first interrupt. Signal handling is
// then restored, so a second Ctrl+C terminates the process.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	context.AfterFunc(ctx, stop)
	return ctx, stop
}

// loadSchema returns the answer catalog named by --schema or the schema_path
// setting, falling back to the built-in catalog, and checks that this build
// satisfies its version constraint.
func loadSchema() (*schema.AnswerSchema, error) {
	path := config.SchemaPath()
	if rootSchema != "" {
		path = rootSchema
	}

	s, err := schema.Load(path)
	if err != nil {
		return nil, err
	}
	if err := s.CheckRequires(buildVersion); err != nil {
		return nil, err
	}

	source := path
	if source == "" {
		source = "built-in"
	}
	logger.Debug().Str("catalog", source).Str("schema_version", s.SchemaVersion).Msg("loaded answer catalog")
	return s, nil
}
