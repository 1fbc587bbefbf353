// Package cli provides the docnav command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mchmarny/docnav/pkg/config"
	"github.com/mchmarny/docnav/pkg/logger"
	"github.com/mchmarny/docnav/pkg/schema"
	"github.com/mchmarny/docnav/pkg/sidebar"
)

// Version information (set at build time).
var (
	Version = "dev"     // -ldflags "-X github.com/mchmarny/docnav/pkg/cli.Version=version"
	Commit  = "none"    // -ldflags "-X github.com/mchmarny/docnav/pkg/cli.Commit=commit"
	Date    = "unknown" // -ldflags "-X github.com/mchmarny/docnav/pkg/cli.Date=date"
)

const appName = "docnav"

type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "docnav - documentation sidebar tooling",
		Long: `docnav validates, renders and serves the navigation sidebar of a
documentation site. Without --sidebar it works on the built-in docs sidebar.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			level := cfg.LogLevel
			if env := logger.LevelFromEnv(); env != "" && !cmd.Flags().Changed("log-level") {
				level = env
			}
			logger.SetDefaultLoggerWithFormat(appName, Version, level, cfg.LogFormat)

			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./docnav.yaml)")
	flags.String("sidebar", "", "Sidebar document (YAML or JSON); empty uses the built-in docs sidebar")
	flags.String("base-path", "", "Path the site is mounted at")
	flags.String("docs-prefix", "", "Path segment doc pages live under")
	flags.String("id-scope", "", "Where ids must be unique (global|siblings)")
	flags.Bool("strict-routes", false, "Reject leaves that resolve to the same URL")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("log-format", "", "Log format (json|text)")

	_ = rootCmd.RegisterFlagCompletionFunc("id-scope", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(sidebar.ScopeGlobal), string(sidebar.ScopeSiblings)}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newRoutesCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newSchemaCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func configFrom(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value(configKey{}).(*config.Config)
	if !ok || cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}

// loadSidebar returns the sidebar at path, or the built-in docs sidebar when
// path is empty. Documents are checked against the JSON Schema before decoding.
func loadSidebar(path string) (*sidebar.Sidebar, error) {
	if path == "" {
		return sidebar.Docs(), nil
	}

	v, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}

	return sidebar.Load(path, sidebar.WithDocumentChecker(v))
}
