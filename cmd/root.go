/*
Copyright © 2025 Contentkit Authors
*/
package cmd

import (
	"errors"
	"os"

	"github.com/contentkit/manifestgen/pkg/buildinfo"
	"github.com/contentkit/manifestgen/pkg/exitcode"
	"github.com/contentkit/manifestgen/pkg/logger"
	"github.com/spf13/cobra"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifestgen",
		Short: "Generate a JSON manifest for a content directory tree",
		Long: `Manifestgen walks a content directory and emits a single manifest.json
describing every eligible file and directory. File metadata is merged from
encryption key sidecars, markdown frontmatter, and version-control history;
directory metadata comes from .meta.json descriptors.

Examples:
   manifestgen generate             # Write manifest.json for ./content
   manifestgen generate --root docs # Scan a different content root
   manifestgen list                 # Preview entries without writing
   manifestgen verify               # Check manifest.json against the tree`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json-logs", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Wire Cobra's built-in --version using the binary version
	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("manifestgen {{.Version}}\n")

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(newVersionCmd())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// exitError carries a process exit code alongside the underlying error so
// commands can signal which failure category they hit.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitWith(code int, err error) error {
	return &exitError{code: code, err: err}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		code := exitcode.GeneralError
		var ee *exitError
		if errors.As(err, &ee) {
			code = ee.code
		}
		logger.Error("Command execution failed",
			logger.Err(err), logger.String("category", exitcode.String(code)))
		os.Exit(code)
	}
}

func init() {
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	noColor, _ := cmd.Flags().GetBool("no-color")

	config := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "manifestgen",
	}

	if err := logger.Initialize(config); err != nil {
		// Fallback to stderr
		if _, writeErr := os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n"); writeErr != nil {
			// Best effort: nothing else we can do here
			_ = writeErr
		}
		os.Exit(exitcode.ConfigError)
	}
}
