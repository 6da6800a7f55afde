/*
Copyright © 2025 Contentkit Authors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contentkit/manifestgen/internal/manifest"
	"github.com/contentkit/manifestgen/internal/vcs"
	"github.com/contentkit/manifestgen/pkg/config"
	"github.com/contentkit/manifestgen/pkg/exitcode"
	"github.com/contentkit/manifestgen/pkg/safeio"
)

// newGenerateCmd creates a fresh generate command so tests get isolated flag state.
func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Walk the content tree and write the manifest",
		Long: `Generate walks the content root, builds an entry for every eligible file
and descriptor-carrying directory, and writes the aggregated manifest JSON.
Re-running on an unchanged tree produces byte-identical output.`,
		RunE: runGenerate,
	}
	addPipelineFlags(cmd)
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig(cmd)
	if err != nil {
		return err
	}

	m, err := manifest.NewScanner(cfg, timestampSource(cfg)).Scan()
	if err != nil {
		return err
	}

	data, err := m.Render()
	if err != nil {
		return err
	}
	if err := safeio.WriteFilePreservePerms(cfg.Output, data); err != nil {
		return exitWith(exitcode.FileSystemError, fmt.Errorf("failed to write %s: %w", cfg.Output, err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %s with %d files and %d directories\n",
		cfg.Output, len(m.Files), len(m.Directories))
	return nil
}

// addPipelineFlags registers the flags shared by generate, list, and verify.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("root", "", "Content root directory (default from config)")
	cmd.Flags().String("output", "", "Manifest output path (default from config)")
	cmd.Flags().String("config", "", "Config file (default .manifestgen.yaml)")
	cmd.Flags().Bool("no-vcs", false, "Skip version-control timestamp lookup")
}

// loadPipelineConfig resolves the effective configuration: defaults, config
// file, environment, then flag overrides.
func loadPipelineConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("root") {
		root, _ := cmd.Flags().GetString("root")
		cleaned, err := safeio.CleanUserPath(root)
		if err != nil {
			return nil, fmt.Errorf("invalid --root %q: %w", root, err)
		}
		cfg.Root = cleaned
	}
	if cmd.Flags().Changed("output") {
		output, _ := cmd.Flags().GetString("output")
		cleaned, err := safeio.CleanUserPath(output)
		if err != nil {
			return nil, fmt.Errorf("invalid --output %q: %w", output, err)
		}
		cfg.Output = cleaned
	}
	if noVCS, _ := cmd.Flags().GetBool("no-vcs"); noVCS {
		cfg.VCS.Enabled = false
	}

	return cfg, nil
}

// timestampSource picks the version-control source for the run.
func timestampSource(cfg *config.Config) vcs.Source {
	if !cfg.VCS.Enabled {
		return vcs.Null{}
	}
	return vcs.NewGitSource(cfg.Root)
}
