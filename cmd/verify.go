/*
Copyright © 2025 Contentkit Authors
*/
package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/contentkit/manifestgen/internal/manifest"
	"github.com/contentkit/manifestgen/pkg/exitcode"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the manifest on disk matches the content tree",
		Long: `Verify regenerates the manifest in memory and byte-compares it against
the manifest file on disk. A clean tree with unchanged version-control
history verifies exactly; any drift fails the command.`,
		RunE: runVerify,
	}
	addPipelineFlags(cmd)
	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig(cmd)
	if err != nil {
		return err
	}

	m, err := manifest.NewScanner(cfg, timestampSource(cfg)).Scan()
	if err != nil {
		return err
	}
	want, err := m.Render()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	have, err := os.ReadFile(cfg.Output)
	if err != nil {
		fmt.Fprintf(out, "❌ Manifest %s is missing or unreadable\n", cfg.Output)
		return exitWith(exitcode.ValidationError, fmt.Errorf("manifest drift detected"))
	}

	if !bytes.Equal(want, have) {
		fmt.Fprintf(out, "❌ Manifest drift detected in %s\n", cfg.Output)
		return exitWith(exitcode.ValidationError, fmt.Errorf("manifest drift detected"))
	}

	fmt.Fprintf(out, "✅ Manifest verified: %d files and %d directories\n",
		len(m.Files), len(m.Directories))
	return nil
}
