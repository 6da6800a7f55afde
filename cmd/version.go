/*
Copyright © 2025 Contentkit Authors
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/contentkit/manifestgen/pkg/buildinfo"
	"github.com/spf13/cobra"
)

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE:  runVersion,
	}
	cmd.Flags().Bool("extended", false, "Show detailed build information")
	cmd.Flags().Bool("json", false, "Output version information in JSON format")
	return cmd
}

func runVersion(cmd *cobra.Command, args []string) error {
	extended, _ := cmd.Flags().GetBool("extended")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	out := cmd.OutOrStdout()

	version := buildinfo.BinaryVersion
	if mod := buildinfo.ModuleVersion(); version == "dev" && mod != "" {
		version = mod
	}

	if jsonOutput {
		info := map[string]interface{}{
			"version":   version,
			"goVersion": runtime.Version(),
			"platform":  runtime.GOOS,
			"arch":      runtime.GOARCH,
		}
		jsonData, _ := json.MarshalIndent(info, "", "  ")
		fmt.Fprintln(out, string(jsonData))
		return nil
	}

	if extended {
		fmt.Fprintf(out, "manifestgen %s (%s, %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return nil
	}

	fmt.Fprintf(out, "manifestgen %s\n", version)
	return nil
}
