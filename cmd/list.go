/*
Copyright © 2025 Contentkit Authors
*/
package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/contentkit/manifestgen/internal/manifest"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Resolve manifest entries without writing the manifest",
		RunE:  runList,
	}
	addPipelineFlags(cmd)
	cmd.Flags().String("format", "pretty", "Output format: pretty|json")
	cmd.Flags().Bool("print-paths", false, "Print only resolved relative paths")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig(cmd)
	if err != nil {
		return err
	}

	m, err := manifest.NewScanner(cfg, timestampSource(cfg)).Scan()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if printPaths, _ := cmd.Flags().GetBool("print-paths"); printPaths {
		for _, entry := range m.Files {
			fmt.Fprintln(out, entry.Path)
		}
		return nil
	}

	if format, _ := cmd.Flags().GetString("format"); format == "json" {
		return m.Encode(out)
	}

	printPrettyEntries(out, m)
	return nil
}

// printPrettyEntries renders the file entries as a fixed-width table.
// Column widths use display width so wide characters in titles line up.
func printPrettyEntries(w io.Writer, m *manifest.Manifest) {
	maxPath, maxTitle := len("PATH"), len("TITLE")
	for _, entry := range m.Files {
		if width := runewidth.StringWidth(entry.Path); width > maxPath {
			maxPath = width
		}
		if width := runewidth.StringWidth(entry.Title); width > maxTitle {
			maxTitle = width
		}
	}

	fmt.Fprintf(w, "%s  %s  %s\n", pad("PATH", maxPath), pad("TITLE", maxTitle), "SIZE")
	for _, entry := range m.Files {
		fmt.Fprintf(w, "%s  %s  %dB\n", pad(entry.Path, maxPath), pad(entry.Title, maxTitle), entry.Size)
	}

	if len(m.Directories) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "DIRECTORIES")
		for _, entry := range m.Directories {
			path := entry.Path
			if path == "" {
				path = "(root)"
			}
			line := path + "  " + entry.Title
			if len(entry.Tags) > 0 {
				line += "  [" + strings.Join(entry.Tags, ", ") + "]"
			}
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintf(w, "\n%s file(s), %s directory entr%s\n",
		strconv.Itoa(len(m.Files)), strconv.Itoa(len(m.Directories)), plural(len(m.Directories)))
}

func pad(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
