package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/angelospk/mediasort/pkg/core/attributes"
	"github.com/angelospk/mediasort/pkg/core/classify"
)

var (
	classifyJSON      bool
	classifyFranch    []string
	classifyDefSeason int
)

// classifyCmd classifies paths without touching the file system.
var classifyCmd = &cobra.Command{
	Use:   "classify <path>...",
	Short: "Classify one or more paths and print their canonical placement",
	Long: `Classifies each given path and prints the resulting record: content
kind, extracted attributes, parent linkage, canonical name, and the
library-relative destination directory.

Examples:
  mediasort classify "The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv"
  mediasort classify --json "Breaking.Bad.S02E05.Breakage.720p.HDTV.mkv"
  mediasort classify --franchise "The Matrix" "The.Matrix.Reloaded.2003.mkv"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	RootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "print records as JSON")
	classifyCmd.Flags().StringArrayVar(&classifyFranch, "franchise", nil, "known franchise base title (repeatable)")
	classifyCmd.Flags().IntVar(&classifyDefSeason, "default-season", 0, "season to assume for lone episode numbers")
}

func runClassify(cmd *cobra.Command, args []string) error {
	logger := logrus.StandardLogger()
	engine := newEngine(logger)
	hints := baseHints(classifyFranch, classifyDefSeason)

	var failed int
	for _, path := range args {
		record, err := engine.Classify(cmd.Context(), path, hints)
		if err != nil {
			logger.Warnf("Skipped %q: %v", path, err)
			failed++
			continue
		}
		if classifyJSON {
			data, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode record: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			continue
		}
		printRecord(cmd, record)
	}
	if failed == len(args) {
		return fmt.Errorf("no path could be classified")
	}
	return nil
}

func printRecord(cmd *cobra.Command, record *classify.Record) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", record.Path)
	fmt.Fprintf(out, "  kind:      %s", record.Kind)
	if record.IsExtra {
		fmt.Fprintf(out, " (extra: %s)", record.ExtraType)
	}
	if record.LowConfidence {
		fmt.Fprintf(out, " [low confidence]")
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  title:     %s\n", record.Title)
	if record.ParentHint != "" {
		fmt.Fprintf(out, "  parent:    %s\n", record.ParentHint)
	}
	if len(record.Attributes) > 0 {
		kinds := make([]string, 0, len(record.Attributes))
		for kind := range record.Attributes {
			kinds = append(kinds, string(kind))
		}
		sort.Strings(kinds)
		fmt.Fprintf(out, "  attrs:    ")
		for _, kind := range kinds {
			fmt.Fprintf(out, " %s=%s", kind, record.Attributes[attributes.Kind(kind)])
		}
		fmt.Fprintln(out)
	}
	if len(record.Authors) > 0 {
		fmt.Fprintf(out, "  authors:   %v\n", record.Authors)
	}
	fmt.Fprintf(out, "  canonical: %s\n", record.CanonicalName)
	fmt.Fprintf(out, "  dest:      %s\n", record.DestDir)
}
