package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lindqvist-oss/bkmerge/pkg/bkmerge"
	"github.com/lindqvist-oss/bkmerge/pkg/fixture"
	"github.com/lindqvist-oss/bkmerge/pkg/logging"
	"github.com/lindqvist-oss/bkmerge/pkg/merge"
)

// mergeLogger is this command's sublogger, used only for debug tracing of
// fixture loading (enabled via BKMERGE_DEBUG, see pkg/bkmerge.DebugEnabled).
var mergeLogger = logging.RootLogger.Sublogger("merge")

// mergeMain is the entry point for the merge command.
func mergeMain(command *cobra.Command, arguments []string) error {
	cfg, err := loadConfig(rootConfiguration.configPath)
	if err != nil {
		return err
	}

	// Flags always override file configuration: verbosity only falls back
	// to the config file's value when --verbose wasn't passed explicitly.
	if !command.Flags().Changed("verbose") {
		mergeConfiguration.verbose = cfg.Verbose
	}
	if mergeConfiguration.verbose {
		bkmerge.DebugEnabled = true
	}

	runID, err := bkmerge.NewRunID()
	if err != nil {
		return errors.Wrap(err, "unable to generate run identifier")
	}
	fmt.Println("Run:", runID)

	localPath := resolveFixturePath(cfg, arguments[0])
	remotePath := resolveFixturePath(cfg, arguments[1])

	mergeLogger.Debugf("[%s] loading local fixture from %s and remote fixture from %s", runID, localPath, remotePath)
	pair, err := fixture.LoadPair(context.Background(), localPath, remotePath)
	if err != nil {
		return errors.Wrap(err, "unable to load fixtures")
	}

	var merger *merge.Merger[string]
	if mergeConfiguration.repairWithUUID || bkmerge.DevelopmentModeEnabled {
		merger = merge.WithDriver[string](fixture.UUIDDriver{}, pair.Local, pair.LocalContents, pair.Remote, pair.RemoteContents)
	} else {
		merger = merge.WithContents[string](pair.Local, pair.LocalContents, pair.Remote, pair.RemoteContents)
	}

	root, err := merger.Merge()
	if err != nil {
		return errors.Wrap(err, "merge failed")
	}

	printMergedNode(root, 0)

	counts := merger.Telemetry()
	fmt.Println()
	fmt.Println("Telemetry:")
	fmt.Printf("\tRemote revives: %s\n", humanize.Comma(int64(counts.RemoteRevives)))
	fmt.Printf("\tLocal revives:  %s\n", humanize.Comma(int64(counts.LocalRevives)))
	fmt.Printf("\tLocal deletes:  %s\n", humanize.Comma(int64(counts.LocalDeletes)))
	fmt.Printf("\tRemote deletes: %s\n", humanize.Comma(int64(counts.RemoteDeletes)))
	fmt.Printf("\tDupes:          %s\n", humanize.Comma(int64(counts.Dupes)))

	if deletions := merger.Deletions(); len(deletions) > 0 {
		fmt.Println()
		fmt.Println("Deletions:")
		for _, d := range deletions {
			direction := "apply locally"
			if d.ShouldUploadTombstone {
				direction = "upload tombstone"
			}
			fmt.Printf("\t%s (%s)\n", d.Guid, direction)
		}
	}

	return nil
}

// printMergedNode prints a merged tree as an indented listing, coloring each
// line by which side's value won.
func printMergedNode(n *merge.MergedNode, depth int) {
	label := n.State.Kind.String()
	paint := color.WhiteString
	switch n.State.Kind {
	case merge.MergeStateLocal:
		paint = color.CyanString
	case merge.MergeStateRemote:
		paint = color.MagentaString
	}
	suffix := ""
	if n.State.NewStructure {
		suffix = " (new structure)"
	}
	fmt.Printf("%s%s [%s]%s\n", strings.Repeat("  ", depth), n.Guid, paint(label), suffix)
	for _, child := range n.Children {
		printMergedNode(child, depth+1)
	}
}

// mergeCommand is the merge command.
var mergeCommand = &cobra.Command{
	Use:          "merge <local.yaml> <remote.yaml>",
	Short:        "Merge a local and remote bookmark tree fixture and print the result",
	Args:         cobra.ExactArgs(2),
	RunE:         mergeMain,
	SilenceUsage: true,
}

// mergeConfiguration stores configuration for the merge command.
var mergeConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// repairWithUUID selects pkg/fixture's google/uuid-backed Driver for
	// repairing invalid identifiers, instead of refusing them.
	repairWithUUID bool
	// verbose enables debug-level logging. Defaults to the config file's
	// "verbose" setting; passing --verbose explicitly overrides it.
	verbose bool
}

func init() {
	flags := mergeCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&mergeConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVar(&mergeConfiguration.repairWithUUID, "repair-with-uuid", false, "Repair invalid identifiers using google/uuid instead of refusing the merge")
	flags.BoolVar(&mergeConfiguration.verbose, "verbose", false, "Enable debug-level logging (overrides the config file's verbose setting)")
}
