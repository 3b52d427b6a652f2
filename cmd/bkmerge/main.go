package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lindqvist-oss/bkmerge/cmd"
	"github.com/lindqvist-oss/bkmerge/pkg/bkmerge"
)

func rootMain(command *cobra.Command, arguments []string) error {
	// Print version information, if requested.
	if rootConfiguration.version {
		fmt.Println(bkmerge.Version)
		return nil
	}

	// Print legal information, if requested.
	if rootConfiguration.legal {
		fmt.Print(bkmerge.LegalNotice)
		return nil
	}

	// Generate bash completion script, if requested.
	if rootConfiguration.bashCompletionScript != "" {
		if err := command.GenBashCompletionFile(rootConfiguration.bashCompletionScript); err != nil {
			return errors.Wrap(err, "unable to generate bash completion script")
		}
		return nil
	}

	// If no flags were set, print help and bail.
	command.Help()
	return nil
}

var rootCommand = &cobra.Command{
	Use:   "bkmerge",
	Short: "bkmerge merges local and remote bookmark trees without a shared ancestor",
	Args:  cmd.DisallowArguments,
	Run:   cmd.Mainify(rootMain),
}

var rootConfiguration struct {
	help                 bool
	version              bool
	legal                bool
	bashCompletionScript string
	configPath           string
}

func init() {
	flags := rootCommand.Flags()
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVarP(&rootConfiguration.version, "version", "V", false, "Show version information")
	flags.BoolVarP(&rootConfiguration.legal, "legal", "l", false, "Show legal information")
	flags.StringVar(&rootConfiguration.bashCompletionScript, "generate-bash-completion", "", "Generate bash completion script")
	flags.MarkHidden("generate-bash-completion")

	rootCommand.PersistentFlags().StringVar(&rootConfiguration.configPath, "config", "bkmerge.toml", "Path to an optional TOML configuration file")

	cobra.EnableCommandSorting = false

	rootCommand.AddCommand(
		mergeCommand,
	)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
