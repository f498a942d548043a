// Package cmd provides the printctl commands.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the printctl command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "printctl",
		Short: "Quote print jobs and manage rate cards",
		Long: `printctl prices print jobs offline and manages the stores used by the
print quote service.

Examples:
  printctl quote --pages 12
  printctl quote --pages 40 --range "1-10,15" --color color --duplex double
  printctl pricing defaults > pricing.yaml
  printctl pricing validate pricing.yaml
  printctl migrate up --dsn postgres://localhost/print_quote`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newQuoteCommand())
	root.AddCommand(newPricingCommand())
	root.AddCommand(newMigrateCommand())
	return root
}

// Execute runs printctl with the process arguments.
func Execute() error {
	root := NewRootCommand()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	return root.Execute()
}
