package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/repository"
)

func newPricingCommand() *cobra.Command {
	pricingCmd := &cobra.Command{
		Use:   "pricing",
		Short: "Inspect and check rate cards",
	}

	pricingCmd.AddCommand(&cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in rate card as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := repository.MarshalPricingYAML(model.DefaultPricingConfiguration())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})

	pricingCmd.AddCommand(&cobra.Command{
		Use:   "validate FILE",
		Short: "Check a YAML rate card",
		Long: `Parse and validate a YAML rate card. Cells the file omits are reported;
quotes for them use the built-in rates.`,
		Args: cobra.ExactArgs(1),
		RunE: runPricingValidate,
	})

	return pricingCmd
}

func runPricingValidate(cmd *cobra.Command, args []string) error {
	cfg, err := repository.LoadPricingFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s: %d of %d cells defined\n", args[0], cfg.Len(), len(model.AllTierKeys()))
	for _, key := range cfg.Missing() {
		_, _ = fmt.Fprintf(out, "  %s: built-in default\n", key)
	}
	return nil
}
