package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/repository"
	"github.com/guttosm/print-quote-service/internal/service"
)

type quoteOptions struct {
	pages       int
	pageRange   string
	color       string
	duplex      string
	pricingFile string
	maxPages    int
}

func newQuoteCommand() *cobra.Command {
	var opts quoteOptions

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a print job",
		Long: `Price a print job with the built-in rate card, or with a YAML rate card
layered over it. Cells missing from the file fall back to the built-in rates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuote(cmd, opts)
		},
	}

	quoteCmd.Flags().IntVarP(&opts.pages, "pages", "p", 0, "total pages in the document (required)")
	quoteCmd.Flags().StringVarP(&opts.pageRange, "range", "r", "", `pages to print, e.g. "1-5,8"; empty prints all`)
	quoteCmd.Flags().StringVar(&opts.color, "color", string(model.Monochrome), "color mode: monochrome|color")
	quoteCmd.Flags().StringVar(&opts.duplex, "duplex", string(model.SingleSided), "duplex mode: single|double")
	quoteCmd.Flags().StringVar(&opts.pricingFile, "pricing", "", "YAML rate card to quote with")
	quoteCmd.Flags().IntVar(&opts.maxPages, "max-pages", 10000, "largest accepted document, 0 for no limit")
	_ = quoteCmd.MarkFlagRequired("pages")

	return quoteCmd
}

func runQuote(cmd *cobra.Command, opts quoteOptions) error {
	color, err := model.ParseColorMode(opts.color)
	if err != nil {
		return err
	}
	duplex, err := model.ParseDuplexMode(opts.duplex)
	if err != nil {
		return err
	}

	var pricingOpts []service.PricingOption
	if opts.pricingFile != "" {
		src, err := repository.NewFilePricingSource(opts.pricingFile)
		if err != nil {
			return fmt.Errorf("load pricing file: %w", err)
		}
		pricingOpts = append(pricingOpts, service.WithPricingSource(src))
	}

	quotes := service.NewQuoteService(
		service.NewPageSelectionResolver(),
		service.NewPrintCostCalculator(),
		service.NewPricingService(repository.NewInMemoryPricingRepository(), pricingOpts...),
		service.WithMaxTotalPages(opts.maxPages),
	)

	quote, err := quotes.Quote(cmd.Context(), service.QuoteRequest{
		TotalPages: opts.pages,
		PageRange:  opts.pageRange,
		ColorMode:  color,
		DuplexMode: duplex,
	})
	if err != nil {
		return err
	}

	source := "pricing file"
	if opts.pricingFile == "" || quote.TierFromDefaults {
		source = "built-in defaults"
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Mode:\t%s\n", model.TierKey{Color: quote.ColorMode, Duplex: quote.DuplexMode})
	_, _ = fmt.Fprintf(w, "Pages:\t%d of %d\n", quote.ResolvedPageCount, quote.TotalPages)
	_, _ = fmt.Fprintf(w, "Rate:\t%s for the first %d, then %s\n",
		quote.Tier.BasePrice, quote.Tier.BaseLimit, quote.Tier.ExtraPrice)
	_, _ = fmt.Fprintf(w, "Rates from:\t%s\n", source)
	_, _ = fmt.Fprintf(w, "Total:\t%s\n", quote.TotalCost.StringFixed(2))
	return w.Flush()
}
