package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/akarpov/realocate/internal/model"
	"github.com/akarpov/realocate/internal/search"
)

var (
	searchTimeout time.Duration
	searchTxnType string
	searchFormat  string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <postal-code>",
	Short: "Search listings for a postal code with tiered fallback",
	Long: `Search queries the property index for a postal code or FSA, widening
the search in tiers when the narrower scope comes back empty: exact code,
exact code with a larger page, then the broader FSA.

Example:
  realocate search "M5V 4B2"
  realocate search M5V --transaction lease`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", 60*time.Second, "overall search timeout, including FSA pagination")
	searchCmd.Flags().StringVar(&searchTxnType, "transaction", "", "transaction type filter (sale, lease)")
	searchCmd.Flags().StringVar(&searchFormat, "format", "json", "output format (json, yaml)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	code := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var filters model.SearchFilters
	switch searchTxnType {
	case "":
	case "sale":
		filters.TransactionType = model.TransactionSale
	case "lease":
		filters.TransactionType = model.TransactionLease
	default:
		return fmt.Errorf("unknown transaction type %q (want sale or lease)", searchTxnType)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Searching: %s\n", code)
		fmt.Fprintf(os.Stderr, "Index: %s\n\n", cfg.Search.BaseURL)
	}

	client := search.NewHTTPClient(cfg.Search)
	strategy := search.NewStrategy(client, cfg.Search)

	result, err := strategy.SearchWithFallback(ctx, code, filters)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Tier: %s\n", result.Tier)
		fmt.Fprintf(os.Stderr, "✓ Listings: %d\n\n", len(result.Properties))
	}

	return printResult(result, searchFormat)
}
