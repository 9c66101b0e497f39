package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hollowaylabs/vitrine/internal/catalog"
	"github.com/hollowaylabs/vitrine/internal/completion"
	"github.com/hollowaylabs/vitrine/internal/config"
	"github.com/hollowaylabs/vitrine/internal/recommend"
	"github.com/hollowaylabs/vitrine/internal/types"
	"github.com/hollowaylabs/vitrine/internal/validation"
	"github.com/spf13/cobra"
)

var (
	recommendPriceRange string
	recommendCategories []string
	recommendBrands     []string
	recommendViewed     []string
	recommendJSONOutput bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Generate product recommendations from the command line",
	Long:  "Run the recommendation pipeline once without starting the server. Requires OPENAI_API_KEY.",
	Args:  cobra.NoArgs,
	RunE:  runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendPriceRange, "price-range", "",
		"Price range filter: all, 0-50, 50-100, 100+")
	recommendCmd.Flags().StringSliceVar(&recommendCategories, "category", nil,
		"Preferred category (repeatable)")
	recommendCmd.Flags().StringSliceVar(&recommendBrands, "brand", nil,
		"Preferred brand (repeatable)")
	recommendCmd.Flags().StringSliceVar(&recommendViewed, "viewed", nil,
		"Browsing history product ID (repeatable)")
	recommendCmd.Flags().BoolVar(&recommendJSONOutput, "json", false,
		"Output in JSON format")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	prefs := types.Preferences{
		PriceRange: types.PriceRange(recommendPriceRange),
		Categories: recommendCategories,
		Brands:     recommendBrands,
	}
	if errs := validation.ValidatePreferences(prefs); len(errs) > 0 {
		return fmt.Errorf("invalid preferences: %s: %s", errs[0].Field, errs[0].Message)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	repo, err := catalog.NewRepository(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer repo.Close()

	products, err := loadCatalog(ctx, repo, cfg.Catalog.Path)
	if err != nil {
		return err
	}
	cat := catalog.New(products)

	// Parse warnings still matter on the CLI; route them to stderr.
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	generator := completion.NewOpenAI(cfg.Completion.APIKey, cfg.Completion.BaseURL, cfg.Completion.Model)
	engine := recommend.NewEngine(generator, cat, logger, cfg.Catalog.SampleSize, cfg.Completion.MaxNewTokens)

	result := engine.Generate(ctx, prefs, recommendViewed)
	if result.Failed() {
		return fmt.Errorf("recommendation failed: %s", result.Error)
	}

	if recommendJSONOutput {
		return printJSON(cmd.OutOrStdout(), result)
	}

	out := cmd.OutOrStdout()
	if result.Count == 0 {
		fmt.Fprintln(out, "No recommendations returned.")
		return nil
	}

	w := newTabWriter(out)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tCONFIDENCE\tWHY")
	for _, rec := range result.Recommendations {
		why := rec.Explanation
		if why == "" {
			why = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t$%.2f\t%.1f\t%s\n",
			rec.Product.ID,
			rec.Product.Name,
			rec.Product.Price,
			rec.ConfidenceScore,
			why,
		)
	}
	w.Flush()

	return nil
}
