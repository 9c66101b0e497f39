package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hollowaylabs/vitrine/internal/catalog"
	"github.com/spf13/cobra"
)

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog summary statistics",
	Args:  cobra.NoArgs,
	RunE:  runCatalogStats,
}

func runCatalogStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	settings, err := resolveCatalogSettings()
	if err != nil {
		return err
	}

	repo, err := catalog.NewRepository(settings.DatabasePath)
	if err != nil {
		return err
	}
	defer repo.Close()

	products, err := repo.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	cat := catalog.New(products)

	// Get database file size
	var sizeBytes int64
	if info, statErr := os.Stat(settings.DatabasePath); statErr == nil {
		sizeBytes = info.Size()
	}

	out := cmd.OutOrStdout()

	if catalogJSONOutput {
		return printJSON(out, map[string]any{
			"products":   cat.Len(),
			"categories": cat.Categories(),
			"brands":     cat.Brands(),
			"size_bytes": sizeBytes,
			"path":       settings.DatabasePath,
		})
	}

	fmt.Fprintf(out, "Products:   %d\n", cat.Len())
	fmt.Fprintf(out, "Categories: %d\n", len(cat.Categories()))
	fmt.Fprintf(out, "Brands:     %d\n", len(cat.Brands()))
	fmt.Fprintf(out, "Size:       %s\n", formatSize(sizeBytes))
	fmt.Fprintf(out, "Path:       %s\n", settings.DatabasePath)

	return nil
}
