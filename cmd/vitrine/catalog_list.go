package main

import (
	"context"
	"fmt"

	"github.com/hollowaylabs/vitrine/internal/catalog"
	"github.com/spf13/cobra"
)

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog products",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
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

	// Catalog order, not alphabetical: the recommendation prompt samples
	// the first N products, so this listing mirrors what the model sees.
	products, err := repo.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}

	if catalogJSONOutput {
		items := make([]map[string]any, len(products))
		for i, p := range products {
			items[i] = map[string]any{
				"id":       p.ID,
				"name":     p.Name,
				"category": p.Category,
				"brand":    p.Brand,
				"price":    p.Price,
			}
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"products": items,
			"total":    len(items),
		})
	}

	if len(products) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No products found.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tBRAND\tPRICE")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t$%.2f\n",
			p.ID,
			p.Name,
			p.Category,
			p.Brand,
			p.Price,
		)
	}
	w.Flush()

	return nil
}
