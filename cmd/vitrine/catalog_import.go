package main

import (
	"context"
	"fmt"

	"github.com/hollowaylabs/vitrine/internal/catalog"
	"github.com/spf13/cobra"
)

var catalogImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import products from a JSON file",
	Long:  "Import products into the catalog database. Re-importing updates existing products in place. Defaults to the configured catalog path when no file is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogImport,
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	settings, err := resolveCatalogSettings()
	if err != nil {
		return err
	}

	path := settings.ProductsPath
	if len(args) == 1 {
		path = args[0]
	}

	products, err := catalog.ReadProductsFile(path)
	if err != nil {
		return err
	}

	repo, err := catalog.NewRepository(settings.DatabasePath)
	if err != nil {
		return err
	}
	defer repo.Close()

	imported, err := repo.ImportProducts(ctx, products)
	if err != nil {
		return fmt.Errorf("import products: %w", err)
	}

	if catalogJSONOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"imported": imported,
			"path":     path,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d products from %s\n", imported, path)
	return nil
}
