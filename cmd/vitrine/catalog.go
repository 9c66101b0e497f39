package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hollowaylabs/vitrine/internal/config"
	"github.com/spf13/cobra"
)

var (
	catalogDBOverride string
	catalogJSONOutput bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the product catalog",
	Long:  "Import, list, and inspect catalog products without running the server.",
}

func init() {
	catalogCmd.PersistentFlags().StringVar(&catalogDBOverride, "db", "",
		"Catalog database path (overrides config and VITRINE_DB_PATH)")
	catalogCmd.PersistentFlags().BoolVar(&catalogJSONOutput, "json", false,
		"Output in JSON format")

	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogStatsCmd)

	rootCmd.AddCommand(catalogCmd)
}

// resolveCatalogSettings loads catalog paths from config and applies the
// optional --db override.
func resolveCatalogSettings() (*config.CatalogSettings, error) {
	settings, err := config.LoadCatalogSettings()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if catalogDBOverride != "" {
		settings.DatabasePath = catalogDBOverride
	}
	return settings, nil
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// formatSize returns a human-readable file size.
func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
