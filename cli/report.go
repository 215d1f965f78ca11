package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inventory_manager/domain"
	"inventory_manager/inventory"
)

// Snapshot is the export format: every collection as stored.
type Snapshot struct {
	Products     []domain.Product    `json:"products"`
	Categories   []domain.Category   `json:"categories"`
	StockEntries []domain.StockEntry `json:"stockEntries"`
	Sales        []domain.Sale       `json:"sales"`
}

func init() {
	var output string
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals, revenue, profit and low-stock products",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := inventorySvc.Summary()
			if output == "json" {
				return printJSON(cmd.OutOrStdout(), s)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Products:    %d\n", s.TotalProducts)
			fmt.Fprintf(w, "Categories:  %d\n", s.TotalCategories)
			fmt.Fprintf(w, "Total stock: %d\n", s.TotalStock)
			fmt.Fprintf(w, "Sales:       %d\n", s.TotalSales)
			fmt.Fprintf(w, "Revenue:     %s\n", inventory.FormatMoney(s.TotalRevenue))
			fmt.Fprintf(w, "Profit:      %s\n", inventory.FormatMoney(s.TotalProfit))
			fmt.Fprintf(w, "Low stock (<= %d): %d\n", domain.LowStockThreshold, len(s.LowStockProducts))
			for _, p := range s.LowStockProducts {
				fmt.Fprintf(w, "  %s | %s | %d %s\n", p.ID, p.Name, p.Stock, p.Unit)
			}
			return nil
		},
	}
	summaryCmd.Flags().StringVar(&output, "output", "", "output format")
	rootCmd.AddCommand(summaryCmd)

	var exportFile string
	exportCmd := &cobra.Command{
		Use:   "export --file <file>",
		Short: "Export all collections to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if exportFile == "" {
				return errors.New("--file required")
			}
			snap := Snapshot{
				Products:     inventorySvc.Products(),
				Categories:   inventorySvc.Categories(),
				StockEntries: inventorySvc.StockEntries(),
				Sales:        inventorySvc.Sales(),
			}
			b, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return err
			}
			return os.WriteFile(exportFile, b, 0o644)
		},
	}
	exportCmd.Flags().StringVar(&exportFile, "file", "", "output file")
	rootCmd.AddCommand(exportCmd)
}
