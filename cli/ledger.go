package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"inventory_manager/domain"
	"inventory_manager/inventory"
)

func init() {
	rootCmd.AddCommand(stockCmd(), saleCmd())
}

func stockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Record and list stock intake",
	}

	var productID string
	var quantity int
	var price float64
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add stock to a product at a purchase price",
		RunE: func(cmd *cobra.Command, args []string) error {
			if productID == "" {
				return errors.New("--product required")
			}
			entry, err := inventorySvc.AddStock(cmd.Context(), productID, quantity, price)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entry)
		},
	}
	addCmd.Flags().StringVar(&productID, "product", "", "product id")
	addCmd.Flags().IntVar(&quantity, "quantity", 0, "units received")
	addCmd.Flags().Float64Var(&price, "price", 0, "purchase price per unit")
	cmd.AddCommand(addCmd)

	var listProduct, output string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stock entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := inventorySvc.ListStockEntries(listProduct)
			if output == "json" {
				return printJSON(cmd.OutOrStdout(), out)
			}
			for _, e := range out {
				fmt.Fprintf(cmd.OutOrStdout(), "%s | %s | %d | %s | %s | %s\n",
					e.ID, e.ProductID, e.Quantity,
					inventory.FormatMoney(e.PurchasePrice), inventory.FormatMoney(e.TotalCost),
					e.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&listProduct, "product", "", "only entries for this product id")
	listCmd.Flags().StringVar(&output, "output", "", "output format")
	cmd.AddCommand(listCmd)

	return cmd
}

func saleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sale",
		Aliases: []string{"sales"},
		Short:   "Record and list sales",
	}

	var productID string
	var quantity int
	var price float64
	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Sell units of a product at a selling price",
		RunE: func(cmd *cobra.Command, args []string) error {
			if productID == "" {
				return errors.New("--product required")
			}
			sale, err := inventorySvc.RecordSale(cmd.Context(), productID, quantity, price)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), sale)
		},
	}
	recordCmd.Flags().StringVar(&productID, "product", "", "product id")
	recordCmd.Flags().IntVar(&quantity, "quantity", 0, "units sold")
	recordCmd.Flags().Float64Var(&price, "price", 0, "selling price per unit")
	cmd.AddCommand(recordCmd)

	var filter domain.SaleFilter
	var output string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List sales",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSales(cmd.OutOrStdout(), inventorySvc.ListSales(filter), output)
		},
	}
	listCmd.Flags().StringVar(&filter.Search, "search", "", "match product name or category")
	listCmd.Flags().StringVar(&filter.Category, "category", "", "category of the sold product")
	listCmd.Flags().StringVar(&output, "output", "", "output format")
	cmd.AddCommand(listCmd)

	var limit int
	var recentOutput string
	recentCmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the newest sales",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return errors.New("--limit must be non-negative")
			}
			return printSales(cmd.OutOrStdout(), inventorySvc.RecentSales(limit), recentOutput)
		},
	}
	recentCmd.Flags().IntVarP(&limit, "limit", "n", 5, "number of sales")
	recentCmd.Flags().StringVar(&recentOutput, "output", "", "output format")
	cmd.AddCommand(recentCmd)

	return cmd
}

func printSales(w io.Writer, sales []domain.Sale, output string) error {
	if output == "json" {
		return printJSON(w, sales)
	}
	for _, s := range sales {
		fmt.Fprintf(w, "%s | %s | %d x %s | revenue %s | profit %s | %s\n",
			s.ID, s.ProductName, s.Quantity, inventory.FormatMoney(s.SellingPrice),
			inventory.FormatMoney(s.TotalRevenue), inventory.FormatMoney(s.Profit),
			s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
