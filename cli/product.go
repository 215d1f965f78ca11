package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"inventory_manager/domain"
	"inventory_manager/inventory"
)

func init() {
	productCmd := &cobra.Command{
		Use:     "product",
		Aliases: []string{"products"},
		Short:   "Manage products",
	}

	// create
	var in domain.NewProduct
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product with zero stock",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := inventorySvc.CreateProduct(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	createCmd.Flags().StringVar(&in.Name, "name", "", "name")
	createCmd.Flags().StringVar(&in.Category, "category", "", "category")
	createCmd.Flags().StringVar(&in.Unit, "unit", "", "unit of measure (piece, kg, ...)")
	createCmd.Flags().Float64Var(&in.Price, "price", 0, "selling price")
	productCmd.AddCommand(createCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get product by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := inventorySvc.Product(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	productCmd.AddCommand(getCmd)

	// update
	var uName, uCategory, uUnit string
	var uPrice float64
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u domain.ProductUpdate
			if cmd.Flags().Changed("name") {
				u.Name = &uName
			}
			if cmd.Flags().Changed("category") {
				u.Category = &uCategory
			}
			if cmd.Flags().Changed("unit") {
				u.Unit = &uUnit
			}
			if cmd.Flags().Changed("price") {
				u.Price = &uPrice
			}
			p, err := inventorySvc.UpdateProduct(cmd.Context(), args[0], u)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	updateCmd.Flags().StringVar(&uName, "name", "", "name")
	updateCmd.Flags().StringVar(&uCategory, "category", "", "category")
	updateCmd.Flags().StringVar(&uUnit, "unit", "", "unit of measure")
	updateCmd.Flags().Float64Var(&uPrice, "price", 0, "selling price")
	productCmd.AddCommand(updateCmd)

	// list
	var filter domain.ListFilter
	var lOutput string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := inventorySvc.ListProducts(filter)
			if lOutput == "json" {
				return printJSON(cmd.OutOrStdout(), out)
			}
			w := cmd.OutOrStdout()
			for _, p := range out {
				fmt.Fprintf(w, "%s | %s | %s | %s | %s | %d | %s\n",
					p.ID, p.Name, p.Category, p.Unit,
					inventory.FormatMoney(p.Price), p.Stock, inventory.FormatMoney(p.CostBasis()))
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&filter.Search, "search", "", "match name or category (case-insensitive)")
	listCmd.Flags().StringVar(&filter.Category, "category", "", "category")
	listCmd.Flags().StringVar(&filter.SortBy, "sort-by", "", "sort field: name|price|stock|created")
	listCmd.Flags().StringVar(&filter.Order, "order", "asc", "sort order")
	listCmd.Flags().BoolVar(&filter.InStock, "available", false, "only products with stock")
	listCmd.Flags().StringVar(&lOutput, "output", "", "output format")
	productCmd.AddCommand(listCmd)

	// delete
	var force bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product; its stock entries and sales are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirm(cmd, fmt.Sprintf("Delete %s?", args[0])) {
				fmt.Fprintln(cmd.OutOrStdout(), "aborted")
				return nil
			}
			if err := inventorySvc.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
	deleteCmd.Flags().BoolVar(&force, "force", false, "skip confirmation")
	productCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(productCmd)
}
