package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"inventory_manager/domain"
)

func init() {
	categoryCmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "Manage categories",
	}

	var in domain.NewCategory
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := inventorySvc.CreateCategory(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), c)
		},
	}
	createCmd.Flags().StringVar(&in.Name, "name", "", "name")
	createCmd.Flags().StringVar(&in.Description, "description", "", "description")
	categoryCmd.AddCommand(createCmd)

	var uName, uDescription string
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category; products keep their category text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u domain.CategoryUpdate
			if cmd.Flags().Changed("name") {
				u.Name = &uName
			}
			if cmd.Flags().Changed("description") {
				u.Description = &uDescription
			}
			c, err := inventorySvc.UpdateCategory(cmd.Context(), args[0], u)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), c)
		},
	}
	updateCmd.Flags().StringVar(&uName, "name", "", "name")
	updateCmd.Flags().StringVar(&uDescription, "description", "", "description")
	categoryCmd.AddCommand(updateCmd)

	var force bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirm(cmd, fmt.Sprintf("Delete category %s?", args[0])) {
				fmt.Fprintln(cmd.OutOrStdout(), "aborted")
				return nil
			}
			if err := inventorySvc.DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
	deleteCmd.Flags().BoolVar(&force, "force", false, "skip confirmation")
	categoryCmd.AddCommand(deleteCmd)

	var output string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := inventorySvc.Categories()
			if output == "json" {
				return printJSON(cmd.OutOrStdout(), out)
			}
			for _, c := range out {
				fmt.Fprintf(cmd.OutOrStdout(), "%s | %s | %s\n", c.ID, c.Name, c.Description)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&output, "output", "", "output format")
	categoryCmd.AddCommand(listCmd)

	rootCmd.AddCommand(categoryCmd)
}
