package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a plan from the catalog",
	Long: `Delete removes a plan and drops it from the compare set and favorites.
Deleting an id that does not exist changes nothing.

Example:
  planbrowser delete H1234-001`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	removed, err := a.catalog.Delete(a.ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan %q: %w", id, err)
	}
	if !removed {
		cmd.Printf("Plan %s not found, nothing deleted\n", id)
		return nil
	}
	a.log.WithPlan(id).Info("Plan deleted")
	cmd.Printf("Deleted plan %s\n", id)
	return nil
}
