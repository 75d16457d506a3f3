package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/planbrowser/internal/plan"
)

var (
	updateFile string
	updateID   string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace a plan with the contents of a file",
	Long: `Update replaces the plan with the document's id, keeping its position
in the catalog and its compare and favorite state. Every field is taken
from the document.

Example:
  planbrowser update --file plan.yaml`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVarP(&updateFile, "file", "f", "", "Plan document (YAML or JSON)")
	updateCmd.Flags().StringVar(&updateID, "id", "", "Plan id (overrides the document)")
	_ = updateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if updateFile == "" {
		return fmt.Errorf("--file is required")
	}
	data, err := os.ReadFile(updateFile)
	if err != nil {
		return fmt.Errorf("failed to read plan file: %w", err)
	}
	p, err := plan.ParseDraft(data)
	if err != nil {
		return err
	}
	if updateID != "" {
		p.ID = updateID
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.catalog.Update(a.ctx, p); err != nil {
		return fmt.Errorf("failed to update plan %q: %w", p.ID, err)
	}
	a.log.WithPlan(p.ID).Info("Plan updated")
	cmd.Printf("Updated plan %s\n", p.ID)
	return nil
}
