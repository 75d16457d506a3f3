package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/planbrowser/internal/plan"
)

var (
	addFile        string
	addPlaceholder bool
	addID          string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a plan to the catalog",
	Long: `Add appends a plan read from a YAML or JSON file, or a placeholder plan
to be edited later with "planbrowser update".

A plan without an id gets a generated one. Adding an id that already
exists is rejected.

Example:
  planbrowser add --file plan.yaml
  planbrowser add --placeholder --id H9999-001`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addFile, "file", "f", "", "Plan document (YAML or JSON)")
	addCmd.Flags().BoolVar(&addPlaceholder, "placeholder", false, "Add the placeholder plan")
	addCmd.Flags().StringVar(&addID, "id", "", "Plan id (overrides the document)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	p, err := newPlanFromFlags()
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.catalog.Add(a.ctx, p); err != nil {
		return fmt.Errorf("failed to add plan %q: %w", p.ID, err)
	}
	a.log.WithPlan(p.ID).Info("Plan added")
	cmd.Printf("Added plan %s\n", p.ID)
	return nil
}

func newPlanFromFlags() (plan.Plan, error) {
	if addFile != "" && addPlaceholder {
		return plan.Plan{}, fmt.Errorf("--file and --placeholder are mutually exclusive")
	}

	var p plan.Plan
	if addFile != "" {
		data, err := os.ReadFile(addFile)
		if err != nil {
			return plan.Plan{}, fmt.Errorf("failed to read plan file: %w", err)
		}
		if p, err = plan.ParseDraft(data); err != nil {
			return plan.Plan{}, err
		}
	} else {
		p = plan.Placeholder("")
	}

	if addID != "" {
		p.ID = addID
	}
	if p.ID == "" {
		p.ID = plan.NewID()
	}
	return p, nil
}
