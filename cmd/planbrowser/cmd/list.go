package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dbsmedya/planbrowser/internal/filter"
)

var (
	listCarrier string
	listType    string
	listFeature string
	listSearch  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List plans matching the active filters",
	Long: `List shows every plan that matches all of the given selectors and
whose name or id contains the search text (case-insensitive).

Columns C and * mark plans selected for comparison and favorites.
Run "planbrowser options" to see the accepted selector values.

Example:
  planbrowser list --carrier Aetna --feature Rebate
  planbrowser list --search gold`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listCarrier, "carrier", filter.All, "Carrier to show")
	listCmd.Flags().StringVar(&listType, "type", filter.All, "Plan type to show (PPO, HMO-POS, R-PPO)")
	listCmd.Flags().StringVar(&listFeature, "feature", filter.All, "Required feature (Rebate, No Commission)")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Match plan name or id")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	criteria := filter.Criteria{Carrier: listCarrier, Type: listType, Feature: listFeature}
	view := a.catalog.View(criteria, listSearch)
	a.log.WithOperation("list").WithCriteria(criteria, listSearch).Debugw("Filtered plans",
		"shown", len(view.Plans), "total", view.Total)

	a.out.List(view, a.catalog)
	return nil
}
