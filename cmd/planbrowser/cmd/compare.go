package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dbsmedya/planbrowser/internal/selection"
)

var compareCmd = &cobra.Command{
	Use:   "compare <id>",
	Short: "Toggle a plan in the compare set",
	Long: `Compare adds a plan to the compare set, or removes it if it is already
selected. At most 4 plans are compared; selecting a fifth drops the one
selected first.

Example:
  planbrowser compare H1234-001
  planbrowser compare show
  planbrowser compare clear`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

var compareShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the compared plans side by side",
	Args:  cobra.NoArgs,
	RunE:  runCompareShow,
}

var compareClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the compare set",
	Args:  cobra.NoArgs,
	RunE:  runCompareClear,
}

func init() {
	compareCmd.AddCommand(compareShowCmd)
	compareCmd.AddCommand(compareClearCmd)
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	id := args[0]

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	selected, evicted, err := a.catalog.ToggleCompare(a.ctx, id)
	if err != nil {
		return err
	}
	if !selected {
		cmd.Printf("Removed %s from compare\n", id)
		return nil
	}
	cmd.Printf("Added %s to compare\n", id)
	if evicted != "" {
		cmd.Printf("Removed %s, at most %d plans are compared\n", evicted, selection.CompareLimit)
	}
	return nil
}

func runCompareShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	a.out.Compare(a.catalog.Compared())
	return nil
}

func runCompareClear(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	a.catalog.ClearCompare(a.ctx)
	cmd.Println("Compare set cleared")
	return nil
}
