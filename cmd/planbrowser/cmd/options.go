package cmd

import (
	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List accepted filter values",
	Long: `Options lists the values accepted by the list selectors. Carriers and
types found in the catalog but not among the standard ones are listed last.

Example:
  planbrowser options`,
	Args: cobra.NoArgs,
	RunE: runOptions,
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	a.out.Options(a.catalog.Options())
	return nil
}
