package cmd

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show every field of one plan",
	Long: `Show prints all details of a plan, including its compare and favorite state.

Example:
  planbrowser show H1234-001`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.catalog.Get(args[0])
	if err != nil {
		return err
	}
	a.out.Plan(p, a.catalog)
	return nil
}
