package cmd

import (
	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle a plan as favorite",
	Long: `Favorite marks a plan as favorite, or unmarks it if it already is one.

Example:
  planbrowser favorite H1234-001`,
	Args: cobra.ExactArgs(1),
	RunE: runFavorite,
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorite plans",
	Long: `Favorites lists the plans marked as favorite, in catalog order.

Example:
  planbrowser favorites`,
	Args: cobra.NoArgs,
	RunE: runFavorites,
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func runFavorite(cmd *cobra.Command, args []string) error {
	id := args[0]

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	favorite, err := a.catalog.ToggleFavorite(a.ctx, id)
	if err != nil {
		return err
	}
	if favorite {
		cmd.Printf("Marked %s as favorite\n", id)
	} else {
		cmd.Printf("Removed %s from favorites\n", id)
	}
	return nil
}

func runFavorites(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	a.out.Favorites(a.catalog.Favorites())
	return nil
}
