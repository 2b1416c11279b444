package commands

import (
	"github.com/beetlebot/cheepnow/internal/adapters/mock"
	"github.com/beetlebot/cheepnow/internal/output"
	"github.com/spf13/cobra"
)

func ReferenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "List airports, airlines, and priced routes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "airports",
		Short: "List served airports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return output.JSON(mock.DefaultCatalog().Airports())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "airlines",
		Short: "List carriers with baggage and service details",
		RunE: func(cmd *cobra.Command, args []string) error {
			return output.JSON(mock.DefaultCatalog().Airlines())
		},
	})

	var popular bool
	routes := &cobra.Command{
		Use:   "routes",
		Short: "List priced routes with distance and base fare",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := mock.DefaultCatalog()
			if popular {
				return output.JSON(c.PopularRoutes())
			}
			return output.JSON(c.Routes())
		},
	}
	routes.Flags().BoolVar(&popular, "popular", false, "Only the quick-pick popular routes")
	cmd.AddCommand(routes)

	return cmd
}
