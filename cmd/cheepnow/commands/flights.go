package commands

import (
	"context"
	"fmt"

	"github.com/beetlebot/cheepnow/internal/core"
	"github.com/beetlebot/cheepnow/internal/logging"
	"github.com/beetlebot/cheepnow/internal/output"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func FlightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flights",
		Short: "Search flight offers and lock prices",
	}
	cmd.AddCommand(flightsSearchCmd())
	return cmd
}

type searchOutput struct {
	*core.SearchResult
	Lock    *core.LockStatus    `json:"lock,omitempty"`
	History []core.HistoryEntry `json:"history"`
}

func flightsSearchCmd() *cobra.Command {
	var (
		req      core.FlightSearchRequest
		tripType string
		lockRank int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for flights between two Philippine airports",
		Example: `  cheepnow flights search --from MNL --to CEB --depart 2026-06-12
  cheepnow flights search --from CEB --to DVO --depart 2026-12-20 --adults 2 --children 1 --lock 1
  cheepnow flights search --from MNL --to ILO --depart 2026-04-02 --trip round-trip --return 2026-04-09 --json=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.From == "" || req.To == "" || req.DepartDate == "" {
				return cmd.Help()
			}
			req.TripType = core.TripType(tripType)

			cfg := loadConfig(cmd)
			a := buildApp(cfg)
			sess := core.NewSession(uuid.NewString(), nil)

			result, err := a.searcher.Search(context.Background(), sess, req)
			if err != nil {
				logging.Warn("search failed", "from", req.From, "to", req.To, "error", err.Error())
				output.JSONError("search failed", err.Error())
				return nil
			}
			logging.Debug("search completed", "route", result.Route, "flights", len(result.Flights), "seed", cfg.Seed)

			out := searchOutput{SearchResult: result}
			if lockRank > 0 {
				if lockRank > len(result.Flights) {
					return fmt.Errorf("--lock %d: only %d flights found", lockRank, len(result.Flights))
				}
				lock, err := sess.LockFlight(result.Flights[lockRank-1].ID)
				if err != nil {
					return err
				}
				status := sess.Locks.Status(lock.FlightID)
				out.Lock = &status
			}
			out.History = sess.RecentSearches(cfg.Session.HistoryDisplay)

			if !jsonOutput(cmd) {
				if err := output.SearchTable(result); err != nil {
					return err
				}
				if out.Lock != nil {
					return output.LockLine(*out.Lock)
				}
				return nil
			}
			return output.JSON(out)
		},
	}

	cmd.Flags().StringVar(&req.From, "from", "", "Origin airport code (required)")
	cmd.Flags().StringVar(&req.To, "to", "", "Destination airport code (required)")
	cmd.Flags().StringVar(&req.DepartDate, "depart", "", "Departure date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&req.ReturnDate, "return", "", "Return date YYYY-MM-DD (round trips)")
	cmd.Flags().StringVar(&tripType, "trip", string(core.TripOneWay), "Trip type: one-way, round-trip")
	cmd.Flags().IntVar(&req.Adults, "adults", 1, "Number of adults (1-9)")
	cmd.Flags().IntVar(&req.Children, "children", 0, "Number of children, 2-11 years (0-8)")
	cmd.Flags().IntVar(&req.Infants, "infants", 0, "Number of infants, under 2 (0-4)")
	cmd.Flags().StringVar(&req.Filters.CabinClass, "cabin", "economy", "Cabin class preference: economy, premium, business")
	cmd.Flags().BoolVar(&req.Filters.FlexibleDates, "flexible", false, "Flexible dates (±3 days)")
	cmd.Flags().BoolVar(&req.Filters.DirectOnly, "direct", false, "Direct flights only")
	cmd.Flags().IntVar(&lockRank, "lock", 0, "Lock the price of the Nth ranked offer for 15 minutes (0 = none)")

	return cmd
}
