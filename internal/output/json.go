package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/beetlebot/cheepnow/internal/core"
)

var Writer io.Writer = os.Stdout

func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	_, err = fmt.Fprintln(Writer, string(data))
	return err
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func JSONError(msg string, details string) {
	_ = JSON(ErrorResponse{Error: msg, Details: details})
}

// SearchTable prints a result as an aligned table, best value first.
func SearchTable(r *core.SearchResult) error {
	tw := tabwriter.NewWriter(Writer, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s  %s  (%d flights)\n\n", r.Route, r.Query.DepartDate, r.Summary.FlightsFound)
	fmt.Fprintln(tw, "ID\tFLIGHT\tAIRLINE\tDEPART\tARRIVE\tPRICE\tSCORE\tCO2\tWHY")
	for _, f := range r.Flights {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t₱%.0f\t%.1f\t%.0fkg\t%s\n",
			f.ID, f.FlightNumber, f.Airline.Name, f.DepartTime, f.ArriveTime,
			f.TotalPrice, f.ValueScore, f.CarbonKg, f.Recommendation)
	}
	fmt.Fprintf(tw, "\ncheapest ₱%.0f  average ₱%.0f  carry-on %d/%d  avg CO2 %.0fkg\n",
		r.Summary.CheapestPrice, r.Summary.AveragePrice,
		r.Summary.CarryOnIncluded, r.Summary.FlightsFound, r.Summary.AverageCarbonKg)

	return tw.Flush()
}

// LockLine prints a one-line lock countdown.
func LockLine(s core.LockStatus) error {
	if !s.Locked {
		_, err := fmt.Fprintf(Writer, "%s: not locked\n", s.FlightID)
		return err
	}
	_, err := fmt.Fprintf(Writer, "%s: locked at ₱%.0f, %02d:%02d remaining\n",
		s.FlightID, s.OriginalPrice, s.RemainingSeconds/60, s.RemainingSeconds%60)
	return err
}
