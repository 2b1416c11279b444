package commands

import (
	"fmt"
	"strings"

	"github.com/beetlebot/cheepnow/internal/adapters/mock"
	"github.com/beetlebot/cheepnow/internal/config"
	"github.com/beetlebot/cheepnow/internal/output"
	"github.com/spf13/cobra"
)

type DoctorReport struct {
	Env      config.Env `json:"env"`
	Seed     int64      `json:"seed"`
	Airports int        `json:"airports"`
	Airlines int        `json:"airlines"`
	Routes   int        `json:"routes"`
	Issues   []string   `json:"issues,omitempty"`
	Healthy  bool       `json:"healthy"`
	Summary  string     `json:"summary"`
}

func DoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration and reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			return output.JSON(diagnose(cfg, mock.DefaultCatalog()))
		},
	}
}

func diagnose(cfg *config.Config, c *mock.Catalog) DoctorReport {
	var issues []string
	if err := cfg.Validate(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			issues = append(issues, "config: "+line)
		}
	}

	for _, r := range c.Routes() {
		if _, ok := c.Airport(r.From); !ok {
			issues = append(issues, fmt.Sprintf("route %s→%s: unknown origin", r.From, r.To))
		}
		if _, ok := c.Airport(r.To); !ok {
			issues = append(issues, fmt.Sprintf("route %s→%s: unknown destination", r.From, r.To))
		}
		if r.From == r.To {
			issues = append(issues, fmt.Sprintf("route %s→%s: origin equals destination", r.From, r.To))
		}
	}
	for _, a := range c.Airlines() {
		if a.OnTimePerformance < 0 || a.OnTimePerformance > 1 {
			issues = append(issues, fmt.Sprintf("airline %s: on-time ratio %.2f outside [0,1]", a.Code, a.OnTimePerformance))
		}
		if a.CustomerRating < 1 || a.CustomerRating > 5 {
			issues = append(issues, fmt.Sprintf("airline %s: rating %.1f outside [1,5]", a.Code, a.CustomerRating))
		}
	}

	report := DoctorReport{
		Env:      cfg.Env,
		Seed:     cfg.Seed,
		Airports: len(c.Airports()),
		Airlines: len(c.Airlines()),
		Routes:   len(c.Routes()),
		Issues:   issues,
		Healthy:  len(issues) == 0,
	}
	report.Summary = fmt.Sprintf("%d airports, %d airlines, %d routes (env=%s)", report.Airports, report.Airlines, report.Routes, cfg.Env)
	if len(issues) > 0 {
		report.Summary += fmt.Sprintf(" | %d issues", len(issues))
	}
	return report
}
