package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/beetlebot/cheepnow/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Writer
	Writer = &buf
	t.Cleanup(func() { Writer = prev })
	return &buf
}

func TestJSONError(t *testing.T) {
	buf := capture(t)

	JSONError("search failed", "origin and destination must differ")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "search failed", resp.Error)
	assert.Equal(t, "origin and destination must differ", resp.Details)
}

func TestSearchTable(t *testing.T) {
	buf := capture(t)

	airline := &core.Airline{Name: "Cebu Pacific"}
	err := SearchTable(&core.SearchResult{
		Route: "Manila → Cebu",
		Query: core.FlightSearchRequest{DepartDate: "2026-06-12"},
		Flights: []core.FlightOffer{{
			ID: "5J1123", FlightNumber: "5J 145", Airline: airline, DepartTime: "06:15", ArriveTime: "07:40",
			TotalPrice: 3920.4, ValueScore: 71.31, CarbonKg: 94.5, Recommendation: "Recommended for competitive pricing",
		}},
		Summary: core.SearchSummary{FlightsFound: 1, CheapestPrice: 3920.4, AveragePrice: 3920.4, CarryOnIncluded: 1, AverageCarbonKg: 94.5},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Manila → Cebu")
	assert.Contains(t, out, "5J1123")
	assert.Contains(t, out, "₱3920")
	assert.Contains(t, out, "71.3")
	assert.Contains(t, out, "carry-on 1/1")
}

func TestLockLine(t *testing.T) {
	buf := capture(t)

	require.NoError(t, LockLine(core.LockStatus{FlightID: "PR1450", Locked: true, RemainingSeconds: 754, OriginalPrice: 5600}))
	require.NoError(t, LockLine(core.LockStatus{FlightID: "Z21333"}))

	assert.Equal(t, "PR1450: locked at ₱5600, 12:34 remaining\nZ21333: not locked\n", buf.String())
}
