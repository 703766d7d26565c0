// Package timeline produces the canonical countdown/response milestone
// sequence for an impact event. The template is fixed; the only
// branching selects atmospheric or surface milestone text.
package timeline

import (
	"fmt"
	"sort"

	"github.com/astroshield/go-impact-sim/internal/physics"
)

type Status string

const (
	StatusPlanned  Status = "planned"
	StatusCritical Status = "critical"
	StatusResponse Status = "response"
)

// Entry is one milestone, keyed by a signed hour offset from impact.
type Entry struct {
	OffsetHours int    `json:"offset_hours"`
	OffsetLabel string `json:"offset_label"`
	Action      string `json:"action"`
	Status      Status `json:"status"`
}

// Generate returns the milestone list sorted ascending by offset, with
// exactly one impact entry at offset zero.
func Generate(effects physics.Effects) []Entry {
	entries := []Entry{
		{OffsetHours: -168, Action: "Impact corridor confirmed; national alert issued"},
		{OffsetHours: -120, Action: "Evacuation plan activated; shelters and hospitals mobilized"},
		{OffsetHours: -72, Action: "Mandatory-tier evacuation begins"},
		{OffsetHours: -48, Action: "Recommended-tier evacuation begins; transport corridors reversed"},
		{OffsetHours: -24, Action: "Critical infrastructure shutdown and hardening"},
		{OffsetHours: -12, Action: "Final sweep of mandatory zones; responders withdraw to staging"},
		{OffsetHours: -2, Action: "All personnel clear of risk zones; airspace closed"},
	}

	if effects.IsAirburst {
		entries = append(entries,
			Entry{OffsetHours: 0, Action: "Atmospheric detonation; blast and thermal pulse"},
			Entry{OffsetHours: 1, Action: "Damage reconnaissance flights; air-quality monitoring begins"},
		)
	} else {
		entries = append(entries,
			Entry{OffsetHours: 0, Action: "Surface impact; crater formation and ejecta fallout"},
			Entry{OffsetHours: 1, Action: "Seismic and fire assessment; search-and-rescue staging"},
		)
	}

	entries = append(entries,
		Entry{OffsetHours: 24, Action: "Search and rescue at full strength; field hospitals open"},
		Entry{OffsetHours: 72, Action: "Monitoring-tier residents assessed for phased return"},
		Entry{OffsetHours: 168, Action: "Recovery phase; infrastructure inspection and reentry plan"},
	)

	for i := range entries {
		entries[i].OffsetLabel = label(entries[i].OffsetHours)
		entries[i].Status = statusFor(entries[i].OffsetHours)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].OffsetHours < entries[j].OffsetHours
	})

	return entries
}

func label(offsetHours int) string {
	return fmt.Sprintf("T%+dh", offsetHours)
}

func statusFor(offsetHours int) Status {
	switch {
	case offsetHours < 0:
		return StatusPlanned
	case offsetHours == 0:
		return StatusCritical
	default:
		return StatusResponse
	}
}
