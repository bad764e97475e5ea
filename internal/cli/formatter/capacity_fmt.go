package formatter

import (
	"fmt"
	"strings"

	"github.com/piplan-io/piplan/internal/contract"
)

// FormatCapacitySummary renders the per-sprint load table, grouped by
// team. Rows are expected in (team, sprint) order as produced by the
// plan service.
func FormatCapacitySummary(rows []contract.CapacitySummaryRow) string {
	if len(rows) == 0 {
		return Dim("No teams in session.")
	}

	var b strings.Builder

	byTeam := make(map[string][]contract.CapacitySummaryRow)
	var teamOrder []string
	for _, r := range rows {
		if _, seen := byTeam[r.TeamID]; !seen {
			teamOrder = append(teamOrder, r.TeamID)
		}
		byTeam[r.TeamID] = append(byTeam[r.TeamID], r)
	}

	for i, teamID := range teamOrder {
		teamRows := byTeam[teamID]
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(teamRows[0].TeamName))
		b.WriteString("\n")

		headers := []string{"SPRINT", "DAYS", "LOAD", "STATUS"}
		table := make([][]string, 0, len(teamRows))
		for _, r := range teamRows {
			status := StyleGreen.Render("ok")
			if r.OverCapacity {
				status = StyleRed.Render(fmt.Sprintf("over by %d", r.OverBy))
			} else if r.CapacityPoints == 0 {
				status = Dim("no capacity")
			}
			table = append(table, []string{
				fmt.Sprintf("%d", r.SprintNum),
				fmt.Sprintf("%d", r.WorkingDays),
				LoadIndicator(r.AllocatedPoints, r.CapacityPoints),
				status,
			})
		}
		b.WriteString(RenderTable(headers, table))
	}

	return b.String()
}
