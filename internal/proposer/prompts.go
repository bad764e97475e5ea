package proposer

import (
	"fmt"
	"strings"

	"github.com/piplan-io/piplan/internal/contract"
)

const systemPrompt = `You are a Program Increment planning assistant.
You place backlog features onto teams across a sprint calendar.
Rules:
- Never exceed a team's capacity points in any sprint.
- A feature spanning multiple sprints consumes its full allocated points in every sprint of its range.
- A feature blocked by another must start the sprint after its blocker ends.
- Sprints flagged as IP have zero delivery capacity; assign nothing to them.
Respond with ONLY a JSON object of the form:
{"assignments": [{"feature_key": "...", "team_id": "...", "start_sprint": 1, "end_sprint": 1, "allocated_points": 5, "rationale": "..."}]}`

// buildUserPrompt renders the planning context as the user message.
func buildUserPrompt(req contract.ProposeRequest) string {
	var b strings.Builder

	b.WriteString("Teams:\n")
	for _, t := range req.Teams {
		fmt.Fprintf(&b, "- id=%s name=%q capacity=%d points/sprint\n", t.ID, t.Name, t.CapacityPoints)
	}

	b.WriteString("\nSprints:\n")
	for _, s := range req.Sprints {
		flag := ""
		if s.IsIPSprint {
			flag = " (IP sprint, no delivery capacity)"
		}
		fmt.Fprintf(&b, "- sprint %d: %s to %s, %d working days%s\n",
			s.Num, s.StartDate, s.EndDate, s.WorkingDays, flag)
	}

	b.WriteString("\nFeatures to place:\n")
	for _, f := range req.Features {
		fmt.Fprintf(&b, "- key=%s title=%q points=%d estimated_sprints=%d", f.Key, f.Title, f.Points, f.EstimatedSprints)
		if len(f.BlockedBy) > 0 {
			fmt.Fprintf(&b, " blocked_by=%s", strings.Join(f.BlockedBy, ","))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nPreferences:\n")
	fmt.Fprintf(&b, "- respect_dependencies: %t\n", req.Options.RespectDependencies)
	fmt.Fprintf(&b, "- balance_load: %t\n", req.Options.BalanceLoad)
	fmt.Fprintf(&b, "- prefer_earlier_sprints: %t\n", req.Options.PreferEarlierSprints)

	return b.String()
}
