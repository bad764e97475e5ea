package formatter

import (
	"fmt"
	"strings"

	"github.com/piplan-io/piplan/internal/contract"
)

// FormatValidationResult renders the outcome of one assignment attempt.
func FormatValidationResult(featureKey string, res *contract.ValidationResult) string {
	var b strings.Builder

	if res.Accepted {
		b.WriteString(fmt.Sprintf("%s %s\n", StyleGreen.Render("✓"), Bold(featureKey)))
	} else {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			StyleRed.Render("✗"), Bold(featureKey),
			StyleRed.Render(fmt.Sprintf("[%s] %s", res.Code, res.Message))))
	}

	for _, w := range res.Warnings {
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleYellow.Render("!"), w.Message))
	}

	return b.String()
}

// FormatReconcileResult renders the diff of a candidate plan against
// current state: accepted, rejected and already-satisfied candidates.
func FormatReconcileResult(res *contract.ReconcileResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s\n\n",
		Dim("accepted:"), StyleGreen.Render(fmt.Sprintf("%d", len(res.Accepted))),
		Dim("rejected:"), StyleRed.Render(fmt.Sprintf("%d", len(res.Rejected))),
		Dim("unchanged:"), Dim(fmt.Sprintf("%d", len(res.AlreadyAssigned)))))

	if len(res.Accepted) > 0 {
		headers := []string{"", "FEATURE", "TEAM", "SPRINTS", "PTS", "NOTES"}
		rows := make([][]string, 0, len(res.Accepted))
		for _, a := range res.Accepted {
			span := fmt.Sprintf("%d", a.StartSprint)
			if a.EndSprint > a.StartSprint {
				span = fmt.Sprintf("%d→%d", a.StartSprint, a.EndSprint)
			}
			notes := ""
			if len(a.Warnings) > 0 {
				var msgs []string
				for _, w := range a.Warnings {
					msgs = append(msgs, string(w.Code))
				}
				notes = StyleYellow.Render(strings.Join(msgs, ", "))
			}
			rows = append(rows, []string{
				StyleGreen.Render("✓"),
				StyleBlue.Render(a.FeatureKey),
				Dim(shortID(a.TeamID)),
				span,
				fmt.Sprintf("%d", a.AllocatedPoints),
				notes,
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	if len(res.Rejected) > 0 {
		if len(res.Accepted) > 0 {
			b.WriteString("\n")
		}
		for _, r := range res.Rejected {
			b.WriteString(fmt.Sprintf("%s %s %s\n",
				StyleRed.Render("✗"), StyleBlue.Render(r.FeatureKey),
				StyleRed.Render(fmt.Sprintf("[%s] %s", r.Code, r.Message))))
		}
	}

	if len(res.AlreadyAssigned) > 0 {
		b.WriteString("\n")
		b.WriteString(Dim(fmt.Sprintf("already placed: %s", strings.Join(res.AlreadyAssigned, ", "))))
		b.WriteString("\n")
	}

	return b.String()
}
