package formatter

import (
	"fmt"
	"strings"

	"github.com/piplan-io/piplan/internal/contract"
)

// FormatKanbanBoard renders the board view: one section per team lane
// with a column per sprint, then the unassigned backlog.
func FormatKanbanBoard(board *contract.KanbanBoard) string {
	var b strings.Builder

	for i, lane := range board.Lanes {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(lane.TeamName))
		b.WriteString("\n")

		empty := true
		for _, col := range lane.Columns {
			if len(col.Cards) == 0 {
				continue
			}
			empty = false
			b.WriteString(fmt.Sprintf("%s\n", StyleBlue.Render(fmt.Sprintf("Sprint %d", col.SprintNum))))
			for _, card := range col.Cards {
				b.WriteString("  " + formatCard(card) + "\n")
			}
		}
		if empty {
			b.WriteString(Dim("(no assignments)") + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(Header("Backlog"))
	b.WriteString("\n")
	if len(board.Backlog) == 0 {
		b.WriteString(Dim("(empty)") + "\n")
	}
	for _, card := range board.Backlog {
		b.WriteString("  " + formatCard(card) + "\n")
	}

	return b.String()
}

func formatCard(card contract.KanbanCard) string {
	var parts []string
	parts = append(parts, StyleBold.Render(card.FeatureKey))
	if card.Title != "" {
		parts = append(parts, truncate(card.Title, 40))
	}
	parts = append(parts, Dim(fmt.Sprintf("%dpt", card.Points)))
	if card.EndSprint > card.StartSprint {
		parts = append(parts, Dim(fmt.Sprintf("s%d→s%d", card.StartSprint, card.EndSprint)))
	}
	if card.IsManualOverride {
		parts = append(parts, StyleYellow.Render("manual"))
	}
	return strings.Join(parts, " ")
}
