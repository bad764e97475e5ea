package contract

// CapacitySummaryRow is one (team, sprint) cell of the capacity view,
// recomputed from live state on every read.
type CapacitySummaryRow struct {
	TeamID          string
	TeamName        string
	SprintNum       int
	WorkingDays     int
	CapacityPoints  int
	AllocatedPoints int
	OverCapacity    bool
	OverBy          int
}

// KanbanCard is one assigned or unassigned feature on the board view.
type KanbanCard struct {
	FeatureKey       string
	Title            string
	Points           int
	StartSprint      int
	EndSprint        int
	IsManualOverride bool
}

// KanbanColumn groups the cards of one team for one sprint.
type KanbanColumn struct {
	SprintNum int
	Cards     []KanbanCard
}

// KanbanLane is one team's row across the sprint calendar.
type KanbanLane struct {
	TeamID   string
	TeamName string
	Columns  []KanbanColumn
}

// KanbanBoard is the full board view of a session: one lane per team,
// plus the backlog of features without an assignment.
type KanbanBoard struct {
	SessionID string
	Lanes     []KanbanLane
	Backlog   []KanbanCard
}
