package contract

// ProposeOptions are the knobs forwarded to the AI proposer. The engine
// re-validates every proposal regardless of what the proposer claims to
// have honored.
type ProposeOptions struct {
	RespectDependencies bool `json:"respect_dependencies"`
	BalanceLoad         bool `json:"balance_load"`
	PreferEarlierSprints bool `json:"prefer_earlier_sprints"`
}

// ProposeTeam is the team view sent to the proposer.
type ProposeTeam struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CapacityPoints int    `json:"capacity_points"`
}

// ProposeSprint is the sprint view sent to the proposer.
type ProposeSprint struct {
	Num         int    `json:"num"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	WorkingDays int    `json:"working_days"`
	IsIPSprint  bool   `json:"is_ip_sprint"`
}

// ProposeFeature is the feature view sent to the proposer.
type ProposeFeature struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	Points           int      `json:"points"`
	EstimatedSprints int      `json:"estimated_sprints"`
	BlockedBy        []string `json:"blocked_by,omitempty"`
}

// ProposeRequest is the full planning context given to the AI proposer.
type ProposeRequest struct {
	Teams    []ProposeTeam    `json:"teams"`
	Sprints  []ProposeSprint  `json:"sprints"`
	Features []ProposeFeature `json:"features"`
	Options  ProposeOptions   `json:"options"`
}

// ProposedAssignment is one candidate placement returned by the proposer.
// Untrusted input: always re-validated by the reconciler.
type ProposedAssignment struct {
	FeatureKey      string `json:"feature_key"`
	TeamID          string `json:"team_id"`
	StartSprint     int    `json:"start_sprint"`
	EndSprint       int    `json:"end_sprint"`
	AllocatedPoints int    `json:"allocated_points"`
	Rationale       string `json:"rationale,omitempty"`
}
