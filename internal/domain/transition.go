package domain

type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeNoop    Outcome = "noop"
)

// TransitionResult reports what a spot operation did. On a no-op, Spot holds
// the unchanged spot when it exists. Record is set only by a vacate.
type TransitionResult struct {
	Outcome Outcome        `json:"outcome"`
	Spot    *Spot          `json:"spot,omitempty"`
	Record  *HistoryRecord `json:"record,omitempty"`
}

func (r TransitionResult) Applied() bool {
	return r.Outcome == OutcomeApplied
}
