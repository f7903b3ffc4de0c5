package models

// GateState is the quality-gate state machine position.
type GateState string

const (
	GateDraft     GateState = "Draft"
	GateScrubbed  GateState = "Scrubbed"
	GateScored    GateState = "Scored"
	GateRevising  GateState = "Revising"
	GateEscalated GateState = "Escalated"
	GateAccepted  GateState = "Accepted"
)

// Terminal reports whether the state ends a pipeline run.
func (s GateState) Terminal() bool {
	return s == GateAccepted || s == GateEscalated
}

// EscalationNotes is the structured record handed to the external review
// queue when a run exhausts its revision budget.
type EscalationNotes struct {
	// Attempts holds every scoring attempt's snapshot, in order.
	Attempts []*CompositeResult `json:"attempts"`
	// ScoreDeltas are the weighted-total changes between consecutive attempts.
	ScoreDeltas []int `json:"score_deltas"`
	// TopIssues are the unresolved issues of the final attempt.
	TopIssues []Issue `json:"top_issues"`
}

// RunRecord is the canonical machine-readable output of one pipeline run.
// Consumers must treat unknown additional keys as forward-compatible additions.
type RunRecord struct {
	RunID string `json:"run_id"`

	ScrubReport     *ScrubReport     `json:"scrub_report"`
	MetricBundle    *MetricBundle    `json:"metric_bundle"`
	KeywordProfile  *KeywordProfile  `json:"keyword_profile"`
	SEOResult       *SEOResult       `json:"seo_result"`
	CompositeResult *CompositeResult `json:"composite_result"`

	// History is the append-only list of every scoring attempt, oldest first.
	// Its last element equals CompositeResult.
	History []*CompositeResult `json:"attempt_history"`

	GateState GateState `json:"gate_state"`
	// Attempts counts completed score evaluations in this run.
	Attempts int `json:"attempts"`
	// Revisions counts completed revise cycles (bounded by the gate config).
	Revisions int `json:"revisions"`

	Escalation *EscalationNotes `json:"escalation,omitempty"`

	// Document is the final document (revised text included). Not serialized;
	// accepted documents are handed to downstream collaborators directly.
	Document *Document `json:"-"`
}
