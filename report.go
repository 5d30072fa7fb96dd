package imgseed

import "context"

// Report aggregates the outcomes of a run in processing order.
type Report struct {
	Total    int
	Outcomes []*Outcome

	// Failed holds the original items that failed, in processing order.
	Failed []Item
}

// NewReport returns an empty report expecting total items.
func NewReport(total int) *Report {
	return &Report{Total: total}
}

// Record appends an outcome to the report.
func (r *Report) Record(o *Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	if o.Status == StatusFailure {
		r.Failed = append(r.Failed, o.Item)
	}
}

// SuccessCount returns the number of successful outcomes.
func (r *Report) SuccessCount() int {
	return len(r.Outcomes) - len(r.Failed)
}

// FailureCount returns the number of failed outcomes.
func (r *Report) FailureCount() int {
	return len(r.Failed)
}

// FailureWriter persists failed items so a later run can retry only those.
type FailureWriter interface {
	// WriteFailures stores the items in the same shape as the input manifest.
	WriteFailures(ctx context.Context, items []Item) error
}
