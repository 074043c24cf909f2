package availability

import "time"

// Observation is the result of one calendar check: what was watched,
// what the cell showed, and what the previous run recorded.
type Observation struct {
	Category  string    `json:"category"`
	DateLabel string    `json:"date_label"`
	Status    Status    `json:"status"`
	Previous  Status    `json:"previous"`
	SourceURL string    `json:"source_url"`
	CheckedAt time.Time `json:"checked_at"`
}

// NewObservation creates an Observation stamped with the current time.
func NewObservation(category, dateLabel string, status, previous Status, sourceURL string) *Observation {
	return &Observation{
		Category:  category,
		DateLabel: dateLabel,
		Status:    status,
		Previous:  previous,
		SourceURL: sourceURL,
		CheckedAt: time.Now().UTC(),
	}
}

// Changed reports whether the status differs from the previous run.
func (o *Observation) Changed() bool {
	return o.Status != o.Previous
}
