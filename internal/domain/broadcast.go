package domain

// Message is one rendered notification, sent identically to every recipient.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// DeliveryFailure records why a single recipient could not be reached.
// It lives inside a BroadcastReport and never aborts the batch.
type DeliveryFailure struct {
	Recipient string
	Reason    string
}

// BroadcastReport aggregates the outcome of every send attempt in a broadcast.
type BroadcastReport struct {
	Sent   []string
	Failed []DeliveryFailure
}

// NewBroadcastReport returns an empty report with non-nil slices.
func NewBroadcastReport() BroadcastReport {
	return BroadcastReport{Sent: []string{}, Failed: []DeliveryFailure{}}
}

// FailedRecipients returns the recipients of Failed, for a caller-driven retry.
func (r BroadcastReport) FailedRecipients() []string {
	out := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		out = append(out, f.Recipient)
	}
	return out
}
