package voucher

import "time"

// RejectionRecord is one rejection of a voucher. At is zero when the server sent
// no parseable date.
type RejectionRecord struct {
	Reason string
	At     time.Time
	By     string
}

// FlatRejection is the single-record shape some endpoints use instead of a
// history array.
type FlatRejection struct {
	Reason     string
	RejectedAt string
	UpdatedAt  string
	RejectedBy string
	ApproverID string
}

// Rejections is the normalized rejection data of a voucher.
type Rejections struct {
	explicit *int
	history  []RejectionRecord
}

// NormalizeRejections merges the two server representations. A non-empty history
// wins; otherwise a single record is synthesized from the flat fields when any of
// reason, rejected_at or rejected_by is present. count is the server's
// rejection_count, nil when it was absent or not numeric.
func NormalizeRejections(history []RejectionRecord, flat FlatRejection, count *int) Rejections {
	r := Rejections{explicit: count}

	switch {
	case len(history) > 0:
		r.history = history
	case flat.Reason != "" || flat.RejectedAt != "" || flat.RejectedBy != "":
		at := flat.RejectedAt
		if at == "" {
			at = flat.UpdatedAt
		}

		by := flat.RejectedBy
		if by == "" {
			by = flat.ApproverID
		}

		r.history = []RejectionRecord{{Reason: flat.Reason, At: parseTime(at), By: by}}
	}

	return r
}

// Count is the displayed rejection count: the explicit count when the server sent
// one, else the number of records.
func (r Rejections) Count() int {
	if r.explicit != nil {
		return *r.explicit
	}

	return len(r.history)
}

// Items returns the detail rows. A zero count hides them all, whatever the list holds.
func (r Rejections) Items() []RejectionRecord {
	if r.Count() == 0 {
		return nil
	}

	return r.history
}

// Latest returns the record with the latest date. Ties go to the later element
// and a list without any date falls back to the last element.
func (r Rejections) Latest() (RejectionRecord, bool) {
	items := r.Items()
	if len(items) == 0 {
		return RejectionRecord{}, false
	}

	best := -1

	for i, rec := range items {
		if rec.At.IsZero() {
			continue
		}

		if best == -1 || !rec.At.Before(items[best].At) {
			best = i
		}
	}

	if best == -1 {
		best = len(items) - 1
	}

	return items[best], true
}

// Append records a new rejection and keeps an explicit count in step.
func (r *Rejections) Append(rec RejectionRecord) {
	r.history = append(r.history, rec)

	if r.explicit != nil {
		n := *r.explicit + 1
		r.explicit = &n
	}
}

// NewRejections builds normalized rejection data from records only.
func NewRejections(history ...RejectionRecord) Rejections {
	return Rejections{history: history}
}
