package types

import "time"

// PropertyTaxQueueEntry tracks fetching a homeowner's property-tax bill
// from the county site and uploading it on their behalf. NeedsRefresh
// and FetchFailed are independent flags; a stale bill that also failed
// its last fetch carries both.
type PropertyTaxQueueEntry struct {
	UserID                 string     `db:"user_id" json:"userId"`
	Email                  *string    `db:"email" json:"email,omitempty"`
	Phone                  *string    `db:"phone" json:"phone,omitempty"`
	FullName               *string    `db:"full_name" json:"fullName,omitempty"`
	Address                string     `db:"address" json:"address"`
	ResidencyProofVerified bool       `db:"residency_proof_verified" json:"residencyProofVerified"`
	LastFetchedAt          *time.Time `db:"last_fetched_at" json:"lastFetchedAt,omitempty"`
	NeedsRefresh           bool       `db:"needs_refresh" json:"needsRefresh"`
	FetchFailed            bool       `db:"fetch_failed" json:"fetchFailed"`
	Notes                  *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt              time.Time  `db:"created_at" json:"createdAt"`
}

// NeverFetched is derived, not stored: no fetch has ever succeeded.
func (e *PropertyTaxQueueEntry) NeverFetched() bool {
	return e.LastFetchedAt == nil
}

type QueueFilter string

const (
	QueueNeedsRefresh QueueFilter = "needs_refresh"
	QueueFailed       QueueFilter = "failed"
	QueueNeverFetched QueueFilter = "never_fetched"
	QueueAll          QueueFilter = "all"
)

func ParseQueueFilter(raw string) QueueFilter {
	switch QueueFilter(raw) {
	case QueueNeedsRefresh, QueueFailed, QueueNeverFetched:
		return QueueFilter(raw)
	default:
		return QueueAll
	}
}

type QueueCounts struct {
	NeedsRefresh int `db:"needs_refresh" json:"needsRefresh"`
	Failed       int `db:"failed" json:"failed"`
	NeverFetched int `db:"never_fetched" json:"neverFetched"`
	Total        int `db:"total" json:"total"`
}

// QueueStatusAction flips exactly one of the two boolean flags. The
// last-fetched timestamp is only ever set by a successful upload.
type QueueStatusAction string

const (
	ActionMarkFailed       QueueStatusAction = "mark_failed"
	ActionClearFailed      QueueStatusAction = "clear_failed"
	ActionMarkNeedsRefresh QueueStatusAction = "mark_needs_refresh"
)
