package types

type ReviewAction string

const (
	ReviewApprove ReviewAction = "approve"
	ReviewReject  ReviewAction = "reject"
)

// ReviewRequest is the reviewer's decision as posted to the review
// endpoint. RejectionReasons carries keys from the fixed reason catalog;
// CustomReason is an optional addendum, never a replacement.
type ReviewRequest struct {
	DocumentID       int64        `json:"documentId"`
	Action           ReviewAction `json:"action"`
	RejectionReasons []string     `json:"rejectionReasons"`
	CustomReason     string       `json:"customReason"`
	CustomerCode     string       `json:"customerCode,omitempty"`
}

type StatusUpdateRequest struct {
	UserID string            `json:"userId"`
	Action QueueStatusAction `json:"action"`
	Notes  *string           `json:"notes,omitempty"`
}

type LoginRequest struct {
	Password string `json:"password"`
}
