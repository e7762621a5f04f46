package types

// Response is the envelope every admin endpoint answers with. A
// success=false response carries Error verbatim for the dashboard.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type PermitDocumentListResponse struct {
	Success                 bool                      `json:"success"`
	Documents               []*PermitDocument         `json:"documents"`
	ResidencyProofDocuments []*ResidencyProofDocument `json:"residencyProofDocuments"`
	Summary                 string                    `json:"summary,omitempty"`
	Error                   string                    `json:"error,omitempty"`
}

type PropertyTaxQueueResponse struct {
	Success bool                     `json:"success"`
	Users   []*PropertyTaxQueueEntry `json:"users"`
	Counts  QueueCounts              `json:"counts"`
	Error   string                   `json:"error,omitempty"`
}
