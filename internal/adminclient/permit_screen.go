package adminclient

import (
	"context"
	"strings"

	"github.com/RandyVollrath/ticketlesschicago-sub011/pkg/types"
)

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseLoading    Phase = "loading"
	PhaseReviewOpen Phase = "review_open"
)

// ReviewDraft is the reviewer's transient input for one open panel.
type ReviewDraft struct {
	SelectedReasons []string
	CustomReason    string
	CustomerCode    string
}

// PermitReviewScreen is the permit-document review dashboard as an
// explicit state machine. The structure enforces what the old dashboard
// kept by convention: at most one review panel open, no mutating call
// while another is in flight, and a full list refresh after every
// successful mutation.
type PermitReviewScreen struct {
	client *Client

	phase  Phase
	filter types.StatusFilter

	docs   []*types.PermitDocument
	proofs []*types.ResidencyProofDocument

	openDocID int64
	draft     ReviewDraft

	stale      bool
	message    string
	lastResult Result
}

func NewPermitReviewScreen(client *Client) *PermitReviewScreen {
	return &PermitReviewScreen{
		client: client,
		phase:  PhaseIdle,
		filter: types.FilterPending,
	}
}

func (s *PermitReviewScreen) Phase() Phase                              { return s.phase }
func (s *PermitReviewScreen) Filter() types.StatusFilter                { return s.filter }
func (s *PermitReviewScreen) Documents() []*types.PermitDocument        { return s.docs }
func (s *PermitReviewScreen) Proofs() []*types.ResidencyProofDocument   { return s.proofs }
func (s *PermitReviewScreen) OpenDocumentID() int64                     { return s.openDocID }
func (s *PermitReviewScreen) Draft() ReviewDraft                        { return s.draft }
func (s *PermitReviewScreen) Stale() bool                               { return s.stale }
func (s *PermitReviewScreen) Message() string                           { return s.message }
func (s *PermitReviewScreen) LastResult() Result                        { return s.lastResult }

// SetFilter switches the status filter and performs exactly one fetch.
// Ignored while a request is in flight.
func (s *PermitReviewScreen) SetFilter(ctx context.Context, filter types.StatusFilter) {
	if s.phase == PhaseLoading {
		return
	}

	s.filter = filter
	s.fetch(ctx)
}

// Refresh re-fetches the list with the active filter.
func (s *PermitReviewScreen) Refresh(ctx context.Context) {
	if s.phase == PhaseLoading {
		return
	}

	s.fetch(ctx)
}

// fetch replaces the displayed collections wholesale on success. On
// failure the previous rows stay, flagged stale; there is no partial
// merge.
func (s *PermitReviewScreen) fetch(ctx context.Context) {
	prior := s.phase
	s.phase = PhaseLoading

	resp, err := s.client.ListPermitDocuments(ctx, s.filter)
	switch {
	case err != nil:
		s.stale = true
		s.message = fetchFailure(err).Err
	case !resp.Success:
		s.stale = true
		s.message = serverFailure(resp.Error).Err
	default:
		s.docs = resp.Documents
		s.proofs = resp.ResidencyProofDocuments
		s.stale = false
		s.message = resp.Summary
	}

	if prior == PhaseReviewOpen && s.openDocID != 0 {
		s.phase = PhaseReviewOpen
		return
	}
	s.phase = PhaseIdle
}

// OpenReview opens the inline review panel for a pending document.
// Opening a second panel discards the first panel's unsaved draft.
func (s *PermitReviewScreen) OpenReview(documentID int64) bool {
	if s.phase == PhaseLoading {
		return false
	}

	doc := s.document(documentID)
	if doc == nil || doc.VerificationStatus != types.VerificationPending {
		return false
	}

	s.openDocID = documentID
	s.draft = ReviewDraft{}
	s.phase = PhaseReviewOpen
	return true
}

func (s *PermitReviewScreen) CloseReview() {
	if s.phase != PhaseReviewOpen {
		return
	}

	s.openDocID = 0
	s.draft = ReviewDraft{}
	s.phase = PhaseIdle
}

// ToggleReason adds or removes a rejection reason on the open draft.
func (s *PermitReviewScreen) ToggleReason(key string) {
	if s.phase != PhaseReviewOpen {
		return
	}

	for i, existing := range s.draft.SelectedReasons {
		if existing == key {
			s.draft.SelectedReasons = append(s.draft.SelectedReasons[:i], s.draft.SelectedReasons[i+1:]...)
			return
		}
	}

	s.draft.SelectedReasons = append(s.draft.SelectedReasons, key)
}

func (s *PermitReviewScreen) SetCustomReason(text string) {
	if s.phase == PhaseReviewOpen {
		s.draft.CustomReason = text
	}
}

func (s *PermitReviewScreen) SetCustomerCode(code string) {
	if s.phase == PhaseReviewOpen {
		s.draft.CustomerCode = code
	}
}

// CanApprove gates the approve control: a non-empty customer code is a
// hard precondition, not a warning.
func (s *PermitReviewScreen) CanApprove() bool {
	return s.phase == PhaseReviewOpen && strings.TrimSpace(s.draft.CustomerCode) != ""
}

// CanReject gates the reject control on at least one selected reason.
func (s *PermitReviewScreen) CanReject() bool {
	return s.phase == PhaseReviewOpen && len(s.draft.SelectedReasons) > 0
}

// Submit sends the decision for the open document. The preconditions
// are re-checked here so no request is ever issued without them. On
// success the draft clears, the panel closes, and the list is refreshed
// with the active filter; on failure the panel stays open with the
// draft intact.
func (s *PermitReviewScreen) Submit(ctx context.Context, action types.ReviewAction) Result {
	if s.phase == PhaseLoading {
		return blocked("Another request is still in progress")
	}
	if s.phase != PhaseReviewOpen {
		return blocked("No document is open for review")
	}

	switch action {
	case types.ReviewApprove:
		if !s.CanApprove() {
			s.lastResult = blocked("A customer code is required to approve")
			return s.lastResult
		}
	case types.ReviewReject:
		if !s.CanReject() {
			s.lastResult = blocked("Select at least one rejection reason")
			return s.lastResult
		}
	default:
		s.lastResult = blocked("Unknown review action")
		return s.lastResult
	}

	reasons := s.draft.SelectedReasons
	if reasons == nil {
		reasons = []string{}
	}

	req := types.ReviewRequest{
		DocumentID:       s.openDocID,
		Action:           action,
		RejectionReasons: reasons,
		CustomReason:     s.draft.CustomReason,
		CustomerCode:     strings.TrimSpace(s.draft.CustomerCode),
	}

	s.phase = PhaseLoading
	result := s.client.SubmitReview(ctx, req)
	s.lastResult = result

	if !result.OK {
		s.phase = PhaseReviewOpen
		return result
	}

	s.openDocID = 0
	s.draft = ReviewDraft{}
	s.phase = PhaseIdle
	s.fetch(ctx)

	return result
}

func (s *PermitReviewScreen) document(documentID int64) *types.PermitDocument {
	for _, doc := range s.docs {
		if doc.ID == documentID {
			return doc
		}
	}
	return nil
}
