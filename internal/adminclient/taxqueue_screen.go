package adminclient

import (
	"context"
	"io"
	"strings"

	"github.com/RandyVollrath/ticketlesschicago-sub011/pkg/types"
)

// TaxQueueScreen drives the property-tax fetch queue dashboard: filter
// tabs, per-row status-flag actions, and the upload-on-behalf flow.
type TaxQueueScreen struct {
	client *Client

	phase  Phase
	filter types.QueueFilter

	entries []*types.PropertyTaxQueueEntry
	counts  types.QueueCounts

	uploadUserID string
	uploadNotes  string

	stale      bool
	message    string
	lastResult Result
}

func NewTaxQueueScreen(client *Client) *TaxQueueScreen {
	return &TaxQueueScreen{
		client: client,
		phase:  PhaseIdle,
		filter: types.QueueNeedsRefresh,
	}
}

func (s *TaxQueueScreen) Phase() Phase                             { return s.phase }
func (s *TaxQueueScreen) Filter() types.QueueFilter                { return s.filter }
func (s *TaxQueueScreen) Entries() []*types.PropertyTaxQueueEntry  { return s.entries }
func (s *TaxQueueScreen) Counts() types.QueueCounts                { return s.counts }
func (s *TaxQueueScreen) UploadUserID() string                     { return s.uploadUserID }
func (s *TaxQueueScreen) UploadNotes() string                      { return s.uploadNotes }
func (s *TaxQueueScreen) Stale() bool                              { return s.stale }
func (s *TaxQueueScreen) Message() string                          { return s.message }
func (s *TaxQueueScreen) LastResult() Result                       { return s.lastResult }

func (s *TaxQueueScreen) SetFilter(ctx context.Context, filter types.QueueFilter) {
	if s.phase == PhaseLoading {
		return
	}

	s.filter = filter
	s.fetch(ctx)
}

func (s *TaxQueueScreen) Refresh(ctx context.Context) {
	if s.phase == PhaseLoading {
		return
	}

	s.fetch(ctx)
}

func (s *TaxQueueScreen) fetch(ctx context.Context) {
	s.phase = PhaseLoading

	resp, err := s.client.ListTaxQueue(ctx, s.filter)
	switch {
	case err != nil:
		s.stale = true
		s.message = fetchFailure(err).Err
	case !resp.Success:
		s.stale = true
		s.message = serverFailure(resp.Error).Err
	default:
		s.entries = resp.Users
		s.counts = resp.Counts
		s.stale = false
		s.message = ""
	}

	s.phase = PhaseIdle
}

// StatusActions lists the flag actions valid for a row: a failed entry
// offers only clearing the flag, an unfailed one only setting it, and
// marking needs-refresh is offered until the flag is already up.
func (s *TaxQueueScreen) StatusActions(entry *types.PropertyTaxQueueEntry) []types.QueueStatusAction {
	actions := make([]types.QueueStatusAction, 0, 2)

	if entry.FetchFailed {
		actions = append(actions, types.ActionClearFailed)
	} else {
		actions = append(actions, types.ActionMarkFailed)
	}

	if !entry.NeedsRefresh {
		actions = append(actions, types.ActionMarkNeedsRefresh)
	}

	return actions
}

// ApplyStatus posts a flag change for a row, then refreshes. Actions
// not currently offered for the row are blocked before any request.
func (s *TaxQueueScreen) ApplyStatus(ctx context.Context, userID string, action types.QueueStatusAction) Result {
	if s.phase == PhaseLoading {
		return blocked("Another request is still in progress")
	}

	entry := s.entry(userID)
	if entry == nil {
		s.lastResult = blocked("Unknown user")
		return s.lastResult
	}

	offered := false
	for _, candidate := range s.StatusActions(entry) {
		if candidate == action {
			offered = true
			break
		}
	}
	if !offered {
		s.lastResult = blocked("That action is not available for this entry")
		return s.lastResult
	}

	s.phase = PhaseLoading
	result := s.client.UpdateTaxStatus(ctx, types.StatusUpdateRequest{UserID: userID, Action: action})
	s.lastResult = result
	s.phase = PhaseIdle

	if result.OK {
		s.fetch(ctx)
	}

	return result
}

// BeginUpload targets a row for the upload-on-behalf flow. Targeting a
// second row drops the first target's notes.
func (s *TaxQueueScreen) BeginUpload(userID string) bool {
	if s.phase == PhaseLoading || s.entry(userID) == nil {
		return false
	}

	s.uploadUserID = userID
	s.uploadNotes = ""
	return true
}

func (s *TaxQueueScreen) SetUploadNotes(notes string) {
	if s.uploadUserID != "" {
		s.uploadNotes = notes
	}
}

func (s *TaxQueueScreen) CancelUpload() {
	s.uploadUserID = ""
	s.uploadNotes = ""
}

// FileChosen runs once the admin picks a file; the flow never reaches
// the upload call without one. Success clears the upload state and
// refreshes; failure keeps the target so the admin can retry without
// re-selecting the user.
func (s *TaxQueueScreen) FileChosen(ctx context.Context, filename string, file io.Reader) Result {
	if s.phase == PhaseLoading {
		return blocked("Another request is still in progress")
	}
	if strings.TrimSpace(s.uploadUserID) == "" {
		return blocked("No upload in progress")
	}

	s.phase = PhaseLoading
	result := s.client.UploadTaxBill(ctx, s.uploadUserID, s.uploadNotes, filename, file)
	s.lastResult = result
	s.phase = PhaseIdle

	if result.OK {
		s.uploadUserID = ""
		s.uploadNotes = ""
		s.fetch(ctx)
	}

	return result
}

func (s *TaxQueueScreen) entry(userID string) *types.PropertyTaxQueueEntry {
	for _, entry := range s.entries {
		if entry.UserID == userID {
			return entry
		}
	}
	return nil
}
