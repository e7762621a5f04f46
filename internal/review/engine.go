// Package review validates admin approve/reject decisions against the
// permit document lifecycle and composes the persisted outcome.
package review

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RandyVollrath/ticketlesschicago-sub011/pkg/types"
)

var (
	ErrUnknownAction       = errors.New("action must be approve or reject")
	ErrMissingCustomerCode = errors.New("a customer code is required to approve")
	ErrNoRejectionReasons  = errors.New("select at least one rejection reason")
)

// Outcome is the mutation a validated decision persists: the terminal
// status plus exactly one of rejection reason or customer code.
type Outcome struct {
	Status          types.VerificationStatus
	RejectionReason *string
	CustomerCode    *string
}

// Decide validates a reviewer's request against a document and returns
// the outcome to persist. Decisions only apply to pending documents;
// approve requires a non-empty customer code, reject at least one known
// catalog reason. These gates also exist client-side, but the server is
// the one that counts.
func Decide(doc *types.PermitDocument, req *types.ReviewRequest) (Outcome, error) {
	if doc.VerificationStatus != types.VerificationPending {
		return Outcome{}, types.ErrDocumentNotPending
	}

	switch req.Action {
	case types.ReviewApprove:
		code := strings.TrimSpace(req.CustomerCode)
		if code == "" {
			return Outcome{}, ErrMissingCustomerCode
		}
		return Outcome{
			Status:       types.VerificationApproved,
			CustomerCode: &code,
		}, nil

	case types.ReviewReject:
		reason, err := ComposeRejectionReason(req.RejectionReasons, req.CustomReason)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{
			Status:          types.VerificationRejected,
			RejectionReason: &reason,
		}, nil

	default:
		return Outcome{}, ErrUnknownAction
	}
}

// ComposeRejectionReason joins the catalog text for each selected key,
// then appends the free-text addendum if present. Unknown keys are an
// error rather than silently dropped so a stale dashboard cannot reject
// with an empty reason.
func ComposeRejectionReason(keys []string, custom string) (string, error) {
	if len(keys) == 0 {
		return "", ErrNoRejectionReasons
	}

	parts := make([]string, 0, len(keys)+1)
	for _, raw := range keys {
		text, ok := ReasonText(ReasonKey(raw))
		if !ok {
			return "", fmt.Errorf("unknown rejection reason %q", raw)
		}
		parts = append(parts, text)
	}

	if addendum := strings.TrimSpace(custom); addendum != "" {
		parts = append(parts, addendum)
	}

	return strings.Join(parts, "; "), nil
}
