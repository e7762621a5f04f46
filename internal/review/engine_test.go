package review

import (
	"testing"

	"github.com/RandyVollrath/ticketlesschicago-sub011/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingDoc() *types.PermitDocument {
	return &types.PermitDocument{
		ID:                 42,
		Address:            "123 Main St",
		VerificationStatus: types.VerificationPending,
	}
}

func TestReasonCatalogHasElevenEntries(t *testing.T) {
	keys := Keys()
	require.Len(t, keys, 11)

	seen := make(map[ReasonKey]struct{})
	for _, key := range keys {
		text, ok := ReasonText(key)
		require.True(t, ok, "key %s has no text", key)
		require.NotEmpty(t, text)
		seen[key] = struct{}{}
	}
	require.Len(t, seen, 11, "catalog keys must be unique")
}

func TestDecideApproveRequiresCustomerCode(t *testing.T) {
	_, err := Decide(pendingDoc(), &types.ReviewRequest{
		DocumentID: 42,
		Action:     types.ReviewApprove,
	})
	require.ErrorIs(t, err, ErrMissingCustomerCode)

	_, err = Decide(pendingDoc(), &types.ReviewRequest{
		DocumentID:   42,
		Action:       types.ReviewApprove,
		CustomerCode: "   ",
	})
	require.ErrorIs(t, err, ErrMissingCustomerCode)
}

func TestDecideApprove(t *testing.T) {
	outcome, err := Decide(pendingDoc(), &types.ReviewRequest{
		DocumentID:   42,
		Action:       types.ReviewApprove,
		CustomerCode: " CHI-00451 ",
	})
	require.NoError(t, err)

	assert.Equal(t, types.VerificationApproved, outcome.Status)
	require.NotNil(t, outcome.CustomerCode)
	assert.Equal(t, "CHI-00451", *outcome.CustomerCode)
	assert.Nil(t, outcome.RejectionReason)
}

func TestDecideRejectRequiresReasons(t *testing.T) {
	_, err := Decide(pendingDoc(), &types.ReviewRequest{
		DocumentID: 42,
		Action:     types.ReviewReject,
	})
	require.ErrorIs(t, err, ErrNoRejectionReasons)
}

func TestDecideRejectComposesReasons(t *testing.T) {
	outcome, err := Decide(pendingDoc(), &types.ReviewRequest{
		DocumentID:       42,
		Action:           types.ReviewReject,
		RejectionReasons: []string{"ID_EXPIRED", "PROOF_OLD"},
		CustomReason:     "License expired in 2023",
	})
	require.NoError(t, err)

	assert.Equal(t, types.VerificationRejected, outcome.Status)
	require.NotNil(t, outcome.RejectionReason)
	assert.Equal(t,
		"The ID document is expired; The proof of residency is more than 90 days old; License expired in 2023",
		*outcome.RejectionReason,
	)
	assert.Nil(t, outcome.CustomerCode)
}

func TestDecideRejectsUnknownReasonKey(t *testing.T) {
	_, err := Decide(pendingDoc(), &types.ReviewRequest{
		DocumentID:       42,
		Action:           types.ReviewReject,
		RejectionReasons: []string{"NOT_A_REASON"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_A_REASON")
}

func TestDecideNonPendingDocument(t *testing.T) {
	for _, status := range []types.VerificationStatus{types.VerificationApproved, types.VerificationRejected} {
		doc := pendingDoc()
		doc.VerificationStatus = status

		_, err := Decide(doc, &types.ReviewRequest{
			DocumentID:   42,
			Action:       types.ReviewApprove,
			CustomerCode: "CHI-1",
		})
		require.ErrorIs(t, err, types.ErrDocumentNotPending, "status %s", status)
	}
}

func TestDecideUnknownAction(t *testing.T) {
	_, err := Decide(pendingDoc(), &types.ReviewRequest{
		DocumentID: 42,
		Action:     "escalate",
	})
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestComposeRejectionReasonCustomTextIsAddendum(t *testing.T) {
	reason, err := ComposeRejectionReason([]string{"OTHER"}, "Submitted a parking ticket instead")
	require.NoError(t, err)
	assert.Equal(t, "Other (see details below); Submitted a parking ticket instead", reason)

	// Free text alone is never enough.
	_, err = ComposeRejectionReason(nil, "Submitted a parking ticket instead")
	require.ErrorIs(t, err, ErrNoRejectionReasons)
}
