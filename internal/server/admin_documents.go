package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/review"
	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/utils"
	"github.com/RandyVollrath/ticketlesschicago-sub011/pkg/types"
)

// handleListPermitDocuments serves the review queue. An unrecognized
// status value falls open to "all" rather than erroring, so the
// dashboard never hides pending work behind a typo.
func (s *Service) handleListPermitDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := types.ParseStatusFilter(r.URL.Query().Get("status"))

	docs, err := s.docsRepo.DocumentsByStatus(ctx, filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to list permit documents")
		s.respondError(w, http.StatusInternalServerError, "Failed to load permit documents")
		return
	}

	proofs, err := s.proofsRepo.DocumentsByStatus(ctx, filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to list residency proof documents")
		s.respondError(w, http.StatusInternalServerError, "Failed to load residency proof documents")
		return
	}

	for _, doc := range docs {
		// Short-circuit rows carry the sentinel filename and no real
		// files; leaving the URLs empty suppresses the view links.
		if !doc.HasViewableFiles() {
			continue
		}
		doc.IDDocumentURL = s.storage.PublicURL(doc.IDDocumentKey)
		doc.ProofOfResidencyURL = s.storage.PublicURL(doc.ProofOfResidencyKey)
	}

	for _, proof := range proofs {
		proof.FileURL = s.storage.PublicURL(proof.FileKey)
	}

	s.respondJSON(w, http.StatusOK, types.PermitDocumentListResponse{
		Success:                 true,
		Documents:               docs,
		ResidencyProofDocuments: proofs,
		Summary:                 fmt.Sprintf("%d permit documents and %d residency proofs (%s)", len(docs), len(proofs), filter),
	})
}

func (s *Service) handleReviewPermitDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := s.docsRepo.Document(ctx, req.DocumentID)
	if err != nil {
		if errors.Is(err, types.ErrDocumentNotFound) {
			s.respondError(w, http.StatusNotFound, "Document not found")
			return
		}
		s.logger.WithError(err).WithField("document_id", req.DocumentID).Error("failed to fetch document for review")
		s.respondError(w, http.StatusInternalServerError, "Failed to load document")
		return
	}

	outcome, err := review.Decide(doc, &req)
	if err != nil {
		if errors.Is(err, types.ErrDocumentNotPending) {
			s.respondError(w, http.StatusConflict, "Document has already been reviewed")
			return
		}
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = s.docsRepo.ApplyDecision(ctx, doc.ID, outcome.Status, outcome.RejectionReason, outcome.CustomerCode)
	if err != nil {
		if errors.Is(err, types.ErrDocumentNotPending) {
			// Lost a race with another admin between fetch and update.
			s.respondError(w, http.StatusConflict, "Document has already been reviewed")
			return
		}
		s.logger.WithError(err).WithField("document_id", doc.ID).Error("failed to apply review decision")
		s.respondError(w, http.StatusInternalServerError, "Failed to save review decision")
		return
	}

	if s.metrics != nil {
		s.metrics.RecordReviewDecision(string(req.Action))
	}

	s.notifyReviewOutcome(r, doc, outcome)

	message := "Document approved"
	if outcome.Status == types.VerificationRejected {
		message = "Document rejected"
	}

	s.respondJSON(w, http.StatusOK, types.Response{Success: true, Message: message})
}

// notifyReviewOutcome emails the affected user. The decision is already
// persisted, so a delivery failure is logged and counted but never
// propagated to the reviewer.
func (s *Service) notifyReviewOutcome(r *http.Request, doc *types.PermitDocument, outcome review.Outcome) {
	if s.mailer == nil || doc.Email == nil || *doc.Email == "" {
		return
	}

	ctx := r.Context()
	name := utils.PtrString(doc.FullName)

	var err error
	switch outcome.Status {
	case types.VerificationApproved:
		err = s.mailer.SendApproval(ctx, *doc.Email, name, utils.PtrString(outcome.CustomerCode))
	case types.VerificationRejected:
		err = s.mailer.SendRejection(ctx, *doc.Email, name, utils.PtrString(outcome.RejectionReason))
	}

	if err != nil {
		s.logger.WithError(err).WithField("document_id", doc.ID).Error("failed to send review outcome email")
		if s.metrics != nil {
			s.metrics.RecordNotifyFailure()
		}
	}
}
