package server

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/utils"
	"github.com/RandyVollrath/ticketlesschicago-sub011/pkg/types"
)

func (s *Service) handleTaxQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := types.ParseQueueFilter(r.URL.Query().Get("filter"))

	entries, err := s.queueRepo.EntriesByFilter(ctx, filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to list property tax queue")
		s.respondError(w, http.StatusInternalServerError, "Failed to load property tax queue")
		return
	}

	counts, err := s.queueRepo.Counts(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to count property tax queue")
		s.respondError(w, http.StatusInternalServerError, "Failed to load queue counts")
		return
	}

	s.respondJSON(w, http.StatusOK, types.PropertyTaxQueueResponse{
		Success: true,
		Users:   entries,
		Counts:  counts,
	})
}

// Accepted upload types, keyed by lowercase filename extension.
var taxBillContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type uploadFields struct {
	UserID string `form:"userId"`
	Notes  string `form:"notes"`
}

// handleUploadPropertyTax stores a bill the admin found on the county
// site and marks the queue entry fetched: timestamp set, both flags
// cleared.
func (s *Service) handleUploadPropertyTax(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(s.config.MaxUploadMB << 20); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	var fields uploadFields
	if err := decoder.Decode(&fields, r.MultipartForm.Value); err != nil {
		s.logger.WithError(err).Error("failed to decode upload form fields")
		s.respondError(w, http.StatusBadRequest, "Invalid form fields")
		return
	}

	if strings.TrimSpace(fields.UserID) == "" {
		s.respondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "A document file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := taxBillContentTypes[ext]
	if !ok {
		s.recordUpload("rejected")
		s.respondError(w, http.StatusBadRequest, "Only PDF, JPEG, and PNG files are accepted")
		return
	}

	entry, err := s.queueRepo.Entry(ctx, fields.UserID)
	if err != nil {
		if errors.Is(err, types.ErrQueueEntryNotFound) {
			s.respondError(w, http.StatusNotFound, "No property tax queue entry for that user")
			return
		}
		s.logger.WithError(err).WithField("user_id", fields.UserID).Error("failed to fetch queue entry for upload")
		s.respondError(w, http.StatusInternalServerError, "Failed to load queue entry")
		return
	}

	key := fmt.Sprintf("property-tax/%s/%s%s", entry.UserID, utils.NanoID(), ext)
	if _, err := s.storage.Upload(ctx, key, file, contentType); err != nil {
		s.logger.WithError(err).WithField("user_id", entry.UserID).Error("failed to upload tax bill")
		s.recordUpload("error")
		s.respondError(w, http.StatusBadGateway, "Failed to store the uploaded document")
		return
	}

	var notes *string
	if trimmed := strings.TrimSpace(fields.Notes); trimmed != "" {
		notes = &trimmed
	}

	if err := s.queueRepo.RecordFetched(ctx, entry.UserID, notes, time.Now()); err != nil {
		s.logger.WithError(err).WithField("user_id", entry.UserID).Error("failed to record fetched bill")
		s.respondError(w, http.StatusInternalServerError, "Stored the file but failed to update the queue entry")
		return
	}

	s.recordUpload("success")

	s.respondJSON(w, http.StatusOK, types.Response{
		Success: true,
		Message: fmt.Sprintf("Uploaded %s for %s", header.Filename, utils.PtrString(entry.Email)),
	})
}

func (s *Service) handleTaxStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.StatusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.UserID) == "" {
		s.respondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	var err error
	switch req.Action {
	case types.ActionMarkFailed:
		err = s.queueRepo.SetFetchFailed(ctx, req.UserID, true, req.Notes)
	case types.ActionClearFailed:
		err = s.queueRepo.SetFetchFailed(ctx, req.UserID, false, req.Notes)
	case types.ActionMarkNeedsRefresh:
		err = s.queueRepo.SetNeedsRefresh(ctx, req.UserID, true, req.Notes)
	default:
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Unknown action %q", req.Action))
		return
	}

	if err != nil {
		if errors.Is(err, types.ErrQueueEntryNotFound) {
			s.respondError(w, http.StatusNotFound, "No property tax queue entry for that user")
			return
		}
		s.logger.WithError(err).WithField("user_id", req.UserID).Error("failed to update queue status")
		s.respondError(w, http.StatusInternalServerError, "Failed to update queue status")
		return
	}

	s.respondJSON(w, http.StatusOK, types.Response{Success: true})
}

func (s *Service) recordUpload(result string) {
	if s.metrics != nil {
		s.metrics.RecordUpload(result)
	}
}
