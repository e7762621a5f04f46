package types

import "errors"

var (
	ErrDocumentNotFound   = errors.New("permit document not found")
	ErrDocumentNotPending = errors.New("permit document is not pending review")
	ErrQueueEntryNotFound = errors.New("property tax queue entry not found")
)
