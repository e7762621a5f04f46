package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseStatusFilterFailsOpen(t *testing.T) {
	assert.Equal(t, FilterPending, ParseStatusFilter("pending"))
	assert.Equal(t, FilterApproved, ParseStatusFilter("approved"))
	assert.Equal(t, FilterRejected, ParseStatusFilter("rejected"))

	// Anything else shows everything rather than hiding pending work.
	assert.Equal(t, FilterAll, ParseStatusFilter("all"))
	assert.Equal(t, FilterAll, ParseStatusFilter(""))
	assert.Equal(t, FilterAll, ParseStatusFilter("Pending"))
	assert.Equal(t, FilterAll, ParseStatusFilter("garbage"))
}

func TestParseQueueFilterFailsOpen(t *testing.T) {
	assert.Equal(t, QueueNeedsRefresh, ParseQueueFilter("needs_refresh"))
	assert.Equal(t, QueueFailed, ParseQueueFilter("failed"))
	assert.Equal(t, QueueNeverFetched, ParseQueueFilter("never_fetched"))
	assert.Equal(t, QueueAll, ParseQueueFilter("anything"))
}

func TestHasViewableFiles(t *testing.T) {
	doc := PermitDocument{IDDocumentFilename: "id.jpg"}
	assert.True(t, doc.HasViewableFiles())

	doc.IDDocumentFilename = CustomerCodeProvidedFilename
	assert.False(t, doc.HasViewableFiles())
}

func TestNeverFetchedIsDerived(t *testing.T) {
	entry := PropertyTaxQueueEntry{}
	assert.True(t, entry.NeverFetched())

	fetched := time.Now()
	entry.LastFetchedAt = &fetched
	assert.False(t, entry.NeverFetched())

	// The flags are independent of the derived state.
	entry.NeedsRefresh = true
	entry.FetchFailed = true
	assert.False(t, entry.NeverFetched())
}

func TestDocumentSourceTrusted(t *testing.T) {
	assert.True(t, SourceEmailAttachment.Trusted())
	assert.True(t, SourceManualUpload.Trusted())
	assert.False(t, SourceEmailHTML.Trusted())
}
