package types

import "time"

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// CustomerCodeProvidedFilename is the sentinel stored in place of an ID
// document filename when the user supplied a pre-existing city customer
// code instead of uploading files. Such rows have no viewable files.
const CustomerCodeProvidedFilename = "customer_code_provided"

// PermitDocument is an ID + proof-of-residency pair submitted to qualify
// for a residential parking permit. Contact fields are denormalized from
// the user profile for display in the review queue.
type PermitDocument struct {
	ID     int64  `db:"id" json:"id"`
	UserID string `db:"user_id" json:"userId"`

	IDDocumentKey       string `db:"id_document_key" json:"idDocumentKey"`
	IDDocumentFilename  string `db:"id_document_filename" json:"idDocumentFilename"`
	ProofOfResidencyKey string `db:"proof_of_residency_key" json:"proofOfResidencyKey"`
	ProofFilename       string `db:"proof_filename" json:"proofFilename"`

	IDDocumentURL       string `db:"-" json:"idDocumentUrl,omitempty"`
	ProofOfResidencyURL string `db:"-" json:"proofOfResidencyUrl,omitempty"`

	Address            string             `db:"address" json:"address"`
	VerificationStatus VerificationStatus `db:"verification_status" json:"verificationStatus"`
	RejectionReason    *string            `db:"rejection_reason" json:"rejectionReason,omitempty"`
	CustomerCode       *string            `db:"customer_code" json:"customerCode,omitempty"`

	Email    *string `db:"email" json:"email,omitempty"`
	Phone    *string `db:"phone" json:"phone,omitempty"`
	FullName *string `db:"full_name" json:"fullName,omitempty"`

	ReviewedAt *time.Time `db:"reviewed_at" json:"reviewedAt,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
}

// HasViewableFiles reports whether the row carries real uploads. The
// customer-code short-circuit path stores the sentinel filename and no
// meaningful file keys, so file links must be suppressed for it.
func (d *PermitDocument) HasViewableFiles() bool {
	return d.IDDocumentFilename != CustomerCodeProvidedFilename
}

type DocumentSource string

const (
	SourceEmailAttachment DocumentSource = "email_attachment"
	SourceEmailHTML       DocumentSource = "email_html"
	SourceManualUpload    DocumentSource = "manual_upload"
)

// Trusted reports whether the provenance implies the document arrived as
// a real attachment rather than inline HTML that needs a closer look.
func (s DocumentSource) Trusted() bool {
	return s == SourceEmailAttachment || s == SourceManualUpload
}

// ResidencyProofDocument is secondary evidence (lease, mortgage, tax
// bill) with a simple boolean verification flag. Once verified it is
// never presented for re-review.
type ResidencyProofDocument struct {
	ID             int64          `db:"id" json:"id"`
	UserID         string         `db:"user_id" json:"userId"`
	FileKey        string         `db:"file_key" json:"fileKey"`
	Filename       string         `db:"filename" json:"filename"`
	FileURL        string         `db:"-" json:"fileUrl,omitempty"`
	DocumentSource DocumentSource `db:"document_source" json:"documentSource"`
	Verified       bool           `db:"verified" json:"verified"`
	Email          *string        `db:"email" json:"email,omitempty"`
	Address        *string        `db:"address" json:"address,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
}

// StatusFilter narrows the permit document list. Anything unrecognized
// fails open to FilterAll so a typo never hides pending work.
type StatusFilter string

const (
	FilterPending  StatusFilter = "pending"
	FilterApproved StatusFilter = "approved"
	FilterRejected StatusFilter = "rejected"
	FilterAll      StatusFilter = "all"
)

func ParseStatusFilter(raw string) StatusFilter {
	switch StatusFilter(raw) {
	case FilterPending, FilterApproved, FilterRejected:
		return StatusFilter(raw)
	default:
		return FilterAll
	}
}
