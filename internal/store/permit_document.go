package store

import (
	"context"
	"fmt"
	"time"

	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/utils"
	"github.com/RandyVollrath/ticketlesschicago-sub011/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const permitDocumentTableName = "ticketless.permit_zone_documents"

var permitDocumentColumns = utils.StructTagValues(types.PermitDocument{})

type PermitDocumentRepository struct {
	pool *pgxpool.Pool
}

func NewPermitDocumentRepository(pool *pgxpool.Pool) *PermitDocumentRepository {
	return &PermitDocumentRepository{pool: pool}
}

func (r *PermitDocumentRepository) Document(ctx context.Context, documentID int64) (*types.PermitDocument, error) {
	query, args, err := psql().
		Select(permitDocumentColumns...).
		From(permitDocumentTableName).
		Where(sq.Eq{"id": documentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate permit document query: %w", err)
	}

	var doc types.PermitDocument
	err = pgxscan.Get(ctx, r.pool, &doc, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to fetch permit document: %w", err)
	}

	return &doc, nil
}

// DocumentsByStatus returns the review queue for a status filter, oldest
// first. FilterAll applies no status predicate.
func (r *PermitDocumentRepository) DocumentsByStatus(ctx context.Context, filter types.StatusFilter) ([]*types.PermitDocument, error) {
	builder := psql().
		Select(permitDocumentColumns...).
		From(permitDocumentTableName).
		OrderBy("created_at asc")

	if filter != types.FilterAll {
		builder = builder.Where(sq.Eq{"verification_status": string(filter)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate permit documents query: %w", err)
	}

	docs := make([]*types.PermitDocument, 0)
	err = pgxscan.Select(ctx, r.pool, &docs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permit documents: %w", err)
	}

	return docs, nil
}

// ApplyDecision moves a pending document to its terminal status. The
// verification_status predicate makes the transition single-shot: a row
// already decided (or raced by another admin) affects zero rows.
func (r *PermitDocumentRepository) ApplyDecision(ctx context.Context, documentID int64, status types.VerificationStatus, rejectionReason, customerCode *string) error {
	query, args, err := psql().
		Update(permitDocumentTableName).
		SetMap(map[string]any{
			"verification_status": string(status),
			"rejection_reason":    rejectionReason,
			"customer_code":       customerCode,
			"reviewed_at":         time.Now(),
		}).
		Where(sq.Eq{"id": documentID, "verification_status": string(types.VerificationPending)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate review decision query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to apply review decision: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrDocumentNotPending
	}

	return nil
}

// CreateDocument inserts a submission. The database assigns the ID.
func (r *PermitDocumentRepository) CreateDocument(ctx context.Context, doc *types.PermitDocument) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	if doc.VerificationStatus == "" {
		doc.VerificationStatus = types.VerificationPending
	}

	query, args, err := psql().
		Insert(permitDocumentTableName).
		Columns(
			"user_id",
			"id_document_key",
			"id_document_filename",
			"proof_of_residency_key",
			"proof_filename",
			"address",
			"verification_status",
			"email",
			"phone",
			"full_name",
			"created_at",
		).
		Values(
			doc.UserID,
			doc.IDDocumentKey,
			doc.IDDocumentFilename,
			doc.ProofOfResidencyKey,
			doc.ProofFilename,
			doc.Address,
			string(doc.VerificationStatus),
			doc.Email,
			doc.Phone,
			doc.FullName,
			doc.CreatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert permit document query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&doc.ID)
	return utils.ErrorWrapOrNil(err, "failed to create permit document")
}
