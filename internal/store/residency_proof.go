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

const residencyProofTableName = "ticketless.residency_proof_documents"

var residencyProofColumns = utils.StructTagValues(types.ResidencyProofDocument{})

type ResidencyProofRepository struct {
	pool *pgxpool.Pool
}

func NewResidencyProofRepository(pool *pgxpool.Pool) *ResidencyProofRepository {
	return &ResidencyProofRepository{pool: pool}
}

// DocumentsByStatus maps the tri-state permit filter onto the boolean
// verification flag: pending means unverified, approved means verified,
// rejected has no boolean analogue and returns nothing. Verified rows are
// never re-presented under the pending filter.
func (r *ResidencyProofRepository) DocumentsByStatus(ctx context.Context, filter types.StatusFilter) ([]*types.ResidencyProofDocument, error) {
	if filter == types.FilterRejected {
		return []*types.ResidencyProofDocument{}, nil
	}

	builder := psql().
		Select(residencyProofColumns...).
		From(residencyProofTableName).
		OrderBy("created_at asc")

	switch filter {
	case types.FilterPending:
		builder = builder.Where(sq.Eq{"verified": false})
	case types.FilterApproved:
		builder = builder.Where(sq.Eq{"verified": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate residency proof query: %w", err)
	}

	docs := make([]*types.ResidencyProofDocument, 0)
	err = pgxscan.Select(ctx, r.pool, &docs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch residency proof documents: %w", err)
	}

	return docs, nil
}

func (r *ResidencyProofRepository) SetVerified(ctx context.Context, documentID int64, verified bool) error {
	query, args, err := psql().
		Update(residencyProofTableName).
		Set("verified", verified).
		Where(sq.Eq{"id": documentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate residency proof update query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update residency proof: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrDocumentNotFound
	}

	return nil
}

func (r *ResidencyProofRepository) CreateDocument(ctx context.Context, doc *types.ResidencyProofDocument) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	if doc.DocumentSource == "" {
		doc.DocumentSource = types.SourceManualUpload
	}

	query, args, err := psql().
		Insert(residencyProofTableName).
		Columns("user_id", "file_key", "filename", "document_source", "verified", "email", "address", "created_at").
		Values(doc.UserID, doc.FileKey, doc.Filename, string(doc.DocumentSource), doc.Verified, doc.Email, doc.Address, doc.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert residency proof query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&doc.ID)
	return utils.ErrorWrapOrNil(err, "failed to create residency proof document")
}
