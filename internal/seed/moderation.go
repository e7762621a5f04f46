// Package seed loads sample moderation data for exercising the review
// dashboards locally.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/store"
	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/utils"
	"github.com/RandyVollrath/ticketlesschicago-sub011/pkg/types"
)

func SeedPermitDocuments(ctx context.Context, repo *store.PermitDocumentRepository) error {
	docs := []*types.PermitDocument{
		{
			UserID:              "c2f1a6de-8a14-4f39-9d7b-1a2b3c4d5e6f",
			IDDocumentKey:       "permit-zone/c2f1a6de/id-front.jpg",
			IDDocumentFilename:  "id-front.jpg",
			ProofOfResidencyKey: "permit-zone/c2f1a6de/comed-bill.pdf",
			ProofFilename:       "comed-bill.pdf",
			Address:             "123 Main St, Chicago, IL 60614",
			Email:               utils.StringPtr("maria@example.com"),
			Phone:               utils.StringPtr("+13125550142"),
			FullName:            utils.StringPtr("Maria Gonzalez"),
		},
		{
			UserID:              "7d9e0f21-3b44-4c55-8e66-9f0a1b2c3d4e",
			IDDocumentKey:       "permit-zone/7d9e0f21/license.png",
			IDDocumentFilename:  "license.png",
			ProofOfResidencyKey: "permit-zone/7d9e0f21/lease.pdf",
			ProofFilename:       "lease.pdf",
			Address:             "4501 N Clark St, Chicago, IL 60640",
			Email:               utils.StringPtr("devon@example.com"),
			FullName:            utils.StringPtr("Devon Carter"),
		},
		{
			// Customer-code short-circuit: no files to review.
			UserID:             "5a6b7c8d-9e0f-4a1b-b2c3-d4e5f6a7b8c9",
			IDDocumentFilename: types.CustomerCodeProvidedFilename,
			Address:            "2200 W Armitage Ave, Chicago, IL 60647",
			Email:              utils.StringPtr("lin@example.com"),
			FullName:           utils.StringPtr("Lin Zhao"),
		},
	}

	for _, doc := range docs {
		if err := repo.CreateDocument(ctx, doc); err != nil {
			return fmt.Errorf("seed permit document for %s: %w", doc.UserID, err)
		}
	}

	return nil
}

func SeedResidencyProofs(ctx context.Context, repo *store.ResidencyProofRepository) error {
	proofs := []*types.ResidencyProofDocument{
		{
			UserID:         "c2f1a6de-8a14-4f39-9d7b-1a2b3c4d5e6f",
			FileKey:        "residency/c2f1a6de/mortgage-statement.pdf",
			Filename:       "mortgage-statement.pdf",
			DocumentSource: types.SourceEmailAttachment,
			Email:          utils.StringPtr("maria@example.com"),
			Address:        utils.StringPtr("123 Main St, Chicago, IL 60614"),
		},
		{
			UserID:         "7d9e0f21-3b44-4c55-8e66-9f0a1b2c3d4e",
			FileKey:        "residency/7d9e0f21/forwarded-bill.html",
			Filename:       "forwarded-bill.html",
			DocumentSource: types.SourceEmailHTML,
			Email:          utils.StringPtr("devon@example.com"),
			Address:        utils.StringPtr("4501 N Clark St, Chicago, IL 60640"),
		},
	}

	for _, proof := range proofs {
		if err := repo.CreateDocument(ctx, proof); err != nil {
			return fmt.Errorf("seed residency proof for %s: %w", proof.UserID, err)
		}
	}

	return nil
}

func SeedTaxQueue(ctx context.Context, repo *store.PropertyTaxQueueRepository) error {
	lastYear := time.Now().AddDate(-1, 0, 0)

	entries := []*types.PropertyTaxQueueEntry{
		{
			UserID:                 "90b1c2d3-e4f5-4a6b-8c7d-0e1f2a3b4c5d",
			Email:                  utils.StringPtr("angela@example.com"),
			FullName:               utils.StringPtr("Angela Brooks"),
			Address:                "1812 S Halsted St, Chicago, IL 60608",
			ResidencyProofVerified: true,
			LastFetchedAt:          utils.TimePtr(lastYear),
			NeedsRefresh:           true,
		},
		{
			UserID:       "1f2e3d4c-5b6a-4978-8695-a4b3c2d1e0f9",
			Email:        utils.StringPtr("marcus@example.com"),
			FullName:     utils.StringPtr("Marcus Webb"),
			Address:      "6034 N Sheridan Rd, Chicago, IL 60660",
			NeedsRefresh: false,
			FetchFailed:  true,
			Notes:        utils.StringPtr("County site rejected the PIN lookup"),
		},
		{
			UserID:   "ab12cd34-ef56-4a78-9b01-c2d3e4f5a6b7",
			Email:    utils.StringPtr("sofia@example.com"),
			FullName: utils.StringPtr("Sofia Reyes"),
			Address:  "3318 W Fullerton Ave, Chicago, IL 60647",
		},
	}

	for _, entry := range entries {
		if err := repo.CreateEntry(ctx, entry); err != nil {
			return fmt.Errorf("seed tax queue entry for %s: %w", entry.UserID, err)
		}
	}

	return nil
}
