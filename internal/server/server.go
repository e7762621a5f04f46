package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/metrics"
	"github.com/RandyVollrath/ticketlesschicago-sub011/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type permitDocumentStore interface {
	Document(ctx context.Context, documentID int64) (*types.PermitDocument, error)
	DocumentsByStatus(ctx context.Context, filter types.StatusFilter) ([]*types.PermitDocument, error)
	ApplyDecision(ctx context.Context, documentID int64, status types.VerificationStatus, rejectionReason, customerCode *string) error
}

type residencyProofStore interface {
	DocumentsByStatus(ctx context.Context, filter types.StatusFilter) ([]*types.ResidencyProofDocument, error)
}

type taxQueueStore interface {
	Entry(ctx context.Context, userID string) (*types.PropertyTaxQueueEntry, error)
	EntriesByFilter(ctx context.Context, filter types.QueueFilter) ([]*types.PropertyTaxQueueEntry, error)
	Counts(ctx context.Context) (types.QueueCounts, error)
	RecordFetched(ctx context.Context, userID string, notes *string, fetchedAt time.Time) error
	SetFetchFailed(ctx context.Context, userID string, failed bool, notes *string) error
	SetNeedsRefresh(ctx context.Context, userID string, needsRefresh bool, notes *string) error
}

type fileStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	PublicURL(key string) string
}

type outcomeMailer interface {
	SendApproval(ctx context.Context, toEmail, name, customerCode string) error
	SendRejection(ctx context.Context, toEmail, name, reason string) error
}

type Service struct {
	logger  *logrus.Logger
	config  *types.Config
	metrics *metrics.ServerMetrics

	docsRepo   permitDocumentStore
	proofsRepo residencyProofStore
	queueRepo  taxQueueStore
	storage    fileStorage
	mailer     outcomeMailer

	cookie      *securecookie.SecureCookie
	jwksCache   *jwk.Cache
	jwksURL     string
	adminEmails map[string]struct{}

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	serverMetrics *metrics.ServerMetrics,
	docsRepo permitDocumentStore,
	proofsRepo residencyProofStore,
	queueRepo taxQueueStore,
	fileStore fileStorage,
	mailer outcomeMailer,
	jwksCache *jwk.Cache,
	jwksURL string,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	adminEmails := make(map[string]struct{})
	for _, email := range strings.Split(config.AdminEmails, ",") {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			adminEmails[email] = struct{}{}
		}
	}

	s := &Service{
		logger:  logger,
		config:  config,
		metrics: serverMetrics,

		docsRepo:   docsRepo,
		proofsRepo: proofsRepo,
		queueRepo:  queueRepo,
		storage:    fileStore,
		mailer:     mailer,

		cookie:      securecookie.New(hashKey, blockKey),
		jwksCache:   jwksCache,
		jwksURL:     jwksURL,
		adminEmails: adminEmails,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for httptest.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.LoggingMiddleware)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler(), http.MethodGet)
	}

	r.HandleFunc("/admin/login", s.handlePostLogin, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAdmin)

		r.HandleFunc("/admin/permit-documents", s.handleListPermitDocuments, http.MethodGet)
		r.HandleFunc("/admin/review-permit-document", s.handleReviewPermitDocument, http.MethodPost)

		r.HandleFunc("/admin/property-tax-queue", s.handleTaxQueue, http.MethodGet)
		r.HandleFunc("/admin/upload-property-tax", s.handleUploadPropertyTax, http.MethodPost)
		r.HandleFunc("/admin/property-tax-status", s.handleTaxStatus, http.MethodPost)
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, types.Response{Success: true})
}
