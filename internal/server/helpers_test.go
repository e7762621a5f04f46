package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/metrics"
	"github.com/RandyVollrath/ticketlesschicago-sub011/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testAdminPassword = "correct-horse"

type appliedDecision struct {
	DocumentID      int64
	Status          types.VerificationStatus
	RejectionReason *string
	CustomerCode    *string
}

type fakeDocStore struct {
	mu         sync.Mutex
	docs       map[int64]*types.PermitDocument
	listErr    error
	applyErr   error
	lastFilter types.StatusFilter
	applied    []appliedDecision
}

func (f *fakeDocStore) Document(_ context.Context, documentID int64) (*types.PermitDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, ok := f.docs[documentID]
	if !ok {
		return nil, types.ErrDocumentNotFound
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeDocStore) DocumentsByStatus(_ context.Context, filter types.StatusFilter) ([]*types.PermitDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}

	out := make([]*types.PermitDocument, 0, len(f.docs))
	for _, doc := range f.docs {
		if filter != types.FilterAll && doc.VerificationStatus != types.VerificationStatus(filter) {
			continue
		}
		copied := *doc
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDocStore) ApplyDecision(_ context.Context, documentID int64, status types.VerificationStatus, rejectionReason, customerCode *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.applyErr != nil {
		return f.applyErr
	}

	f.applied = append(f.applied, appliedDecision{
		DocumentID:      documentID,
		Status:          status,
		RejectionReason: rejectionReason,
		CustomerCode:    customerCode,
	})
	return nil
}

type fakeProofStore struct {
	proofs []*types.ResidencyProofDocument
	err    error
}

func (f *fakeProofStore) DocumentsByStatus(context.Context, types.StatusFilter) ([]*types.ResidencyProofDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.proofs, nil
}

type recordedFetch struct {
	UserID    string
	Notes     *string
	FetchedAt time.Time
}

type flagCall struct {
	UserID string
	Flag   string
	Value  bool
	Notes  *string
}

type fakeQueueStore struct {
	mu      sync.Mutex
	entries map[string]*types.PropertyTaxQueueEntry
	counts  types.QueueCounts

	lastFilter types.QueueFilter
	fetched    []recordedFetch
	flagCalls  []flagCall
}

func (f *fakeQueueStore) Entry(_ context.Context, userID string) (*types.PropertyTaxQueueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[userID]
	if !ok {
		return nil, types.ErrQueueEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeQueueStore) EntriesByFilter(_ context.Context, filter types.QueueFilter) ([]*types.PropertyTaxQueueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastFilter = filter
	out := make([]*types.PropertyTaxQueueEntry, 0, len(f.entries))
	for _, entry := range f.entries {
		copied := *entry
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *fakeQueueStore) Counts(context.Context) (types.QueueCounts, error) {
	return f.counts, nil
}

func (f *fakeQueueStore) RecordFetched(_ context.Context, userID string, notes *string, fetchedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entries[userID]; !ok {
		return types.ErrQueueEntryNotFound
	}
	f.fetched = append(f.fetched, recordedFetch{UserID: userID, Notes: notes, FetchedAt: fetchedAt})
	return nil
}

func (f *fakeQueueStore) SetFetchFailed(_ context.Context, userID string, failed bool, notes *string) error {
	return f.setFlag(userID, "fetch_failed", failed, notes)
}

func (f *fakeQueueStore) SetNeedsRefresh(_ context.Context, userID string, needsRefresh bool, notes *string) error {
	return f.setFlag(userID, "needs_refresh", needsRefresh, notes)
}

func (f *fakeQueueStore) setFlag(userID, flag string, value bool, notes *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entries[userID]; !ok {
		return types.ErrQueueEntryNotFound
	}
	f.flagCalls = append(f.flagCalls, flagCall{UserID: userID, Flag: flag, Value: value, Notes: notes})
	return nil
}

type storedObject struct {
	Key         string
	ContentType string
	Content     string
}

type fakeStorage struct {
	mu      sync.Mutex
	uploads []storedObject
	err     error
}

func (f *fakeStorage) Upload(_ context.Context, key string, body io.Reader, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}

	content, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.uploads = append(f.uploads, storedObject{Key: key, ContentType: contentType, Content: string(content)})
	return f.publicURL(key), nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return f.publicURL(key)
}

func (f *fakeStorage) publicURL(key string) string {
	if key == "" {
		return ""
	}
	return "https://cdn.example.com/" + key
}

type mailCall struct {
	To      string
	Name    string
	Payload string
}

type fakeMailer struct {
	mu         sync.Mutex
	approvals  []mailCall
	rejections []mailCall
	err        error
}

func (f *fakeMailer) SendApproval(_ context.Context, toEmail, name, customerCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.approvals = append(f.approvals, mailCall{To: toEmail, Name: name, Payload: customerCode})
	return f.err
}

func (f *fakeMailer) SendRejection(_ context.Context, toEmail, name, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejections = append(f.rejections, mailCall{To: toEmail, Name: name, Payload: reason})
	return f.err
}

type fixture struct {
	svc     *Service
	srv     *httptest.Server
	docs    *fakeDocStore
	proofs  *fakeProofStore
	queue   *fakeQueueStore
	storage *fakeStorage
	mailer  *fakeMailer
	config  *types.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	config := &types.Config{
		ServerPort:        0,
		ReadTimeoutSec:    5,
		WriteTimeoutSec:   5,
		AdminEmails:       "admin@example.com",
		AdminPasswordHash: string(hash),
		CookieName:        "ticketless_admin_session",
		SessionMaxAgeSec:  3600,
		CookieHashKey:     base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef")),
		CookieBlockKey:    base64.StdEncoding.EncodeToString([]byte("fedcba9876543210fedcba9876543210")),
		MaxUploadMB:       10,
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := &fixture{
		docs:    &fakeDocStore{docs: make(map[int64]*types.PermitDocument)},
		proofs:  &fakeProofStore{},
		queue:   &fakeQueueStore{entries: make(map[string]*types.PropertyTaxQueueEntry)},
		storage: &fakeStorage{},
		mailer:  &fakeMailer{},
		config:  config,
	}

	svc, err := New(config, logger, metrics.NewServerMetrics(), f.docs, f.proofs, f.queue, f.storage, f.mailer, nil, "")
	require.NoError(t, err)
	f.svc = svc

	f.srv = httptest.NewServer(svc.Handler())
	t.Cleanup(f.srv.Close)

	return f
}

// sessionCookie mints a valid admin session without going through the
// login handler; the login flow has its own tests.
func (f *fixture) sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()

	now := time.Now()
	encoded, err := f.svc.cookie.Encode(f.config.CookieName, adminSession{
		Admin:     true,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	require.NoError(t, err)

	return &http.Cookie{Name: f.config.CookieName, Value: encoded}
}

func (f *fixture) doAuthed(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	req.AddCookie(f.sessionCookie(t))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
