package adminclient

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/RandyVollrath/ticketlesschicago-sub011/pkg/types"
)

type uploadCapture struct {
	UserID   string
	Notes    string
	Filename string
	Content  string
}

// fakeAPI is an in-process stand-in for the admin backend. Each field
// holds the canned envelope for one endpoint; the capture slices record
// what the client actually sent.
type fakeAPI struct {
	mu sync.Mutex

	listResp    types.PermitDocumentListResponse
	listFilters []string

	queueResp  types.PropertyTaxQueueResponse
	queueCalls int

	reviewResp types.Response
	reviewReqs []types.ReviewRequest

	statusResp types.Response
	statusReqs []types.StatusUpdateRequest

	uploadResp types.Response
	uploads    []uploadCapture

	lastAuth string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastAuth = r.Header.Get("Authorization")

	var payload any
	switch r.URL.Path {
	case "/admin/permit-documents":
		f.listFilters = append(f.listFilters, r.URL.Query().Get("status"))
		payload = f.listResp
	case "/admin/property-tax-queue":
		f.queueCalls++
		payload = f.queueResp
	case "/admin/review-permit-document":
		var req types.ReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.reviewReqs = append(f.reviewReqs, req)
		payload = f.reviewResp
	case "/admin/property-tax-status":
		var req types.StatusUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.statusReqs = append(f.statusReqs, req)
		payload = f.statusResp
	case "/admin/upload-property-tax":
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		capture := uploadCapture{
			UserID: r.FormValue("userId"),
			Notes:  r.FormValue("notes"),
		}
		if file, header, err := r.FormFile("document"); err == nil {
			content, _ := io.ReadAll(file)
			file.Close()
			capture.Filename = header.Filename
			capture.Content = string(content)
		}
		f.uploads = append(f.uploads, capture)
		payload = f.uploadResp
	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func (f *fakeAPI) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listFilters)
}

func newTestScreen(t *testing.T, api *fakeAPI) (*PermitReviewScreen, *TaxQueueScreen) {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "test-token")
	return NewPermitReviewScreen(client), NewTaxQueueScreen(client)
}
