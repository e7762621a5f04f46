package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/RandyVollrath/ticketlesschicago-sub011/pkg/types"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListPermitDocuments fetches the permit review queue. The error return
// covers transport and decoding only; a success=false envelope comes
// back in the response itself.
func (c *Client) ListPermitDocuments(ctx context.Context, filter types.StatusFilter) (*types.PermitDocumentListResponse, error) {
	endpoint := fmt.Sprintf("%s/admin/permit-documents?status=%s", c.baseURL, url.QueryEscape(string(filter)))

	var resp types.PermitDocumentListResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) SubmitReview(ctx context.Context, req types.ReviewRequest) Result {
	var resp types.Response
	if err := c.postJSON(ctx, c.baseURL+"/admin/review-permit-document", req, &resp); err != nil {
		return fetchFailure(err)
	}

	if !resp.Success {
		return serverFailure(resp.Error)
	}

	return okResult(resp.Message)
}

func (c *Client) ListTaxQueue(ctx context.Context, filter types.QueueFilter) (*types.PropertyTaxQueueResponse, error) {
	endpoint := fmt.Sprintf("%s/admin/property-tax-queue?filter=%s", c.baseURL, url.QueryEscape(string(filter)))

	var resp types.PropertyTaxQueueResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// UploadTaxBill posts the found bill as multipart form data: userId and
// notes fields plus the file under the document key.
func (c *Client) UploadTaxBill(ctx context.Context, userID, notes, filename string, file io.Reader) Result {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("userId", userID); err != nil {
		return fetchFailure(err)
	}
	if err := writer.WriteField("notes", notes); err != nil {
		return fetchFailure(err)
	}

	part, err := writer.CreateFormFile("document", filename)
	if err != nil {
		return fetchFailure(err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fetchFailure(err)
	}
	if err := writer.Close(); err != nil {
		return fetchFailure(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/upload-property-tax", &body)
	if err != nil {
		return fetchFailure(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp types.Response
	if err := c.do(req, &resp); err != nil {
		return fetchFailure(err)
	}

	if !resp.Success {
		return serverFailure(resp.Error)
	}

	return okResult(resp.Message)
}

func (c *Client) UpdateTaxStatus(ctx context.Context, req types.StatusUpdateRequest) Result {
	var resp types.Response
	if err := c.postJSON(ctx, c.baseURL+"/admin/property-tax-status", req, &resp); err != nil {
		return fetchFailure(err)
	}

	if !resp.Success {
		return serverFailure(resp.Error)
	}

	return okResult(resp.Message)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	return c.do(req, dst)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload, dst any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, dst)
}

func (c *Client) do(req *http.Request, dst any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
