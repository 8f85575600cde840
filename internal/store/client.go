package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// InvoiceService defines the remote operations the UI depends on. It is
// implemented by *Client and can be substituted in tests.
type InvoiceService interface {
	ListInvoices(ctx context.Context) ([]Invoice, error)
	CreateInvoice(ctx context.Context, payload InvoicePayload) (CreateResponse, error)
	DeleteInvoice(ctx context.Context, id int64) error
	GenerateDocument(ctx context.Context, id int64) (GenerateResponse, error)
}

var _ InvoiceService = (*Client)(nil)

// Client talks to the invoice service HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "http://localhost:5000/api"
	defaultUserAgent = "billfold/0.1"
	requestTimeout   = 10 * time.Second
)

// APIError is a business error reported by the store via an {"error": ...}
// body. Transport failures are returned as ordinary wrapped errors instead.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return fmt.Sprintf("api returned status %d", e.StatusCode)
}

// NewClient builds a Client for the given API base URL. An empty value uses
// the default local service address.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// ListInvoices retrieves the full set of persisted invoices.
func (c *Client) ListInvoices(ctx context.Context) ([]Invoice, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateInvoice submits a composed invoice and returns the store-assigned
// identifier.
func (c *Client) CreateInvoice(ctx context.Context, payload InvoicePayload) (CreateResponse, error) {
	if c == nil {
		return CreateResponse{}, fmt.Errorf("client is nil")
	}
	var resp CreateResponse
	if err := c.do(ctx, http.MethodPost, "/invoices", payload, &resp); err != nil {
		return CreateResponse{}, err
	}
	return resp, nil
}

// DeleteInvoice removes the invoice with the given store identifier.
func (c *Client) DeleteInvoice(ctx context.Context, id int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodDelete, "/invoices/"+strconv.FormatInt(id, 10), nil, nil)
}

// GenerateDocument asks the store to render a document for the invoice and
// returns where to download it from.
func (c *Client) GenerateDocument(ctx context.Context, id int64) (GenerateResponse, error) {
	if c == nil {
		return GenerateResponse{}, fmt.Errorf("client is nil")
	}
	var resp GenerateResponse
	path := "/invoices/" + strconv.FormatInt(id, 10) + "/generate"
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return GenerateResponse{}, err
	}
	return resp, nil
}

// ResolveDownloadURL joins a download path from a GenerateResponse with the
// service origin. The base path (such as /api) is dropped because download
// URLs are origin-relative.
func (c *Client) ResolveDownloadURL(rel string) string {
	if c == nil || c.baseURL == nil {
		return rel
	}
	parsed, err := url.Parse(rel)
	if err != nil {
		return rel
	}
	if parsed.IsAbs() {
		return parsed.String()
	}
	origin := &url.URL{Scheme: c.baseURL.Scheme, Host: c.baseURL.Host}
	return origin.ResolveReference(parsed).String()
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	reqURL := *c.baseURL
	reqURL.Path = strings.TrimSuffix(c.baseURL.Path, "/") + path

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeAPIError extracts the store's {"error": ...} message when present so
// the UI can show the service's own wording; otherwise the status code stands
// in.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var body struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &body) == nil {
			apiErr.Message = strings.TrimSpace(body.Error)
		}
	}
	return apiErr
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", baseURL, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
