package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/templata/go-profilegen/pkg/fault"
	"github.com/templata/go-profilegen/pkg/profile"
)

// SubmissionClient is the persistence collaborator boundary: store a payload
// under a template id, read it back by profile id.
type SubmissionClient interface {
	// Save persists the payload. An empty profileID asks the collaborator to
	// assign one. Saving twice with the same profileID overwrites the prior
	// record's fields wholesale; there is no merge.
	Save(ctx context.Context, templateID, profileID string, payload profile.Payload) (profile.Record, error)
	// Fetch reads the record stored for templateID + profileID.
	Fetch(ctx context.Context, templateID, profileID string) (profile.Record, error)
}

// HTTPClient talks JSON to a profile persistence service. No retries and no
// timeouts happen here; retry policy and deadlines belong to the caller.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

var _ SubmissionClient = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		if client != nil {
			c.http = client
		}
	}
}

// New constructs a client against the service base URL.
func New(baseURL string, options ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type saveRequest struct {
	ProfileID string          `json:"profileId,omitempty"`
	Fields    profile.Payload `json:"fields"`
}

// Save posts the payload under the template id.
func (c *HTTPClient) Save(ctx context.Context, templateID, profileID string, payload profile.Payload) (profile.Record, error) {
	if templateID == "" {
		return profile.Record{}, fault.New(fault.Validation, "template id is required")
	}
	body, err := json.Marshal(saveRequest{ProfileID: profileID, Fields: payload})
	if err != nil {
		return profile.Record{}, fmt.Errorf("client: encode payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/profiles/%s", c.baseURL, url.PathEscape(templateID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return profile.Record{}, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// Fetch reads a stored record.
func (c *HTTPClient) Fetch(ctx context.Context, templateID, profileID string) (profile.Record, error) {
	if templateID == "" || profileID == "" {
		return profile.Record{}, fault.New(fault.Validation, "template id and profile id are required")
	}
	endpoint := fmt.Sprintf("%s/v1/profiles/%s/%s", c.baseURL,
		url.PathEscape(templateID), url.PathEscape(profileID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return profile.Record{}, fmt.Errorf("client: build request: %w", err)
	}

	return c.do(req)
}

func (c *HTTPClient) do(req *http.Request) (profile.Record, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return profile.Record{}, fault.Wrap(fault.Network, err, req.Method+" "+req.URL.Path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return profile.Record{}, statusFault(resp)
	}

	var record profile.Record
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return profile.Record{}, fault.Wrap(fault.Network, err, "decode record")
	}
	return record, nil
}

func statusFault(resp *http.Response) *fault.Fault {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = resp.Status
	}
	switch resp.StatusCode {
	case http.StatusNotFound:
		return fault.New(fault.NotFound, msg)
	case http.StatusConflict:
		return fault.New(fault.Conflict, msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fault.New(fault.Validation, msg)
	default:
		return fault.Newf(fault.Network, "unexpected status %d: %s", resp.StatusCode, msg)
	}
}
