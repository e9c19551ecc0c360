package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/templata/go-profilegen/pkg/fault"
)

// HTTPUploader posts files as multipart form data to a storage endpoint
// that answers {"url": "..."}.
type HTTPUploader struct {
	endpoint string
	client   *http.Client
	field    string
}

// HTTPOption configures an HTTPUploader.
type HTTPOption func(*HTTPUploader)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(u *HTTPUploader) {
		if client != nil {
			u.client = client
		}
	}
}

// WithFormField overrides the multipart field name, "file" by default.
func WithFormField(name string) HTTPOption {
	return func(u *HTTPUploader) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			u.field = trimmed
		}
	}
}

// NewHTTPUploader constructs an uploader targeting the given endpoint.
func NewHTTPUploader(endpoint string, options ...HTTPOption) *HTTPUploader {
	u := &HTTPUploader{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   http.DefaultClient,
		field:    "file",
	}
	for _, opt := range options {
		if opt != nil {
			opt(u)
		}
	}
	return u
}

// Upload streams the file to the endpoint and returns the public URL from
// the response body.
func (u *HTTPUploader) Upload(ctx context.Context, file File) (string, error) {
	if file.Open == nil {
		return "", fault.New(fault.UploadFailed, "file has no content")
	}
	content, err := file.Open()
	if err != nil {
		return "", fault.Wrap(fault.UploadFailed, err, "open file")
	}
	defer content.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		part, err := writer.CreatePart(partHeader(u.field, file))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, pr)
	if err != nil {
		return "", fault.Wrap(fault.UploadFailed, err, "build request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fault.Wrap(fault.Network, err, "upload "+file.Name)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fault.Newf(fault.UploadFailed, "upload %s: status %d: %s", file.Name, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fault.Wrap(fault.UploadFailed, err, "decode response")
	}
	if out.URL == "" {
		return "", fault.New(fault.UploadFailed, "storage returned no url")
	}
	return out.URL, nil
}

func partHeader(field string, file File) textproto.MIMEHeader {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, file.Name))
	mediaType := file.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	header.Set("Content-Type", mediaType)
	return header
}
