package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ErrUploadFailed covers any gateway-side failure. Callers surface it to the
// user as a terminal error; uploads are never retried automatically.
var ErrUploadFailed = errors.New("upload failed")

// Client streams files to a Cloudinary-style unsigned upload endpoint and
// returns the hosted URL.
type Client struct {
	uploadURL  string
	preset     string
	folder     string
	httpClient *http.Client
}

func NewClient(uploadURL, preset, folder string, timeout time.Duration) *Client {
	return &Client{
		uploadURL:  uploadURL,
		preset:     preset,
		folder:     folder,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Upload sends the file as multipart form data and returns the secure URL
// from the gateway response.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()
		defer mw.Close()
		if err := mw.WriteField("upload_preset", c.preset); err != nil {
			pw.CloseWithError(err)
			return
		}
		if c.folder != "" {
			if err := mw.WriteField("folder", c.folder); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, pr)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: gateway returned status %d", ErrUploadFailed, resp.StatusCode)
	}

	var result struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: invalid gateway response: %v", ErrUploadFailed, err)
	}

	url := result.SecureURL
	if url == "" {
		url = result.URL
	}
	if url == "" {
		return "", fmt.Errorf("%w: gateway response missing url", ErrUploadFailed)
	}
	return url, nil
}
