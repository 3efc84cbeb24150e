package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"iter"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"time"
)

const userAgent = "elevenlabs-go/1.0"

// httpClient handles HTTP communication with the ElevenLabs API,
// including credential injection and the retry loop.
type httpClient struct {
	client       *http.Client
	baseURL      string
	apiKey       APIKey
	maxRetries   int
	retryBackoff time.Duration
}

func newHTTPClient(cfg *clientConfig) *httpClient {
	return &httpClient{
		client:       cfg.httpClient,
		baseURL:      cfg.baseURL,
		apiKey:       cfg.apiKey,
		maxRetries:   cfg.maxRetries,
		retryBackoff: cfg.retryBackoff,
	}
}

// request sends one logical request: it attaches the credential, loops
// through the retry policy for transient outcomes (429/500/502/503 and
// per-attempt timeouts), and returns the final response. Terminal
// failures return immediately. Retry state is local to this call.
func (h *httpClient) request(ctx context.Context, method, path string, body []byte, contentType string) (*http.Response, error) {
	if h.apiKey.IsZero() {
		return nil, newError(ErrKindAuth, "no API key configured")
	}

	u, err := url.Parse(h.baseURL + path)
	if err != nil {
		return nil, wrapError(ErrKindInvalidURL, err, "parse request URL")
	}

	var lastErr error
	for attempt := 0; attempt <= h.maxRetries; attempt++ {
		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
		if err != nil {
			return nil, wrapError(ErrKindTransport, err, "create request")
		}
		req.Header.Set(HeaderAPIKey, h.apiKey.Reveal())
		req.Header.Set("User-Agent", userAgent)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := h.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if !isTimeout(err) {
				return nil, wrapError(ErrKindTransport, err, "send request")
			}
			lastErr = wrapError(ErrKindTimeout, err, "request timeout")
			if attempt < h.maxRetries {
				delay := computeDelay(attempt, h.retryBackoff, 0)
				slog.Debug("request timed out, retrying",
					"attempt", attempt, "delay", delay)
				if err := sleepCtx(ctx, delay); err != nil {
					return nil, err
				}
				continue
			}
			return nil, lastErr
		}

		if shouldRetry(resp.StatusCode) && attempt < h.maxRetries {
			retryAfter := parseRetryAfter(resp.Header)
			resp.Body.Close()
			delay := computeDelay(attempt, h.retryBackoff, retryAfter)
			slog.Debug("retrying request",
				"attempt", attempt, "status", resp.StatusCode, "delay", delay)
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, err
			}
			continue
		}

		return resp, nil
	}

	return nil, lastErr
}

// isTimeout reports whether a transport error is a per-attempt timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// sleepCtx waits for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// handleResponse maps a non-2xx response to a typed error, or decodes
// the body into result.
func handleResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapError(ErrKindTransport, err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp.StatusCode, body, parseRetryAfter(resp.Header))
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return wrapError(ErrKindDeserialization, err, "unmarshal response")
		}
	}
	return nil
}

// handleBytesResponse maps a non-2xx response to a typed error, or
// returns the raw body (audio endpoints).
func handleBytesResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapError(ErrKindTransport, err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp.StatusCode, body, parseRetryAfter(resp.Header))
	}
	return body, nil
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, wrapError(ErrKindValidation, err, "marshal request body")
	}
	return data, nil
}

// get sends a GET request and decodes the JSON response into result.
func (h *httpClient) get(ctx context.Context, path string, result any) error {
	resp, err := h.request(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	return handleResponse(resp, result)
}

// getBytes sends a GET request and returns the raw response body.
func (h *httpClient) getBytes(ctx context.Context, path string) ([]byte, error) {
	resp, err := h.request(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return handleBytesResponse(resp)
}

// post sends a POST request with a JSON body and decodes the JSON response.
func (h *httpClient) post(ctx context.Context, path string, body, result any) error {
	data, err := marshalBody(body)
	if err != nil {
		return err
	}
	resp, err := h.request(ctx, http.MethodPost, path, data, "application/json")
	if err != nil {
		return err
	}
	return handleResponse(resp, result)
}

// postBytes sends a POST request with a JSON body and returns raw bytes.
func (h *httpClient) postBytes(ctx context.Context, path string, body any) ([]byte, error) {
	data, err := marshalBody(body)
	if err != nil {
		return nil, err
	}
	resp, err := h.request(ctx, http.MethodPost, path, data, "application/json")
	if err != nil {
		return nil, err
	}
	return handleBytesResponse(resp)
}

// del sends a DELETE request and decodes the JSON response if result is
// non-nil.
func (h *httpClient) del(ctx context.Context, path string, result any) error {
	resp, err := h.request(ctx, http.MethodDelete, path, nil, "")
	if err != nil {
		return err
	}
	return handleResponse(resp, result)
}

// postStream sends a POST request and yields the response body in chunks
// as they arrive. The sequence is lazy and single-pass; abandoning it
// closes the response body.
func (h *httpClient) postStream(ctx context.Context, path string, body any) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		data, err := marshalBody(body)
		if err != nil {
			yield(nil, err)
			return
		}
		resp, err := h.request(ctx, http.MethodPost, path, data, "application/json")
		if err != nil {
			yield(nil, err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			errBody, _ := io.ReadAll(resp.Body)
			yield(nil, apiError(resp.StatusCode, errBody, parseRetryAfter(resp.Header)))
			return
		}

		buf := make([]byte, 32*1024)
		for {
			n, err := resp.Body.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				if !yield(chunk, nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, wrapError(ErrKindTransport, err, "read stream"))
				return
			}
		}
	}
}

// multipartFile describes one file part of a multipart upload.
type multipartFile struct {
	field    string
	filename string
	reader   io.Reader
}

// postMultipart uploads multipart form data with streaming and decodes
// the JSON response. The body is written through an io.Pipe so files are
// never fully buffered. Multipart bodies are not replayable, so this
// path does not retry.
func (h *httpClient) postMultipart(ctx context.Context, path string, fields map[string]string, files []multipartFile, result any) error {
	if h.apiKey.IsZero() {
		return newError(ErrKindAuth, "no API key configured")
	}

	u, err := url.Parse(h.baseURL + path)
	if err != nil {
		return wrapError(ErrKindInvalidURL, err, "parse request URL")
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	errCh := make(chan error, 1)
	go func() {
		defer pw.Close()

		for key, value := range fields {
			if err := writer.WriteField(key, value); err != nil {
				errCh <- wrapError(ErrKindTransport, err, "write field "+key)
				return
			}
		}
		for _, f := range files {
			part, err := writer.CreateFormFile(f.field, f.filename)
			if err != nil {
				errCh <- wrapError(ErrKindTransport, err, "create form file")
				return
			}
			if _, err := io.Copy(part, f.reader); err != nil {
				errCh <- wrapError(ErrKindTransport, err, "copy file")
				return
			}
		}
		if err := writer.Close(); err != nil {
			errCh <- wrapError(ErrKindTransport, err, "close multipart writer")
			return
		}
		errCh <- nil
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), pr)
	if err != nil {
		pr.Close()
		return wrapError(ErrKindTransport, err, "create request")
	}
	req.Header.Set(HeaderAPIKey, h.apiKey.Reveal())
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if isTimeout(err) {
			return wrapError(ErrKindTimeout, err, "request timeout")
		}
		return wrapError(ErrKindTransport, err, "send request")
	}

	if writeErr := <-errCh; writeErr != nil {
		resp.Body.Close()
		return writeErr
	}

	return handleResponse(resp, result)
}
