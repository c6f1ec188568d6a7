// Package aigateway talks to the external emotion/face-recognition service.
// Two endpoints exist: POST {base}/predict with one image, and POST
// {base}/authorization with two. Every call is independent; there is no
// caching and no retry at this layer.
package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	defaultPredictTimeout   = 120 * time.Second
	defaultAuthorizeTimeout = 45 * time.Second
)

type Verdict string

const (
	VerdictYes   Verdict = "YES"
	VerdictNo    Verdict = "NO"
	VerdictRetry Verdict = "RETRY"
)

var (
	ErrUpstreamTimeout  = errors.New("ai gateway: request timed out")
	ErrUnreachable      = errors.New("ai gateway: service unreachable")
	ErrUpstreamProtocol = errors.New("ai gateway: malformed response body")
)

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ai gateway: upstream returned status %d", e.Code)
}

// IsUpstreamError reports whether err came out of the AI gateway, in any of
// its failure shapes. Handlers use this to answer 503 instead of leaking
// transport details.
func IsUpstreamError(err error) bool {
	var statusErr *StatusError
	return errors.Is(err, ErrUpstreamTimeout) ||
		errors.Is(err, ErrUnreachable) ||
		errors.Is(err, ErrUpstreamProtocol) ||
		errors.As(err, &statusErr)
}

// Part is one image part of a multipart request.
type Part struct {
	Filename    string
	ContentType string
	Data        []byte
}

type FaceBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Prediction is the /predict answer. Top3 is kept as raw JSON: the service
// owns that shape and it is stored and returned to clients verbatim.
type Prediction struct {
	Emotion    string             `json:"emotion"`
	Confidence *float64           `json:"confidence"`
	Probs      map[string]float64 `json:"probs"`
	Top3       json.RawMessage    `json:"top3"`
	FaceBox    *FaceBox           `json:"face_box"`
}

type Authorization struct {
	Verdict           Verdict  `json:"verdict"`
	Similarity        *float64 `json:"similarity"`
	SimilarityPercent *float64 `json:"similarity_percent"`
}

type GatewayInterface interface {
	Predict(ctx context.Context, file Part) (*Prediction, error)
	Authorize(ctx context.Context, photo1, photo2 Part) (*Authorization, error)
}

// Config is validated once at construction. Timeouts stay below the upstream
// gateway's own limits so a slow answer fails here, unambiguously.
type Config struct {
	BaseURL          string
	PredictTimeout   time.Duration
	AuthorizeTimeout time.Duration
}

type Client struct {
	baseURL          string
	httpClient       *http.Client
	predictTimeout   time.Duration
	authorizeTimeout time.Duration
}

func NewClient(cfg Config) (GatewayInterface, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("ai gateway: base URL is required")
	}
	if cfg.PredictTimeout <= 0 {
		cfg.PredictTimeout = defaultPredictTimeout
	}
	if cfg.AuthorizeTimeout <= 0 {
		cfg.AuthorizeTimeout = defaultAuthorizeTimeout
	}

	return &Client{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:       &http.Client{},
		predictTimeout:   cfg.PredictTimeout,
		authorizeTimeout: cfg.AuthorizeTimeout,
	}, nil
}

func (c *Client) Predict(ctx context.Context, file Part) (*Prediction, error) {
	var out Prediction
	parts := []namedPart{{field: "file", part: file}}
	if err := c.post(ctx, "/predict", parts, c.predictTimeout, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Authorize(ctx context.Context, photo1, photo2 Part) (*Authorization, error) {
	var out Authorization
	parts := []namedPart{
		{field: "photo1", part: photo1},
		{field: "photo2", part: photo2},
	}
	if err := c.post(ctx, "/authorization", parts, c.authorizeTimeout, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type namedPart struct {
	field string
	part  Part
}

func (c *Client) post(ctx context.Context, path string, parts []namedPart, timeout time.Duration, out interface{}) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, p := range parts {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{
			fmt.Sprintf(`form-data; name=%q; filename=%q`, p.field, p.part.Filename),
		}
		contentType := p.part.ContentType
		if contentType == "" {
			contentType = "image/jpeg"
		}
		header["Content-Type"] = []string{contentType}

		fw, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnreachable, err)
		}
		if _, err := fw.Write(p.part.Data); err != nil {
			return fmt.Errorf("%w: %v", ErrUnreachable, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return ErrUpstreamTimeout
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamProtocol, err)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
