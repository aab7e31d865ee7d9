package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/leakscout/leakscout/internal/scan"
	"github.com/leakscout/leakscout/internal/types"
)

const (
	multiscanPath  = "/v1/multiscan"
	defaultTimeout = 30 * time.Second
)

// Config holds the connection settings for the detection service.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client talks to the remote secret-detection service. It implements
// scan.Detector: one POST per batch, findings come back sparse and indexed
// against the submitted documents.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	log        *zap.Logger
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("detection service URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.Token,
		log:        log,
	}, nil
}

type scanDocument struct {
	Filename string `json:"filename"`
	Document string `json:"document"`
}

type scanRequest struct {
	Documents []scanDocument `json:"documents"`
}

type documentResult struct {
	// Index refers to the position of the document in the request. The
	// service only returns entries for documents with findings or errors.
	Index    int             `json:"index"`
	Findings []types.Finding `json:"findings,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type scanResponse struct {
	Results []documentResult `json:"results"`
}

// Detect submits the batch's scannables in one call and maps the sparse
// response back onto them. Documents the service could not evaluate are
// reported in Results.Errors; an empty response is a clean batch.
func (c *Client) Detect(ctx context.Context, items []scan.Scannable) (scan.Results, error) {
	var out scan.Results
	if len(items) == 0 {
		return out, nil
	}

	reqBody := scanRequest{Documents: make([]scanDocument, len(items))}
	for i, it := range items {
		reqBody.Documents[i] = scanDocument{Filename: it.Path, Document: it.Content}
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return out, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+multiscanPath, bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, fmt.Errorf("detection service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return out, fmt.Errorf("detection service status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var decoded scanResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return out, fmt.Errorf("detection service response: %w", err)
	}

	for _, r := range decoded.Results {
		if r.Index < 0 || r.Index >= len(items) {
			return out, fmt.Errorf("detection service returned index %d for %d documents", r.Index, len(items))
		}
		it := items[r.Index]
		if r.Error != "" {
			out.Errors = append(out.Errors, scan.ScanError{
				OwnerSHA: it.OwnerSHA,
				Path:     it.Path,
				Err:      errors.New(r.Error),
			})
			continue
		}
		if len(r.Findings) > 0 {
			out.Results = append(out.Results, scan.Result{Scannable: it, Findings: r.Findings})
		}
	}
	c.log.Debug("multiscan call",
		zap.Int("documents", len(items)),
		zap.Int("results", len(out.Results)),
		zap.Int("errors", len(out.Errors)),
		zap.Duration("took", time.Since(start)))
	return out, nil
}
