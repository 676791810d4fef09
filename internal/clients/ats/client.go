package ats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/pkg/errors"
	"github.com/talentflow/ats/internal/config"
	"github.com/talentflow/ats/internal/session"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type errorResponse struct {
	Error    string   `json:"error"`
	Problems []string `json:"problems"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Client calls the ATS API on behalf of an explicit session.
type Client struct {
	baseURL     string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	failer      *Failer
	session     session.Session
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		failer:     NewFailer(nil, nil),
	}
}

// NewClientFromConfig builds a client whose failure injection and throttling
// follow the simulation settings.
func NewClientFromConfig(baseURL string, cfg config.SimulationConfig) *Client {
	client := NewClient(baseURL)
	if cfg.FailuresEnabled {
		client.SetFailer(NewFailer(cfg.FailureRates, nil))
	} else {
		client.SetFailer(NeverFail())
	}
	if cfg.MaxRequestsPerSecond > 0 {
		client.SetRateLimit(cfg.MaxRequestsPerSecond)
	}
	return client
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) SetFailer(failer *Failer) {
	c.failer = failer
}

// WithSession returns a client that sends s with every request. Transport,
// limiter and failer are shared with c.
func (c *Client) WithSession(s session.Session) *Client {
	withSession := *c
	withSession.session = s
	return &withSession
}

func (c *Client) Session() session.Session {
	return c.session
}

func (c *Client) sendRequest(ctx context.Context, op Op, method, path string, query url.Values, in, out any) error {
	if err := c.failer.Roll(op); err != nil {
		return err
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "error encoding request")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return errors.Wrap(err, "error creating request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.session.Apply(req.Header)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "error sending request")
	}
	defer resp.Body.Close()

	return c.handleResponse(op, resp, out)
}

func (c *Client) handleResponse(op Op, resp *http.Response, out any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "error reading response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := fmt.Sprintf("Failed to %s", op.describe())
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			message = errResp.Error
			if len(errResp.Problems) > 0 {
				message += ": " + strings.Join(errResp.Problems, "; ")
			}
		}
		return &Error{Op: op, Status: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], body...)
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "error decoding JSON response")
	}
	return nil
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
