// Package client talks to the survey storage service over HTTP. *Client
// satisfies editor.Store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/vnkhanh/eval-survey-server/logger"
	"github.com/vnkhanh/eval-survey-server/surveydef"
)

const (
	EditTokenHeader = "X-Survey-Edit-Token"
	defaultTimeout  = 15 * time.Second
)

var ErrNotFound = errors.New("client: survey not found")

// StatusError is a non-2xx answer from the service.
type StatusError struct {
	Status     int
	Message    string
	Violations []surveydef.Violation
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("client: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("client: status %d: %s", e.Status, e.Message)
}

type Config struct {
	RootURL     string
	BearerToken string
	Timeout     time.Duration
}

type Client struct {
	cfg  Config
	http *http.Client

	// editTokens giữ token sửa nhận được khi tạo survey, theo id.
	mu         sync.Mutex
	editTokens map[string]string
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.RootURL = strings.TrimRight(cfg.RootURL, "/")
	return &Client{
		cfg:        cfg,
		http:       &http.Client{Timeout: cfg.Timeout},
		editTokens: map[string]string{},
	}
}

// SetEditToken registers the edit token of a survey created elsewhere.
func (c *Client) SetEditToken(surveyID, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editTokens[surveyID] = token
}

func (c *Client) EditToken(surveyID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editTokens[surveyID]
}

func (c *Client) FetchSurvey(ctx context.Context, id string) (surveydef.Survey, error) {
	var s surveydef.Survey
	_, err := c.do(ctx, http.MethodGet, "/api/surveys/"+url.PathEscape(id), nil, "", &s)
	return s, err
}

func (c *Client) CreateSurvey(ctx context.Context, dto surveydef.CreateSurveyDTO) (surveydef.Survey, error) {
	var s surveydef.Survey
	hdr, err := c.do(ctx, http.MethodPost, "/api/surveys", dto, "", &s)
	if err != nil {
		return surveydef.Survey{}, err
	}
	if tok := hdr.Get(EditTokenHeader); tok != "" && s.ID.IsPersisted() {
		c.SetEditToken(s.ID.Remote(), tok)
	}
	return s, nil
}

func (c *Client) UpdateSurvey(ctx context.Context, id string, dto surveydef.UpdateSurveyDTO) (surveydef.Survey, error) {
	var s surveydef.Survey
	_, err := c.do(ctx, http.MethodPut, "/api/surveys/"+url.PathEscape(id), dto, c.EditToken(id), &s)
	return s, err
}

func (c *Client) do(ctx context.Context, method, path string, payload any, editToken string, out any) (http.Header, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("client: encode payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.RootURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("client: prepare request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.BearerToken)
	}
	if editToken != "" {
		req.Header.Set(EditTokenHeader, editToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Errorf("client: %s %s: %v", method, path, err)
		return nil, fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeStatusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("client: decode response: %w", err)
	}
	return resp.Header, nil
}

func decodeStatusError(resp *http.Response) error {
	var env struct {
		Message    string                `json:"message"`
		Error      string                `json:"error"`
		Violations []surveydef.Violation `json:"violations"`
	}
	serr := &StatusError{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil {
		serr.Message = env.Message
		if serr.Message == "" {
			serr.Message = env.Error
		}
		serr.Violations = env.Violations
	}
	return serr
}
