// Package client posts forms to the loan app the way a browser would,
// except that redirects are returned instead of followed.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/crucial707/loanapp/cmd/cli/config"
)

// Response is what the CLI needs from an HTTP answer.
type Response struct {
	Status   int
	Location string
	Body     string
}

var httpClient = &http.Client{
	Timeout: 15 * time.Second,
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

// PostForm sends values to path under the configured API URL.
func PostForm(path string, values url.Values) (*Response, error) {
	req, err := http.NewRequest("POST", config.APIURL()+path, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return &Response{
		Status:   resp.StatusCode,
		Location: resp.Header.Get("Location"),
		Body:     string(body),
	}, nil
}

// TokenFromRedirect pulls the token query parameter out of a redirect.
func (r *Response) TokenFromRedirect() (string, error) {
	if r.Status != http.StatusFound {
		return "", fmt.Errorf("expected redirect, got status %d", r.Status)
	}
	loc, err := url.Parse(r.Location)
	if err != nil {
		return "", fmt.Errorf("parse redirect: %w", err)
	}
	token := loc.Query().Get("token")
	if token == "" {
		return "", fmt.Errorf("redirect to %q carried no token", r.Location)
	}
	return token, nil
}

// Err turns an error response into an error, using the JSON message when there is one.
func (r *Response) Err() error {
	var msg struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(r.Body), &msg); err == nil && msg.Message != "" {
		return fmt.Errorf("status %d: %s", r.Status, msg.Message)
	}
	return fmt.Errorf("status %d: %s", r.Status, strings.TrimSpace(r.Body))
}
