// Package postgrest implements the repository interfaces against a PostgREST
// endpoint, which is what a Supabase project exposes under /rest/v1.
//
// HOW THE REQUESTS LOOK:
// PostgREST turns query parameters into SQL. Every read here is a single GET:
//
//	GET /skills?select=*&order=sort_order.asc.nullslast,name.asc
//	GET /private_contact?select=*&access_code=eq.2468&limit=1
//
// Writes are POSTs of JSON rows, and deletes are DELETE with an id filter.
//
// AUTHENTICATION:
// Supabase wants the project key twice: as an "apikey" header and as a Bearer
// token. The Bearer part comes from an oauth2 static token source, so the
// http.Client returned by oauth2.NewClient adds it to every request for us.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/sakif/portfolio/internal/repository"
)

var _ repository.Store = (*Client)(nil)

// maxErrorBody caps how much of an error response we copy into an error message.
const maxErrorBody = 512

// Client talks to one PostgREST base URL, e.g. https://abc.supabase.co/rest/v1.
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
}

// New creates a Client. The context is only used to pick up a custom
// *http.Client stored under oauth2.HTTPClient (tests use this to talk to an
// httptest server); it is not kept.
func New(ctx context.Context, baseURL, apiKey string) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("postgrest: parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("postgrest: base URL %q must be http or https", baseURL)
	}

	httpClient := http.DefaultClient
	if apiKey != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, src)
	} else if c, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok {
		httpClient = c
	}

	return &Client{baseURL: u, apiKey: apiKey, http: httpClient}, nil
}

// Close is a no-op; the client holds no connections of its own beyond the
// shared transport. It exists so *Client satisfies repository.Store.
func (c *Client) Close() error {
	return nil
}

// apiError is the JSON body PostgREST returns on failure.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// statusError is returned for any non-2xx response.
type statusError struct {
	Status int
	Code   string
	Msg    string
}

func (e *statusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("status %d (%s): %s", e.Status, e.Code, e.Msg)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Msg)
}

// isConflict reports whether a PostgREST error is a unique violation.
// PostgREST maps SQLSTATE 23505 to HTTP 409 and passes the code through.
func isConflict(err error) bool {
	se, ok := err.(*statusError)
	return ok && (se.Status == http.StatusConflict || se.Code == "23505")
}

// do sends one request and decodes a JSON response into out (if out is non-nil).
func (c *Client) do(ctx context.Context, method, table string, query url.Values, body any, prefer string, out any) error {
	u := *c.baseURL
	u.Path = u.Path + "/" + table
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		se := &statusError{Status: resp.StatusCode, Msg: strings.TrimSpace(string(raw))}
		var ae apiError
		if json.Unmarshal(raw, &ae) == nil && ae.Message != "" {
			se.Code, se.Msg = ae.Code, ae.Message
		}
		return se
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
