// Package wiki mirrors journal files to Confluence pages.
package wiki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tableflip.dev/daylog/pkg/store"
)

const defaultTimeout = 30 * time.Second

// ServiceError is a non-2xx answer from the wiki.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("wiki: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("wiki: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// Page is a remote page as far as syncing cares.
type Page struct {
	ID      string
	Title   string
	Version int
}

// Client talks to the Confluence REST API.
type Client struct {
	BaseURL  string
	Space    string
	User     string
	Token    string
	ParentID string

	HTTP *http.Client
}

// NewClient returns a client for the configured wiki.
func NewClient(cfg store.WikiConfig) *Client {
	return &Client{
		BaseURL:  strings.TrimSuffix(cfg.URL, "/"),
		Space:    cfg.Space,
		User:     cfg.User,
		Token:    cfg.Token,
		ParentID: cfg.ParentID,
		HTTP:     &http.Client{Timeout: defaultTimeout},
	}
}

type content struct {
	ID        string     `json:"id,omitempty"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Space     *spaceRef  `json:"space,omitempty"`
	Ancestors []ancestor `json:"ancestors,omitempty"`
	Version   *version   `json:"version,omitempty"`
	Body      *body      `json:"body,omitempty"`
}

type spaceRef struct {
	Key string `json:"key"`
}

type ancestor struct {
	ID string `json:"id"`
}

type version struct {
	Number int `json:"number"`
}

type body struct {
	Storage storage `json:"storage"`
}

type storage struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

type searchResult struct {
	Results []content `json:"results"`
}

func (c content) page() Page {
	p := Page{ID: c.ID, Title: c.Title}
	if c.Version != nil {
		p.Version = c.Version.Number
	}
	return p
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.BaseURL + "/rest/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("wiki: encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("wiki: build request: %w", err)
	}
	req.SetBasicAuth(c.User, c.Token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wiki: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serviceError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("wiki: decode %s %s: %w", method, path, err)
	}
	return nil
}

func serviceError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var msg struct {
		Message string `json:"message"`
	}
	e := &ServiceError{Status: resp.StatusCode}
	if json.Unmarshal(data, &msg) == nil && msg.Message != "" {
		e.Message = msg.Message
	} else {
		e.Message = strings.TrimSpace(string(data))
	}
	return e
}

// Ping checks that the space is reachable with the configured credentials.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/space/"+url.PathEscape(c.Space), nil, nil, nil)
}

// Find looks up the page titled title in the space.
func (c *Client) Find(ctx context.Context, title string) (Page, bool, error) {
	q := url.Values{}
	q.Set("spaceKey", c.Space)
	q.Set("title", title)
	q.Set("expand", "version")
	var res searchResult
	if err := c.do(ctx, http.MethodGet, "/content", q, nil, &res); err != nil {
		return Page{}, false, err
	}
	for _, r := range res.Results {
		if r.Title == title {
			return r.page(), true, nil
		}
	}
	return Page{}, false, nil
}

// Create adds a page holding storage format markup.
func (c *Client) Create(ctx context.Context, title, markup string) (Page, error) {
	in := content{
		Type:  "page",
		Title: title,
		Space: &spaceRef{Key: c.Space},
		Body:  &body{Storage: storage{Value: markup, Representation: "storage"}},
	}
	if c.ParentID != "" {
		in.Ancestors = []ancestor{{ID: c.ParentID}}
	}
	var out content
	if err := c.do(ctx, http.MethodPost, "/content", nil, in, &out); err != nil {
		return Page{}, err
	}
	return out.page(), nil
}

// Update replaces the body of page, bumping its version.
func (c *Client) Update(ctx context.Context, page Page, markup string) (Page, error) {
	in := content{
		ID:      page.ID,
		Type:    "page",
		Title:   page.Title,
		Version: &version{Number: page.Version + 1},
		Body:    &body{Storage: storage{Value: markup, Representation: "storage"}},
	}
	var out content
	if err := c.do(ctx, http.MethodPut, "/content/"+url.PathEscape(page.ID), nil, in, &out); err != nil {
		return Page{}, err
	}
	return out.page(), nil
}

// Upsert creates the page titled title or replaces its body.
func (c *Client) Upsert(ctx context.Context, title, markup string) (Page, error) {
	page, ok, err := c.Find(ctx, title)
	if err != nil {
		return Page{}, err
	}
	if !ok {
		return c.Create(ctx, title, markup)
	}
	return c.Update(ctx, page, markup)
}
