// Package client consumes the remote catalog search endpoint. The response is
// treated as a black box with two failure modes: a non-success flag and a
// transport error. Both surface as plain errors the dispatcher maps to an
// empty suggestion list.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"github.com/veldt-labs/chemseek/pkg/catalog"
)

// ErrUpstream signals a response whose success flag was false.
var ErrUpstream = errors.New("client: upstream reported failure")

const (
	defaultTimeout  = 5 * time.Second
	defaultAttempts = 3
)

// Client talks to the catalog HTTP API.
type Client struct {
	baseURL  string
	hc       *http.Client
	attempts uint
}

// Option adjusts a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.hc.Timeout = d
		}
	}
}

// WithAttempts sets how many times a transport failure is retried.
func WithAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.attempts = uint(n)
		}
	}
}

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// New builds a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		hc:       &http.Client{Timeout: defaultTimeout},
		attempts: defaultAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search queries the remote search endpoint. Candidates with missing optional
// fields are tolerated; entries without a name are dropped.
func (c *Client) Search(ctx context.Context, query string, opts catalog.Options) (catalog.ResultSet, error) {
	params := url.Values{}
	params.Set("q", query)
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.MinSimilarity > 0 {
		params.Set("min_sim", strconv.FormatFloat(opts.MinSimilarity, 'f', -1, 64))
	}

	body, err := c.get(ctx, "/api/v1/search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(body)
	if !root.Get("success").Bool() {
		return nil, ErrUpstream
	}

	var results catalog.ResultSet
	root.Get("results").ForEach(func(_, item gjson.Result) bool {
		cand := catalog.Candidate{
			ID:       item.Get("id").String(),
			Name:     item.Get("name").String(),
			ImageURL: item.Get("image_url").String(),
		}
		if cand.Name == "" {
			log.Debugf("Dropping nameless candidate for %q", query)
			return true
		}
		if sim := item.Get("similarity"); sim.Exists() {
			cand.Similarity = catalog.Score(sim.Float())
		}
		results = append(results, cand)
		return true
	})
	return results, nil
}

// Detail fetches the full product record behind a canonical name.
func (c *Client) Detail(ctx context.Context, name string) (catalog.Product, error) {
	body, err := c.get(ctx, "/api/v1/products/"+url.PathEscape(name))
	if err != nil {
		return catalog.Product{}, err
	}

	root := gjson.ParseBytes(body)
	if !root.Get("success").Bool() {
		return catalog.Product{}, ErrUpstream
	}

	item := root.Get("product")
	return catalog.Product{
		ID:         item.Get("id").String(),
		Name:       item.Get("name").String(),
		ImageURL:   item.Get("image_url").String(),
		Summary:    item.Get("summary").String(),
		Popularity: int(item.Get("popularity").Int()),
	}, nil
}

// get performs a GET with transport-level retries. Non-2xx statuses count as
// transport failures and are retried.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := c.hc.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusNotFound {
				return retry.Unrecoverable(catalog.ErrNotFound)
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("client: unexpected status %d", resp.StatusCode)
			}
			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Attempts(c.attempts),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	return body, err
}
