// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv implements a rate-limited, caching, retrying client for
// the arXiv search API. Each request flows through one pipeline: cache
// lookup by parameter fingerprint, rate-limit wait, network fetch with
// exponential backoff, entry normalization, cache write-back.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-scout/pkg/types"
)

const (
	// defaultBaseURL is the public arXiv query endpoint.
	defaultBaseURL = "https://export.arxiv.org/api/query"

	// maxResultsCap is the per-request ceiling the API accepts.
	maxResultsCap = 2000

	defaultDelay      = 3 * time.Second
	defaultTimeout    = 30 * time.Second
	defaultCacheTTL   = 24 * time.Hour
	defaultUserAgent  = "arxiv-scout/0.1"
	defaultMaxResults = 10
)

// SortBy selects the result ordering field.
type SortBy string

const (
	SortByRelevance       SortBy = "relevance"
	SortBySubmittedDate   SortBy = "submittedDate"
	SortByLastUpdatedDate SortBy = "lastUpdatedDate"
)

// SortOrder selects ascending or descending ordering.
type SortOrder string

const (
	SortAscending  SortOrder = "ascending"
	SortDescending SortOrder = "descending"
)

// Client queries the arXiv API. All operations within one call execute
// sequentially; the only shared mutable state is the Pacer's send clock,
// which is safe under concurrent callers.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	pacer      *Pacer
	retrier    *Retrier
	cache      *FileCache
}

// NewClient builds a Client from cfg, applying defaults for unset
// fields. Caching is disabled when cfg.CacheDir is empty.
func NewClient(cfg types.ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Delay == 0 {
		cfg.Delay = defaultDelay
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	var cache *FileCache
	if cfg.CacheDir != "" {
		var err error
		cache, err = NewFileCache(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		pacer:      NewPacer(cfg.Delay),
		retrier:    NewRetrier(cfg.MaxRetries),
		cache:      cache,
	}, nil
}

// SearchOptions control result count, ordering, and pagination offset.
type SearchOptions struct {
	MaxResults int
	SortBy     SortBy
	SortOrder  SortOrder
	Start      int
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.MaxResults <= 0 {
		o.MaxResults = defaultMaxResults
	}
	if o.MaxResults > maxResultsCap {
		o.MaxResults = maxResultsCap
	}
	if o.SortBy == "" {
		o.SortBy = SortByRelevance
	}
	if o.SortOrder == "" {
		o.SortOrder = SortDescending
	}
	return o
}

// Search queries arXiv with a field-tagged query string (prefixes ti:,
// au:, abs:, cat:, co:, combinable with AND/OR/NOT and parentheses). The
// query is passed through to the API verbatim, never validated locally.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) ([]types.Record, error) {
	opts = opts.withDefaults()
	params := url.Values{
		"search_query": {query},
		"start":        {strconv.Itoa(opts.Start)},
		"max_results":  {strconv.Itoa(opts.MaxResults)},
		"sortBy":       {string(opts.SortBy)},
		"sortOrder":    {string(opts.SortOrder)},
	}
	return c.do(ctx, params)
}

// RecentOptions configure a Recent call. Category and Query may be
// combined; with neither set the query matches everything.
type RecentOptions struct {
	Category   string
	Query      string
	MaxResults int

	// DaysBack, when positive, drops records published before
	// now - DaysBack days. Records with no parseable publish timestamp
	// are dropped by this filter as well.
	DaysBack int
}

// Recent returns the newest submissions matching the options, always
// sorted by submission date descending.
func (c *Client) Recent(ctx context.Context, opts RecentOptions) ([]types.Record, error) {
	var parts []string
	if opts.Category != "" {
		parts = append(parts, "cat:"+opts.Category)
	}
	if opts.Query != "" {
		parts = append(parts, "("+opts.Query+")")
	}
	if len(parts) == 0 {
		parts = append(parts, "all:all")
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	records, err := c.Search(ctx, strings.Join(parts, " AND "), SearchOptions{
		MaxResults: maxResults,
		SortBy:     SortBySubmittedDate,
		SortOrder:  SortDescending,
	})
	if err != nil {
		return nil, err
	}

	if opts.DaysBack > 0 {
		cutoff := time.Now().AddDate(0, 0, -opts.DaysBack)
		filtered := make([]types.Record, 0, len(records))
		for _, r := range records {
			if !r.PublishedAt.IsZero() && r.PublishedAt.After(cutoff) {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}
	return records, nil
}

// ByID fetches a single paper. The identifier may be a bare ID, a
// versioned ID, or an abs/pdf URL; it is reduced to the bare unversioned
// form before querying. Returns nil when no paper matches.
func (c *Client) ByID(ctx context.Context, id string) (*types.Record, error) {
	params := url.Values{
		"id_list":     {CleanID(id)},
		"max_results": {"1"},
	}
	records, err := c.do(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	rec := records[0]
	return &rec, nil
}

// ByIDs fetches a batch of papers in one request, preserving upstream
// order. Identifiers are normalized the same way as ByID.
func (c *Client) ByIDs(ctx context.Context, ids []string) ([]types.Record, error) {
	clean := make([]string, len(ids))
	for i, id := range ids {
		clean[i] = CleanID(id)
	}
	params := url.Values{
		"id_list":     {strings.Join(clean, ",")},
		"max_results": {strconv.Itoa(len(clean))},
	}
	return c.do(ctx, params)
}

// ByAuthor searches for papers by author name. The default ordering is
// submission date descending.
func (c *Client) ByAuthor(ctx context.Context, name string, opts SearchOptions) ([]types.Record, error) {
	if opts.SortBy == "" {
		opts.SortBy = SortBySubmittedDate
	}
	return c.Search(ctx, "au:"+name, opts)
}

// ByTitle searches for papers by title keywords.
func (c *Client) ByTitle(ctx context.Context, text string, opts SearchOptions) ([]types.Record, error) {
	return c.Search(ctx, "ti:"+text, opts)
}

// ByAbstract searches for papers by abstract keywords.
func (c *Client) ByAbstract(ctx context.Context, text string, opts SearchOptions) ([]types.Record, error) {
	return c.Search(ctx, "abs:"+text, opts)
}

// PaginateOptions configure a PaginateAll walk.
type PaginateOptions struct {
	// MaxTotal bounds the accumulated result count; 0 means unbounded.
	MaxTotal int
	// PageSize is the per-request result count (default 100).
	PageSize  int
	SortBy    SortBy
	SortOrder SortOrder
}

// PaginateAll walks a query page by page, concatenating results. It
// stops when a page comes back shorter than the page size (end of
// results) or once MaxTotal records have accumulated, in which case the
// result is truncated to exactly MaxTotal and no further page is
// requested. A failure on any page aborts the walk.
func (c *Client) PaginateAll(ctx context.Context, query string, opts PaginateOptions) ([]types.Record, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = SortBySubmittedDate
	}
	sortOrder := opts.SortOrder
	if sortOrder == "" {
		sortOrder = SortDescending
	}

	var all []types.Record
	for start := 0; ; start += pageSize {
		page, err := c.Search(ctx, query, SearchOptions{
			MaxResults: pageSize,
			Start:      start,
			SortBy:     sortBy,
			SortOrder:  sortOrder,
		})
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
		if opts.MaxTotal > 0 && len(all) >= opts.MaxTotal {
			return all[:opts.MaxTotal], nil
		}
		if len(page) < pageSize {
			break
		}
	}
	return all, nil
}

// do runs one fetch through the full pipeline.
func (c *Client) do(ctx context.Context, params url.Values) ([]types.Record, error) {
	key := Fingerprint(params)
	if records, ok := c.cache.Get(key); ok {
		return records, nil
	}

	var records []types.Record
	err := c.retrier.Do(ctx, func() error {
		if err := c.pacer.Wait(ctx); err != nil {
			return err
		}
		recs, err := c.fetch(ctx, params)
		if err != nil {
			return err
		}
		records = recs
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best effort: a failed cache write never invalidates the fetch.
	_ = c.cache.Put(key, records)

	return records, nil
}

// fetch performs one network attempt and decodes the response.
func (c *Client) fetch(ctx context.Context, params url.Values) ([]types.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var f feed
	if err := xml.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	// The API reports bad queries inside a well-formed feed: a single
	// entry whose title carries "Error".
	if len(f.Entries) == 1 {
		if title := collapseSpace(f.Entries[0].Title); strings.Contains(title, "Error") {
			return nil, &APIError{Message: title}
		}
	}

	records := make([]types.Record, 0, len(f.Entries))
	for _, e := range f.Entries {
		records = append(records, parseEntry(e))
	}
	return records, nil
}

var (
	newStyleURLID = regexp.MustCompile(`/(\d{4}\.\d{4,5})`)
	oldStyleURLID = regexp.MustCompile(`/([a-z-]+/\d{7})`)
)

// CleanID reduces an identifier that may arrive as an arxiv.org URL, an
// old-style "category/7digits" ID, or a versioned ID to the bare,
// unversioned form the id_list parameter expects.
func CleanID(id string) string {
	id = strings.TrimSpace(id)
	if strings.Contains(id, "arxiv.org") {
		if m := newStyleURLID.FindStringSubmatch(id); m != nil {
			return m[1]
		}
		if m := oldStyleURLID.FindStringSubmatch(id); m != nil {
			return m[1]
		}
	}
	return versionSuffix.ReplaceAllString(id, "")
}
