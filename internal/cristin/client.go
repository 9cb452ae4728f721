// Package cristin is a rate-limited client for the Cristin v2 REST API.
package cristin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/oyvindaas/aarsrapport/internal/publication"
)

const (
	// BaseURL is the Cristin v2 API base URL.
	BaseURL = "https://api.cristin.no/v2"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit caps requests per second against the public API.
	RateLimit = 10.0

	// DefaultPerPage is the page size for results pagination.
	DefaultPerPage = 100

	// DefaultMaxPages caps pagination as a safety valve against a server
	// that never returns an empty page.
	DefaultMaxPages = 25

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 16 * 1024 * 1024
)

// Client is a rate-limited HTTP client for the Cristin API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	perPage    int
	maxPages   int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithPerPage sets the results page size.
func WithPerPage(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.perPage = n
		}
	}
}

// WithMaxPages sets the pagination safety valve.
func WithMaxPages(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// NewClient creates a new Cristin API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
		perPage:    DefaultPerPage,
		maxPages:   DefaultMaxPages,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ValidatePersonID checks that a person ID is a non-empty numeric string.
func ValidatePersonID(personID string) error {
	if personID == "" {
		return ErrInvalidPersonID
	}
	if _, err := strconv.Atoi(personID); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPersonID, personID)
	}
	return nil
}

// get performs one rate-limited GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", ErrInvalidResponse, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response) error {
	if resp.StatusCode == 404 {
		return ErrNotFound
	}
	if resp.StatusCode == 429 {
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}
	return nil
}

// FetchResults fetches all publication results for a person, following
// pagination until the API returns an empty page or maxPages is reached.
func (c *Client) FetchResults(ctx context.Context, personID string) ([]publication.Result, error) {
	if err := ValidatePersonID(personID); err != nil {
		return nil, err
	}

	var all []publication.Result
	for page := 1; page <= c.maxPages; page++ {
		u := fmt.Sprintf("%s/persons/%s/results?%s", c.baseURL, url.PathEscape(personID),
			url.Values{
				"page":     {strconv.Itoa(page)},
				"per_page": {strconv.Itoa(c.perPage)},
			}.Encode())

		var pageResults []publication.Result
		if err := c.get(ctx, u, &pageResults); err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				apiErr.PersonID = personID
			}
			return nil, fmt.Errorf("fetching results page %d: %w", page, err)
		}

		if len(pageResults) == 0 {
			break
		}

		log.WithFields(log.Fields{"person": personID, "page": page, "results": len(pageResults)}).
			Debug("fetched results page")
		all = append(all, pageResults...)

		if len(pageResults) < c.perPage {
			break
		}
	}

	return all, nil
}

// FetchPerson fetches name and affiliation metadata for a person.
func (c *Client) FetchPerson(ctx context.Context, personID string) (*publication.Person, error) {
	if err := ValidatePersonID(personID); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/persons/%s", c.baseURL, url.PathEscape(personID))

	var person publication.Person
	if err := c.get(ctx, u, &person); err != nil {
		return nil, fmt.Errorf("fetching person %s: %w", personID, err)
	}
	return &person, nil
}
