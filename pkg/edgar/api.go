package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DataURL    = "https://data.sec.gov"
	ArchiveURL = "https://www.sec.gov/Archives/edgar/data"
)

// EdgarClient handles communications with Edgar APIs with rate limiting
type EdgarClient struct {
	userAgent  string
	httpClient *http.Client
	dataURL    string
	archiveURL string
	log        *zap.Logger
}

// rateLimitedTransport wraps an HTTP transport with rate limiting
type rateLimitedTransport struct {
	transport http.RoundTripper
	limiter   *rate.Limiter
}

// RoundTrip implements the http.RoundTripper interface with rate limiting
func (r *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := r.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return r.transport.RoundTrip(req)
}

// ClientOption configures an EdgarClient.
type ClientOption func(*EdgarClient)

// WithBaseURLs points the client at other hosts, such as a test server.
func WithBaseURLs(dataURL, archiveURL string) ClientOption {
	return func(c *EdgarClient) {
		c.dataURL = dataURL
		c.archiveURL = archiveURL
	}
}

func WithLogger(log *zap.Logger) ClientOption {
	return func(c *EdgarClient) {
		c.log = log
	}
}

// NewEdgarClient creates a new Edgar API client with rate limiting. SEC
// fair access rules ask for at most 10 requests per second and a
// User-Agent naming the requester.
func NewEdgarClient(userAgent string, rateLimit int, opts ...ClientOption) *EdgarClient {
	if rateLimit <= 0 {
		rateLimit = 10
	}

	transport := &rateLimitedTransport{
		transport: http.DefaultTransport,
		limiter:   rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}

	c := &EdgarClient{
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		dataURL:    DataURL,
		archiveURL: ArchiveURL,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadSubmissions fetches and parses Edgar submissions data for a given CIK number
func (c *EdgarClient) LoadSubmissions(ctx context.Context, cik string) (*Submissions, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/submissions/CIK%s.json", c.dataURL, PadCIK(cik)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions for CIK %s: %w", cik, err)
	}

	var submissions Submissions
	if err := json.Unmarshal(body, &submissions); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return &submissions, nil
}

// LoadDocument fetches one document of a filing from the archive.
func (c *EdgarClient) LoadDocument(ctx context.Context, cik, accession, name string) ([]byte, error) {
	body, err := c.get(ctx, c.archiveURL+documentPath(cik, accession, name))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document %s: %w", name, err)
	}
	return body, nil
}

// LoadFiling fetches the raw XML of a filing's primary document.
func (c *EdgarClient) LoadFiling(ctx context.Context, filing Filing) ([]byte, error) {
	return c.LoadDocument(ctx, filing.CIK, filing.AccessionNumber, filing.RawDocument())
}

func (c *EdgarClient) get(ctx context.Context, url string) ([]byte, error) {
	c.log.Debug("Fetching", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SEC returned status %d", resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return content, nil
}
